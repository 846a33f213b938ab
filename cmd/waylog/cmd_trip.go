package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/waylog/waylog/client"
)

func newTripCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trip",
		Short: "Manage trips",
	}
	cmd.AddCommand(tripCreateCmd())
	cmd.AddCommand(tripGetCmd())
	cmd.AddCommand(tripUpdateCmd())
	cmd.AddCommand(tripDeleteCmd())
	cmd.AddCommand(tripListCmd())
	return cmd
}

// parseTripID converts a positional argument to a trip ID.
func parseTripID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		fatal("parse trip id", fmt.Errorf("%q is not a valid trip id", arg))
	}
	return id
}

// parseDateFlag parses a --start/--end value as a calendar date.
func parseDateFlag(name, val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", val)
	if err != nil {
		fatal("parse "+name, fmt.Errorf("%q is not a date (want YYYY-MM-DD)", val))
	}
	return &t
}

func tripCreateCmd() *cobra.Command {
	var (
		description string
		start, end  string
		timezone    string
		status      string
		seriesID    int64
	)
	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a trip",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			req := &client.CreateTripRequest{
				Title:       args[0],
				Description: description,
				Timezone:    timezone,
				Status:      status,
				StartDate:   parseDateFlag("start", start),
				EndDate:     parseDateFlag("end", end),
			}
			if seriesID > 0 {
				req.SeriesID = &seriesID
			}
			trip, err := apiClient.Trips.Create(context.Background(), req)
			if err != nil {
				fatal("create trip", err)
			}
			output(trip, strconv.FormatInt(trip.ID, 10))
		},
	}
	cmd.Flags().StringVar(&description, "desc", "", "Trip description")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone (e.g. Europe/Lisbon)")
	cmd.Flags().StringVar(&status, "status", "", "Status: planning|in_progress|completed")
	cmd.Flags().Int64Var(&seriesID, "series", 0, "Trip series ID")
	return cmd
}

func tripGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a trip by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			trip, err := apiClient.Trips.Get(context.Background(), parseTripID(args[0]))
			if err != nil {
				fatal("get trip", err)
			}
			output(trip, strconv.FormatInt(trip.ID, 10))
		},
	}
}

func tripUpdateCmd() *cobra.Command {
	var (
		title       string
		description string
		status      string
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a trip",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			req := &client.UpdateTripRequest{}
			if title != "" {
				req.Title = &title
			}
			if description != "" {
				req.Description = &description
			}
			if status != "" {
				req.Status = &status
			}
			trip, err := apiClient.Trips.Update(context.Background(), parseTripID(args[0]), req)
			if err != nil {
				fatal("update trip", err)
			}
			output(trip, strconv.FormatInt(trip.ID, 10))
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Trip title")
	cmd.Flags().StringVar(&description, "desc", "", "Trip description")
	cmd.Flags().StringVar(&status, "status", "", "Status: planning|in_progress|completed")
	return cmd
}

func tripDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a trip and all its records",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id := parseTripID(args[0])
			if err := apiClient.Trips.Delete(context.Background(), id); err != nil {
				fatal("delete trip", err)
			}
			output(map[string]bool{"deleted": true}, args[0])
		},
	}
}

func tripListCmd() *cobra.Command {
	var (
		status        string
		limit, offset int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trips",
		Run: func(cmd *cobra.Command, args []string) {
			trips, hasMore, err := apiClient.Trips.List(context.Background(), &client.ListTripsOptions{
				Status: status,
				Limit:  limit,
				Offset: offset,
			})
			if err != nil {
				fatal("list trips", err)
			}

			if flagFmt == "table" {
				rows := make([][]string, 0, len(trips))
				for _, tr := range trips {
					dates := ""
					if tr.StartDate != nil {
						dates = tr.StartDate.Format("2006-01-02")
					}
					if tr.EndDate != nil {
						dates += " .. " + tr.EndDate.Format("2006-01-02")
					}
					rows = append(rows, []string{
						strconv.FormatInt(tr.ID, 10), tr.Title, tr.Status, dates,
					})
				}
				formatTable([]string{"ID", "TITLE", "STATUS", "DATES"}, rows)
				return
			}

			output(map[string]any{"trips": trips, "has_more": hasMore}, "")
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results")
	cmd.Flags().IntVar(&offset, "offset", 0, "Results offset")
	return cmd
}
