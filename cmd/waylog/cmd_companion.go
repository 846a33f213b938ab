package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/waylog/waylog/client"
)

func newCompanionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "companion",
		Short: "Manage travel companions",
	}
	cmd.AddCommand(companionListCmd())
	cmd.AddCommand(companionCreateCmd())
	cmd.AddCommand(companionDeleteCmd())
	return cmd
}

func companionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List companions",
		Run: func(cmd *cobra.Command, args []string) {
			companions, err := apiClient.Companions.List(context.Background())
			if err != nil {
				fatal("list companions", err)
			}
			if flagFmt == "table" {
				rows := make([][]string, 0, len(companions))
				for _, c := range companions {
					rows = append(rows, []string{strconv.FormatInt(c.ID, 10), c.Name, c.Relationship})
				}
				formatTable([]string{"ID", "NAME", "RELATIONSHIP"}, rows)
				return
			}
			output(map[string]any{"companions": companions}, "")
		},
	}
}

func companionCreateCmd() *cobra.Command {
	var email, phone, relationship, notes string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a companion",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			companion, err := apiClient.Companions.Create(context.Background(), &client.CreateCompanionRequest{
				Name:         args[0],
				Email:        email,
				Phone:        phone,
				Relationship: relationship,
				Notes:        notes,
			})
			if err != nil {
				fatal("create companion", err)
			}
			output(companion, strconv.FormatInt(companion.ID, 10))
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&relationship, "relationship", "", "Relationship (e.g. partner, friend)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	return cmd
}

func companionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a companion",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				fatal("parse companion id", fmt.Errorf("%q is not a valid companion id", args[0]))
			}
			if err := apiClient.Companions.Delete(context.Background(), id); err != nil {
				fatal("delete companion", err)
			}
			output(map[string]bool{"deleted": true}, args[0])
		},
	}
}
