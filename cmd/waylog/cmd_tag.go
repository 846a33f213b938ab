package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/waylog/waylog/client"
)

func newTagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage trip tags",
	}
	cmd.AddCommand(tagListCmd())
	cmd.AddCommand(tagCreateCmd())
	cmd.AddCommand(tagDeleteCmd())
	return cmd
}

func tagListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tags",
		Run: func(cmd *cobra.Command, args []string) {
			tags, err := apiClient.Tags.List(context.Background())
			if err != nil {
				fatal("list tags", err)
			}
			if flagFmt == "table" {
				rows := make([][]string, 0, len(tags))
				for _, tag := range tags {
					rows = append(rows, []string{strconv.FormatInt(tag.ID, 10), tag.Name, tag.Color})
				}
				formatTable([]string{"ID", "NAME", "COLOR"}, rows)
				return
			}
			output(map[string]any{"tags": tags}, "")
		},
	}
}

func tagCreateCmd() *cobra.Command {
	var color, textColor string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a tag",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			tag, err := apiClient.Tags.Create(context.Background(), &client.CreateTagRequest{
				Name:      args[0],
				Color:     color,
				TextColor: textColor,
			})
			if err != nil {
				fatal("create tag", err)
			}
			output(tag, strconv.FormatInt(tag.ID, 10))
		},
	}
	cmd.Flags().StringVar(&color, "color", "", "Background color (hex)")
	cmd.Flags().StringVar(&textColor, "text-color", "", "Text color (hex)")
	return cmd
}

func tagDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a tag",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				fatal("parse tag id", fmt.Errorf("%q is not a valid tag id", args[0]))
			}
			if err := apiClient.Tags.Delete(context.Background(), id); err != nil {
				fatal("delete tag", err)
			}
			output(map[string]bool{"deleted": true}, args[0])
		},
	}
}
