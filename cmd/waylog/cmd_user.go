package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/waylog/waylog/client"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage the user profile",
	}
	cmd.AddCommand(userGetCmd())
	cmd.AddCommand(userIntegrationsCmd())
	return cmd
}

func userGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the authenticated user's profile",
		Run: func(cmd *cobra.Command, args []string) {
			user, err := apiClient.User.Get(context.Background())
			if err != nil {
				fatal("get user", err)
			}
			output(user, user.ID)
		},
	}
}

func userIntegrationsCmd() *cobra.Command {
	var immichURL, immichKey, weatherKey string
	cmd := &cobra.Command{
		Use:   "integrations",
		Short: "Set third-party integration credentials",
		Run: func(cmd *cobra.Command, args []string) {
			err := apiClient.User.UpdateIntegrations(context.Background(), &client.UpdateIntegrationsRequest{
				ImmichAPIURL:  immichURL,
				ImmichAPIKey:  immichKey,
				WeatherAPIKey: weatherKey,
			})
			if err != nil {
				fatal("update integrations", err)
			}
			output(map[string]string{"status": "updated"}, "updated")
		},
	}
	cmd.Flags().StringVar(&immichURL, "immich-url", "", "Immich server URL")
	cmd.Flags().StringVar(&immichKey, "immich-key", "", "Immich API key")
	cmd.Flags().StringVar(&weatherKey, "weather-key", "", "Weather API key")
	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show journal statistics",
		Run: func(cmd *cobra.Command, args []string) {
			stats, err := apiClient.Stats(context.Background())
			if err != nil {
				fatal("stats", err)
			}
			output(stats, "")
		},
	}
}
