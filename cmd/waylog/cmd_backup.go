package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/waylog/waylog/client"
	"github.com/waylog/waylog/internal/models"
)

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Back up and restore your journal",
	}
	cmd.AddCommand(backupCreateCmd())
	cmd.AddCommand(backupRestoreCmd())
	cmd.AddCommand(backupInfoCmd())
	return cmd
}

func backupCreateCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Export the full journal to a JSON backup file",
		Long: `Export all trips, locations, photos, journal entries, tags, companions,
checklists, travel documents, and trip series to a portable JSON file.
Use 'waylog backup restore' to import it into any Waylog instance.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			doc, err := apiClient.Backup.Create(ctx)
			if err != nil {
				return fmt.Errorf("backup failed: %w", err)
			}

			out, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return fmt.Errorf("marshalling backup: %w", err)
			}

			if outputPath == "" {
				outputPath = fmt.Sprintf("waylog-backup-%s.json",
					time.Now().UTC().Format("2006-01-02"))
			}

			if outputPath == "-" {
				_, err = os.Stdout.Write(out)
				return err
			}

			if err := os.WriteFile(outputPath, out, 0o600); err != nil {
				return fmt.Errorf("writing backup file: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Backed up %d trips (format %s) to %s\n",
				len(doc.Trips), doc.Version, outputPath)

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: waylog-backup-<date>.json, use - for stdout)")

	return cmd
}

func backupRestoreCmd() *cobra.Command {
	var (
		clearExisting bool
		skipPhotos    bool
	)

	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore the journal from a JSON backup file",
		Long: `Import a backup file produced by 'waylog backup create'. The restore runs
in a single transaction: either everything is imported or nothing is.
Existing tags and companions with matching names are merged rather than
duplicated unless --clear is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading backup file: %w", err)
			}

			var doc models.BackupDocument
			if err := json.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("parsing backup file: %w", err)
			}

			opts := &client.RestoreOptions{}
			if clearExisting {
				opts.ClearExistingData = &clearExisting
			}
			if skipPhotos {
				importPhotos := false
				opts.ImportPhotos = &importPhotos
			}

			result, err := apiClient.Backup.Restore(ctx, &doc, opts)
			if err != nil {
				return fmt.Errorf("restore failed: %w", err)
			}

			fmt.Fprintf(os.Stderr, "%s\n", result.Message)
			output(result.Stats, "")

			return nil
		},
	}

	cmd.Flags().BoolVar(&clearExisting, "clear", false, "Delete all existing data before restoring")
	cmd.Flags().BoolVar(&skipPhotos, "skip-photos", false, "Skip photos, albums, and photo links")

	return cmd
}

func backupInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show supported backup format versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := apiClient.Backup.Info(cmd.Context())
			if err != nil {
				return fmt.Errorf("backup info: %w", err)
			}
			output(info, info.CurrentVersion)
			return nil
		},
	}
}
