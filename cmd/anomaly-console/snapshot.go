// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pdiddy/anomaly-console/internal/archive"
	"github.com/pdiddy/anomaly-console/internal/client"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save and inspect local snapshots of the dashboard",
	Long: `Snapshot records the backend's statistics and full article list in a local
SQLite archive (archive_dir/snapshots.db), so dashboards can be compared over
time or kept before a purge.`,
}

// --- save subcommand ---

var snapshotSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Capture the current statistics and articles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		note, _ := cmd.Flags().GetString("note")

		c, err := newClient()
		if err != nil {
			return err
		}
		snap, err := captureSnapshot(cmd.Context(), c)
		if err != nil {
			return err
		}
		snap.Note = note

		store, err := archive.Open(cfg.Archive)
		if err != nil {
			return err
		}
		defer store.Close()

		sum, err := store.Save(cmd.Context(), snap)
		if err != nil {
			return err
		}
		return render(cmd, sum)
	},
}

// captureSnapshot reads statistics and articles back to back. The backend
// has no transactional read, so a concurrent upload can make the two
// disagree; Save rejects statistics that are inconsistent on their own.
func captureSnapshot(ctx context.Context, c *client.Client) (archive.Snapshot, error) {
	stats, err := c.GetStatistics(ctx)
	if err != nil {
		return archive.Snapshot{}, err
	}
	articles, err := c.GetAllArticles(ctx)
	if err != nil {
		return archive.Snapshot{}, err
	}
	return archive.Snapshot{
		BaseURL:    c.BaseURL(),
		Statistics: *stats,
		Articles:   articles,
	}, nil
}

// --- list subcommand ---

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved snapshots, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := archive.Open(cfg.Archive)
		if err != nil {
			return err
		}
		defer store.Close()

		sums, err := store.List(cmd.Context(), limit)
		if err != nil {
			return err
		}
		return render(cmd, sums)
	},
}

// --- show subcommand ---

var snapshotShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a snapshot; the ID may be abbreviated",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := archive.Open(cfg.Archive)
		if err != nil {
			return err
		}
		defer store.Close()

		snap, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return render(cmd, snap)
	},
}

// --- delete subcommand ---

var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := archive.Open(cfg.Archive)
		if err != nil {
			return err
		}
		defer store.Close()

		snap, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := store.Delete(cmd.Context(), snap.ID); err != nil {
			return err
		}
		logger.Info().Str("id", snap.ID).Msg("snapshot deleted")
		return nil
	},
}

func init() {
	snapshotSaveCmd.Flags().String("note", "", "free-text note stored with the snapshot")
	snapshotListCmd.Flags().Int("limit", 0, "maximum number of snapshots to list (0 = all)")

	snapshotCmd.AddCommand(snapshotSaveCmd, snapshotListCmd, snapshotShowCmd, snapshotDeleteCmd)
	rootCmd.AddCommand(snapshotCmd)
}
