// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete every article on the backend",
	Long: `Purge deletes all articles. It cannot be undone and requires --yes.
Take a snapshot first if you may need the data later.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("refusing to delete all articles without --yes")
		}
		c, err := newClient()
		if err != nil {
			return err
		}
		ack, err := c.DeleteAllArticles(cmd.Context())
		if err != nil {
			return err
		}
		logger.Info().Str("base_url", c.BaseURL()).Msg("all articles deleted")
		return render(cmd, ack)
	},
}

func init() {
	purgeCmd.Flags().Bool("yes", false, "confirm deletion")
	rootCmd.AddCommand(purgeCmd)
}
