// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/anomaly-console/internal/views"
)

var articleCmd = &cobra.Command{
	Use:   "article <id>",
	Short: "Show one article, or its full anomaly report with --detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := views.ParseID(args[0])
		if err != nil {
			return err
		}
		c, err := newClient()
		if err != nil {
			return err
		}

		if detail, _ := cmd.Flags().GetBool("detail"); detail {
			d, err := c.GetArticleDetail(cmd.Context(), id)
			if err != nil {
				return err
			}
			return render(cmd, d)
		}

		a, err := c.GetArticleByID(cmd.Context(), id)
		if err != nil {
			return err
		}
		return render(cmd, a)
	},
}

func init() {
	articleCmd.Flags().Bool("detail", false, "include the anomaly report, title analysis, and benchmarks")
	rootCmd.AddCommand(articleCmd)
}
