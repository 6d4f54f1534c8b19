// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard statistics",
	Long: `Stats prints the article counts per anomaly status and the average
engagement. With --platforms it prints the per-platform and per-crawl-status
breakdown instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		if platforms, _ := cmd.Flags().GetBool("platforms"); platforms {
			ps, err := c.GetPlatformStats(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, ps)
		}

		st, err := c.GetStatistics(cmd.Context())
		if err != nil {
			return err
		}
		return render(cmd, st)
	},
}

func init() {
	statsCmd.Flags().Bool("platforms", false, "show the platform breakdown")
	rootCmd.AddCommand(statsCmd)
}
