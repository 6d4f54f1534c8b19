// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/anomaly-console/internal/router"
)

var routesCmd = &cobra.Command{
	Use:   "routes [path]",
	Short: "List dashboard routes, or show which page a path resolves to",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := router.Default()
		if len(args) == 1 {
			return render(cmd, table.Resolve(args[0]))
		}
		return render(cmd, table.Routes())
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
