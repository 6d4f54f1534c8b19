// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/pdiddy/anomaly-console/internal/router"
	"github.com/pdiddy/anomaly-console/internal/views"
)

var openCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Load a dashboard page by its path",
	Long: `Open resolves a dashboard path such as /dashboard?page=1, /anomaly, or
/article/42 against the route table and prints the data that page shows.
Unknown paths report the not-found page and exit non-zero.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := router.Default()
		m := table.Resolve(args[0])
		if !m.Found() {
			return fmt.Errorf("no page at %s", m.Path)
		}

		var query url.Values
		if u, err := url.Parse(args[0]); err == nil {
			query = u.Query()
		}

		c, err := newClient()
		if err != nil {
			return err
		}
		page, err := views.New(c, cfg.Serve.PageSize).Load(cmd.Context(), m, query)
		if err != nil {
			return err
		}
		return render(cmd, page)
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
