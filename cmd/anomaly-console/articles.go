// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/anomaly-console/pkg/types"
)

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "List analysed articles",
	Long: `Articles lists analysed articles one page at a time. Filter by platform
(dewu, xhs, unknown) and anomaly status (NORMAL, GOOD_ANOMALY, BAD_ANOMALY).

--all lists every article without paging (narrowed by --status if given);
--anomalous lists only the articles the backend flags as anomalous.`,
	Args: cobra.NoArgs,
	RunE: runArticles,
}

func runArticles(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	anomalous, _ := cmd.Flags().GetBool("anomalous")
	status, _ := cmd.Flags().GetString("status")

	c, err := newClient()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	switch {
	case anomalous:
		articles, err := c.GetAnomalousArticles(ctx)
		if err != nil {
			return err
		}
		return render(cmd, articles)
	case all && status != "":
		articles, err := c.GetArticlesByStatus(ctx, status)
		if err != nil {
			return err
		}
		return render(cmd, articles)
	case all:
		articles, err := c.GetAllArticles(ctx)
		if err != nil {
			return err
		}
		return render(cmd, articles)
	}

	q, err := pageQueryFromFlags(cmd)
	if err != nil {
		return err
	}
	page, err := c.GetArticlesPage(ctx, q)
	if err != nil {
		return err
	}
	return render(cmd, page)
}

func pageQueryFromFlags(cmd *cobra.Command) (types.PageQuery, error) {
	page, _ := cmd.Flags().GetInt("page")
	size, _ := cmd.Flags().GetInt("size")
	platform, _ := cmd.Flags().GetString("platform")
	status, _ := cmd.Flags().GetString("status")

	q := types.PageQuery{Page: page, Size: size}
	if platform != "" {
		p, err := types.ParsePlatform(platform)
		if err != nil {
			return q, err
		}
		q.Platform = string(p)
	}
	if status != "" {
		st, err := types.ParseAnomalyStatus(status)
		if err != nil {
			return q, err
		}
		q.Status = string(st)
	}
	return q, nil
}

func init() {
	articlesCmd.Flags().Int("page", 0, "zero-based page number")
	articlesCmd.Flags().Int("size", types.DefaultPageSize, "page size")
	articlesCmd.Flags().String("platform", "", "filter by platform: dewu, xhs, unknown")
	articlesCmd.Flags().String("status", "", "filter by anomaly status")
	articlesCmd.Flags().Bool("all", false, "list every article without paging")
	articlesCmd.Flags().Bool("anomalous", false, "list only anomalous articles")
	articlesCmd.MarkFlagsMutuallyExclusive("all", "anomalous")

	rootCmd.AddCommand(articlesCmd)
}
