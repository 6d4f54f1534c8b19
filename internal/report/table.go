// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/anomaly-console/internal/archive"
	"github.com/pdiddy/anomaly-console/internal/router"
	"github.com/pdiddy/anomaly-console/internal/views"
	"github.com/pdiddy/anomaly-console/pkg/types"
)

// FormatTable writes v as a human-readable table to w.
func FormatTable(v any, w io.Writer) error {
	s := newStyles(w)
	switch v := v.(type) {
	case []types.ArticleData:
		articleTable(w, s, v)
	case *types.PageResponse[types.ArticleData]:
		pageTable(w, s, v)
	case *types.Statistics:
		statisticsTable(w, v)
	case *types.PlatformStats:
		platformTable(w, v)
	case *types.ArticleData:
		articleFields(w, s, v)
	case *types.ArticleDetailResponse:
		detailTable(w, s, v)
	case *types.UploadResult:
		fmt.Fprintf(w, "%s (%d rows ingested)\n\n", v.Message, v.TotalCount)
		articleTable(w, s, v.Articles)
	case *types.Ack:
		fmt.Fprintln(w, v.Message)
	case views.UploadPage:
		fmt.Fprintf(w, "field:  %s\naccept: %s\n%s\n", v.Field, strings.Join(v.Accept, ", "), v.Message)
	case *views.DashboardPage:
		statisticsTable(w, v.Statistics)
		fmt.Fprintln(w)
		platformTable(w, v.PlatformStats)
		fmt.Fprintln(w)
		pageTable(w, s, v.Articles)
	case *views.AnomalyPage:
		if v.Status != "" {
			fmt.Fprintf(w, "status: %s\n\n", s.status(types.AnomalyStatus(v.Status), v.Status))
		}
		articleTable(w, s, v.Articles)
	case *views.ArticleDetailPage:
		detailTable(w, s, v.Detail)
	case []router.Route:
		routeTable(w, s, v)
	case router.Match:
		matchTable(w, v)
	case []archive.Summary:
		snapshotTable(w, s, v)
	case archive.Summary:
		snapshotTable(w, s, []archive.Summary{v})
	case *archive.Snapshot:
		fmt.Fprintf(w, "snapshot %s taken %s from %s\n", v.ID, v.TakenAt.Local().Format(time.DateTime), v.BaseURL)
		if v.Note != "" {
			fmt.Fprintf(w, "note: %s\n", v.Note)
		}
		fmt.Fprintln(w)
		statisticsTable(w, &v.Statistics)
		fmt.Fprintln(w)
		articleTable(w, s, v.Articles)
	default:
		return fmt.Errorf("no table layout for %T", v)
	}
	return nil
}

func articleTable(w io.Writer, s styles, articles []types.ArticleData) {
	if len(articles) == 0 {
		fmt.Fprintln(w, "No articles found.")
		return
	}

	fmt.Fprintln(w, s.header.Render(fmt.Sprintf("%-6s  %s  %s  %s  %s  %9s  %9s  %s",
		"ID", pad("Data ID", 12), pad("Title", 40), pad("Brand", 12), pad("Platform", 8),
		"Read 7d", "Inter 7d", "Status")))
	fmt.Fprintln(w, strings.Repeat("-", 124))

	for _, a := range articles {
		id := ""
		if a.ID != nil {
			id = strconv.FormatInt(*a.ID, 10)
		}
		status := string(a.AnomalyStatus)
		if status == "" {
			status = "-"
		}
		fmt.Fprintf(w, "%-6s  %s  %s  %s  %s  %9d  %9d  %s\n",
			id, pad(a.DataID, 12), pad(a.Title, 40), pad(a.Brand, 12), pad(string(a.Platform), 8),
			a.ReadCount7d, a.InteractionCount7d, s.status(a.AnomalyStatus, status))
	}
	fmt.Fprintf(w, "\n%d articles\n", len(articles))
}

func pageTable(w io.Writer, s styles, p *types.PageResponse[types.ArticleData]) {
	if p == nil {
		fmt.Fprintln(w, "No articles found.")
		return
	}
	articleTable(w, s, p.Content)
	fmt.Fprintf(w, "page %d of %d (%d total)\n", p.CurrentPage+1, max(p.TotalPages, 1), p.TotalElements)
}

func statisticsTable(w io.Writer, st *types.Statistics) {
	if st == nil {
		return
	}
	rate := 0.0
	if st.TotalCount > 0 {
		rate = 100 * float64(st.AnomalyCount()) / float64(st.TotalCount)
	}
	fmt.Fprintf(w, "%-22s %d\n", "Total articles", st.TotalCount)
	fmt.Fprintf(w, "%-22s %d\n", "Normal", st.NormalCount)
	fmt.Fprintf(w, "%-22s %d\n", "Good anomalies", st.GoodAnomalyCount)
	fmt.Fprintf(w, "%-22s %d\n", "Bad anomalies", st.BadAnomalyCount)
	fmt.Fprintf(w, "%-22s %.1f%%\n", "Anomaly rate", rate)
	fmt.Fprintf(w, "%-22s %.1f\n", "Avg reads (7d)", st.AvgReadCount)
	fmt.Fprintf(w, "%-22s %.1f\n", "Avg interactions (7d)", st.AvgInteractionCount)
}

func platformTable(w io.Writer, p *types.PlatformStats) {
	if p == nil {
		return
	}
	fmt.Fprintf(w, "%-22s %d\n", "Total articles", p.TotalArticles)
	writeCounts(w, "Platforms", p.PlatformDistribution)
	writeCounts(w, "Crawl status", p.CrawlStatusDistribution)
	if len(p.SupportedPlatforms) > 0 {
		fmt.Fprintf(w, "%-22s %s\n", "Supported", strings.Join(p.SupportedPlatforms, ", "))
	}
}

// writeCounts lists a distribution largest first, ties by name.
func writeCounts(w io.Writer, title string, counts map[string]int64) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	fmt.Fprintf(w, "%s:\n", title)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s %d\n", pad(k, 20), counts[k])
	}
}

func articleFields(w io.Writer, s styles, a *types.ArticleData) {
	if a == nil {
		return
	}
	status := string(a.AnomalyStatus)
	if status == "" {
		status = "-"
	}
	rows := [][2]string{
		{"ID", strconv.FormatInt(a.IDValue(), 10)},
		{"Data ID", a.DataID},
		{"Title", a.Title},
		{"Brand", a.Brand},
		{"Platform", string(a.Platform)},
		{"Published", formatLocal(a.PublishTime)},
		{"Link", a.ArticleLink},
		{"Page", articlePage(a)},
		{"Reads 7d/14d", fmt.Sprintf("%d / %d", a.ReadCount7d, a.ReadCount14d)},
		{"Interactions 7d/14d", fmt.Sprintf("%d / %d", a.InteractionCount7d, a.InteractionCount14d)},
		{"Shares 7d/14d", fmt.Sprintf("%d / %d", a.ShareCount7d, a.ShareCount14d)},
	}
	if a.AnomalyScore != nil {
		rows = append(rows, [2]string{"Anomaly score", fmt.Sprintf("%.1f", *a.AnomalyScore)})
	}
	if a.CrawlStatus != "" {
		rows = append(rows, [2]string{"Crawl status", a.CrawlStatus})
	}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		fmt.Fprintf(w, "%-20s %s\n", r[0], r[1])
	}
	fmt.Fprintf(w, "%-20s %s\n", "Status", s.status(a.AnomalyStatus, status))
}

// articlePage is the dashboard path of the article's detail page.
func articlePage(a *types.ArticleData) string {
	if a.ID == nil {
		return ""
	}
	p, err := router.Default().Path(router.ArticleDetail, map[string]string{
		router.ParamID: strconv.FormatInt(*a.ID, 10),
	})
	if err != nil {
		return ""
	}
	return p
}

func detailTable(w io.Writer, s styles, d *types.ArticleDetailResponse) {
	if d == nil {
		return
	}
	articleFields(w, s, d.Article)

	rep := d.AnomalyReport
	fmt.Fprintf(w, "\n%s  overall %s, score %.1f\n", s.header.Render("Anomaly report"), rep.OverallStatus, rep.OverallScore)
	if len(rep.Results) > 0 {
		fmt.Fprintf(w, "%s  %10s  %10s  %7s  %6s  %s\n",
			pad("Metric", 22), "Value", "Mean", "Z", "Pct", "Level")
		for _, r := range rep.Results {
			fmt.Fprintf(w, "%s  %10.1f  %10.1f  %7.2f  %6.1f  %s\n",
				pad(r.Metric, 22), r.Value, r.Mean, r.ZScore, r.Percentile, s.level(r.Level, string(r.Level)))
		}
	}

	ta := d.TitleAnalysis
	fmt.Fprintf(w, "\n%s  length %d, keywords %d, quality %.1f\n",
		s.header.Render("Title"), ta.Length, ta.KeywordCount, ta.QualityScore)
	var traits []string
	for _, t := range []struct {
		on   bool
		name string
	}{
		{ta.HasEmotionalWords, "emotional words"},
		{ta.HasSpecificNumber, "specific number"},
		{ta.HasQuestion, "question"},
		{ta.HasCallToAction, "call to action"},
	} {
		if t.on {
			traits = append(traits, t.name)
		}
	}
	if len(traits) > 0 {
		fmt.Fprintf(w, "  has %s\n", strings.Join(traits, ", "))
	}

	if len(d.BrandAverages) > 0 {
		fmt.Fprintf(w, "\n%s\n", s.header.Render("Brand averages"))
		keys := make([]string, 0, len(d.BrandAverages))
		for k := range d.BrandAverages {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %s %.1f\n", pad(k, 22), d.BrandAverages[k])
		}
	}

	if len(d.BenchmarkArticles) > 0 {
		fmt.Fprintf(w, "\n%s\n", s.header.Render("Benchmarks"))
		articleTable(w, s, d.BenchmarkArticles)
	}
}

func routeTable(w io.Writer, s styles, routes []router.Route) {
	fmt.Fprintln(w, s.header.Render(fmt.Sprintf("%s  %s  %s  %s",
		pad("Name", 14), pad("Pattern", 16), pad("Methods", 14), "Title")))
	for _, r := range routes {
		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			pad(string(r.Name), 14), pad(r.Pattern, 16), pad(strings.Join(r.Methods(), ","), 14), r.Title)
	}
}

func matchTable(w io.Writer, m router.Match) {
	fmt.Fprintf(w, "%-8s %s\n", "path", m.Path)
	fmt.Fprintf(w, "%-8s %s\n", "page", m.Route.Name)
	if m.Route.Pattern != "" {
		fmt.Fprintf(w, "%-8s %s\n", "pattern", m.Route.Pattern)
	}
	keys := make([]string, 0, len(m.Params))
	for k := range m.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%-8s %s=%s\n", "param", k, m.Params[k])
	}
}

func snapshotTable(w io.Writer, s styles, sums []archive.Summary) {
	if len(sums) == 0 {
		fmt.Fprintln(w, "No snapshots found.")
		return
	}
	fmt.Fprintln(w, s.header.Render(fmt.Sprintf("%s  %s  %8s  %9s  %s",
		pad("ID", 8), pad("Taken", 19), "Articles", "Anomalies", "Note")))
	for _, sum := range sums {
		id := sum.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Fprintf(w, "%s  %s  %8d  %9d  %s\n",
			pad(id, 8), sum.TakenAt.Local().Format(time.DateTime), sum.ArticleCount, sum.AnomalyCount, sum.Note)
	}
}

func formatLocal(t types.LocalTime) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateTime)
}
