// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package views loads the data each dashboard page shows. A page is
// resolved by the router; its loader turns the route parameters and query
// string into backend calls and returns a view-model. The same loaders
// back the HTTP dashboard and the CLI's open command.
package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/anomaly-console/internal/router"
	"github.com/pdiddy/anomaly-console/pkg/types"
)

// ErrBadParam reports a route or query parameter the page cannot use.
var ErrBadParam = errors.New("bad parameter")

// API is the part of the backend client the pages use.
type API interface {
	UploadExcel(ctx context.Context, filename string, r io.Reader) (*types.UploadResult, error)
	GetArticlesPage(ctx context.Context, q types.PageQuery) (*types.PageResponse[types.ArticleData], error)
	GetAnomalousArticles(ctx context.Context) ([]types.ArticleData, error)
	GetArticlesByStatus(ctx context.Context, status string) ([]types.ArticleData, error)
	GetArticleDetail(ctx context.Context, id int64) (*types.ArticleDetailResponse, error)
	GetStatistics(ctx context.Context) (*types.Statistics, error)
	GetPlatformStats(ctx context.Context) (*types.PlatformStats, error)
}

// UploadPage describes the upload form.
type UploadPage struct {
	Field   string   `json:"field" yaml:"field"`
	Accept  []string `json:"accept" yaml:"accept"`
	Message string   `json:"message" yaml:"message"`
}

// DashboardPage is the summary page: counters plus one page of articles.
type DashboardPage struct {
	Statistics    *types.Statistics                      `json:"statistics" yaml:"statistics"`
	PlatformStats *types.PlatformStats                   `json:"platformStats" yaml:"platform_stats"`
	Articles      *types.PageResponse[types.ArticleData] `json:"articles" yaml:"articles"`
}

// AnomalyPage lists anomalous articles, optionally narrowed to one status.
type AnomalyPage struct {
	Status   string              `json:"status,omitempty" yaml:"status,omitempty"`
	Articles []types.ArticleData `json:"articles" yaml:"articles"`
}

// ArticleDetailPage is the per-article report.
type ArticleDetailPage struct {
	ID     int64                        `json:"id" yaml:"id"`
	Detail *types.ArticleDetailResponse `json:"detail" yaml:"detail"`
}

// Pages loads view-models through an API.
type Pages struct {
	api      API
	pageSize int
}

// New returns page loaders backed by api. pageSize is the dashboard's
// default page size; non-positive values use types.DefaultPageSize.
func New(api API, pageSize int) *Pages {
	if pageSize <= 0 {
		pageSize = types.DefaultPageSize
	}
	return &Pages{api: api, pageSize: pageSize}
}

// Load returns the view-model for a resolved route. query carries the
// navigation's query string (page, size, platform, status).
func (p *Pages) Load(ctx context.Context, m router.Match, query url.Values) (any, error) {
	switch m.Route.Name {
	case router.Upload:
		return p.Upload(), nil
	case router.Dashboard:
		q, err := p.pageQuery(query)
		if err != nil {
			return nil, err
		}
		return p.Dashboard(ctx, q)
	case router.Anomaly:
		return p.Anomaly(ctx, strings.TrimSpace(query.Get("status")))
	case router.ArticleDetail:
		id, err := ParseID(m.Param(router.ParamID))
		if err != nil {
			return nil, err
		}
		return p.ArticleDetail(ctx, id)
	}
	return nil, fmt.Errorf("no page at %s", m.Path)
}

// Upload returns the upload form description.
func (p *Pages) Upload() UploadPage {
	return UploadPage{
		Field:   "file",
		Accept:  []string{".xlsx", ".xls"},
		Message: "POST a spreadsheet as multipart/form-data under field \"file\"",
	}
}

// Dashboard fetches statistics, platform stats, and one page of articles
// concurrently. Any failure fails the whole page.
func (p *Pages) Dashboard(ctx context.Context, q types.PageQuery) (*DashboardPage, error) {
	var page DashboardPage
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := p.api.GetStatistics(ctx)
		page.Statistics = s
		return err
	})
	g.Go(func() error {
		s, err := p.api.GetPlatformStats(ctx)
		page.PlatformStats = s
		return err
	})
	g.Go(func() error {
		a, err := p.api.GetArticlesPage(ctx, q)
		page.Articles = a
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &page, nil
}

// Anomaly lists anomalous articles. With a status, only that status is
// listed; it must be one of the anomaly statuses.
func (p *Pages) Anomaly(ctx context.Context, status string) (*AnomalyPage, error) {
	if status == "" {
		articles, err := p.api.GetAnomalousArticles(ctx)
		if err != nil {
			return nil, err
		}
		return &AnomalyPage{Articles: articles}, nil
	}

	s := types.AnomalyStatus(strings.ToUpper(status))
	if !s.IsAnomaly() {
		return nil, fmt.Errorf("%w: status %q is not an anomaly status", ErrBadParam, status)
	}
	articles, err := p.api.GetArticlesByStatus(ctx, string(s))
	if err != nil {
		return nil, err
	}
	return &AnomalyPage{Status: string(s), Articles: articles}, nil
}

// ArticleDetail fetches the detail report for the article with the given ID.
func (p *Pages) ArticleDetail(ctx context.Context, id int64) (*ArticleDetailPage, error) {
	detail, err := p.api.GetArticleDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ArticleDetailPage{ID: id, Detail: detail}, nil
}

// ParseID parses an article ID route parameter.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: article id %q is not a positive integer", ErrBadParam, raw)
	}
	return id, nil
}

// pageQuery reads page, size, platform, and status from a query string.
// Missing or unparsable page/size fall back to 0 and the default size.
func (p *Pages) pageQuery(query url.Values) (types.PageQuery, error) {
	q := types.PageQuery{
		Page:   intParam(query.Get("page"), 0),
		Size:   intParam(query.Get("size"), p.pageSize),
		Status: strings.TrimSpace(query.Get("status")),
	}
	if q.Size <= 0 {
		q.Size = p.pageSize
	}
	if q.Page < 0 {
		q.Page = 0
	}
	if raw := strings.TrimSpace(query.Get("platform")); raw != "" {
		platform, err := types.ParsePlatform(raw)
		if err != nil {
			return q, fmt.Errorf("%w: %v", ErrBadParam, err)
		}
		q.Platform = string(platform)
	}
	return q, nil
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
