// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/anomaly-console/pkg/types"
)

// Backend paths, relative to the configured base URL.
const (
	pathUpload        = "/analysis/upload"
	pathArticles      = "/analysis/articles"
	pathArticlesPage  = "/analysis/articles/page"
	pathAnomalous     = "/analysis/articles/anomalous"
	pathStatusPrefix  = "/analysis/articles/status/"
	pathStatistics    = "/analysis/statistics"
	pathPlatformStats = "/analysis/platforms/stats"
)

// GetAllArticles lists every article in backend order. The order is not
// guaranteed to be stable between calls.
func (c *Client) GetAllArticles(ctx context.Context) ([]types.ArticleData, error) {
	return c.listArticles(ctx, call{op: "getAllArticles", path: pathArticles})
}

// GetAnomalousArticles lists the articles the backend flags as anomalous.
func (c *Client) GetAnomalousArticles(ctx context.Context) ([]types.ArticleData, error) {
	return c.listArticles(ctx, call{op: "getAnomalousArticles", path: pathAnomalous})
}

// GetArticlesByStatus lists articles with the given status key. The key is
// passed through opaquely; unknown keys yield an empty list.
func (c *Client) GetArticlesByStatus(ctx context.Context, status string) ([]types.ArticleData, error) {
	status = strings.TrimSpace(status)
	if status == "" || status == "." || status == ".." {
		return nil, invalid("status %q is not a usable path segment", status)
	}
	return c.listArticles(ctx, call{
		op:   "getArticlesByStatus",
		path: pathStatusPrefix + url.PathEscape(status),
	})
}

func (c *Client) listArticles(ctx context.Context, cl call) ([]types.ArticleData, error) {
	articles, err := getJSON[[]types.ArticleData](ctx, c, cl)
	if err != nil {
		return nil, err
	}
	if err := types.ValidateArticles(articles); err != nil {
		return nil, c.contractFailure(cl, err)
	}
	if articles == nil {
		articles = []types.ArticleData{}
	}
	return articles, nil
}

// GetArticlesPage fetches one page of articles. page and size are always
// sent; platform and status only when non-empty. The envelope is checked
// against the pagination invariants before it is returned.
func (c *Client) GetArticlesPage(ctx context.Context, q types.PageQuery) (*types.PageResponse[types.ArticleData], error) {
	if err := q.Validate(); err != nil {
		return nil, invalid("%v", err)
	}

	cl := call{op: "getArticlesPage", path: pathArticlesPage, query: q.Values()}
	page, err := getJSON[types.PageResponse[types.ArticleData]](ctx, c, cl)
	if err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, c.contractFailure(cl, err)
	}
	if err := types.ValidateArticles(page.Content); err != nil {
		return nil, c.contractFailure(cl, err)
	}
	return &page, nil
}

// GetArticleByID fetches a single article. A missing article yields an
// error matching ErrNotFound.
func (c *Client) GetArticleByID(ctx context.Context, id int64) (*types.ArticleData, error) {
	if id <= 0 {
		return nil, invalid("article id must be positive, got %d", id)
	}

	cl := call{op: "getArticleById", path: articlePath(id)}
	article, err := getJSON[types.ArticleData](ctx, c, cl)
	if err != nil {
		return nil, err
	}
	if err := article.Validate(); err != nil {
		return nil, c.contractFailure(cl, err)
	}
	return &article, nil
}

// GetArticleDetail fetches the composite detail view-model for one article.
// A missing article yields an error matching ErrNotFound; a response that
// describes a different article is a contract violation.
func (c *Client) GetArticleDetail(ctx context.Context, id int64) (*types.ArticleDetailResponse, error) {
	if id <= 0 {
		return nil, invalid("article id must be positive, got %d", id)
	}

	cl := call{op: "getArticleDetail", path: articlePath(id) + "/detail"}
	detail, err := getJSON[types.ArticleDetailResponse](ctx, c, cl)
	if err != nil {
		return nil, err
	}
	if err := detail.Validate(id); err != nil {
		return nil, c.contractFailure(cl, err)
	}
	return &detail, nil
}

// GetStatistics fetches the dashboard counters, computed at call time.
func (c *Client) GetStatistics(ctx context.Context) (*types.Statistics, error) {
	cl := call{op: "getStatistics", path: pathStatistics}
	stats, err := getJSON[types.Statistics](ctx, c, cl)
	if err != nil {
		return nil, err
	}
	if err := stats.Validate(); err != nil {
		return nil, c.contractFailure(cl, err)
	}
	return &stats, nil
}

// GetPlatformStats fetches per-platform and per-crawl-status counts.
func (c *Client) GetPlatformStats(ctx context.Context) (*types.PlatformStats, error) {
	cl := call{op: "getPlatformStats", path: pathPlatformStats}
	stats, err := getJSON[types.PlatformStats](ctx, c, cl)
	if err != nil {
		return nil, err
	}
	if err := stats.Validate(); err != nil {
		return nil, c.contractFailure(cl, err)
	}
	return &stats, nil
}

// DeleteAllArticles purges every article. It is irreversible and asks for
// no confirmation; it returns once the backend acknowledges completion.
// Calls issued concurrently with it may observe the data before or after.
func (c *Client) DeleteAllArticles(ctx context.Context) (*types.Ack, error) {
	cl := call{op: "deleteAllArticles", method: http.MethodDelete, path: pathArticles}
	resp, err := c.do(ctx, cl)
	if err != nil {
		return nil, err
	}
	ack, err := decode[types.Ack](resp.Body)
	if err != nil {
		return nil, c.contractFailure(cl, err)
	}
	if !ack.Success {
		apiErr := &APIError{
			Op:         cl.op,
			Method:     cl.method,
			URL:        c.endpoint(cl),
			StatusCode: resp.StatusCode,
			Message:    ack.Message,
			Body:       resp.Body,
		}
		c.logFailure(cl, apiErr.URL, resp.StatusCode, apiErr)
		return nil, apiErr
	}
	return &ack, nil
}

func articlePath(id int64) string {
	return pathArticles + "/" + strconv.FormatInt(id, 10)
}
