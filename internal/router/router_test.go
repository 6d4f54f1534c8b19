// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaultRoutes(t *testing.T) {
	tests := []struct {
		path       string
		wantName   Name
		wantParams map[string]string
	}{
		{"/", Upload, map[string]string{}},
		{"", Upload, map[string]string{}},
		{"/dashboard", Dashboard, map[string]string{}},
		{"/dashboard/", Dashboard, map[string]string{}},
		{"/anomaly", Anomaly, map[string]string{}},
		{"/anomaly?status=BAD_ANOMALY", Anomaly, map[string]string{}},
		{"/article/42", ArticleDetail, map[string]string{"id": "42"}},
		{"article/42", ArticleDetail, map[string]string{"id": "42"}},
		// The router does not validate parameter shape.
		{"/article/not-a-number", ArticleDetail, map[string]string{"id": "not-a-number"}},
		{"/article", NotFound, map[string]string{}},
		{"/article/42/extra", NotFound, map[string]string{}},
		{"/settings", NotFound, map[string]string{}},
	}
	table := Default()
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			m := table.Resolve(tt.path)
			assert.Equal(t, tt.wantName, m.Route.Name)
			assert.Equal(t, tt.wantName != NotFound, m.Found())
			assert.Equal(t, tt.wantParams, m.Params)
		})
	}
}

func TestResolveArticleDetailExposesID(t *testing.T) {
	m := Default().Resolve("/article/42")
	require.Equal(t, ArticleDetail, m.Route.Name)
	assert.Equal(t, "42", m.Param(ParamID))
	assert.Equal(t, "/article/{id}", m.Route.Pattern)
}

func TestPath(t *testing.T) {
	table := Default()

	p, err := table.Path(ArticleDetail, map[string]string{"id": "42"})
	require.NoError(t, err)
	assert.Equal(t, "/article/42", p)

	p, err = table.Path(Dashboard, nil)
	require.NoError(t, err)
	assert.Equal(t, "/dashboard", p)

	p, err = table.Path(ArticleDetail, map[string]string{"id": "a/b"})
	require.NoError(t, err)
	assert.Equal(t, "/article/a%2Fb", p)

	_, err = table.Path(ArticleDetail, nil)
	assert.ErrorContains(t, err, `missing parameter "id"`)

	_, err = table.Path("Settings", nil)
	assert.Error(t, err)
}

func TestNewRejectsBadTables(t *testing.T) {
	tests := []struct {
		name   string
		routes []Route
	}{
		{"reserved name", []Route{{Name: NotFound, Pattern: "/x"}}},
		{"empty name", []Route{{Pattern: "/x"}}},
		{"relative pattern", []Route{{Name: "X", Pattern: "x"}}},
		{"duplicate name", []Route{{Name: "X", Pattern: "/a"}, {Name: "X", Pattern: "/b"}}},
		{"duplicate pattern", []Route{{Name: "X", Pattern: "/a"}, {Name: "Y", Pattern: "/a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.routes...)
			assert.Error(t, err)
		})
	}
}

func TestRoutesIsACopy(t *testing.T) {
	table := Default()
	routes := table.Routes()
	require.Len(t, routes, 4)
	routes[0].Name = "Mutated"

	r, ok := table.Lookup(Upload)
	assert.True(t, ok)
	assert.Equal(t, "/", r.Pattern)
	assert.Equal(t, Upload, table.Routes()[0].Name)
}

func TestHandlerDispatchesToPages(t *testing.T) {
	page := func(name Name) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, ok := RouteFrom(r.Context())
			if !ok {
				http.Error(w, "no route in context", http.StatusInternalServerError)
				return
			}
			fmt.Fprintf(w, "%s|%s|%s", name, route.Name, Param(r, ParamID))
		})
	}
	pages := map[Name]http.Handler{
		Upload:        page(Upload),
		Dashboard:     page(Dashboard),
		Anomaly:       page(Anomaly),
		ArticleDetail: page(ArticleDetail),
		NotFound: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, _ := RouteFrom(r.Context())
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintf(w, "missing|%s", route.Name)
		}),
	}

	h, err := Default().Handler(pages)
	require.NoError(t, err)

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/", http.StatusOK, "Upload|Upload|"},
		{"/dashboard", http.StatusOK, "Dashboard|Dashboard|"},
		{"/anomaly", http.StatusOK, "Anomaly|Anomaly|"},
		{"/article/42", http.StatusOK, "ArticleDetail|ArticleDetail|42"},
		{"/nope", http.StatusNotFound, "missing|NotFound"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestHandlerRequiresEveryPage(t *testing.T) {
	_, err := Default().Handler(map[Name]http.Handler{Upload: http.NotFoundHandler()})
	assert.ErrorContains(t, err, "no page for route Dashboard")
}

func TestHandlerServesOnlyRouteMethods(t *testing.T) {
	var hits []string
	page := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route, _ := RouteFrom(r.Context())
		hits = append(hits, r.Method+" "+string(route.Name))
	})
	pages := map[Name]http.Handler{
		Upload:        page,
		Dashboard:     page,
		Anomaly:       page,
		ArticleDetail: page,
	}
	h, err := Default().Handler(pages)
	require.NoError(t, err)

	tests := []struct {
		method     string
		path       string
		wantStatus int
	}{
		{http.MethodGet, "/article/42", http.StatusOK},
		{http.MethodHead, "/dashboard", http.StatusOK},
		{http.MethodPost, "/", http.StatusOK},
		{http.MethodPost, "/article/42", http.StatusMethodNotAllowed},
		{http.MethodDelete, "/anomaly", http.StatusMethodNotAllowed},
		{http.MethodPut, "/", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
	assert.Equal(t, []string{"GET ArticleDetail", "HEAD Dashboard", "POST Upload"}, hits)
}

func TestRouteMethods(t *testing.T) {
	upload, ok := Default().Lookup(Upload)
	require.True(t, ok)
	assert.Equal(t, []string{http.MethodGet, http.MethodHead, http.MethodPost}, upload.Methods())

	detail, ok := Default().Lookup(ArticleDetail)
	require.True(t, ok)
	assert.Equal(t, []string{http.MethodGet, http.MethodHead}, detail.Methods())
}
