// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package router holds the dashboard's page route table: a fixed set of
// URL patterns mapped to page names, with a not-found fallback. Matching is
// delegated to chi so the same table drives both path resolution and the
// HTTP handler tree.
//
// The table has no guards, redirects, or async resolution. Parameters are
// extracted but never validated here; pages decide what a valid value is.
package router

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Name identifies a page.
type Name string

const (
	Upload        Name = "Upload"
	Dashboard     Name = "Dashboard"
	Anomaly       Name = "Anomaly"
	ArticleDetail Name = "ArticleDetail"
	NotFound      Name = "NotFound"
)

// ParamID is the positional parameter of the ArticleDetail route.
const ParamID = "id"

// Route maps a chi pattern to a page. Pages answer GET and HEAD; Submit
// pages also accept a POST of their form.
type Route struct {
	Name    Name
	Pattern string
	Title   string
	Submit  bool
}

// Methods returns the HTTP methods the route's page is served for.
func (r Route) Methods() []string {
	if r.Submit {
		return []string{http.MethodGet, http.MethodHead, http.MethodPost}
	}
	return []string{http.MethodGet, http.MethodHead}
}

// Match is the result of resolving a path against the table.
type Match struct {
	Route  Route
	Path   string
	Params map[string]string
}

// Found reports whether the path matched a real page.
func (m Match) Found() bool {
	return m.Route.Name != NotFound
}

// Param returns the named path parameter, or "".
func (m Match) Param(key string) string {
	return m.Params[key]
}

// Table is an immutable set of routes.
type Table struct {
	routes    []Route
	byPattern map[string]Route
	byName    map[Name]Route
	mux       *chi.Mux
}

// notFoundRoute is returned for any path no route matches.
var notFoundRoute = Route{Name: NotFound, Title: "Not found"}

// DefaultRoutes is the dashboard's page table.
var DefaultRoutes = []Route{
	{Name: Upload, Pattern: "/", Title: "Upload", Submit: true},
	{Name: Dashboard, Pattern: "/dashboard", Title: "Dashboard"},
	{Name: Anomaly, Pattern: "/anomaly", Title: "Anomalies"},
	{Name: ArticleDetail, Pattern: "/article/{" + ParamID + "}", Title: "Article detail"},
}

// Default builds the table from DefaultRoutes.
func Default() *Table {
	t, err := New(DefaultRoutes...)
	if err != nil {
		panic(fmt.Sprintf("router: default routes: %v", err))
	}
	return t
}

// New builds a table. Names and patterns must be unique and NotFound is
// reserved for the fallback.
func New(routes ...Route) (*Table, error) {
	t := &Table{
		byPattern: make(map[string]Route, len(routes)),
		byName:    make(map[Name]Route, len(routes)),
		mux:       chi.NewRouter(),
	}
	for _, r := range routes {
		if r.Name == "" || r.Name == NotFound {
			return nil, fmt.Errorf("route %q: invalid name %q", r.Pattern, r.Name)
		}
		if !strings.HasPrefix(r.Pattern, "/") {
			return nil, fmt.Errorf("route %s: pattern %q must start with /", r.Name, r.Pattern)
		}
		if _, dup := t.byName[r.Name]; dup {
			return nil, fmt.Errorf("duplicate route name %s", r.Name)
		}
		if _, dup := t.byPattern[r.Pattern]; dup {
			return nil, fmt.Errorf("duplicate route pattern %s", r.Pattern)
		}
		t.byName[r.Name] = r
		t.byPattern[r.Pattern] = r
		t.routes = append(t.routes, r)
		t.mux.Get(r.Pattern, http.NotFound)
	}
	return t, nil
}

// Routes returns the routes in declaration order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Lookup returns the route with the given name.
func (t *Table) Lookup(name Name) (Route, bool) {
	r, ok := t.byName[name]
	return r, ok
}

// Resolve matches a navigation target against the table. The target may
// carry a query string or a trailing slash; both are ignored. Unmatched
// targets resolve to the NotFound route.
func (t *Table) Resolve(target string) Match {
	p := target
	if u, err := url.Parse(target); err == nil {
		p = u.Path
	}
	p = normalize(p)

	rctx := chi.NewRouteContext()
	if !t.mux.Match(rctx, http.MethodGet, p) {
		return Match{Route: notFoundRoute, Path: p, Params: map[string]string{}}
	}

	route, ok := t.byPattern[rctx.RoutePattern()]
	if !ok {
		return Match{Route: notFoundRoute, Path: p, Params: map[string]string{}}
	}

	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, k := range rctx.URLParams.Keys {
		params[k] = rctx.URLParams.Values[i]
	}
	return Match{Route: route, Path: p, Params: params}
}

// Path builds the URL path for a named route, substituting params into the
// pattern's {placeholders}.
func (t *Table) Path(name Name, params map[string]string) (string, error) {
	r, ok := t.Lookup(name)
	if !ok {
		return "", fmt.Errorf("unknown route %s", name)
	}

	var b strings.Builder
	rest := r.Pattern
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return "", fmt.Errorf("route %s: malformed pattern %q", name, r.Pattern)
		}
		key := rest[open+1 : open+end]
		v, ok := params[key]
		if !ok || v == "" {
			return "", fmt.Errorf("route %s: missing parameter %q", name, key)
		}
		b.WriteString(rest[:open])
		b.WriteString(url.PathEscape(v))
		rest = rest[open+end+1:]
	}
	return b.String(), nil
}

func normalize(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}
