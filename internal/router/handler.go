// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type routeKey struct{}

// RouteFrom returns the route a request was dispatched to by Handler.
func RouteFrom(ctx context.Context) (Route, bool) {
	r, ok := ctx.Value(routeKey{}).(Route)
	return r, ok
}

// Param returns a path parameter of the request's matched route.
func Param(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// Handler builds a chi router that serves every route in the table with
// pages[route.Name] for the route's methods; other methods get a 405
// without reaching the page. Every route needs a page; pages[NotFound], if
// present, replaces the default 404. Middlewares wrap the whole tree in the
// given order.
func (t *Table) Handler(pages map[Name]http.Handler, middlewares ...func(http.Handler) http.Handler) (http.Handler, error) {
	mux := chi.NewRouter()
	for _, mw := range middlewares {
		mux.Use(mw)
	}

	for _, route := range t.routes {
		page, ok := pages[route.Name]
		if !ok || page == nil {
			return nil, fmt.Errorf("no page for route %s", route.Name)
		}
		tagged := mux.With(tagRoute(route))
		for _, method := range route.Methods() {
			tagged.Method(method, route.Pattern, page)
		}
	}

	notFound := http.Handler(http.HandlerFunc(http.NotFound))
	if page, ok := pages[NotFound]; ok && page != nil {
		notFound = page
	}
	mux.NotFound(tagRoute(notFoundRoute)(notFound).ServeHTTP)

	return mux, nil
}

func tagRoute(route Route) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), routeKey{}, route)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
