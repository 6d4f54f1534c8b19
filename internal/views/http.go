// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package views

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pdiddy/anomaly-console/internal/client"
	"github.com/pdiddy/anomaly-console/internal/router"
)

// MaxUploadMemory is the multipart memory limit for forwarded uploads;
// larger files spill to temporary files.
var MaxUploadMemory int64 = 32 << 20

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// Handlers returns one HTTP handler per default route, suitable for
// (*router.Table).Handler. Every page answers with its view-model as JSON.
func (p *Pages) Handlers(log zerolog.Logger) map[router.Name]http.Handler {
	return map[router.Name]http.Handler{
		router.Upload:        p.uploadHandler(log),
		router.Dashboard:     p.pageHandler(log),
		router.Anomaly:       p.pageHandler(log),
		router.ArticleDetail: p.pageHandler(log),
		router.NotFound:      http.HandlerFunc(notFound),
	}
}

// pageHandler serves any read-only page through Load.
func (p *Pages) pageHandler(log zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route, _ := router.RouteFrom(r.Context())
		m := router.Match{
			Route:  route,
			Path:   r.URL.Path,
			Params: map[string]string{router.ParamID: router.Param(r, router.ParamID)},
		}
		page, err := p.Load(r.Context(), m, r.URL.Query())
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	})
}

// uploadHandler describes the form on GET and forwards the spreadsheet
// to the backend on POST.
func (p *Pages) uploadHandler(log zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead:
			writeJSON(w, http.StatusOK, p.Upload())
		case http.MethodPost:
			if err := r.ParseMultipartForm(MaxUploadMemory); err != nil {
				writeError(w, r, log, errors.Join(ErrBadParam, err))
				return
			}
			defer r.MultipartForm.RemoveAll()

			f, hdr, err := r.FormFile(client.UploadField)
			if err != nil {
				writeError(w, r, log, errors.Join(ErrBadParam, err))
				return
			}
			defer f.Close()

			result, err := p.api.UploadExcel(r.Context(), hdr.Filename, f)
			if err != nil {
				writeError(w, r, log, err)
				return
			}
			writeJSON(w, http.StatusOK, result)
		default:
			w.Header().Set("Allow", "GET, HEAD, POST")
			writeJSON(w, http.StatusMethodNotAllowed, ErrorBody{
				Error:  "method not allowed",
				Status: http.StatusMethodNotAllowed,
			})
		}
	})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, ErrorBody{
		Error:  "no page at " + r.URL.Path,
		Status: http.StatusNotFound,
	})
}

// StatusFor maps a loader error to the HTTP status the dashboard answers with.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrBadParam), errors.Is(err, client.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, client.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	// Backend failures and contract violations alike.
	return http.StatusBadGateway
}

func writeError(w http.ResponseWriter, r *http.Request, log zerolog.Logger, err error) {
	status := StatusFor(err)
	log.Warn().
		Str("path", r.URL.Path).
		Int("status", status).
		Err(err).
		Msg("page failed")
	writeJSON(w, status, ErrorBody{Error: err.Error(), Status: status})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
