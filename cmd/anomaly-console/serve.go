// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/anomaly-console/internal/logging"
	"github.com/pdiddy/anomaly-console/internal/router"
	"github.com/pdiddy/anomaly-console/internal/views"
)

// shutdownGrace bounds how long in-flight requests may run after a signal.
const shutdownGrace = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard pages over HTTP",
	Long: `Serve exposes the dashboard route table over HTTP. Each page answers with
the JSON view-model it loads from the backend:

  GET  /               upload form description
  POST /               forward a spreadsheet (multipart field "file")
  GET  /dashboard      statistics, platform stats, one page of articles
  GET  /anomaly        anomalous articles (?status=GOOD_ANOMALY|BAD_ANOMALY)
  GET  /article/{id}   article detail report

Other methods answer 405 and unknown paths answer 404. A trailing slash is
ignored. The server stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	log, err := logging.ForFormat(os.Stderr, cfg.Serve.LogFormat, cfg.LogLevel)
	if err != nil {
		return err
	}
	logger = log

	c, err := newClient()
	if err != nil {
		return err
	}
	handler, err := newServerHandler(views.New(c, cfg.Serve.PageSize), logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		// Uploads are forwarded synchronously and may take the full upload timeout.
		WriteTimeout: cfg.Client.UploadTimeout + 30*time.Second,
		BaseContext: func(net.Listener) context.Context {
			return context.WithoutCancel(cmd.Context())
		},
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("backend", c.BaseURL()).Msg("dashboard server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-cmd.Context().Done():
	}

	logger.Info().Msg("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	return <-errc
}

// newServerHandler wires the route table to the page loaders.
func newServerHandler(pages *views.Pages, log zerolog.Logger) (http.Handler, error) {
	return router.Default().Handler(pages.Handlers(log),
		middleware.StripSlashes,
		middleware.RequestID,
		middleware.RealIP,
		requestLogger(log),
		middleware.Recoverer,
	)
}

// requestLogger logs one line per request with its status and duration.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8090)")
	serveCmd.Flags().String("log-format", "", "server log format: console or json (default console)")
	_ = viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("log_format", serveCmd.Flags().Lookup("log-format"))

	rootCmd.AddCommand(serveCmd)
}
