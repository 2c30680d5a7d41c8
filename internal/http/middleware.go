package http

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares in the order given, outermost first.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

type contextKey string

const (
	dryRunKey contextKey = "dryRun"
	formatKey contextKey = "format"
)

const (
	formatCSV   = "csv"
	formatTable = "table"
)

// paramsMiddleware reads the shared export parameters: verbose, dry_run and format.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		startTime := time.Now()
		logger := log.With("method", r.Method, "path", r.URL.Path)
		if matchID := q.Get("matchID"); matchID != "" {
			logger = logger.With("matchID", matchID)
		}
		logger.Info("incoming request")

		// verbose only raises the level while this request is served.
		if q.Get("verbose") == "true" {
			originalLevel := log.GetLevel()
			log.SetLevel(log.DebugLevel)
			defer log.SetLevel(originalLevel)
		}

		format := q.Get("format")
		if format == "" {
			format = formatCSV
		}
		if format != formatCSV && format != formatTable {
			http.Error(w, "Unsupported format, use csv or table", http.StatusBadRequest)
			return
		}

		ctx := context.WithValue(r.Context(), dryRunKey, q.Get("dry_run") == "true")
		ctx = context.WithValue(ctx, formatKey, format)
		next.ServeHTTP(w, r.WithContext(ctx))
		logger.Debug("request finished", "duration", time.Since(startTime))
	})
}

func isDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(dryRunKey).(bool)
	return ok && dryRun
}

// formatFromContext returns the requested export format, csv unless set.
func formatFromContext(r *http.Request) string {
	if format, ok := r.Context().Value(formatKey).(string); ok {
		return format
	}
	return formatCSV
}
