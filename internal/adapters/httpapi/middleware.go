package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// slogFormatter plugs the service logger into chi's RequestLogger so request
// lines come out as structured JSON instead of chi's colored text
type slogFormatter struct {
	logger *slog.Logger
}

func (f *slogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &slogEntry{
		logger: f.logger,
		req:    r,
	}
}

type slogEntry struct {
	logger *slog.Logger
	req    *http.Request
}

// Write logs the finished request; the level follows the status class
func (e *slogEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra interface{}) {
	if status == 0 {
		status = http.StatusOK
	}

	level := slog.LevelInfo
	switch {
	case status >= 500:
		level = slog.LevelError
	case status >= 400:
		level = slog.LevelWarn
	}

	e.logger.LogAttrs(e.req.Context(), level, "http request",
		slog.String("request_id", middleware.GetReqID(e.req.Context())),
		slog.String("method", e.req.Method),
		slog.String("path", e.req.URL.Path),
		slog.Int("status", status),
		slog.Int("bytes", bytes),
		slog.Duration("duration", elapsed),
	)
}

func (e *slogEntry) Panic(v interface{}, stack []byte) {
	e.logger.ErrorContext(e.req.Context(), "panic recovered",
		slog.String("request_id", middleware.GetReqID(e.req.Context())),
		slog.String("panic", fmt.Sprint(v)),
		slog.String("stack", string(stack)),
	)
}

// requestLogger writes one structured line per request
func (s *Server) requestLogger() func(http.Handler) http.Handler {
	return middleware.RequestLogger(&slogFormatter{logger: s.logger})
}

// recoverer turns a panicking handler into a JSON 500 response.
// chi's Recoverer answers with an empty body, clients expect the error envelope.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			if entry := middleware.GetLogEntry(r); entry != nil {
				entry.Panic(rec, debug.Stack())
			} else {
				s.logger.ErrorContext(r.Context(), "panic recovered",
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("panic", fmt.Sprint(rec)),
				)
			}
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}()

		next.ServeHTTP(w, r)
	})
}

// corsHandler allows browser front-ends from the configured origins
func (s *Server) corsHandler() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"X-Analysis-ID"},
		MaxAge:         300,
	})
}
