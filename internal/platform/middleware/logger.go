package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"phonebook/pkg/requestcontext"
)

// maxLoggedBody bounds how much of a request body is copied into the log line.
const maxLoggedBody = 4 << 10

// Logger writes one structured line per request. POST and PUT bodies are
// included so writes can be traced from the log alone.
func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			body := captureBody(r)
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			ctx := r.Context()
			attrs := []any{
				"request_id", requestcontext.RequestID(ctx),
				"method", r.Method,
				"path", r.URL.Path,
				"status", statusOf(ww),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"client_ip", requestcontext.ClientIP(ctx),
			}
			if body != "" {
				attrs = append(attrs, "body", body)
			}
			logger.InfoContext(ctx, "http request", attrs...)
		})
	}
}

// captureBody reads up to maxLoggedBody of a POST/PUT body and restores it
// for the handler.
func captureBody(r *http.Request) string {
	if r.Body == nil || (r.Method != http.MethodPost && r.Method != http.MethodPut) {
		return ""
	}
	head, err := io.ReadAll(io.LimitReader(r.Body, maxLoggedBody))
	if err != nil {
		return ""
	}
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(head), r.Body), r.Body}
	return string(bytes.TrimSpace(head))
}

// statusOf reports 200 for handlers that never called WriteHeader.
func statusOf(ww chimw.WrapResponseWriter) int {
	if status := ww.Status(); status != 0 {
		return status
	}
	return http.StatusOK
}
