package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"phonebook/pkg/platform/httputil"
	"phonebook/pkg/requestcontext"
)

// Recovery turns a handler panic into a 500 so the process keeps serving.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				ctx := r.Context()
				logger.ErrorContext(ctx, "panic recovered",
					"request_id", requestcontext.RequestID(ctx),
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				httputil.WriteJSON(w, http.StatusInternalServerError, httputil.ErrorResponse{Error: "internal error"})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
