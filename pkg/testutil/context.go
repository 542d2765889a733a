package testutil

import (
	"net/http"
	"time"

	"phonebook/pkg/requestcontext"
)

// WithRequestTime pins the request time so time-dependent output is stable.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
