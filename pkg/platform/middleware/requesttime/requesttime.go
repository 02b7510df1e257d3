// Package requesttime pins one "now" per HTTP request, so every claim line
// of an adjudication sees the same "today".
package requesttime

import (
	"net/http"
	"time"

	"sotcredit/pkg/requestcontext"
)

// Middleware stamps each request with the wall clock.
var Middleware = WithClock(time.Now)

// WithClock returns middleware stamping requests with clock(). A time already
// present on the context is kept.
func WithClock(clock func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if _, pinned := requestcontext.Time(ctx); !pinned {
				ctx = requestcontext.WithTime(ctx, clock())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
