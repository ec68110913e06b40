package middlewares

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/tiendita/storefront/app/utils/cartmirror"
	"github.com/tiendita/storefront/app/utils/sessions"
)

type contextKey string

const (
	CartCountKey contextKey = "cart_count"
)

// CartCountMiddleware exposes the mirror's item count to downstream
// handlers. It reads the session cache only — no database round trip — which
// is exactly what the mirror exists for.
func CartCountMiddleware(sessionStore sessions.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mirror := cartmirror.Decode(sessionStore.LoadMirror(r))

			ctx := context.WithValue(r.Context(), CartCountKey, mirror.Count())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CartCountFromContext returns the advisory cart badge count, zero when the
// middleware did not run.
func CartCountFromContext(ctx context.Context) int {
	count, _ := ctx.Value(CartCountKey).(int)
	return count
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%v)", r.Method, r.URL.Path, time.Since(start))
	})
}
