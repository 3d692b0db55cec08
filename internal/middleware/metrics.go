// AngelaMos | 2026
// metrics.go

package middleware

import (
	"net/http"
	"time"

	"github.com/carterperez-dev/templates/dashboard-backend/internal/core"
)

// Metrics labels by chi route pattern, never by raw path.
func Metrics(m *core.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := wrapWriter(w)

			next.ServeHTTP(rec, r)

			m.RecordHTTPRequest(
				r.Method,
				routePattern(r),
				rec.status,
				time.Since(start),
			)
		})
	}
}
