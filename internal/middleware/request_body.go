package middleware

import (
	"io"
	"net/http"
)

// DefaultMaxRequestBody fits the largest JSON payloads, workout logs with many sets.
const DefaultMaxRequestBody = 1 << 20

// LimitRequestBody caps the body size handlers can read, then drains and
// closes whatever they left unread so the connection can be reused.
func LimitRequestBody(maxBytes int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
			_, _ = io.Copy(io.Discard, r.Body)
			_ = r.Body.Close()
		})
	}
}
