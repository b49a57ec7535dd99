package middleware

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	corsAllowHeaders = "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, X-MEMBERHUB-TOKEN, X-Request-Id, MCP-Protocol-Version, MCP-Session-Id"
	corsAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsMaxAge       = "600"
)

// Cors lets the portal origins through. Requests without an Origin are
// tolerated from curl and test agents, and on /mcp where clients are not browsers.
func Cors(allowedOrigins []string) func(next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[strings.TrimSuffix(origin, "/")] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowOrigin, ok := corsAllowOrigin(r, allowed)
			if !ok {
				log.Warnf("cors: origin [%s] not allowed on [%s]", r.Header.Get("Origin"), r.URL.Path)
				w.WriteHeader(http.StatusForbidden)
				return
			}

			h := w.Header()
			h.Add("Vary", "Origin")
			if allowOrigin != "" {
				h.Set("Access-Control-Allow-Origin", allowOrigin)
			}
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)
			h.Set("Access-Control-Expose-Headers", RequestIDHeader)
			if r.Method == http.MethodOptions {
				h.Set("Access-Control-Max-Age", corsMaxAge)
			}

			next.ServeHTTP(w, r)
		})
	}
}

func corsAllowOrigin(r *http.Request, allowed map[string]bool) (string, bool) {
	origin := r.Header.Get("Origin")
	isMCP := strings.HasPrefix(r.URL.Path, "/mcp")

	switch {
	case origin != "" && allowed[origin]:
		return origin, true
	case isMCP && origin == "":
		return "*", true
	case isMCP:
		return origin, true
	case origin == "" && isToolingAgent(r.Header.Get("User-Agent")):
		return "", true
	default:
		return "", false
	}
}

func isToolingAgent(userAgent string) bool {
	return strings.HasPrefix(userAgent, "curl/") || strings.HasPrefix(userAgent, "test-agent")
}
