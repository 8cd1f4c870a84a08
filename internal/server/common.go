// Package server provides shared HTTP middleware: CORS, security
// headers with CSP, and input sanitization.
package server

import "net/http"

// CORSConfig holds CORS middleware configuration.
type CORSConfig struct {
	AllowedOrigins []string // empty = allow all (*)
}

// CORSMiddleware adds CORS headers with configurable origins. An empty
// origin list allows all origins; otherwise the request Origin must be
// listed, and disallowed preflights are rejected outright.
func CORSMiddleware(cfg CORSConfig, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		allowedOrigin := "*"
		if len(cfg.AllowedOrigins) > 0 {
			allowed := false
			for _, candidate := range cfg.AllowedOrigins {
				if origin == candidate {
					allowed = true
					allowedOrigin = origin
					break
				}
			}
			if !allowed {
				// No CORS headers: the browser blocks the response.
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")
		if allowedOrigin != "*" {
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// OriginAllowed reports whether an Origin header value passes the CORS
// origin list. Used by the WebSocket upgrader, which cannot rely on
// response headers for enforcement.
func OriginAllowed(cfg CORSConfig, origin string) bool {
	if len(cfg.AllowedOrigins) == 0 {
		return true
	}
	for _, candidate := range cfg.AllowedOrigins {
		if origin == candidate {
			return true
		}
	}
	return false
}
