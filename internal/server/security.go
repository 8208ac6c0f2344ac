package server

import (
	"net/http"
	"slices"
	"strings"
)

// SecurityConfig controls the response hardening and request limits of the
// server.
type SecurityConfig struct {
	EnableCORS     bool
	AllowedOrigins []string
	AllowedMethods []string
	// MaxOperandWords bounds every operand, in 16-bit limbs.
	MaxOperandWords int
	// MaxBodyBytes bounds the request body of /v1/eval.
	MaxBodyBytes int64
}

// DefaultSecurityConfig allows any origin to call the read and evaluation
// endpoints and caps operands at one million limbs.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:      true,
		AllowedOrigins:  []string{"*"},
		AllowedMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		MaxOperandWords: 1 << 20,
		MaxBodyBytes:    8 << 20,
	}
}

// SecurityMiddleware sets the hardening headers on every response, adds
// CORS headers for allowed origins and answers preflight requests itself.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if origin, ok := allowedOrigin(config.AllowedOrigins, r.Header.Get("Origin")); ok {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type")
				h.Set("Access-Control-Max-Age", "86400")
				if origin != "*" {
					h.Add("Vary", "Origin")
				}
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}

// allowedOrigin returns the value of Access-Control-Allow-Origin for the
// request origin. A wildcard matches everything, including no origin.
func allowedOrigin(allowed []string, origin string) (string, bool) {
	if slices.Contains(allowed, "*") {
		return "*", true
	}
	if origin != "" && slices.Contains(allowed, origin) {
		return origin, true
	}
	return "", false
}
