package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/agbru/bigcalc/internal/config"
)

// corsMaxAgeSeconds is how long browsers may cache a preflight answer.
const corsMaxAgeSeconds = 86400

// SecurityConfig controls the hardening middleware: CORS policy plus the
// request limits enforced by the evaluation endpoint.
type SecurityConfig struct {
	// EnableCORS toggles CORS header handling.
	EnableCORS bool
	// AllowedOrigins lists the origins allowed to call the API. A "*"
	// entry allows any origin.
	AllowedOrigins []string
	// AllowedMethods lists the methods advertised in CORS responses.
	AllowedMethods []string
	// MaxExprLength bounds the expr query parameter, in bytes.
	MaxExprLength int
	// MaxPrecision bounds the prec query parameter.
	MaxPrecision uint
}

// DefaultSecurityConfig returns the production defaults: permissive CORS
// for the read-only API and the same precision cap as the command line.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		MaxExprLength:  65_536,
		MaxPrecision:   config.MaxPrecision,
	}
}

// SecurityMiddleware wraps next with the security headers and, when
// enabled, CORS handling. OPTIONS preflight requests are answered here
// and never reach next.
func SecurityMiddleware(cfg SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setSecurityHeaders(w)
		if cfg.EnableCORS {
			applyCORSHeaders(w, r, cfg)
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}

// setSecurityHeaders sets the standard hardening headers on every
// response, whatever the method or outcome.
func setSecurityHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("X-Frame-Options", "DENY")
	h.Set("X-XSS-Protection", "1; mode=block")
	h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
}

// applyCORSHeaders sets the CORS response headers when the request
// origin is allowed, and nothing otherwise.
func applyCORSHeaders(w http.ResponseWriter, r *http.Request, cfg SecurityConfig) {
	origin, ok := resolveOrigin(r.Header.Get("Origin"), cfg.AllowedOrigins)
	if !ok {
		return
	}
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", origin)
	h.Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowedMethods, ", "))
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	h.Set("Access-Control-Max-Age", strconv.Itoa(corsMaxAgeSeconds))
}

// resolveOrigin returns the Access-Control-Allow-Origin value for the
// request origin. A wildcard entry matches any origin, including none;
// otherwise the origin must equal one of the allowed entries.
func resolveOrigin(origin string, allowed []string) (string, bool) {
	for _, o := range allowed {
		if o == "*" {
			return "*", true
		}
		if origin != "" && o == origin {
			return origin, true
		}
	}
	return "", false
}
