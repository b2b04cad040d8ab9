package middleware

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"
)

// RequireAdminKey guards admin-only routes behind a shared API key.
// The key is read from the Authorization header ("Bearer <key>") or
// the X-Admin-Key header.
func RequireAdminKey(adminKey string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if adminKey == "" {
			log.Printf("[Middleware.RequireAdminKey] Admin key not configured, rejecting %s", r.URL.Path)
			http.Error(w, `{"error": "admin endpoints disabled"}`, http.StatusForbidden)
			return
		}

		provided := r.Header.Get("X-Admin-Key")
		if provided == "" {
			auth := r.Header.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				provided = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(adminKey)) != 1 {
			http.Error(w, `{"error": "unauthorized"}`, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	}
}
