package handlers

import (
	"context"
	"net"
	"net/http"
	"strings"
)

type contextKey string

// ClientIPKey carries the requesting network origin through the request
// context.
const ClientIPKey contextKey = "client_ip"

// ClientIP resolves the client's network origin, preferring the first
// X-Forwarded-For entry when the service runs behind a reverse proxy.
func ClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.Header.Get("X-Forwarded-For")
		if ip != "" {
			ip = strings.TrimSpace(strings.Split(ip, ",")[0])
		} else {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}
			ip = host
		}

		ctx := context.WithValue(r.Context(), ClientIPKey, ip)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CORS allows the browser frontend to call the API from any origin.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
