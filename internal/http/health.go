package http

import (
	"context"
	"encoding/json"
	"log/slog"
	nethttp "net/http"
	"time"
)

// HealthHandler reports whether the preference store answers. A nil check
// always reports ok.
func HealthHandler(check func(ctx context.Context) error) nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		status, code := "ok", nethttp.StatusOK
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				slog.Warn("health check failed", "err", err)
				status, code = "unavailable", nethttp.StatusServiceUnavailable
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
	})
}
