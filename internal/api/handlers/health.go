package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler provides a liveness check that also pings the database when set.
type HealthHandler struct {
	DB Pinger
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.DB.PingContext(ctx); err != nil {
			writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "error", "database": "disconnected"})
			return
		}
	}

	res := map[string]string{"status": "ok"}
	writeJSON(w, r, http.StatusOK, res)
}
