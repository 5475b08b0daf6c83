// Package handler serves the liveness/readiness endpoint.
package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"
)

// Handler answers GET /healthz. With a database configured, readiness
// includes a ping so load balancers stop routing when Postgres is gone.
type Handler struct {
	db *sql.DB
}

// NewHandler returns a health handler; db may be nil for liveness-only use.
func NewHandler(db *sql.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]string{"status": "ok"}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["database"] = "unreachable"
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
