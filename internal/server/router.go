// Package server assembles the HTTP surface: the verification endpoint,
// the health route, and the instrumentation middleware around them.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	healthhandler "field-attendance/backend/internal/health/handler"
	verificationhandler "field-attendance/backend/internal/verification/handler"
)

// Deps holds the handlers mounted on the router.
type Deps struct {
	Verification *verificationhandler.Handler
	Health       *healthhandler.Handler
}

// NewRouter mounts the verification endpoint and /healthz, wrapped with
// client IP capture and OpenTelemetry HTTP instrumentation.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(WithClientIP)

	if d.Health != nil {
		r.Method(http.MethodGet, "/healthz", d.Health)
	}
	if d.Verification != nil {
		// The handler owns method dispatch so OPTIONS preflights and 405s
		// share the CORS behavior.
		r.Handle("/api/verify", d.Verification)
	}

	return otelhttp.NewHandler(r, "attendance.http")
}
