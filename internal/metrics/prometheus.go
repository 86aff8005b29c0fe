// Package metrics expone los colectores Prometheus del servicio.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resultados de login.
const (
	LoginSuccess            = "success"
	LoginInvalidCredentials = "invalid_credentials"
	LoginLocked             = "locked"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	authorizationDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authorization_decisions_total",
			Help: "Route guard decisions by role group",
		},
		[]string{"group", "decision"},
	)

	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)

	sessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_created_total",
			Help: "Total number of sessions issued",
		},
	)

	sessionsSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_swept_total",
			Help: "Expired sessions removed by the background sweep",
		},
	)
)

// Handler handler HTTP de /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest registra una petición ya respondida. route es el patrón, no la URL.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordAuthorizationDecision registra el resultado de un guard de ruta.
func RecordAuthorizationDecision(group string, allowed bool) {
	decision := "denied"
	if allowed {
		decision = "allowed"
	}
	authorizationDecisions.WithLabelValues(group, decision).Inc()
}

func RecordLoginAttempt(outcome string) {
	loginAttempts.WithLabelValues(outcome).Inc()
}

func RecordSessionCreated() {
	sessionsCreated.Inc()
}

func RecordSessionsSwept(n int64) {
	if n > 0 {
		sessionsSwept.Add(float64(n))
	}
}
