// Package metrics defines and registers all custom Prometheus metrics for the
// chat gateway. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at package init; the
// router exposes them on /metrics alongside the per-route HTTP metrics from
// echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gateway"

// AuthFailuresTotal counts rejected authentication attempts at the edge.
// Label:
//   - reason: "missing_header", "malformed_header", "invalid_token", "expired_token"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the auth middleware.",
	},
	[]string{"reason"},
)

// RateLimitedTotal counts requests rejected by the rate limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected for exceeding the per-address ceiling.",
	},
)

// BackendRequestDuration measures forwarded calls to the chat service.
// Labels:
//   - route: logical operation ("completions", "conversations_list", ...)
//   - outcome: "ok", "upstream_error", "unavailable"
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of forwarded chat service calls, from dispatch to response.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	},
	[]string{"route", "outcome"},
)
