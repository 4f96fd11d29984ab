package service

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"mentor-collab/internal/domain"
)

var (
	// suggestionsServed cuenta sugerencias devueltas por tier
	suggestionsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "collab_suggestions_served_total",
		Help: "Total suggestions returned by tier",
	}, []string{"tier"})

	suggestionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "collab_suggestion_duration_seconds",
		Help:    "Suggestion computation duration in seconds, upstream reads included",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	})

	requestOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "collab_request_outcomes_total",
		Help: "Collaboration request operations by operation and outcome",
	}, []string{"operation", "outcome"})

	acceptOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "collab_accept_outcomes_total",
		Help: "Accept attempts by outcome",
	}, []string{"outcome"})
)

// outcomeLabel reduce un error a una etiqueta de baja cardinalidad.
func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrStaleSnapshot):
		return "stale"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrTransactionFailure):
		return "tx_failure"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return "upstream"
	}
	return "error"
}
