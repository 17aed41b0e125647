package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	AuthAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "crossingbook", Name: "auth_attempts_total", Help: "Register/login attempts by operation and outcome."},
		[]string{"op", "outcome"},
	)
	RecipeMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "crossingbook", Name: "recipe_mutations_total", Help: "Recipe create/replace/delete operations."},
		[]string{"op"},
	)
	TypeMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "crossingbook", Name: "type_mutations_total", Help: "Taxonomy create/replace/delete operations."},
		[]string{"op"},
	)
	Searches = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "crossingbook", Name: "searches_total", Help: "Number of recipe search requests."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "crossingbook", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "crossingbook", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(AuthAttempts)
	reg.MustRegister(RecipeMutations)
	reg.MustRegister(TypeMutations)
	reg.MustRegister(Searches)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
