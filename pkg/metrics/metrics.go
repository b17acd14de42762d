package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	testlane = "testlane"

	// Labels
	loginResultLabel   = "result"
	authzDecisionLabel = "decision"
	authzResourceLabel = "resource"
)

var loginAttemptsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: testlane,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts partitioned by result.",
	},
	[]string{loginResultLabel},
)

var authzDecisionsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: testlane,
		Name:      "authz_decisions_total",
		Help:      "Total number of authorization decisions partitioned by decision and resource kind.",
	},
	[]string{authzDecisionLabel, authzResourceLabel},
)

func IncreaseLoginAttemptsTotal(result string) {
	loginAttemptsTotalMetric.WithLabelValues(result).Inc()
}

func IncreaseAuthzDecisionsTotal(decision, resource string) {
	authzDecisionsTotalMetric.WithLabelValues(decision, resource).Inc()
}

func init() {
	prometheus.MustRegister(loginAttemptsTotalMetric)
	prometheus.MustRegister(authzDecisionsTotalMetric)
}
