// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AgentOperationsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_operations_completed_total",
			Help: "Total number of simulated agent operations that completed",
		},
		[]string{"task_type"},
	)

	AgentOperationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_operations_failed_total",
			Help: "Total number of simulated agent operations that failed",
		},
		[]string{"task_type", "error_code"},
	)

	AgentOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agent_operation_duration_seconds",
			Help:    "Wall-clock duration of simulated agent operations",
			Buckets: []float64{0.5, 1, 1.5, 2, 2.5, 3, 5, 10},
		},
		[]string{"task_type"},
	)

	ConversationTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversation_transitions_total",
			Help: "Conversation state transitions",
		},
		[]string{"from", "to"},
	)

	InputRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversation_input_rejections_total",
			Help: "User inputs rejected without advancing the conversation",
		},
		[]string{"step", "error_code"},
	)

	ApplicationOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loan_application_outcomes_total",
			Help: "Terminal application outcomes",
		},
		[]string{"outcome", "path"},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "conversation_sessions_active",
			Help: "Number of open conversation sessions",
		},
	)
)
