// internal/common/status/observer.go
package status

import (
	"context"
	"time"

	"loan-assistant/internal/common/logger"
	"loan-assistant/internal/common/metrics"
	"loan-assistant/internal/common/observability"
)

// MetricsObserver records finished operations in Prometheus, OTel and the log.
type MetricsObserver struct {
	obs       *observability.Observability
	logger    logger.Logger
	sessionID string
}

func NewMetricsObserver(obs *observability.Observability, log logger.Logger, sessionID string) *MetricsObserver {
	return &MetricsObserver{obs: obs, logger: log, sessionID: sessionID}
}

func (m *MetricsObserver) OperationFinished(op *Operation, phase Phase, elapsed time.Duration) {
	taskType := op.Stage().TaskType
	metrics.AgentOperationDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())

	ctx, span := m.obs.StartOperation(context.Background(), taskType, m.sessionID)
	m.obs.RecordOperation(ctx, taskType, string(phase), elapsed)
	span.End()

	fields := map[string]interface{}{
		"taskType":    taskType,
		"operationId": op.ID(),
		"sessionId":   m.sessionID,
		"elapsedMs":   elapsed.Milliseconds(),
	}
	if phase == PhaseError {
		code := op.FailCode()
		if code == "" {
			code = "BUSINESS_OUTCOME"
		}
		metrics.AgentOperationsFailed.WithLabelValues(taskType, code).Inc()
		fields["errorCode"] = code
		m.logger.Warn("agent operation failed", fields)
		return
	}
	metrics.AgentOperationsCompleted.WithLabelValues(taskType).Inc()
	m.logger.Debug("agent operation completed", fields)
}
