package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"loan-assistant/internal/common/logger"
)

func TestObservability_ZeroValueIsSafe(t *testing.T) {
	var o *Observability
	ctx, span := o.StartOperation(context.Background(), "fetch-offers", "s-1")
	assert.NotNil(t, ctx)
	span.End()
	o.RecordOperation(ctx, "fetch-offers", "complete", time.Second)
	o.Shutdown()

	empty := &Observability{}
	empty.RecordOperation(context.Background(), "fetch-offers", "error", time.Second)
	empty.Shutdown()
}

func TestObservability_RecordsWithExporter(t *testing.T) {
	o := New(Options{ServiceName: "loan-assistant-test"}, logger.NewTestLogger(t))
	defer o.Shutdown()

	ctx, span := o.StartOperation(context.Background(), "generate-sanction", "s-2")
	o.RecordOperation(ctx, "generate-sanction", "complete", 2*time.Second)
	span.End()

	assert.NotNil(t, o.meterProvider)
	assert.NotNil(t, o.operationCounter)
	assert.NotNil(t, o.operationDuration)
}
