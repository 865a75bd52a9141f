package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"loan-assistant/internal/common/logger"
)

// Observability bundles the OTel meter and tracer used around agent operations.
// The zero value is usable and records nothing.
type Observability struct {
	meterProvider *metric.MeterProvider
	tracer        trace.Tracer
	shutdownTrace func(context.Context) error

	operationCounter  otelmetric.Int64Counter
	operationDuration otelmetric.Float64Histogram
}

// Options controls which exporters are installed.
type Options struct {
	ServiceName string
	TraceStdout bool
}

func New(opts Options, log logger.Logger) *Observability {
	o := &Observability{tracer: noop.NewTracerProvider().Tracer(opts.ServiceName)}

	exporter, err := prometheus.New()
	if err != nil {
		log.Warn("prometheus exporter unavailable", map[string]interface{}{"error": err.Error()})
	} else {
		o.meterProvider = metric.NewMeterProvider(metric.WithReader(exporter))
		otel.SetMeterProvider(o.meterProvider)
		meter := o.meterProvider.Meter(opts.ServiceName)

		o.operationCounter, _ = meter.Int64Counter(
			"agent.operations",
			otelmetric.WithDescription("Number of simulated agent operations"),
		)
		o.operationDuration, _ = meter.Float64Histogram(
			"agent.operation.duration",
			otelmetric.WithDescription("Simulated agent operation duration"),
			otelmetric.WithUnit("ms"),
		)
	}

	if opts.TraceStdout {
		tracer, shutdown, err := initStdoutTracer(opts.ServiceName)
		if err != nil {
			log.Warn("stdout tracer unavailable", map[string]interface{}{"error": err.Error()})
		} else {
			o.tracer = tracer
			o.shutdownTrace = shutdown
		}
	}

	return o
}

// StartOperation opens a span for one agent operation.
func (o *Observability) StartOperation(ctx context.Context, taskType, sessionID string) (context.Context, trace.Span) {
	if o == nil || o.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return o.tracer.Start(ctx, taskType, trace.WithAttributes(
		attribute.String("task_type", taskType),
		attribute.String("session_id", sessionID),
	))
}

func (o *Observability) RecordOperation(ctx context.Context, taskType, outcome string, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("task_type", taskType),
		attribute.String("outcome", outcome),
	)
	if o.operationCounter != nil {
		o.operationCounter.Add(ctx, 1, attrs)
	}
	if o.operationDuration != nil {
		o.operationDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

func (o *Observability) Shutdown() {
	if o == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
	if o.shutdownTrace != nil {
		_ = o.shutdownTrace(ctx)
	}
}
