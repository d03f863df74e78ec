package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "qaforge"

// Metrics holds all QAForge metric instruments.
type Metrics struct {
	ExecutionsStarted   metric.Int64Counter
	ExecutionsCompleted metric.Int64Counter
	ExecutionsFailed    metric.Int64Counter
	ExecutionDuration   metric.Float64Histogram
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.ExecutionsStarted, err = meter.Int64Counter("qaforge.executions.started",
		metric.WithDescription("Number of command executions started"))
	if err != nil {
		return nil, err
	}

	m.ExecutionsCompleted, err = meter.Int64Counter("qaforge.executions.completed",
		metric.WithDescription("Number of command executions completed"))
	if err != nil {
		return nil, err
	}

	m.ExecutionsFailed, err = meter.Int64Counter("qaforge.executions.failed",
		metric.WithDescription("Number of command executions that failed or timed out"))
	if err != nil {
		return nil, err
	}

	m.ExecutionDuration, err = meter.Float64Histogram("qaforge.execution.duration_seconds",
		metric.WithDescription("Command execution duration in seconds"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
