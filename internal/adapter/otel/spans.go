package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "qaforge"

// StartExecutionSpan starts a span for a shell command execution.
func StartExecutionSpan(ctx context.Context, commandText string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "execution",
		trace.WithAttributes(
			attribute.Int("execution.command_length", len(commandText)),
		),
	)
}
