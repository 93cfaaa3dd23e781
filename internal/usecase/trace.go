package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var serviceTracer = otel.Tracer("github.com/riskibarqy/fight-picks/internal/usecase")

// startUsecaseSpan only nests under an existing span. Scheduled rescoring runs
// without a request span and stays untraced.
func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if name == "" || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return serviceTracer.Start(ctx, name)
}
