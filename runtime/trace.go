package runtime

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// startSpan opens a span named name if tracer is configured. The
// returned end function records err (if any) and closes the span; both
// are safe to call when tracer is nil.
func startSpan(ctx context.Context, tracer trace.Tracer, name string) (context.Context, func(err error)) {
	if tracer == nil {
		return ctx, func(error) {}
	}
	spanCtx, span := tracer.Start(ctx, name)
	return spanCtx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}
