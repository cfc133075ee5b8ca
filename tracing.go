package widening

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/hupe1980/widening"

// tracer emits one span per run and one child span per round.
type tracer struct {
	t trace.Tracer
}

func newTracer(tp trace.TracerProvider) tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tracer{t: tp.Tracer(tracerName)}
}

func (t tracer) startRun(ctx context.Context, mode string) (context.Context, trace.Span) {
	return t.t.Start(ctx, "widening.run",
		trace.WithAttributes(attribute.String("widening.mode", mode)),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (t tracer) endRun(span trace.Span, rounds int, found bool, err error) {
	span.SetAttributes(
		attribute.Int("widening.rounds", rounds),
		attribute.Bool("widening.found", found),
	)
	endSpan(span, err)
}

func (t tracer) startRound(ctx context.Context, round, generation int) (context.Context, trace.Span) {
	return t.t.Start(ctx, "widening.round",
		trace.WithAttributes(
			attribute.Int("widening.round", round),
			attribute.Int("widening.generation", generation),
		),
	)
}

// endRound closes a round span. complete marks rounds cut short by a
// complete model.
func (t tracer) endRound(span trace.Span, candidates, next int, complete bool, err error) {
	span.SetAttributes(
		attribute.Int("widening.candidates", candidates),
		attribute.Int("widening.next", next),
		attribute.Bool("widening.complete", complete),
	)
	endSpan(span, err)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
