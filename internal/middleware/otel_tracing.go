// Package middleware decorates comparators with OpenTelemetry instrumentation.
package middleware

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"bootcompare/domain/core"
	"bootcompare/domain/stats"
	"bootcompare/ports"
)

// OTelTracingMiddleware wraps a Comparator with OpenTelemetry spans.
type OTelTracingMiddleware struct {
	next        ports.Comparator
	tracer      trace.Tracer
	commonAttrs []attribute.KeyValue
}

// OTelTracingOption allows configuring the tracing middleware.
type OTelTracingOption func(*OTelTracingMiddleware)

// WithCommonAttributes sets attributes applied to all spans.
func WithCommonAttributes(attributes ...attribute.KeyValue) OTelTracingOption {
	return func(m *OTelTracingMiddleware) { m.commonAttrs = append(m.commonAttrs, attributes...) }
}

// NewOTelTracingMiddleware creates a tracing middleware.
func NewOTelTracingMiddleware(next ports.Comparator, tracer trace.Tracer, opts ...OTelTracingOption) ports.Comparator {
	mw := &OTelTracingMiddleware{next: next, tracer: tracer}
	for _, o := range opts {
		o(mw)
	}
	return mw
}

// Compare implements Comparator.Compare with tracing.
func (mw *OTelTracingMiddleware) Compare(ctx context.Context, dist1, dist2 stats.Sample, n stats.SimulationCount) (stats.TestResult, error) {
	ctx, span := mw.startSpan(ctx, "bootstrap.Compare", dist1, dist2, n)
	defer span.End()

	p, err := mw.next.Compare(ctx, dist1, dist2, n)
	mw.finish(span, err)
	if err == nil {
		span.SetAttributes(attribute.Float64("p_value", float64(p)))
	}
	return p, err
}

// Run implements Comparator.Run with tracing.
func (mw *OTelTracingMiddleware) Run(ctx context.Context, dist1, dist2 stats.Sample, n stats.SimulationCount) (*stats.Comparison, error) {
	ctx, span := mw.startSpan(ctx, "bootstrap.Run", dist1, dist2, n)
	defer span.End()

	cmp, err := mw.next.Run(ctx, dist1, dist2, n)
	mw.finish(span, err)
	if cmp != nil {
		span.SetAttributes(
			attribute.Int("wins.dist_1", cmp.Dist1.Successes),
			attribute.Int("wins.dist_2", cmp.Dist2.Successes),
			attribute.Int("ties", cmp.Ties),
			attribute.Bool("degenerate", cmp.Degenerate),
		)
	}
	return cmp, err
}

func (mw *OTelTracingMiddleware) startSpan(ctx context.Context, name string, dist1, dist2 stats.Sample, n stats.SimulationCount) (context.Context, trace.Span) {
	ctx, span := mw.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	if len(mw.commonAttrs) > 0 {
		span.SetAttributes(mw.commonAttrs...)
	}
	span.SetAttributes(
		attribute.Int("dist_1.len", len(dist1)),
		attribute.Int("dist_2.len", len(dist2)),
		attribute.Int("simulations", int(n)),
	)
	return ctx, span
}

// finish records err on span. A degenerate run is an outcome, not a failure.
func (mw *OTelTracingMiddleware) finish(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	if !core.IsDegenerateVarianceError(err) {
		span.SetStatus(codes.Error, err.Error())
	}
}
