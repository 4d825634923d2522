package middleware

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"bootcompare/domain/core"
	"bootcompare/domain/stats"
	"bootcompare/internal/errors"
	"bootcompare/ports"
)

// OTelMetrics holds the comparator instruments, created once per meter.
type OTelMetrics struct {
	calls       metric.Int64Counter
	simulations metric.Int64Counter
	durations   metric.Float64Histogram
}

// NewOTelMetrics creates the comparator instruments on meter.
func NewOTelMetrics(meter metric.Meter) (*OTelMetrics, error) {
	calls, err := meter.Int64Counter("bootstrap.calls")
	if err != nil {
		return nil, fmt.Errorf("create counter: %w", err)
	}

	simulations, err := meter.Int64Counter("bootstrap.simulations")
	if err != nil {
		return nil, fmt.Errorf("create counter: %w", err)
	}

	durations, err := meter.Float64Histogram("bootstrap.duration.ms")
	if err != nil {
		return nil, fmt.Errorf("create histogram: %w", err)
	}

	return &OTelMetrics{calls: calls, simulations: simulations, durations: durations}, nil
}

// Wrap decorates next with these instruments.
func (m *OTelMetrics) Wrap(next ports.Comparator) ports.Comparator {
	return &OTelMetricsMiddleware{next: next, metrics: m}
}

// OTelMetricsMiddleware emits OpenTelemetry metrics for comparator calls.
type OTelMetricsMiddleware struct {
	next    ports.Comparator
	metrics *OTelMetrics
}

// NewOTelMetricsMiddleware constructs a metrics middleware using the provided meter.
func NewOTelMetricsMiddleware(next ports.Comparator, meter metric.Meter) (ports.Comparator, error) {
	m, err := NewOTelMetrics(meter)
	if err != nil {
		return nil, err
	}
	return m.Wrap(next), nil
}

// Compare implements Comparator.Compare with metrics.
func (mw *OTelMetricsMiddleware) Compare(ctx context.Context, dist1, dist2 stats.Sample, n stats.SimulationCount) (stats.TestResult, error) {
	start := time.Now()
	p, err := mw.next.Compare(ctx, dist1, dist2, n)
	mw.rec(ctx, "Compare", start, n, err)
	return p, err
}

// Run implements Comparator.Run with metrics.
func (mw *OTelMetricsMiddleware) Run(ctx context.Context, dist1, dist2 stats.Sample, n stats.SimulationCount) (*stats.Comparison, error) {
	start := time.Now()
	cmp, err := mw.next.Run(ctx, dist1, dist2, n)
	mw.rec(ctx, "Run", start, n, err)
	return cmp, err
}

func (mw *OTelMetricsMiddleware) rec(ctx context.Context, method string, start time.Time, n stats.SimulationCount, err error) {
	outcome := "ok"
	if err != nil {
		outcome = errors.GetCode(err)
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("outcome", outcome),
	)

	mw.metrics.calls.Add(ctx, 1, attrs)
	// only runs that actually resampled
	if err == nil || core.IsDegenerateVarianceError(err) {
		mw.metrics.simulations.Add(ctx, int64(n), attrs)
	}
	mw.metrics.durations.Record(ctx, float64(time.Since(start).Microseconds())/1000.0, attrs)
}
