package middleware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"bootcompare/adapters/stats/bootstrap"
	"bootcompare/domain/core"
	"bootcompare/domain/stats"
)

func newTracer() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	sr := tracetest.NewSpanRecorder()
	return sr, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
}

func attrMap(kvs []attribute.KeyValue) map[string]attribute.Value {
	out := make(map[string]attribute.Value, len(kvs))
	for _, kv := range kvs {
		out[string(kv.Key)] = kv.Value
	}
	return out
}

func TestTracingMiddleware_Run(t *testing.T) {
	sr, tp := newTracer()
	comparator := NewOTelTracingMiddleware(
		bootstrap.NewBootstrapComparator(bootstrap.WithSeed(1)),
		tp.Tracer("test"),
		WithCommonAttributes(attribute.String("component", "bootstrap")),
	)

	cmp, err := comparator.Run(context.Background(), stats.Sample{3, 4, 5, 6}, stats.Sample{1, 2, 3, 4}, 2000)
	require.NoError(t, err)
	require.NotNil(t, cmp)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "bootstrap.Run", spans[0].Name())

	attrs := attrMap(spans[0].Attributes())
	assert.Equal(t, "bootstrap", attrs["component"].AsString())
	assert.Equal(t, int64(2000), attrs["simulations"].AsInt64())
	assert.Equal(t, int64(cmp.Dist1.Successes), attrs["wins.dist_1"].AsInt64())
	assert.Equal(t, int64(cmp.Ties), attrs["ties"].AsInt64())
	assert.False(t, attrs["degenerate"].AsBool())
}

func TestTracingMiddleware_ErrorStatus(t *testing.T) {
	sr, tp := newTracer()
	comparator := NewOTelTracingMiddleware(bootstrap.NewBootstrapComparator(bootstrap.WithSeed(1)), tp.Tracer("test"))
	ctx := context.Background()

	_, err := comparator.Compare(ctx, stats.Sample{}, stats.Sample{1}, 10)
	require.ErrorIs(t, err, core.ErrInvalidInput)

	p, err := comparator.Compare(ctx, stats.Sample{100}, stats.Sample{1}, 10)
	require.ErrorIs(t, err, core.ErrDegenerateVariance)
	assert.Equal(t, stats.TestResult(0), p)

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.NotEmpty(t, spans[0].Events(), "error should be recorded as an event")
	assert.NotEqual(t, codes.Error, spans[1].Status().Code, "degenerate runs are not span errors")
	assert.NotEmpty(t, spans[1].Events())
}

func TestMetricsMiddleware(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	comparator, err := NewOTelMetricsMiddleware(bootstrap.NewBootstrapComparator(bootstrap.WithSeed(2)), mp.Meter("test"))
	require.NoError(t, err)

	dist1, dist2 := stats.Sample{3, 4, 5, 6, 7, 8}, stats.Sample{1, 2, 3, 4, 5, 6}
	_, err = comparator.Compare(ctx, dist1, dist2, 500)
	require.NoError(t, err)
	_, err = comparator.Run(ctx, dist1, dist2, 700)
	require.NoError(t, err)

	// a unanimous run still resampled, so its draws are counted
	_, err = comparator.Compare(ctx, stats.Sample{3, 4, 5}, stats.Sample{1, 2, 3}, 300)
	require.ErrorIs(t, err, core.ErrDegenerateVariance)

	_, err = comparator.Compare(ctx, stats.Sample{}, stats.Sample{1}, 100)
	require.ErrorIs(t, err, core.ErrInvalidInput)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	sums := map[string]int64{}
	outcomes := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			data, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range data.DataPoints {
				sums[m.Name] += dp.Value
				if m.Name == "bootstrap.calls" {
					outcome, _ := dp.Attributes.Value("outcome")
					outcomes[outcome.AsString()] += dp.Value
				}
			}
		}
	}

	assert.Equal(t, int64(4), sums["bootstrap.calls"])
	assert.Equal(t, int64(1500), sums["bootstrap.simulations"])
	assert.Equal(t, int64(2), outcomes["ok"])
	assert.Equal(t, int64(1), outcomes["DEGENERATE_VARIANCE"])
	assert.Equal(t, int64(1), outcomes["INVALID_INPUT"])
}
