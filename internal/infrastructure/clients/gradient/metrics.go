package gradient

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type gradientMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
}

var gradientMetricsInit = false
var metrics gradientMetrics

func ensureGradientMetrics() {
	if gradientMetricsInit {
		return
	}
	meter := otel.Meter("github.com/virtuali-gob/backend/gradient")

	requestCount, err := meter.Int64Counter(
		"kb.gradient.request.count",
		metric.WithDescription("Number of Gradient requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"kb.gradient.request.duration",
		metric.WithDescription("Gradient request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"kb.gradient.request.errors",
		metric.WithDescription("Number of Gradient request errors"),
	)
	if err != nil {
		return
	}

	metrics = gradientMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
	}
	gradientMetricsInit = true
}

func recordGradientMetric(ctx context.Context, operation string, statusCode int, duration time.Duration, err error) {
	ensureGradientMetrics()
	if !gradientMetricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("kb.provider", "gradient"),
		attribute.String("kb.operation", operation),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	metrics.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		metrics.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
