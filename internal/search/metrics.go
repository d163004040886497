package search

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/phobologic/treepath/internal/model"
)

var (
	tracer = otel.Tracer("treepath.search")
	meter  = otel.Meter("treepath.search")
)

var (
	matchesTotal metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

func initMetrics() error {
	metricsOnce.Do(func() {
		matchesTotal, metricsErr = meter.Int64Counter(
			"treepath_matches_total",
			metric.WithDescription("Total number of nodes matched by searches"),
		)
	})
	return metricsErr
}

func recordMatches(ctx context.Context, mode model.Mode, n int) {
	if err := initMetrics(); err != nil {
		return
	}
	matchesTotal.Add(ctx, int64(n), metric.WithAttributes(attribute.String("mode", string(mode))))
}

func startSearchSpan(ctx context.Context, root, expr string, mode model.Mode, files int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Search.Dir",
		trace.WithAttributes(
			attribute.String("search.root", root),
			attribute.String("search.expr", expr),
			attribute.String("search.mode", string(mode)),
			attribute.Int("search.files", files),
		),
	)
}
