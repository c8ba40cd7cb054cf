package router

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	tracer = otel.Tracer("starlane.router")
	meter  = otel.Meter("starlane.router")
)

// Metrics for batch routing.
var (
	routesFound    metric.Int64Counter
	routesDropped  metric.Int64Counter
	edgesLightened metric.Int64Counter
	nodesRelabeled metric.Int64Counter
	batchDuration  metric.Float64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics creates the instruments once.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		routesFound, err = meter.Int64Counter(
			"starlane_routes_found_total",
			metric.WithDescription("Routes found and applied"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		routesDropped, err = meter.Int64Counter(
			"starlane_routes_dropped_total",
			metric.WithDescription("Queries dropped because no route exists"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		edgesLightened, err = meter.Int64Counter(
			"starlane_edges_lightened_total",
			metric.WithDescription("Jump weights lowered by route reinforcement"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		nodesRelabeled, err = meter.Int64Counter(
			"starlane_nodes_relabeled_total",
			metric.WithDescription("Forest labels rewritten by selective repair"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		batchDuration, err = meter.Float64Histogram(
			"starlane_batch_duration_seconds",
			metric.WithDescription("Duration of RouteAll batches"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// recordApply records one applied route.
func recordApply(ctx context.Context, lightened, relabeled int) {
	if err := initMetrics(); err != nil {
		return
	}
	routesFound.Add(ctx, 1)
	edgesLightened.Add(ctx, int64(lightened))
	nodesRelabeled.Add(ctx, int64(relabeled))
}

// recordDrop records one dropped query.
func recordDrop(ctx context.Context, phase string) {
	if err := initMetrics(); err != nil {
		return
	}
	routesDropped.Add(ctx, 1, metric.WithAttributes(attribute.String("phase", phase)))
}

// recordBatch records a finished batch.
func recordBatch(ctx context.Context, d time.Duration, success bool) {
	if err := initMetrics(); err != nil {
		return
	}
	batchDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.Bool("success", success)))
}
