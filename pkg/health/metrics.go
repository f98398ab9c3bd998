package health

import (
	"context"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/metric"
)

// RegisterMetrics exports the probe state as the observable gauges health.live
// and health.ready (1 healthy, 0 not). Unregister the returned registration to
// stop reporting.
func (h *Health) RegisterMetrics(meter metric.Meter) (metric.Registration, error) {
	live, err := meter.Int64ObservableGauge("health.live",
		metric.WithDescription("1 when all liveness checks pass"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create health.live gauge")
	}
	ready, err := meter.Int64ObservableGauge("health.ready",
		metric.WithDescription("1 when the service is ready for traffic"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create health.ready gauge")
	}

	reg, err := meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		o.ObserveInt64(live, boolToInt(h.IsLive()))
		o.ObserveInt64(ready, boolToInt(h.IsReady()))
		return nil
	}, live, ready)
	if err != nil {
		return nil, errors.Wrap(err, "register health callback")
	}
	return reg, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
