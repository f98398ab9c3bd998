package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xenking/rfq-backend/pkg/health"
	"github.com/xenking/rfq-backend/pkg/httpmiddleware"
)

const serviceName = "rfq-api"

// NewRouter registers the health routes.
func NewRouter(h *health.Health) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", health.OK)
	r.Get("/livez", h.LiveEndpoint)
	r.Get("/readyz", h.ReadyEndpoint)
	return r
}

// NewHandler returns the router wrapped in the server middleware chain.
func NewHandler(lg *zap.Logger, tp trace.TracerProvider, mp metric.MeterProvider, h *health.Health) http.Handler {
	return httpmiddleware.Wrap(NewRouter(h),
		httpmiddleware.RequestID(),
		httpmiddleware.InjectLogger(lg),
		httpmiddleware.Recovery(),
		httpmiddleware.Instrument(serviceName, tp, mp),
		httpmiddleware.LogRequests(),
	)
}
