package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/rfq-backend/internal/storage/postgres"
	"github.com/xenking/rfq-backend/pkg/health"
)

// Run starts the HTTP server and blocks until ctx is cancelled and the server
// has drained. It is the single wiring point for the API server.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	healthSvc := health.New()
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(cfg.Health.MaxGoroutines))
	healthSvc.AddLivenessCheck("gc_pause", time.Second, health.GCMaxPauseCheck(cfg.Health.MaxGCPause))

	// The server does not use the database; the pool only backs the readiness probe.
	if cfg.DatabaseURL != "" {
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return errors.Wrap(err, "create db pool")
		}
		defer pool.Close()

		healthSvc.AddReadinessCheck("postgres", 5*time.Second, pool.Ping)
	}

	reg, err := healthSvc.RegisterMetrics(m.MeterProvider().Meter(serviceName))
	if err != nil {
		return errors.Wrap(err, "register health metrics")
	}
	defer func() { _ = reg.Unregister() }()

	healthSvc.Start(ctx, cfg.Health.Interval)
	defer healthSvc.Stop()

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler:           NewHandler(lg, m.TracerProvider(), m.MeterProvider(), healthSvc),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("Server listening", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server")
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		return shutdown(lg, server, healthSvc, cfg.Graceful)
	})

	healthSvc.SetReady(true)
	return g.Wait()
}

// shutdown marks the service not ready, waits for load balancers to notice,
// then drains in-flight requests.
func shutdown(lg *zap.Logger, server *http.Server, h *health.Health, cfg GracefulConfig) error {
	h.SetReady(false)
	lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.ReadinessDelay))
	time.Sleep(cfg.ReadinessDelay)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	lg.Info("Shutting down server", zap.Duration("timeout", cfg.ShutdownTimeout))
	if err := server.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}
