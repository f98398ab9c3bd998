// Command api-server serves the RFQ backend health endpoints.
package main

import (
	"context"
	"os"

	"github.com/go-faster/sdk/app"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	appkg "github.com/xenking/rfq-backend/internal/app"
)

func main() {
	// A missing .env is fine: the environment may already be set.
	_ = godotenv.Load()

	app.Run(func(ctx context.Context, lg *zap.Logger, m *app.Telemetry) error {
		cfg, err := appkg.LoadConfig(os.Args[1:])
		if err != nil {
			return err
		}
		return appkg.Run(ctx, lg, m, cfg)
	})
}
