// Command setup-db applies the quoting schema to a PostgreSQL database and
// lists the resulting tables.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xenking/rfq-backend/db"
	"github.com/xenking/rfq-backend/internal/provision"
)

func main() {
	// A missing .env is fine: the environment may already be set.
	_ = godotenv.Load()

	lg := newLogger()
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)

	code := run(ctx, lg, os.Args[1:], os.Stdout, provision.DialPostgres)

	cancel()
	_ = lg.Sync()
	os.Exit(code)
}

// run executes the command and returns its exit code.
func run(ctx context.Context, lg *zap.Logger, args []string, stdout io.Writer, dial provision.Dialer) int {
	cfg, err := provision.LoadConfig(args)
	if err != nil {
		lg.Error("Invalid configuration", zap.Error(err))
		return 1
	}

	if cfg.PrintSchema {
		if _, err := fmt.Fprint(stdout, db.Schema); err != nil {
			lg.Error("Print schema", zap.Error(err))
			return 1
		}
		return 0
	}

	report, err := provision.New(lg, dial).Run(ctx, *cfg)
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		var execErr *provision.ExecError
		if errors.As(err, &execErr) && execErr.Code != "" {
			fields = append(fields, zap.String("code", execErr.Code))
		}
		lg.Error("Database setup failed", fields...)
		return 1
	}

	if err := report.Print(stdout); err != nil {
		lg.Error("Print report", zap.Error(err))
		return 1
	}
	lg.Info("Database setup complete", zap.Int("tables", len(report.Tables)))

	return 0
}

func newLogger() *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		zap.InfoLevel,
	)
	return zap.New(core)
}
