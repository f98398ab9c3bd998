// Package provision applies the quoting schema to a database and reports the
// resulting catalog. It is the engine behind cmd/setup-db.
package provision

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/xenking/rfq-backend/db"
	"github.com/xenking/rfq-backend/internal/storage/postgres"
)

const closeTimeout = 5 * time.Second

// Store is a database session able to apply the schema and read the catalog back.
type Store interface {
	Apply(ctx context.Context) error
	Tables(ctx context.Context) ([]string, error)
	Indexes(ctx context.Context) ([]string, error)
	Triggers(ctx context.Context) ([]postgres.Trigger, error)
	Close(ctx context.Context) error
}

// Dialer opens a Store for a connection string.
type Dialer func(ctx context.Context, databaseURL string) (Store, error)

// DialPostgres opens a single PostgreSQL connection.
func DialPostgres(ctx context.Context, databaseURL string) (Store, error) {
	s, err := postgres.OpenSchemaStore(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Provisioner runs the schema setup.
type Provisioner struct {
	lg   *zap.Logger
	dial Dialer
}

// New returns a Provisioner that opens sessions with dial.
func New(lg *zap.Logger, dial Dialer) *Provisioner {
	return &Provisioner{lg: lg, dial: dial}
}

// Run applies the schema to the database named by cfg and returns the catalog
// found afterwards. The connection is closed before Run returns, whatever the
// outcome. An empty DatabaseURL fails with ErrMissingDatabaseURL before any
// connection attempt; database failures are returned as *ExecError.
func (p *Provisioner) Run(ctx context.Context, cfg Config) (*Report, error) {
	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}

	p.lg.Info("Connecting to database", zap.String("url", MaskURL(cfg.DatabaseURL)))

	store, err := p.dial(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, newExecError("connect", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
		defer cancel()

		if err := store.Close(closeCtx); err != nil {
			p.lg.Warn("Close connection", zap.Error(err))
			return
		}
		p.lg.Info("Connection closed")
	}()

	p.lg.Info("Connected, applying schema")
	if err := store.Apply(ctx); err != nil {
		return nil, newExecError("apply schema", err)
	}
	p.lg.Info("Tables, indexes and triggers created")

	report := &Report{}
	if report.Tables, err = store.Tables(ctx); err != nil {
		return nil, newExecError("list tables", err)
	}
	if report.Indexes, err = store.Indexes(ctx); err != nil {
		return nil, newExecError("list indexes", err)
	}
	if report.Triggers, err = store.Triggers(ctx); err != nil {
		return nil, newExecError("list triggers", err)
	}

	report.Missing = missingTables(report.Tables)
	if len(report.Missing) > 0 {
		p.lg.Warn("Expected tables not found", zap.Strings("tables", report.Missing))
	}

	return report, nil
}

func missingTables(present []string) []string {
	var missing []string
	for _, name := range db.TableNames() {
		if !slices.Contains(present, name) {
			missing = append(missing, name)
		}
	}
	return missing
}
