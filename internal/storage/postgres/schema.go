package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// SchemaStore applies and inspects the schema over a single connection.
type SchemaStore struct {
	conn *pgx.Conn
}

// OpenSchemaStore connects to databaseURL.
func OpenSchemaStore(ctx context.Context, databaseURL string) (*SchemaStore, error) {
	conn, err := Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return &SchemaStore{conn: conn}, nil
}

// Apply runs the embedded DDL batch.
func (s *SchemaStore) Apply(ctx context.Context) error {
	return ApplySchema(ctx, s.conn)
}

// Tables returns the public base tables in alphabetical order.
func (s *SchemaStore) Tables(ctx context.Context) ([]string, error) {
	return ListTables(ctx, s.conn)
}

// Indexes returns the public indexes.
func (s *SchemaStore) Indexes(ctx context.Context) ([]string, error) {
	return ListIndexes(ctx, s.conn)
}

// Triggers returns the public triggers.
func (s *SchemaStore) Triggers(ctx context.Context) ([]Trigger, error) {
	return ListTriggers(ctx, s.conn)
}

// Close closes the underlying connection.
func (s *SchemaStore) Close(ctx context.Context) error {
	return s.conn.Close(ctx)
}
