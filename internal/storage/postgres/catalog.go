package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
)

const (
	listTablesSQL = `SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
		ORDER BY table_name`

	listIndexesSQL = `SELECT indexname
		FROM pg_indexes
		WHERE schemaname = 'public'
		ORDER BY indexname`

	listTriggersSQL = `SELECT DISTINCT trigger_name, event_object_table
		FROM information_schema.triggers
		WHERE trigger_schema = 'public'
		ORDER BY trigger_name`
)

// Trigger is a row-level trigger found in the public schema.
type Trigger struct {
	Name  string
	Table string
}

// ListTables returns the base tables of the public schema in alphabetical order.
func ListTables(ctx context.Context, q Querier) ([]string, error) {
	rows, err := q.Query(ctx, listTablesSQL)
	if err != nil {
		return nil, errors.Wrap(err, "list tables")
	}
	tables, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, errors.Wrap(err, "scan tables")
	}
	return tables, nil
}

// ListIndexes returns the indexes of the public schema, primary keys included.
func ListIndexes(ctx context.Context, q Querier) ([]string, error) {
	rows, err := q.Query(ctx, listIndexesSQL)
	if err != nil {
		return nil, errors.Wrap(err, "list indexes")
	}
	indexes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, errors.Wrap(err, "scan indexes")
	}
	return indexes, nil
}

// ListTriggers returns the triggers of the public schema. A trigger firing on
// several events is reported once.
func ListTriggers(ctx context.Context, q Querier) ([]Trigger, error) {
	rows, err := q.Query(ctx, listTriggersSQL)
	if err != nil {
		return nil, errors.Wrap(err, "list triggers")
	}
	triggers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Trigger, error) {
		var t Trigger
		err := row.Scan(&t.Name, &t.Table)
		return t, err
	})
	if err != nil {
		return nil, errors.Wrap(err, "scan triggers")
	}
	return triggers, nil
}
