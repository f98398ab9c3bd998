package provision

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrMissingDatabaseURL is returned when no connection string is configured.
var ErrMissingDatabaseURL = errors.New("database URL is required: set DATABASE_URL, RFQ_DATABASE_URL or --database-url")

// ExecError reports a failure to connect to the database or to run a statement.
type ExecError struct {
	// Op is the step that failed, e.g. "connect" or "apply schema".
	Op string
	// Code is the SQLSTATE reported by the server, empty when the failure
	// did not come from the server.
	Code string
	Err  error
}

func (e *ExecError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %v (code %s)", e.Op, e.Err, e.Code)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

func newExecError(op string, err error) *ExecError {
	e := &ExecError{Op: op, Err: err}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		e.Code = pgErr.Code
	}
	return e
}
