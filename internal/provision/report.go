package provision

import (
	"fmt"
	"io"

	"github.com/xenking/rfq-backend/internal/storage/postgres"
)

// Report is the catalog state observed after the schema was applied.
type Report struct {
	// Tables are the public base tables in alphabetical order.
	Tables   []string
	Indexes  []string
	Triggers []postgres.Trigger
	// Missing lists schema tables that were expected but not found.
	Missing []string
}

// Print writes the numbered table list followed by a summary line.
func (r *Report) Print(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Tables:"); err != nil {
		return err
	}
	for i, name := range r.Tables {
		if _, err := fmt.Fprintf(w, "  %d. %s\n", i+1, name); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total tables: %d (indexes: %d, triggers: %d)\n",
		len(r.Tables), len(r.Indexes), len(r.Triggers))
	return err
}
