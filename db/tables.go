package db

import "slices"

// Table describes a table of the quoting schema and the tables that own its rows.
// Deleting an owner row cascades to the rows referencing it.
type Table struct {
	Name    string
	Parents []string
}

// Tables lists the schema tables from the root of the ownership hierarchy down.
var Tables = []Table{
	{Name: "clients"},
	{Name: "projects", Parents: []string{"clients"}},
	{Name: "rfqs", Parents: []string{"projects"}},
	{Name: "rfq_items", Parents: []string{"rfqs"}},
	{Name: "pricing_runs", Parents: []string{"rfqs"}},
	{Name: "pricing_run_items", Parents: []string{"pricing_runs", "rfq_items"}},
	{Name: "agreement_drafts", Parents: []string{"pricing_runs"}},
}

// TableNames returns the names of Tables in alphabetical order, matching the order the
// catalog reports them in.
func TableNames() []string {
	names := make([]string, 0, len(Tables))
	for _, t := range Tables {
		names = append(names, t.Name)
	}
	slices.Sort(names)
	return names
}

// TriggerName returns the name of the trigger that maintains updated_at on table.
func TriggerName(table string) string {
	return "update_" + table + "_updated_at"
}
