package db

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createTableRe = regexp.MustCompile(`(?m)^CREATE TABLE IF NOT EXISTS (\w+) \(`)

func TestSchemaDeclaresEveryTable(t *testing.T) {
	matches := createTableRe.FindAllStringSubmatch(Schema, -1)
	require.Len(t, matches, len(Tables))

	declared := make([]string, 0, len(matches))
	for _, m := range matches {
		declared = append(declared, m[1])
	}
	for _, table := range Tables {
		assert.Contains(t, declared, table.Name)
	}
}

func TestSchemaParentsCascade(t *testing.T) {
	for _, table := range Tables {
		for _, parent := range table.Parents {
			ref := "REFERENCES " + parent + "(id) ON DELETE CASCADE"
			assert.Contains(t, Schema, ref, "table %s should cascade from %s", table.Name, parent)
		}
	}
}

func TestSchemaTriggers(t *testing.T) {
	for _, table := range Tables {
		name := TriggerName(table.Name)
		assert.Contains(t, Schema, "DROP TRIGGER IF EXISTS "+name+" ON "+table.Name+";")
		assert.Contains(t, Schema, "CREATE TRIGGER "+name+" BEFORE UPDATE ON "+table.Name)
	}
}

func TestSchemaIsRerunnable(t *testing.T) {
	assert.Equal(t, strings.Count(Schema, "CREATE TABLE "), strings.Count(Schema, "CREATE TABLE IF NOT EXISTS "))
	assert.Equal(t, strings.Count(Schema, "CREATE INDEX "), strings.Count(Schema, "CREATE INDEX IF NOT EXISTS "))
	assert.Contains(t, Schema, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`)
	assert.Contains(t, Schema, "CREATE OR REPLACE FUNCTION update_updated_at_column()")
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, []string{
		"agreement_drafts",
		"clients",
		"pricing_run_items",
		"pricing_runs",
		"projects",
		"rfq_items",
		"rfqs",
	}, TableNames())
}
