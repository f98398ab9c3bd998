// Package db provides the embedded quoting schema and a description of its tables.
package db

import _ "embed"

// Schema contains the DDL for all quoting tables, their foreign key indexes and the
// updated_at triggers. Every statement can be re-run against an existing schema.
//
//go:embed migrations/001_schema.sql
var Schema string
