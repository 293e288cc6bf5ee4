// Package migrations embeds the goose migrations of the metadata store.
package migrations

import "embed"

// Migrations holds one directory of migrations per SQL dialect.
//
//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

const (
	SQLiteDir   = "sqlite"
	PostgresDir = "postgres"
)
