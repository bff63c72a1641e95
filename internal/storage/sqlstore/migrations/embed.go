// Package migrations contains embedded SQL migrations for the SQL store,
// one directory per dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
