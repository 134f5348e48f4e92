package migrations

import "embed"

// FS contains embedded SQLite migrations for the part/color catalog.
//
//go:embed *.sql
var FS embed.FS
