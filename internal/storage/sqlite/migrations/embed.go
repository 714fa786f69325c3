// Package migrations embeds the SQLite schema for the campaign store.
package migrations

import "embed"

// FS contains the ordered *.sql migration files.
//
//go:embed *.sql
var FS embed.FS
