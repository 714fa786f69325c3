// Package migrations embeds the PostgreSQL schema migrations.
package migrations

import "embed"

// FS holds the golang-migrate *.up.sql and *.down.sql files.
//
//go:embed *.sql
var FS embed.FS
