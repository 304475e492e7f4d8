package migrations

import "embed"

// FS contains embedded goose migrations for the roster store.
//
//go:embed *.sql
var FS embed.FS
