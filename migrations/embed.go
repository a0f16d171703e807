// Package migrations embeds the goose SQL migrations so the server
// binary can migrate the database on startup without external files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
