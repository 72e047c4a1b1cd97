// Package migrations embeds the SQL schema migrations applied at startup and
// by the repository test helper.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
