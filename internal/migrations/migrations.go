// Package migrations embeds the SQL migrations applied to the local store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
