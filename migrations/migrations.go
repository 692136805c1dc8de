// Package migrations bundles the SQL schema migrations of the catalog service.
package migrations

import "embed"

// FS holds the numbered up/down migration files.
//
//go:embed *.sql
var FS embed.FS
