// Package migrations embeds the SQL schema migrations for the database
// backed stores. Files are named NNN_name.sql and applied in order by the
// migration runner.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
