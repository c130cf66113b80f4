// Package migrations embeds the versioned SQL run by golang-migrate. The
// bookings table is not listed here; its schema manager owns it.
package migrations

import "embed"

//go:embed sqlite/*.sql
var SQLite embed.FS

const SQLiteDir = "sqlite"
