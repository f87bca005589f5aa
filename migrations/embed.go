// Package migrations embeds the SQL schema migrations. Each supported
// driver has its own dialect directory; files apply in lexical order.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed sqlite/*.sql
var sqliteFS embed.FS

//go:embed postgres/*.sql
var postgresFS embed.FS

// For returns the migration filesystem for the given database driver
func For(driver string) (fs.FS, error) {
	switch driver {
	case "sqlite":
		return fs.Sub(sqliteFS, "sqlite")
	case "postgres":
		return fs.Sub(postgresFS, "postgres")
	default:
		return nil, fmt.Errorf("no migrations for driver: %s", driver)
	}
}
