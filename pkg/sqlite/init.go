package sqlite

import (
	"database/sql"

	"github.com/mattn/go-sqlite3"
)

// DriverName is registered with PRAGMAs suited to a write-once index file:
// rollback journal (no -wal side files to carry along on rename) and full fsync.
const DriverName = "sqlite3_index"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			_, err := conn.Exec(`
				PRAGMA journal_mode = DELETE;
				PRAGMA synchronous = FULL;
				PRAGMA foreign_keys = ON;
			`, nil)
			return err
		},
	})
}
