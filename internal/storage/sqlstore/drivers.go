package sqlstore

import (
	// Registers the "sqlite3" driver. Without cgo the driver still
	// registers but fails on first use.
	_ "github.com/mattn/go-sqlite3"
	// Registers the "sqlite" driver.
	_ "modernc.org/sqlite"
)
