//go:build !cgo_sqlite

package versestore

import (
	_ "modernc.org/sqlite"
)

const (
	driverName = "sqlite"
	driverType = "purego"
)
