// Package sqliteexternal provides the optional CGO SQLite driver.
//
// To use the CGO driver (github.com/mattn/go-sqlite3):
//
//	import _ "github.com/FocuswithJustin/BibleArchive/contrib/sqlite-external"
//
// Build with:
//
//	CGO_ENABLED=1 go build -tags cgo_sqlite
//
// By default bartool stores corpora through the pure Go modernc.org/sqlite
// driver. See github.com/FocuswithJustin/BibleArchive/core/sqlite.
package sqliteexternal
