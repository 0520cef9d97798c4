// schema.go embeds the catalog schema and executes it on Init.
//
// Schema files live in sql/ and run in file-name order, so a numeric prefix
// (001_, 002_) fixes the sequence. Every statement uses IF NOT EXISTS, which
// makes Init safe to run against an existing catalog.

package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed sql/*.sql
var schemas embed.FS

// ErrEmptySchema is returned when an embedded schema directory holds no
// .sql files, which would leave the catalog without its master table.
var ErrEmptySchema = errors.New("no schema files found")

// ExecEmbedded executes all .sql files from an embedded filesystem in
// file-name order.
func ExecEmbedded(db *sql.DB, fsys embed.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read schema directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	ran := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		path := dir + "/" + entry.Name()
		data, err := fsys.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if _, err := db.Exec(string(data)); err != nil {
			return fmt.Errorf("exec %s: %w", entry.Name(), err)
		}
		ran++
	}
	if ran == 0 {
		return fmt.Errorf("%s: %w", dir, ErrEmptySchema)
	}
	return nil
}

// execSchema executes the embedded core schema files.
func execSchema(db *sql.DB) error {
	return ExecEmbedded(db, schemas, "sql")
}
