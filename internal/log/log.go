// Package log provides the audit log of fusen operations.
// Entries are stored in ~/.local/share/fusen/log.sqlite and record every
// CLI command and MCP tool invocation, across all catalogs on the machine.
//
// # Fluent API
//
//	log.Event("catalog:tag", "tag").
//		Path(p).
//		Count(len(paths)).
//		Detail("tags", tags).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools. Examples: "catalog:add",
// "search:query", "mcp:fusen_query".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g. "catalog:add", "mcp:fusen_query"
	Action string // verb: add, tag, untag, query, scan, import ...
	Path   string // input: the (first) path the operation targeted
	Count  int    // number of paths affected or returned

	ResolvedPath string // output: normalised form of Path when it differs

	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool
	Error   string
	Detail  map[string]any
}

// Builder constructs a log entry using a fluent API.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Path sets the path this operation targets. For batch operations pass the
// first path and record the batch size with Count.
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Count records how many paths were affected or returned.
func (b *Builder) Count(n int) *Builder {
	b.entry.Count = n
	return b
}

// Resolved records the normalised path when it differs from the input.
func (b *Builder) Resolved(path string) *Builder {
	if path != b.entry.Path {
		b.entry.ResolvedPath = path
	}
	return b
}

// Detail adds a key-value pair to the entry's detail map.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write records the entry, deriving success from err.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger at the default location. Safe to call
// multiple times. Callers may ignore the error; logging is best-effort.
func Open() error {
	return OpenAt(dbPath())
}

// OpenAt initialises the global logger with its database at p. The CLI uses
// this to keep the log next to the catalog when --dir or FUSEN_DIR moves the
// data directory. Once open, later calls are no-ops.
func OpenAt(p string) error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject tags subsequent entries with the catalog they ran against.
// The dir should be the absolute data directory.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. A no-op when the logger is not open.
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
