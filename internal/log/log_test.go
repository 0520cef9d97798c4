package log

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempDB points the logger at a temp database for the test's duration.
func useTempDB(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	orig := dbPathFunc
	dbPathFunc = func() string {
		return filepath.Join(tmpDir, "log", "test.sqlite")
	}
	t.Cleanup(func() {
		Close()
		dbPathFunc = orig
	})
}

func lastRow(t *testing.T, query string, dest ...any) {
	t.Helper()
	db, err := sql.Open("sqlite", DBPath())
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.QueryRow(query).Scan(dest...))
}

func TestLogger(t *testing.T) {
	useTempDB(t)

	t.Run("open creates database", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()
		assert.FileExists(t, DBPath())
	})

	t.Run("log entry", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()
		SetProject("/home/u/.local/share/fusen")

		Log(Entry{
			Source:  "catalog:add",
			Action:  "add",
			Path:    "/media/a.mkv",
			Count:   3,
			Success: true,
		})

		var source, action, path, project string
		var count, success int
		lastRow(t, "SELECT source, action, path, count, success, project FROM log ORDER BY id DESC LIMIT 1",
			&source, &action, &path, &count, &success, &project)
		assert.Equal(t, "catalog:add", source)
		assert.Equal(t, "add", action)
		assert.Equal(t, "/media/a.mkv", path)
		assert.Equal(t, 3, count)
		assert.Equal(t, 1, success)
		assert.Equal(t, hash("/home/u/.local/share/fusen"), project)
	})

	t.Run("log without logger is noop", func(t *testing.T) {
		Close()
		Log(Entry{Source: "test:cmd", Action: "test", Success: true})
	})

	t.Run("open is idempotent", func(t *testing.T) {
		require.NoError(t, Open())
		require.NoError(t, Open())
		Close()
	})
}

func TestBuilder(t *testing.T) {
	useTempDB(t)

	t.Run("success", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		Event("catalog:tag", "tag").
			Path("~/a.mkv").
			Resolved("/home/u/a.mkv").
			Count(1).
			Write(nil)

		var path, resolved string
		var success int
		lastRow(t, "SELECT path, resolved_path, success FROM log ORDER BY id DESC LIMIT 1",
			&path, &resolved, &success)
		assert.Equal(t, "~/a.mkv", path)
		assert.Equal(t, "/home/u/a.mkv", resolved)
		assert.Equal(t, 1, success)
	})

	t.Run("resolved equal to input is not stored", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		Event("catalog:tag", "tag").Path("/a").Resolved("/a").Write(nil)

		var resolved sql.NullString
		lastRow(t, "SELECT resolved_path FROM log ORDER BY id DESC LIMIT 1", &resolved)
		assert.False(t, resolved.Valid)
	})

	t.Run("error", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		Event("catalog:rm", "remove").Path("/a").Write(errors.New("catalog write failed"))

		var success int
		var msg string
		lastRow(t, "SELECT success, error FROM log ORDER BY id DESC LIMIT 1", &success, &msg)
		assert.Equal(t, 0, success)
		assert.Equal(t, "catalog write failed", msg)
	})

	t.Run("detail", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		Event("search:query", "query").
			Detail("query", "anime,-dub").
			Detail("count", 42).
			Write(nil)

		var detail string
		lastRow(t, "SELECT detail FROM log ORDER BY id DESC LIMIT 1", &detail)
		assert.Contains(t, detail, "anime,-dub")
		assert.Contains(t, detail, "42")
	})
}

func TestHash(t *testing.T) {
	h1 := hash("/home/u/.local/share/fusen")
	h2 := hash("/home/u/.local/share/fusen")
	h3 := hash("/tmp/other")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 16)
}

func TestDBPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	orig := dbPathFunc
	dbPathFunc = defaultDBPath
	defer func() { dbPathFunc = orig }()

	assert.Equal(t, filepath.Join(home, ".local", "share", "fusen", "log.sqlite"), DBPath())
}

func TestOpenAt(t *testing.T) {
	useTempDB(t)
	p := filepath.Join(t.TempDir(), "data", "log.sqlite")

	require.NoError(t, OpenAt(p))
	Event("catalog:tag", "tag").Path("/media/a.mkv").Write(nil)
	Close()

	db, err := sql.Open("sqlite", p)
	require.NoError(t, err)
	defer db.Close()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM log").Scan(&n))
	assert.Equal(t, 1, n)
	assert.NoFileExists(t, DBPath())
}
