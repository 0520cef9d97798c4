// Package repo locates and initialises fusen's per-user data directory.
//
// All state lives in one directory, by default ~/.local/share/fusen:
//   - data.sqlite   the tag catalog
//   - settings.yaml user settings
//   - log.sqlite    the audit log of commands
//
// The home directory comes from $HOME, falling back to the account database
// when $HOME is unset. If neither yields a directory the catalog cannot be
// located and startup fails.
package repo

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/jpl-au/fusen/internal/config"
	"github.com/jpl-au/fusen/internal/store"
)

const (
	// DBFile is the catalog database filename.
	DBFile = "data.sqlite"
	// LogFile is the audit log database filename.
	LogFile = "log.sqlite"
)

// ErrNoHome is returned when no home directory can be resolved.
var ErrNoHome = errors.New("cannot determine home directory")

// lookupUser is swapped out by tests.
var lookupUser = user.Current

// Home returns the user's home directory.
func Home() (string, error) {
	if h, err := os.UserHomeDir(); err == nil && h != "" {
		return h, nil
	}
	u, err := lookupUser()
	if err != nil || u.HomeDir == "" {
		return "", ErrNoHome
	}
	return u.HomeDir, nil
}

// Dir returns the data directory. A non-empty override wins; otherwise the
// default under the home directory is used.
func Dir(override string) (string, error) {
	if override != "" {
		return filepath.Abs(override)
	}
	home, err := Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "fusen"), nil
}

// DBPath returns the catalog path inside dir.
func DBPath(dir string) string {
	return filepath.Join(dir, DBFile)
}

// LogPath returns the audit log path inside dir.
func LogPath(dir string) string {
	return filepath.Join(dir, LogFile)
}

// Open creates dir if needed and returns an initialised catalog store.
// The catalog is created on first use; there is no separate setup step.
func Open(dir string) (*store.SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	s, err := store.Open(DBPath(dir))
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		s.Close()
		return nil, fmt.Errorf("init store: %w", err)
	}
	return s, nil
}

// Init prepares dir explicitly: the catalog plus a settings file holding
// the defaults, so users have something to edit. With force an existing
// catalog is discarded first.
func Init(dir string, force bool) error {
	dbPath := DBPath(dir)
	if _, err := os.Stat(dbPath); err == nil {
		if !force {
			return fmt.Errorf("catalog %s already exists (use --force to reinitialise)", dbPath)
		}
		for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
			if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("remove catalog: %w", err)
			}
		}
	}

	s, err := Open(dir)
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := os.Stat(config.Path(dir)); errors.Is(err, os.ErrNotExist) {
		if err := config.Default(dir).Save(); err != nil {
			return err
		}
	}
	return nil
}
