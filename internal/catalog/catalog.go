// Package catalog provides the tag catalog service backed by a Store. It
// owns the input rules (path normalisation, tag sanitisation) and the error
// policy: writes report failure, reads degrade to empty results.
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/jpl-au/fusen/internal/config"
	"github.com/jpl-au/fusen/internal/repo"
	"github.com/jpl-au/fusen/internal/service"
	"github.com/jpl-au/fusen/internal/store"
	"github.com/jpl-au/fusen/internal/validate"
)

// Options configures a Service.
type Options struct {
	// MaxPath limits the byte length of stored paths. Zero uses the config
	// default.
	MaxPath int

	// Logger receives read failures and other diagnostics. Nil discards.
	Logger *zap.Logger
}

// Service provides catalog operations backed by a Store.
type Service struct {
	store   store.Store
	dbPath  string
	maxPath int
	log     *zap.Logger
}

var _ service.Service = (*Service)(nil)

// Open opens (creating if needed) the catalog in the data directory dir.
// Any failure here wraps ErrStoreUnavailable.
func Open(dir string, opts Options) (*Service, error) {
	s, err := repo.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return New(s, repo.DBPath(dir), opts), nil
}

// New wraps an already initialised store.
func New(s store.Store, dbPath string, opts Options) *Service {
	if opts.MaxPath <= 0 {
		opts.MaxPath = config.DefaultMaxPath
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Service{
		store:   s,
		dbPath:  dbPath,
		maxPath: opts.MaxPath,
		log:     opts.Logger.Named("catalog"),
	}
}

// Close checkpoints the WAL and closes the database connection.
func (s *Service) Close() error {
	if err := s.store.Checkpoint(context.Background()); err != nil {
		s.log.Warn("checkpoint on close", zap.Error(err))
	}
	return s.store.Close()
}

// Checkpoint flushes the WAL to the main database file.
func (s *Service) Checkpoint(ctx context.Context) error {
	return s.store.Checkpoint(ctx)
}

// DB returns the underlying database connection.
func (s *Service) DB() *sql.DB {
	return s.store.DB()
}

// Path returns the catalog database file location.
func (s *Service) Path() string {
	return s.dbPath
}

// Logger returns the service's diagnostic logger.
func (s *Service) Logger() *zap.Logger {
	return s.log
}

// NormalisePath returns the canonical stored form of p.
func (s *Service) NormalisePath(p string) (string, error) {
	return validate.Path(p, s.maxPath)
}

// normalisePaths validates every path, failing on the first bad one so a
// batch is never partially applied.
func (s *Service) normalisePaths(paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		n, err := s.NormalisePath(p)
		if err != nil {
			return nil, err
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out, nil
}
