// context.go defines the Context interface for extension access to fusen
// internals.
//
// Separated from extension.go to isolate dependency injection concerns.
// The Context gives extensions a controlled surface: the catalog service,
// the settings and the data directory, without reaching into arbitrary
// internals.
//
// Design: Context is an interface so extensions can be tested against a
// stub. Extensions receive it during Init(), not at construction, because
// they register before the catalog is open.

package extension

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/jpl-au/fusen/internal/config"
	"github.com/jpl-au/fusen/internal/service"
)

// Context provides extensions controlled access to fusen internals.
type Context interface {
	// Service returns the catalog service.
	Service() service.Service

	// DB exposes the catalog database. Extensions should create their own
	// tables, not modify the master relation.
	DB() *sql.DB

	// Config returns the settings loaded at startup.
	Config() *config.Config

	// Dir returns the data directory.
	Dir() string

	// Logger returns the diagnostic logger.
	Logger() *zap.Logger
}

// extContext implements Context.
type extContext struct {
	svc service.Service
	cfg *config.Config
	dir string
	log *zap.Logger
}

// NewContext creates a new extension context. A nil logger discards.
func NewContext(svc service.Service, dir string, cfg *config.Config, log *zap.Logger) Context {
	if log == nil {
		log = zap.NewNop()
	}
	return &extContext{svc: svc, cfg: cfg, dir: dir, log: log}
}

func (c *extContext) Service() service.Service { return c.svc }

func (c *extContext) DB() *sql.DB { return c.svc.DB() }

func (c *extContext) Config() *config.Config { return c.cfg }

func (c *extContext) Dir() string { return c.dir }

func (c *extContext) Logger() *zap.Logger { return c.log }
