/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the initialisation logic that loads
// settings, opens the catalog and wires up extensions.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. This two-phase pattern allows extensions to
// declare commands before the catalog exists. The service is created once
// and shared across all extensions via the Context.

package cmd

import (
	"fmt"
	"sync"

	"github.com/jpl-au/fusen/extension"
	"github.com/jpl-au/fusen/internal/catalog"
	"github.com/jpl-au/fusen/internal/config"
	"github.com/jpl-au/fusen/internal/log"
	"github.com/jpl-au/fusen/internal/logger"
)

// noStoreCommands lists commands that bypass automatic catalog opening.
// Built dynamically from bootstrap commands plus extension-declared storeless commands.
var noStoreCommands map[string]bool

// buildNoStoreCommands creates the set of commands that skip catalog
// initialisation.
//
// Bootstrap commands (init, guide, config) must work before a catalog
// exists; running "fusen guide" shouldn't create data.sqlite. Extensions
// implement extension.Storeless for commands that manage their own service
// lifecycle, such as serve.
func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"init":       true,
		"guide":      true,
		"config":     true,
		"help":       true,
		"completion": true,
	}

	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}

	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	extService *catalog.Service
	initOnce   sync.Once
	initErr    error
)

// initExtensions opens the catalog and injects it into extensions.
//
// The catalog is opened exactly once per process; failure here is the one
// fatal error category (catalog.ErrStoreUnavailable) and ends the command.
func initExtensions() error {
	initOnce.Do(func() {
		d := Dir()
		cfg, err := config.Load(d)
		if err != nil {
			initErr = err
			return
		}

		svc, err := catalog.Open(d, catalog.Options{MaxPath: cfg.MaxPath(), Logger: logger.L()})
		if err != nil {
			initErr = err
			return
		}
		extService = svc

		log.SetProject(svc.Path())

		extContext = extension.NewContext(svc, d, cfg, logger.L())
		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		rootCmd.AddCommand(extension.Commands()...)

		noStoreCommands = buildNoStoreCommands()
	})
}
