/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Separated from init_extensions.go to isolate cobra setup from extension
// initialisation logic.
//
// Design: PersistentPreRunE resolves the data directory, builds the
// diagnostic logger and opens the audit log for every command. The catalog
// itself is opened lazily: only commands that need it trigger extension
// init, so bootstrap commands (init, guide, config) work on a fresh machine.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jpl-au/fusen/internal/log"
	"github.com/jpl-au/fusen/internal/logger"
	"github.com/jpl-au/fusen/internal/repo"
)

var rootCmd = &cobra.Command{
	Use:   "fusen",
	Short: "Tag files and find them again with boolean tag queries",
	Long: `fusen keeps a catalog of file paths and the tags attached to them.

Tag files, query them with expressions like "anime, -dub", keep the catalog in
step with your media directories, and move it between machines as YAML.

Run 'fusen guide' for an overview.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		logger.Init(logger.Options{Verbose: verbose, JSON: JSON()})

		d, err := resolveDir()
		if err != nil {
			return PrintJSONError(fmt.Errorf("locate data directory: %w", err))
		}

		// The audit log is best-effort; a read-only home must not stop
		// queries from working. Bootstrap commands only log into a data
		// directory that already exists, so "fusen guide" creates nothing.
		name := topLevelCmdName(cmd)
		if !noStoreCommands[name] || name == "init" || dirExists(d) {
			if err := log.OpenAt(repo.LogPath(d)); err != nil {
				logger.L().Warn("audit log unavailable", zap.Error(err))
			}
		}

		// Initialise extensions for commands that need the catalog
		if !noStoreCommands[name] {
			if err := initExtensions(); err != nil {
				if JSON() {
					_ = PrintJSON(map[string]string{"error": err.Error()})
					cmd.SilenceErrors = true
				}
				return fmt.Errorf("initialise extensions: %w", err)
			}
		}

		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For "fusen query anime", returns "query".
// For "fusen tag add path tag", returns "tag".
func topLevelCmdName(cmd *cobra.Command) string {
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

func dirExists(d string) bool {
	info, err := os.Stat(d)
	return err == nil && info.IsDir()
}

// Execute runs the root command and handles process lifecycle.
// Registers extensions, executes the command, and closes the catalog and
// audit log before exit. Exit code 1 indicates error.
func Execute() {
	registerExtensions()
	err := rootCmd.Execute()

	if extService != nil {
		if closeErr := extService.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing catalog: %v\n", closeErr)
		}
	}
	log.Close()
	logger.Sync()

	if err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}
