/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines global CLI flags and accessors for shared state.
//
// Separated from root.go to isolate flag definitions from command logic.
// Extensions access these via exported accessor functions rather than
// directly accessing the variables.
//
// Design: Flags are defined as package-level variables and bound to the
// root command. The data directory is resolved once in PersistentPreRunE
// and cached, so every command and the audit log agree on where the
// catalog lives.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpl-au/fusen/internal/repo"
)

// EnvDir names the environment variable that relocates the data directory.
const EnvDir = "FUSEN_DIR"

var validOutputFormats = []string{"json"}

var (
	output  string
	force   bool
	verbose bool
	dir     string

	// dataDir is the resolved data directory, set by resolveDir.
	dataDir string
)

// out is the output writer for commands. Defaults to os.Stdout.
// Tests can replace this to capture output.
var out io.Writer = os.Stdout

// Out returns the output writer.
func Out() io.Writer { return out }

// Output returns the output format flag value.
func Output() string { return output }

// Force returns the force flag value.
func Force() bool { return force }

// Verbose reports whether debug diagnostics were requested.
func Verbose() bool { return verbose }

// Dir returns the data directory the command runs against.
// Priority: --dir flag > FUSEN_DIR env var > ~/.local/share/fusen.
func Dir() string {
	if dataDir != "" {
		return dataDir
	}
	d, _ := resolveDir()
	return d
}

// resolveDir applies the --dir > FUSEN_DIR > default priority and caches
// the absolute result.
func resolveDir() (string, error) {
	override := dir
	if override == "" {
		override = os.Getenv(EnvDir)
	}
	d, err := repo.Dir(override)
	if err != nil {
		return "", err
	}
	dataDir = d
	return d, nil
}

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// Text returns the writer for human-readable progress lines: Out normally,
// io.Discard when JSON was requested so stdout stays parseable.
func Text() io.Writer {
	if JSON() {
		return io.Discard
	}
	return out
}

// PrintJSON marshals v to JSON and writes it to the output writer.
// Returns nil if output format is not JSON.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints an error in JSON format if output is JSON.
// Returns nil if error was printed (suppressing Cobra error), or the original error if not.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().BoolVar(&force, "force", false, "Overwrite existing files and skip confirmations")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&dir, "dir", "", "Data directory (default $FUSEN_DIR or ~/.local/share/fusen)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
