// glob.go implements "fusen glob" for path pattern matching.
//
// Separated from query.go because glob looks only at path text, never at
// tags.

package search

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/fusen/cmd"
	"github.com/jpl-au/fusen/internal/glob"
	"github.com/jpl-au/fusen/internal/log"
)

func (e *Extension) newGlobCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "glob <pattern>",
		Short: "List tracked paths matching a pattern",
		Long: `List tracked paths matching a glob pattern.

Supports *, ?, [...] and ** (any number of directories). Absolute patterns
are anchored at /; relative ones match the end of a path.

Examples:
  fusen glob "*.mkv"
  fusen glob "/media/anime/**"
  fusen glob "season?/*.mkv"`,
		Args: cobra.ExactArgs(1),
		RunE: e.runGlob,
	}
}

func (e *Extension) runGlob(c *cobra.Command, args []string) error {
	pattern := args[0]

	l := log.Event("search:glob", "glob").Detail("pattern", pattern)

	paths, err := glob.Filter(pattern, e.svc.Paths(c.Context()).Sorted())
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("glob %q: %w", pattern, err))
	}

	l.Count(len(paths)).Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(paths)
	}

	for _, p := range paths {
		fmt.Fprintln(cmd.Out(), p)
	}
	return nil
}
