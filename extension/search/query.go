// query.go implements "fusen query", the boolean tag search.
//
// Separated from search.go because query is the command scripts depend on:
// stdout carries exactly one path per line so it can feed xargs.

package search

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpl-au/fusen/cmd"
	"github.com/jpl-au/fusen/extension"
	"github.com/jpl-au/fusen/internal/log"
	"github.com/jpl-au/fusen/internal/query"
)

func (e *Extension) newQueryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "query [expression]",
		Short: "Find paths by tag expression",
		Long: `Find paths matching a comma-separated tag expression.

A token names a tag the path must carry; a leading "-" names one it must not.
An empty expression lists every path. Unless --exact is given, paths whose
text contains a positive token (ignoring case) are included too.

  fusen query "anime, -dub"
  fusen query --exact favourite
  fusen query -- -dub              # "--" before a leading negation
  fusen query anime | xargs -d '\n' mpv

See 'fusen guide query' for details.`,
		RunE: e.runQuery,
	}
	c.Flags().BoolP(extension.FlagExact, "e", false, "Match tags only, without the substring union")
	return c
}

func (e *Extension) runQuery(c *cobra.Command, args []string) error {
	exact, _ := c.Flags().GetBool(extension.FlagExact)
	text := strings.Join(args, ",")

	result := query.Run(c.Context(), cmd.Text(), e.svc, text, exact)

	log.Event("search:query", "query").
		Count(result.Count).
		Detail("query", text).
		Detail("exact", exact).
		Write(nil)

	return cmd.PrintJSON(result)
}
