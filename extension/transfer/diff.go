// diff.go implements "fusen diff", a preview of what a mapping file would
// change before importing it.

package transfer

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jpl-au/fusen/cmd"
	"github.com/jpl-au/fusen/extension"
	"github.com/jpl-au/fusen/internal/diff"
	"github.com/jpl-au/fusen/internal/log"
)

func (e *Extension) newDiffCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "diff <file>",
		Short: "Compare the catalog with a YAML mapping file",
		Long: `Compare the current export of the catalog with a mapping file.

Lines starting with "-" exist only in the catalog, "+" only in the file.
Paths the catalog does not track and tracked paths the file does not list
are summarised after the diff.

  fusen diff tags.yaml
  fusen diff --raw tags.yaml | less`,
		Args: cobra.ExactArgs(1),
		RunE: e.runDiff,
	}
	c.Flags().Bool(extension.FlagRaw, false, "Output without colour")
	return c
}

func (e *Extension) runDiff(c *cobra.Command, args []string) error {
	file := args[0]
	raw, _ := c.Flags().GetBool(extension.FlagRaw)
	colour := !raw && !cmd.JSON() && term.IsTerminal(int(os.Stdout.Fd()))

	w := cmd.Text()
	result, err := diff.Run(c.Context(), w, e.ctx.Service(), file, colour)

	log.Event("transfer:diff", "diff").
		Path(file).
		Count(len(result.Only)+len(result.Missing)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("diff %q: %w", file, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(result)
	}
	summarise(w, result)
	return nil
}

func summarise(w io.Writer, r diff.Result) {
	if n := len(r.Only); n > 0 {
		fmt.Fprintf(w, "\n%d path(s) not in the catalog (import would track them)\n", n)
	}
	if n := len(r.Missing); n > 0 {
		fmt.Fprintf(w, "%d tracked path(s) not listed in the file (import leaves them alone)\n", n)
	}
	for _, s := range r.Skipped {
		fmt.Fprintf(w, "Skipped: %s (line %d): %s\n", s.Key, s.Line, s.Reason)
	}
}
