// export.go implements "fusen export".

package transfer

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/fusen/cmd"
	"github.com/jpl-au/fusen/internal/exporter"
	"github.com/jpl-au/fusen/internal/log"
)

func (e *Extension) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file|-]",
		Short: "Write the catalog as a YAML path-to-tags mapping",
		Long: `Write the whole catalog as a YAML mapping of path to tag list.

Without a file (or with "-") the mapping goes to stdout. An existing file is
only replaced with --force.

  fusen export > tags.yaml
  fusen export backup/tags.yaml --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runExport,
	}
}

func (e *Extension) runExport(c *cobra.Command, args []string) error {
	dst := exporter.Stdout
	if len(args) > 0 {
		dst = args[0]
	}

	// With -o json and stdout as the destination, the JSON summary would
	// be interleaved with the YAML; the YAML wins.
	w := cmd.Text()
	if dst == exporter.Stdout {
		w = cmd.Out()
	}

	result, err := exporter.Run(c.Context(), w, e.ctx.Service(), dst, exporter.Options{Force: cmd.Force()})

	log.Event("transfer:export", "export").
		Path(dst).
		Count(result.Paths).
		Detail("tags", result.Tags).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("export to %q: %w", dst, err))
	}
	if dst == exporter.Stdout {
		return nil
	}
	return cmd.PrintJSON(result)
}
