// import.go implements "fusen import".
//
// Settings decide the defaults (clearTagsOnImport, deleteFileAfterImport);
// --clear and --keep override them for one run.

package transfer

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/fusen/cmd"
	"github.com/jpl-au/fusen/extension"
	"github.com/jpl-au/fusen/internal/importer"
	"github.com/jpl-au/fusen/internal/log"
)

func (e *Extension) newImportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "import <file|->",
		Short: "Merge a YAML path-to-tags mapping into the catalog",
		Long: `Merge a YAML mapping of path to tag list into the catalog.

  /media/anime/a.mkv: [anime, favourite]
  /media/film/b.mkv: []

Unknown paths are tracked, known paths gain the listed tags. Entries that are
not a path with a list of tags are skipped and reported. Use "-" to read
from stdin.

  fusen import tags.yaml
  fusen import --clear tags.yaml    # replace each listed path's tags
  fusen import --dry-run tags.yaml
  fusen export - | ssh other fusen import -`,
		Args: cobra.ExactArgs(1),
		RunE: e.runImport,
	}
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would be imported")
	c.Flags().Bool(extension.FlagClear, false, "Clear each path's tags before applying the file's (default from clearTagsOnImport)")
	c.Flags().Bool(extension.FlagKeep, false, "Never delete the source file, whatever deleteFileAfterImport says")
	return c
}

func (e *Extension) runImport(c *cobra.Command, args []string) error {
	src := args[0]
	cfg := e.ctx.Config()

	opts := importer.Options{
		ClearTags:    cfg.ClearOnImport(),
		DeleteSource: cfg.DeleteAfterImport(),
		Logger:       e.ctx.Logger(),
		Stdin:        c.InOrStdin(),
	}
	opts.DryRun, _ = c.Flags().GetBool(extension.FlagDryRun)
	if clear, _ := c.Flags().GetBool(extension.FlagClear); clear {
		opts.ClearTags = true
	}
	if keep, _ := c.Flags().GetBool(extension.FlagKeep); keep {
		opts.DeleteSource = false
	}

	result, err := importer.Run(c.Context(), cmd.Text(), e.ctx.Service(), src, opts)

	log.Event("transfer:import", "import").
		Path(src).
		Count(result.Imported).
		Detail("skipped", len(result.Skipped)).
		Detail("failed", len(result.Failed)).
		Detail("clear", opts.ClearTags).
		Detail("dry_run", opts.DryRun).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("import %q: %w", src, err))
	}
	if err := cmd.PrintJSON(result); err != nil {
		return err
	}

	if !cmd.JSON() && !opts.DryRun {
		fmt.Fprintf(cmd.Out(), "\nImported %d path(s)", result.Imported)
		if n := len(result.Skipped); n > 0 {
			fmt.Fprintf(cmd.Out(), ", skipped %d", n)
		}
		fmt.Fprintln(cmd.Out())
	}
	if n := len(result.Failed); n > 0 && !cmd.JSON() {
		return fmt.Errorf("import %q: %d path(s) failed", src, n)
	}
	return nil
}
