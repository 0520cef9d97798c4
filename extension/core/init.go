// init.go implements the "fusen init" command.
//
// Separated from extension.go because init runs before a catalog exists.
// Every other command creates the catalog on first use, so init is only
// needed to seed settings.yaml with defaults or to start over with --force.

package core

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/fusen/cmd"
	"github.com/jpl-au/fusen/internal/log"
	"github.com/jpl-au/fusen/internal/repo"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the catalog and a default settings file",
		Long: `Creates data.sqlite and settings.yaml in the data directory.

  fusen init                    # ~/.local/share/fusen
  fusen init --dir /srv/fusen   # somewhere else
  fusen init --force            # discard the existing catalog

Other commands create the catalog on first use; init is only needed to get
a settings file to edit, or to start again.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
}

func runInit(_ *cobra.Command, _ []string) error {
	dir := cmd.Dir()
	err := repo.Init(dir, cmd.Force())

	log.Event("core:init", "init").
		Path(dir).
		Detail("force", cmd.Force()).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"dir": dir, "catalog": repo.DBPath(dir)})
	}
	fmt.Fprintf(cmd.Out(), "Initialised fusen catalog in %s\n", dir)
	return nil
}
