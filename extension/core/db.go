// db.go implements "fusen db" for catalog maintenance.
//
// Separated from extension.go to keep the maintenance subcommands together.
// stats is read-only; vacuum rewrites the database and asks first unless
// --force is given, as it cannot be undone.

package core

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpl-au/fusen/cmd"
	"github.com/jpl-au/fusen/extension"
	"github.com/jpl-au/fusen/internal/log"
	"github.com/jpl-au/fusen/internal/vacuum"
)

// extCtx is set by Init; db subcommands need the open catalog.
var extCtx extension.Context

func newDBCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "db",
		Short: "Catalog statistics and maintenance",
		Long: `Show catalog statistics or remove duplicate edges.

  fusen db stats             # counts of paths, tags and edges
  fusen db vacuum --dry-run  # how many duplicates exist
  fusen db vacuum --force    # dedup and compact without asking`,
		Run: func(c *cobra.Command, _ []string) {
			_ = c.Help()
		},
	}
	c.AddCommand(newDBStatsCmd(), newDBVacuumCmd())
	return c
}

func newDBStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			svc := extCtx.Service()
			st, err := svc.Stats(c.Context())
			log.Event("core:db", "stats").Write(err)
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("db stats: %w", err))
			}

			if cmd.JSON() {
				return cmd.PrintJSON(map[string]any{"catalog": svc.Path(), "stats": st})
			}
			w := cmd.Out()
			fmt.Fprintf(w, "Catalog:    %s\n", svc.Path())
			fmt.Fprintf(w, "Paths:      %d\n", st.Paths)
			fmt.Fprintf(w, "Untagged:   %d\n", st.Untagged)
			fmt.Fprintf(w, "Tags:       %d\n", st.Tags)
			fmt.Fprintf(w, "Edges:      %d\n", st.Edges)
			fmt.Fprintf(w, "Duplicates: %d\n", st.Duplicate)
			return nil
		},
	}
}

func newDBVacuumCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "vacuum",
		Short: "Remove duplicate edges and compact the database",
		Args:  cobra.NoArgs,
		RunE:  runVacuum,
	}
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show how many duplicates would be removed")
	return c
}

func runVacuum(c *cobra.Command, _ []string) error {
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	if !dryRun && !cmd.Force() {
		if cmd.JSON() {
			return cmd.PrintJSONError(fmt.Errorf("vacuum: --force is required with -o json"))
		}
		fmt.Fprint(cmd.Out(), "Remove duplicate edges and compact the catalog? [y/N] ")
		response, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("reading confirmation: %w", err))
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(cmd.Out(), "Cancelled")
			return nil
		}
	}

	result, err := vacuum.Run(c.Context(), cmd.Text(), extCtx.Service(), vacuum.Options{DryRun: dryRun})

	log.Event("core:db", "vacuum").
		Count(int(result.Duplicates)).
		Detail("dry_run", dryRun).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("vacuum: %w", err))
	}
	return cmd.PrintJSON(result)
}
