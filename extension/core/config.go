// config.go implements the "fusen config" command for settings management.
//
// Separated from extension.go to isolate key/value handling. Settings live
// in settings.yaml next to the catalog; list values such as scanDirectories
// are read and written joined with the OS path list separator.

package core

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jpl-au/fusen/cmd"
	"github.com/jpl-au/fusen/internal/config"
	"github.com/jpl-au/fusen/internal/log"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set settings",
		Long: `View or set settings.

  fusen config                          # show all settings
  fusen config scanRecursive            # show one value
  fusen config scanRecursive false      # set a value
  fusen config scanIgnore '*.part:.git' # lists use the path separator

Keys: ` + fmt.Sprint(config.ValidKeys()),
		Args: cobra.MaximumNArgs(2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return config.ValidKeys(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: runConfig,
	}
}

func runConfig(_ *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Dir())
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	switch len(args) {
	case 0:
		all := cfg.All()
		log.Event("core:config", "list").Write(nil)
		if cmd.JSON() {
			return cmd.PrintJSON(all)
		}
		keys := config.ValidKeys()
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(cmd.Out(), "%s: %s\n", k, all[k])
		}

	case 1:
		v, err := cfg.Get(args[0])
		log.Event("core:config", "get").Detail("key", args[0]).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("config get %q: %w", args[0], err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{args[0]: v})
		}
		fmt.Fprintln(cmd.Out(), v)

	case 2:
		if err := cfg.Set(args[0], args[1]); err != nil {
			log.Event("core:config", "set").Detail("key", args[0]).Write(err)
			return cmd.PrintJSONError(fmt.Errorf("config set %q: %w", args[0], err))
		}

		saveErr := cfg.Save()
		log.Event("core:config", "set").Detail("key", args[0]).Detail("value", args[1]).Write(saveErr)
		if saveErr != nil {
			return cmd.PrintJSONError(fmt.Errorf("config save: %w", saveErr))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{args[0]: args[1]})
		}
		fmt.Fprintf(cmd.Out(), "%s = %s\n", args[0], args[1])
	}
	return nil
}
