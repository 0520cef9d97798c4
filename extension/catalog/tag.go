// tag.go implements the tag command and its subcommands.

package catalog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/fusen/cmd"
	"github.com/jpl-au/fusen/internal/log"
	"github.com/jpl-au/fusen/internal/tag"
)

func (e *Extension) newTagCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags on paths",
		Long: `Add, remove, clear and list the tags on paths.

Tags are given as one comma-separated argument after the paths. Spaces and
quotes inside a tag become underscores, and the word "path" is reserved.

  fusen tag add a.mkv b.mkv "anime, favourite"
  fusen tag rm a.mkv dub
  fusen tag clear a.mkv
  fusen tag ls a.mkv`,
		Run: func(c *cobra.Command, _ []string) {
			_ = c.Help()
		},
	}
	c.AddCommand(e.newTagAddCmd())
	c.AddCommand(e.newTagRmCmd())
	c.AddCommand(e.newTagClearCmd())
	c.AddCommand(e.newTagLsCmd())
	return c
}

func (e *Extension) newTagAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <path>... <tags>",
		Short: "Attach tags to paths, tracking them if needed",
		Args:  cobra.MinimumNArgs(2),
		RunE:  e.runTagAdd,
	}
}

func (e *Extension) newTagRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path>... <tags>",
		Short: "Detach tags from paths",
		Args:  cobra.MinimumNArgs(2),
		RunE:  e.runTagRm,
	}
}

func (e *Extension) newTagClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <path>...",
		Short: "Remove every tag from paths, keeping them tracked",
		Args:  cobra.MinimumNArgs(1),
		RunE:  e.runTagClear,
	}
}

func (e *Extension) newTagLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls <path>",
		Short: "List the tags on a path in the order they were added",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runTagLs,
	}
}

// splitArgs separates the trailing tag list from the paths before it.
func splitArgs(args []string) ([]string, []string) {
	n := len(args) - 1
	return args[:n], tag.Split(args[n])
}

func (e *Extension) runTagAdd(c *cobra.Command, args []string) error {
	paths, tags := splitArgs(args)

	l := log.Event("catalog:tag", "tag").
		Path(paths[0]).
		Count(len(paths)).
		Detail("tags", tags)

	result, err := tag.Add(c.Context(), cmd.Text(), e.svc, paths, tags)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("tag add: %w", err))
	}
	l.Resolved(result.Paths[0]).Write(nil)

	return cmd.PrintJSON(result)
}

func (e *Extension) runTagRm(c *cobra.Command, args []string) error {
	paths, tags := splitArgs(args)

	l := log.Event("catalog:tag", "untag").
		Path(paths[0]).
		Count(len(paths)).
		Detail("tags", tags)

	result, err := tag.Remove(c.Context(), cmd.Text(), e.svc, paths, tags)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("tag rm: %w", err))
	}
	l.Resolved(result.Paths[0]).Write(nil)

	return cmd.PrintJSON(result)
}

func (e *Extension) runTagClear(c *cobra.Command, args []string) error {
	l := log.Event("catalog:tag", "clear").
		Path(args[0]).
		Count(len(args))

	result, err := tag.Clear(c.Context(), cmd.Text(), e.svc, args)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("tag clear: %w", err))
	}
	l.Resolved(result.Paths[0]).Write(nil)

	return cmd.PrintJSON(result)
}

func (e *Extension) runTagLs(c *cobra.Command, args []string) error {
	result, err := tag.List(c.Context(), cmd.Text(), e.svc, args[0])

	log.Event("catalog:tag", "list").
		Path(args[0]).
		Count(len(result.Tags)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("tag ls: %w", err))
	}
	return cmd.PrintJSON(result)
}
