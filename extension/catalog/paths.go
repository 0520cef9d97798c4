// paths.go implements add, rm, ls and tags: the commands that decide which
// paths the catalog tracks and show what it holds.

package catalog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/fusen/cmd"
	"github.com/jpl-au/fusen/extension"
	"github.com/jpl-au/fusen/internal/format"
	"github.com/jpl-au/fusen/internal/log"
	"github.com/jpl-au/fusen/internal/ls"
	"github.com/jpl-au/fusen/internal/rm"
	"github.com/jpl-au/fusen/internal/scan"
)

func (e *Extension) newAddCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add <path>...",
		Short: "Track files without tagging them",
		Long: `Track files so they show up in queries and can be tagged later.

A directory argument adds the files directly inside it; with --recursive the
whole tree below it. Paths already tracked keep their tags.

  fusen add ~/Videos/film.mkv
  fusen add --recursive ~/Videos/anime`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runAdd,
	}
	c.Flags().BoolP(extension.FlagRecursive, "r", false, "Add files in subdirectories too")
	c.Flags().Bool(extension.FlagSkipHidden, false, "Skip dot files and dot directories")
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would be added")
	return c
}

func (e *Extension) runAdd(c *cobra.Command, args []string) error {
	recursive, _ := c.Flags().GetBool(extension.FlagRecursive)
	skipHidden, _ := c.Flags().GetBool(extension.FlagSkipHidden)
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	opts := scan.FromConfig(e.ctx.Config(), e.ctx.Logger())
	opts.Mode = scan.ModeOf(recursive)
	opts.SkipHidden = skipHidden
	opts.DryRun = dryRun

	result, err := scan.Add(c.Context(), cmd.Text(), e.svc, args, opts)

	log.Event("catalog:add", "add").
		Path(args[0]).
		Count(len(result.Added)).
		Detail("recursive", recursive).
		Detail("dry_run", dryRun).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("add: %w", err))
	}
	if !cmd.JSON() && len(result.Added) == 0 {
		fmt.Fprintln(cmd.Out(), "Nothing new to add")
	}
	return cmd.PrintJSON(result)
}

func (e *Extension) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path>...",
		Short: "Stop tracking paths",
		Long: `Remove paths and all their tags from the catalog.

The files themselves are not touched.`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runRm,
	}
}

func (e *Extension) runRm(c *cobra.Command, args []string) error {
	result, err := rm.Run(c.Context(), cmd.Text(), e.svc, args)

	log.Event("catalog:rm", "rm").
		Path(args[0]).
		Count(len(result.Removed)).
		Detail("edges", result.Edges).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("rm: %w", err))
	}
	return cmd.PrintJSON(result)
}

func (e *Extension) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls [dir]",
		Short: "List tracked paths",
		Long: `List tracked paths, optionally under a directory.

  fusen ls                     # everything
  fusen ls ~/Videos/anime      # under a directory
  fusen ls --tag anime --tags  # paths tagged anime, with all their tags
  fusen ls --untagged          # paths still waiting for tags
  fusen ls --tree              # as a directory tree

Use 'fusen query' for boolean tag expressions.`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runLs,
	}
	c.Flags().StringP(extension.FlagTag, "t", "", "Only paths carrying this tag")
	c.Flags().BoolP(extension.FlagTags, "l", false, "Show tags alongside each path")
	c.Flags().BoolP(extension.FlagUntagged, "u", false, "Only paths with no tags")
	c.Flags().Bool(extension.FlagTree, false, "Display as a directory tree")
	c.Flags().Bool(extension.FlagReverse, false, "Reverse the order")
	return c
}

func (e *Extension) runLs(c *cobra.Command, args []string) error {
	var opts ls.Options
	opts.Tag, _ = c.Flags().GetString(extension.FlagTag)
	opts.Tags, _ = c.Flags().GetBool(extension.FlagTags)
	opts.Untagged, _ = c.Flags().GetBool(extension.FlagUntagged)
	opts.Tree, _ = c.Flags().GetBool(extension.FlagTree)
	opts.Reverse, _ = c.Flags().GetBool(extension.FlagReverse)
	if len(args) > 0 {
		opts.Prefix = args[0]
	}

	result, err := ls.Run(c.Context(), cmd.Text(), e.svc, opts)

	log.Event("catalog:ls", "list").
		Path(opts.Prefix).
		Count(result.Count()).
		Detail("tag", opts.Tag).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("ls: %w", err))
	}
	return cmd.PrintJSON(result.Entries)
}

func (e *Extension) newTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List every tag with the number of paths carrying it",
		Args:  cobra.NoArgs,
		RunE:  e.runTags,
	}
}

func (e *Extension) runTags(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	counts := make(map[string]int)
	for t := range e.svc.Tags(ctx) {
		counts[t] = e.svc.PathsWithTag(ctx, t).Len()
	}

	log.Event("catalog:tags", "tags").Count(len(counts)).Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(counts)
	}
	return format.Tags(cmd.Out(), counts)
}
