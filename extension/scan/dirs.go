// dirs.go implements "fusen dirs", the registry of scan directories kept in
// the scanDirectories setting.
//
// Adding a directory scans it straight away (recursively, whatever
// scanRecursive says) so its files are queryable at once; --no-scan only
// registers it.

package scan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"github.com/jpl-au/fusen/cmd"
	"github.com/jpl-au/fusen/extension"
	"github.com/jpl-au/fusen/internal/config"
	"github.com/jpl-au/fusen/internal/log"
	"github.com/jpl-au/fusen/internal/path"
	"github.com/jpl-au/fusen/internal/scan"
	"github.com/jpl-au/fusen/internal/service"
)

// DirsResult contains the outcome of a dirs operation.
type DirsResult struct {
	Dirs    []string     `json:"dirs"`
	Changed bool         `json:"changed"`
	Scan    *scan.Result `json:"scan,omitempty"`
}

func (e *Extension) newDirsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "dirs",
		Short: "Manage the scan directories",
		Long: `List, add and remove the directories that scan, prune and watch use.

  fusen dirs ls
  fusen dirs add ~/Videos
  fusen dirs add --no-scan /mnt/nas/media
  fusen dirs rm ~/Videos`,
		Run: func(c *cobra.Command, _ []string) {
			_ = c.Help()
		},
	}
	c.AddCommand(e.newDirsLsCmd(), e.newDirsAddCmd(), e.newDirsRmCmd())
	return c
}

func (e *Extension) newDirsLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List scan directories",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			dirs := e.ctx.Config().ScanDirectories
			log.Event("scan:dirs", "list").Count(len(dirs)).Write(nil)
			if cmd.JSON() {
				return cmd.PrintJSON(DirsResult{Dirs: nonNil(dirs)})
			}
			for _, d := range dirs {
				fmt.Fprintln(cmd.Out(), d)
			}
			return nil
		},
	}
}

func (e *Extension) newDirsAddCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add <dir>",
		Short: "Register a scan directory and scan it",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			noScan, _ := c.Flags().GetBool(extension.FlagNoScan)

			ctx, stop := interruptible(c.Context())
			defer stop()
			result, err := addDir(ctx, cmd.Text(), e.ctx.Service(), e.ctx.Config(), args[0], !noScan, e.options(c))

			log.Event("scan:dirs", "add").
				Path(args[0]).
				Detail("scan", !noScan).
				Write(err)

			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("dirs add: %w", err))
			}
			if cmd.JSON() {
				return cmd.PrintJSON(result)
			}
			if !result.Changed {
				fmt.Fprintf(cmd.Out(), "%s is already a scan directory\n", args[0])
			}
			return nil
		},
	}
	c.Flags().Bool(extension.FlagNoScan, false, "Register without scanning")
	c.Flags().Bool(extension.FlagSkipHidden, false, "Skip dot files and dot directories")
	return c
}

func (e *Extension) newDirsRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <dir>",
		Short: "Unregister a scan directory (tracked paths stay)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			result, err := removeDir(e.ctx.Config(), args[0])

			log.Event("scan:dirs", "rm").Path(args[0]).Write(err)

			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("dirs rm: %w", err))
			}
			if cmd.JSON() {
				return cmd.PrintJSON(result)
			}
			if result.Changed {
				fmt.Fprintf(cmd.Out(), "Removed scan directory %s\n", args[0])
			} else {
				fmt.Fprintf(cmd.Out(), "%s is not a scan directory\n", args[0])
			}
			return nil
		},
	}
}

// addDir registers dir in cfg, saves it and, when scanNow is set, tracks
// every file below it.
func addDir(ctx context.Context, w io.Writer, svc service.Service, cfg *config.Config, dir string, scanNow bool, opts scan.Options) (DirsResult, error) {
	p, err := path.Normalise(dir)
	if err != nil {
		return DirsResult{}, err
	}
	info, err := os.Stat(p)
	if err != nil {
		return DirsResult{}, err
	}
	if !info.IsDir() {
		return DirsResult{}, fmt.Errorf("%s is not a directory", p)
	}

	result := DirsResult{Changed: cfg.AddScanDirectory(p)}
	if result.Changed {
		if err := cfg.Save(); err != nil {
			return result, err
		}
		fmt.Fprintf(w, "Added scan directory %s\n", p)
	}
	result.Dirs = nonNil(cfg.ScanDirectories)

	if !scanNow {
		return result, nil
	}
	opts.Mode = scan.Recursive
	out := scan.Start(ctx, w, svc, []string{p}, scan.JobReconcile, opts).Wait()
	if out.Err != nil {
		return result, out.Err
	}
	result.Scan = &out.Result
	fmt.Fprintf(w, "Tracked %d new file(s)\n", len(out.Result.Added))
	return result, nil
}

// removeDir unregisters dir from cfg and saves it.
func removeDir(cfg *config.Config, dir string) (DirsResult, error) {
	p, err := path.Normalise(dir)
	if err != nil {
		return DirsResult{}, err
	}
	result := DirsResult{Changed: cfg.RemoveScanDirectory(p)}
	if result.Changed {
		if err := cfg.Save(); err != nil {
			return result, err
		}
	}
	result.Dirs = nonNil(cfg.ScanDirectories)
	return result, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// dirsTool exposes the registry to MCP clients.
func dirsTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("fusen_dirs",
			mcp.WithDescription("List, add or remove scan directories. Adding a directory also tracks every file below it unless scan is false."),
			mcp.WithString("action", mcp.Required(), mcp.Enum("list", "add", "remove"), mcp.Description("What to do")),
			mcp.WithString("dir", mcp.Description("Directory for add and remove")),
			mcp.WithBoolean("scan", mcp.Description("Scan an added directory straight away (default true)")),
		),
		Handler: handleDirsTool,
	}
}

func handleDirsTool(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action, _ := req.RequireString("action")
	dir, _ := req.RequireString("dir")
	scanNow := true
	if args, ok := req.Params.Arguments.(map[string]any); ok {
		if v, ok := args["scan"].(bool); ok {
			scanNow = v
		}
	}

	// Reload so changes made by the CLI since the server started are seen.
	cfg, err := config.Load(extCtx.Dir())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result DirsResult
	switch action {
	case "list":
		result = DirsResult{Dirs: nonNil(cfg.ScanDirectories)}
	case "add", "remove":
		if dir == "" {
			err = errors.New("dir is required")
			break
		}
		if action == "add" {
			opts := scan.FromConfig(cfg, extCtx.Logger())
			result, err = addDir(ctx, io.Discard, extCtx.Service(), cfg, dir, scanNow, opts)
		} else {
			result, err = removeDir(cfg, dir)
		}
	default:
		err = fmt.Errorf("unknown action %q", action)
	}

	log.Event("mcp:dirs", action).Path(dir).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
