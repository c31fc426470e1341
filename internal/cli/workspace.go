package cli

import (
	"context"
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/aws-ros-dev/colcon-package-information/pkg/pkggraph"
	"github.com/aws-ros-dev/colcon-package-information/pkg/toposort"
	"github.com/aws-ros-dev/colcon-package-information/pkg/workspace"
)

// workspaceFlags holds the flags shared by every command that reads a
// workspace: the base path, cache controls, and package selection.
type workspaceFlags struct {
	basePath string
	noCache  bool
	refresh  bool

	packagesSelect      []string
	packagesSkip        []string
	packagesSelectRegex string
	packagesSkipRegex   string
	packagesUpTo        []string
	packagesAbove       []string
}

// register adds the shared flags to cmd.
func (f *workspaceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.basePath, "base-path", ".", "workspace directory to crawl for packages")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the discovery cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "bypass the discovery cache for this run")

	cmd.Flags().StringSliceVar(&f.packagesSelect, "packages-select", nil, "only process the named packages")
	cmd.Flags().StringSliceVar(&f.packagesSkip, "packages-skip", nil, "skip the named packages")
	cmd.Flags().StringVar(&f.packagesSelectRegex, "packages-select-regex", "", "only process packages matching the pattern")
	cmd.Flags().StringVar(&f.packagesSkipRegex, "packages-skip-regex", "", "skip packages matching the pattern")
	cmd.Flags().StringSliceVar(&f.packagesUpTo, "packages-up-to", nil, "only process the named packages and their recursive dependencies")
	cmd.Flags().StringSliceVar(&f.packagesAbove, "packages-above", nil, "only process the named packages and their recursive dependents")
}

// selection compiles the selection flags into a pkggraph.Selection.
func (f *workspaceFlags) selection() (pkggraph.Selection, error) {
	sel := pkggraph.Selection{
		Names: f.packagesSelect,
		Skip:  f.packagesSkip,
		UpTo:  f.packagesUpTo,
		Above: f.packagesAbove,
	}
	if f.packagesSelectRegex != "" {
		re, err := regexp.Compile(f.packagesSelectRegex)
		if err != nil {
			return sel, fmt.Errorf("--packages-select-regex: %w", err)
		}
		sel.Pattern = re
	}
	if f.packagesSkipRegex != "" {
		re, err := regexp.Compile(f.packagesSkipRegex)
		if err != nil {
			return sel, fmt.Errorf("--packages-skip-regex: %w", err)
		}
		sel.SkipPattern = re
	}
	return sel, nil
}

// loadNodeSet runs the full pipeline in front of the renderers:
// discover manifests, order topologically, apply selection. The
// spinner is skipped for non-interactive callers (the HTTP server).
func (c *CLI) loadNodeSet(ctx context.Context, f *workspaceFlags) (*pkggraph.NodeSet, error) {
	return c.load(ctx, f, true)
}

// loadNodeSetQuiet is loadNodeSet without terminal progress output.
func (c *CLI) loadNodeSetQuiet(ctx context.Context, f *workspaceFlags) (*pkggraph.NodeSet, error) {
	return c.load(ctx, f, false)
}

func (c *CLI) load(ctx context.Context, f *workspaceFlags, interactive bool) (*pkggraph.NodeSet, error) {
	sel, err := f.selection()
	if err != nil {
		return nil, err
	}

	store := c.newCache(ctx, f.noCache)
	defer store.Close()

	var spinner *Spinner
	if interactive {
		spinner = newSpinner(ctx, fmt.Sprintf("Scanning %s...", f.basePath))
		spinner.Start()
	}
	prog := newProgress(c.Logger)
	descriptors, err := workspace.Discover(ctx, f.basePath, workspace.DiscoverOptions{
		Cache:   store,
		Refresh: f.refresh,
	})
	if err != nil {
		if spinner != nil {
			spinner.StopWithError("Workspace scan failed")
		}
		return nil, err
	}
	if spinner != nil {
		spinner.Stop()
	}
	prog.done(fmt.Sprintf("Discovered %d packages", len(descriptors)))

	set, err := toposort.Order(descriptors)
	if err != nil {
		return nil, err
	}
	if err := sel.Apply(set); err != nil {
		return nil, err
	}
	return set, nil
}
