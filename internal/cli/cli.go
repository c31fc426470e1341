// Package cli implements the colcon-info command-line interface.
//
// Commands operate on a workspace directory: discovery parses package
// manifests, the packages are ordered topologically, selection filters
// are applied, and the result is listed (list), rendered as an ASCII
// dependency matrix (graph), rendered as a DOT digraph (dot), served
// over HTTP (serve), or browsed interactively (browse).
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/aws-ros-dev/colcon-package-information/pkg/buildinfo"
	"github.com/aws-ros-dev/colcon-package-information/pkg/cache"
)

const (
	// appName is the application name used for directories and display.
	appName = "colcon-info"

	// redisAddrEnv selects the shared Redis cache backend when set.
	redisAddrEnv = "COLCON_INFO_REDIS_ADDR"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "colcon-info inspects package dependency graphs in a workspace",
		Long:         `colcon-info discovers the packages of a workspace, orders them topologically and lists them or renders their dependency graph as an ASCII matrix or a Graphviz digraph.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.listCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newCache picks the discovery-cache backend: the null cache when
// caching is disabled, Redis when COLCON_INFO_REDIS_ADDR is set, and
// the XDG file cache otherwise. Backend failures degrade to the null
// cache with a warning rather than failing the command.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	if addr := os.Getenv(redisAddrEnv); addr != "" {
		rc, err := cache.NewRedisCache(ctx, addr)
		if err == nil {
			return rc
		}
		c.Logger.Warnf("Redis cache %s unavailable, falling back to file cache: %v", addr, err)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/colcon-info/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
