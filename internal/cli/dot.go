package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	pkgerrors "github.com/aws-ros-dev/colcon-package-information/pkg/errors"
	"github.com/aws-ros-dev/colcon-package-information/pkg/pkggraph"
	"github.com/aws-ros-dev/colcon-package-information/pkg/render"
)

// Output formats of the dot command.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// dotCommand creates the dot command: the dependency graph in Graphviz
// DOT syntax, optionally rasterized to SVG or PNG.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		flags   workspaceFlags
		cluster bool
		output  string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Render the dependency graph as a Graphviz digraph",
		Long: `Render the dependency graph of the selected packages in DOT syntax.

Edge colors encode the dependency category (blue=build, red=run,
tan=test) and dashed edges mark transitive dependencies discovered
through unselected packages. With -f svg or -f png the graph is
rasterized using the embedded Graphviz engine instead of printing DOT
text.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatDOT && format != formatSVG && format != formatPNG {
				return pkgerrors.New(pkgerrors.ErrCodeInvalidFormat,
					"unknown format %q (available: dot, svg, png)", format)
			}

			set, err := c.loadNodeSet(cmd.Context(), &flags)
			if err != nil {
				return err
			}

			direct := pkggraph.CollectDirect(set)
			indirect := pkggraph.CollectIndirect(set, direct)
			dot := pkggraph.RenderDot(set, direct, indirect, pkggraph.DotOptions{Cluster: cluster})

			var data []byte
			switch format {
			case formatDOT:
				data = []byte(dot)
			case formatSVG:
				data, err = render.SVG(cmd.Context(), dot)
			case formatPNG:
				data, err = render.PNG(cmd.Context(), dot)
			}
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}

			out, err := openOutput(output)
			if err != nil {
				return err
			}
			defer out.Close()
			if _, err := out.Write(data); err != nil {
				return err
			}
			if output != "" {
				c.Logger.Infof("Wrote %s graph to %s", format, output)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&cluster, "cluster", false, "group packages by their filesystem path")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&format, "format", "f", formatDOT, "output format: dot, svg, png")

	return cmd
}

// nopCloser wraps an io.Writer with a no-op Close method, making
// os.Stdout usable where an io.WriteCloser is expected.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path, or stdout when
// the path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
