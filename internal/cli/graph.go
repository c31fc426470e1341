package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aws-ros-dev/colcon-package-information/pkg/pkggraph"
)

// graphCommand creates the graph command: the dependency graph of the
// selected packages as an ASCII adjacency matrix.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		flags   workspaceFlags
		legend  bool
		density bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the dependency graph as an ASCII matrix",
		Long: `Render the dependency graph of the selected packages as an ASCII
adjacency matrix, one row per package in topological order.

Each row marks the package itself with +, its direct dependencies with
* and its transitive dependencies with a dot.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := c.loadNodeSet(cmd.Context(), &flags)
			if err != nil {
				return err
			}

			direct := pkggraph.CollectDirect(set)
			indirect := pkggraph.CollectIndirect(set, direct)
			matrix := pkggraph.BuildMatrix(set, direct, indirect)

			fmt.Fprint(cmd.OutOrStdout(), matrix.Render(pkggraph.MatrixOptions{
				Legend:  legend,
				Density: density,
			}))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&legend, "legend", false, "print a symbol legend before the matrix")
	cmd.Flags().BoolVar(&density, "density", false, "print the dependency density after the matrix")

	return cmd
}
