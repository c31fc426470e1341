package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// listCommand creates the list command: package names, paths and types,
// one line per selected package.
func (c *CLI) listCommand() *cobra.Command {
	var (
		flags            workspaceFlags
		namesOnly        bool
		pathsOnly        bool
		topologicalOrder bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List packages in the workspace",
		Long: `List packages in the workspace.

By default each line holds the package name, its path and its type,
sorted alphabetically. With --topological-order packages are listed in
dependency order instead: a package appears after everything it
run-depends on.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := c.loadNodeSet(cmd.Context(), &flags)
			if err != nil {
				return err
			}

			var lines []string
			for _, id := range set.SelectedIDs() {
				desc := set.At(id).Descriptor
				switch {
				case namesOnly:
					lines = append(lines, desc.Name)
				case pathsOnly:
					lines = append(lines, desc.Path)
				default:
					lines = append(lines, fmt.Sprintf("%s\t%s\t(%s)", desc.Name, desc.Path, desc.Type))
				}
			}
			if !topologicalOrder {
				sort.Strings(lines)
			}

			out := cmd.OutOrStdout()
			if len(lines) > 0 {
				fmt.Fprintln(out, strings.Join(lines, "\n"))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&namesOnly, "names-only", "n", false, "output only the name of each package")
	cmd.Flags().BoolVarP(&pathsOnly, "paths-only", "p", false, "output only the path of each package")
	cmd.Flags().BoolVarP(&topologicalOrder, "topological-order", "t", false, "order output topologically instead of alphabetically")
	cmd.MarkFlagsMutuallyExclusive("names-only", "paths-only")

	return cmd
}
