package pkggraph

import (
	"fmt"
	"strings"
)

// MatrixOptions configures ASCII matrix rendering.
type MatrixOptions struct {
	// Legend prints an explanation of the matrix symbols before the rows.
	Legend bool
	// Density appends the dependency density line after the rows.
	Density bool
}

// Matrix is the rendered ASCII adjacency matrix over the selected
// nodes of a set, plus the empty-cell count feeding the density metric.
type Matrix struct {
	Rows       []string
	EmptyCells int

	n int // number of selected nodes
}

// legend explains the matrix symbols, printed before the rows when
// requested.
const legend = `+ marks when the package in this row can be processed
* marks a direct dependency from the package in this row to the package in the same column
. marks a transitive dependency`

// BuildMatrix renders the selected nodes of the set as a square
// adjacency matrix in set order. Row i, column j holds "+" on the
// diagonal (the package being processed at this point), "*" when a
// direct edge exists from node i to node j, "." when an indirect edge
// exists, and a space otherwise, counted as an empty cell. Each row is
// prefixed with the package name left-padded to the longest name plus
// two.
func BuildMatrix(set *NodeSet, direct, indirect *EdgeSet) *Matrix {
	ids := set.SelectedIDs()

	maxLen := 0
	for _, id := range ids {
		if n := len(set.At(id).Descriptor.Name); n > maxLen {
			maxLen = n
		}
	}

	m := &Matrix{n: len(ids)}
	for _, src := range ids {
		var row strings.Builder
		name := set.At(src).Descriptor.Name
		row.WriteString(name)
		row.WriteString(strings.Repeat(" ", maxLen+2-len(name)))
		for _, dst := range ids {
			switch target := set.At(dst).Descriptor.Name; {
			case src == dst:
				row.WriteByte('+')
			case direct.Has(src, target):
				row.WriteByte('*')
			case indirect.Has(src, target):
				row.WriteByte('.')
			default:
				row.WriteByte(' ')
				m.EmptyCells++
			}
		}
		m.Rows = append(m.Rows, row.String())
	}
	return m
}

// Density returns the normalized density percentage of the matrix.
// A maximally dense acyclic graph reads 100%: the factor of 200 rather
// than 100 accounts for at most half of the off-diagonal cells being
// usable in a strict partial order. Sets of one or zero nodes read 0%.
func (m *Matrix) Density() float64 {
	emptyFraction := 1.0
	if m.n > 1 {
		emptyFraction = float64(m.EmptyCells) / float64(m.n*(m.n-1))
	}
	return 200.0 * (1.0 - emptyFraction)
}

// Render formats the matrix as text: optional legend, one line per
// selected node in set order, and the optional density line.
func (m *Matrix) Render(opts MatrixOptions) string {
	var b strings.Builder
	if opts.Legend {
		b.WriteString(legend)
		b.WriteString("\n\n")
	}
	for _, row := range m.Rows {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	if opts.Density {
		fmt.Fprintf(&b, "dependency density %.2f %%\n", m.Density())
	}
	return b.String()
}
