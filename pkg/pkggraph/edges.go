package pkggraph

// Edge is a directed relationship from a source node to a target name,
// tagged with the categories under which it holds. Targets are names
// rather than IDs: when duplicate names exist the DOT renderer fans the
// edge out to every matching node instance.
type Edge struct {
	From       NodeID
	To         string
	Categories map[Category]bool
	Indirect   bool
}

// Colors returns the DOT color for each category present on the edge,
// in fixed category priority order.
func (e *Edge) Colors() []string {
	var colors []string
	for _, c := range Categories {
		if e.Categories[c] {
			colors = append(colors, categoryColors[c])
		}
	}
	return colors
}

var categoryColors = map[Category]string{
	CategoryBuild: "blue",
	CategoryRun:   "red",
	CategoryTest:  "tan",
}

type edgeKey struct {
	from NodeID
	to   string
}

// EdgeSet accumulates edges, merging categories for repeated
// (source, target) pairs. Insertion order is preserved so renderer
// output is deterministic.
type EdgeSet struct {
	edges []Edge
	index map[edgeKey]int
}

// NewEdgeSet creates an empty edge set.
func NewEdgeSet() *EdgeSet {
	return &EdgeSet{index: make(map[edgeKey]int)}
}

func (s *EdgeSet) add(from NodeID, to string, c Category, indirect bool) {
	key := edgeKey{from, to}
	if i, ok := s.index[key]; ok {
		s.edges[i].Categories[c] = true
		return
	}
	s.index[key] = len(s.edges)
	s.edges = append(s.edges, Edge{
		From:       from,
		To:         to,
		Categories: map[Category]bool{c: true},
		Indirect:   indirect,
	})
}

// Has reports whether an edge exists from the node to the target name.
func (s *EdgeSet) Has(from NodeID, to string) bool {
	_, ok := s.index[edgeKey{from, to}]
	return ok
}

// Edges returns the collected edges in insertion order.
func (s *EdgeSet) Edges() []Edge { return s.edges }

// Len returns the number of distinct (source, target) pairs.
func (s *EdgeSet) Len() int { return len(s.edges) }

// CollectDirect finds, for each selected node, the selected nodes it
// declares a dependency on, under any category. Multiple categories
// targeting the same pair merge into one edge's category set.
func CollectDirect(set *NodeSet) *EdgeSet {
	edges := NewEdgeSet()
	selected := set.SelectedNames()
	for _, id := range set.SelectedIDs() {
		desc := set.At(id).Descriptor
		for _, c := range Categories {
			for _, dep := range desc.Dependencies[c] {
				if !selected[dep] {
					continue
				}
				edges.add(id, dep, c, false)
			}
		}
	}
	return edges
}

// CollectIndirect finds relationships that pass through at least one
// unselected node: the source declares a dependency on an unselected
// but known name, and some instance of that name transitively reaches
// a selected name through its run-closure. The edge carries the
// category of the first hop only. Pairs already covered by a direct
// edge are skipped, as are fully unknown dependency names.
func CollectIndirect(set *NodeSet, direct *EdgeSet) *EdgeSet {
	edges := NewEdgeSet()
	selected := set.SelectedNames()
	for _, id := range set.SelectedIDs() {
		desc := set.At(id).Descriptor
		for _, c := range Categories {
			for _, dep := range desc.Dependencies[c] {
				if selected[dep] {
					continue // covered by CollectDirect
				}
				for _, mid := range set.ByName(dep) {
					for _, reached := range set.At(mid).sortedClosure() {
						if !selected[reached] {
							continue
						}
						if direct.Has(id, reached) {
							continue
						}
						edges.add(id, reached, c, true)
					}
				}
			}
		}
	}
	return edges
}
