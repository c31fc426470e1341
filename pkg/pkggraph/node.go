package pkggraph

import "slices"

// NodeID identifies a node by its position in the NodeSet. Identity is
// positional rather than name-based because package names are not
// guaranteed unique; lookups and edge endpoints must always use the ID.
type NodeID int

// Node wraps a Descriptor with selection state and the precomputed
// transitive run-dependency closure.
type Node struct {
	Descriptor *Descriptor

	// Selected marks nodes that passed the external selection filter.
	// Only selected nodes appear as matrix rows and DOT nodes.
	Selected bool

	// RunClosure is the set of names transitively reachable from this
	// node by following run-category dependencies, computed over the
	// entire node set regardless of selection.
	RunClosure map[string]bool
}

// NodeSet is an ordered collection of nodes. The order is assumed to be
// topologically valid with respect to run-category dependencies among
// selected nodes; the set never re-verifies it.
type NodeSet struct {
	nodes  []Node
	byName map[string][]NodeID
}

// NewNodeSet builds a set over the given nodes, indexing them by name.
// The slice order is preserved and becomes the render order.
func NewNodeSet(nodes []Node) *NodeSet {
	s := &NodeSet{
		nodes:  nodes,
		byName: make(map[string][]NodeID),
	}
	for i := range nodes {
		name := nodes[i].Descriptor.Name
		s.byName[name] = append(s.byName[name], NodeID(i))
	}
	return s
}

// Len returns the total number of nodes, selected or not.
func (s *NodeSet) Len() int { return len(s.nodes) }

// At returns the node with the given ID.
func (s *NodeSet) At(id NodeID) *Node { return &s.nodes[id] }

// ByName returns the IDs of every node instance carrying the given
// name, in set order. Returns nil for unknown names.
func (s *NodeSet) ByName(name string) []NodeID { return s.byName[name] }

// SelectedIDs returns the IDs of all selected nodes in set order.
func (s *NodeSet) SelectedIDs() []NodeID {
	var ids []NodeID
	for i := range s.nodes {
		if s.nodes[i].Selected {
			ids = append(ids, NodeID(i))
		}
	}
	return ids
}

// SelectedNames returns the set of names carried by selected nodes.
func (s *NodeSet) SelectedNames() map[string]bool {
	names := make(map[string]bool)
	for i := range s.nodes {
		if s.nodes[i].Selected {
			names[s.nodes[i].Descriptor.Name] = true
		}
	}
	return names
}

// HasDuplicateSelectedNames reports whether two selected nodes share a
// display name. When true, DOT rendering switches every node to a
// unique suffixed identity token.
func (s *NodeSet) HasDuplicateSelectedNames() bool {
	seen := make(map[string]bool)
	for i := range s.nodes {
		if !s.nodes[i].Selected {
			continue
		}
		name := s.nodes[i].Descriptor.Name
		if seen[name] {
			return true
		}
		seen[name] = true
	}
	return false
}

// sortedClosure returns the run-closure names in sorted order for
// deterministic iteration.
func (n *Node) sortedClosure() []string {
	names := make([]string, 0, len(n.RunClosure))
	for name := range n.RunClosure {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
