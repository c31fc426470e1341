package pkggraph

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DotOptions configures DOT graph rendering.
type DotOptions struct {
	// Cluster groups nodes by their parent directory relative to the
	// common ancestor of all selected nodes. When no common ancestor
	// exists, rendering silently falls back to the unclustered form.
	Cluster bool
}

// RenderDot renders the selected nodes and the collected edges as a
// Graphviz digraph.
//
// Node identity tokens are plain package names unless two selected
// nodes share a name; in that case every token gets a unique ID suffix
// and a label attribute restores the display name. Direct edges are
// drawn solid, indirect edges dashed, both colored by category
// (build=blue, run=red, test=tan, multiple categories joined by ":").
// A target name shared by several node instances fans the edge out to
// each of them.
func RenderDot(set *NodeSet, direct, indirect *EdgeSet, opts DotOptions) string {
	lines := []string{"digraph graphname {"}

	// Reverse of set order, matching the legacy left-to-right layout.
	ids := set.SelectedIDs()
	reversed := make([]NodeID, len(ids))
	for i, id := range ids {
		reversed[len(ids)-1-i] = id
	}

	duplicates := set.HasDuplicateSelectedNames()
	token := func(id NodeID) (name, attrs string) {
		desc := set.At(id).Descriptor
		if !duplicates {
			// Plain names keep the dot output readable.
			return desc.Name, ""
		}
		return fmt.Sprintf("%s_%d", desc.Name, id),
			fmt.Sprintf(" [label = %q]", desc.Name)
	}

	common, ok := "", false
	if opts.Cluster {
		parents := make([]string, len(reversed))
		for i, id := range reversed {
			parents[i] = filepath.Dir(set.At(id).Descriptor.Path)
		}
		common, ok = commonPath(parents)
	}

	if !opts.Cluster || !ok {
		for _, id := range reversed {
			name, attrs := token(id)
			lines = append(lines, fmt.Sprintf("  %q%s;", name, attrs))
		}
	} else {
		lines = append(lines, clusterLines(set, reversed, common, token)...)
	}

	for _, edges := range []*EdgeSet{direct, indirect} {
		for _, e := range edges.Edges() {
			style := ""
			if e.Indirect {
				style = `, style="dashed"`
			}
			colors := strings.Join(e.Colors(), ":")
			start, _ := token(e.From)
			// Duplicate names are ambiguous: draw the edge to every
			// instance carrying the target name.
			for _, end := range set.ByName(e.To) {
				endName, _ := token(end)
				lines = append(lines, fmt.Sprintf("  %q -> %q [color=%q%s];", start, endName, colors, style))
			}
		}
	}

	lines = append(lines, "}")
	return strings.Join(lines, "\n") + "\n"
}

// clusterLines emits node declarations grouped by parent directory
// relative to the common ancestor. Groups whose relative path is empty
// (the parent is the common root itself) are emitted without a
// subgraph wrapper.
func clusterLines(set *NodeSet, ids []NodeID, common string, token func(NodeID) (string, string)) []string {
	var order []string
	groups := make(map[string][]NodeID)
	for _, id := range ids {
		rel, err := filepath.Rel(common, filepath.Dir(set.At(id).Descriptor.Path))
		if err != nil || rel == "." {
			rel = ""
		}
		if _, seen := groups[rel]; !seen {
			order = append(order, rel)
		}
		groups[rel] = append(groups[rel], id)
	}

	var lines []string
	for i, rel := range order {
		indent := "  "
		if rel != "" {
			lines = append(lines, fmt.Sprintf("  subgraph cluster_%d {", i))
			lines = append(lines, fmt.Sprintf("    label = %q;", rel))
			indent = "    "
		}
		for _, id := range groups[rel] {
			name, attrs := token(id)
			lines = append(lines, fmt.Sprintf("%s%q%s;", indent, name, attrs))
		}
		if rel != "" {
			lines = append(lines, "  }")
		}
	}
	return lines
}

// commonPath computes the longest common ancestor of the given paths.
// It reports false when the ancestor is undefined: an empty input, a
// mix of absolute and relative paths, or relative paths that share no
// leading component.
func commonPath(paths []string) (string, bool) {
	if len(paths) == 0 {
		return "", false
	}

	abs := filepath.IsAbs(paths[0])
	split := make([][]string, len(paths))
	for i, p := range paths {
		if filepath.IsAbs(p) != abs {
			return "", false
		}
		p = filepath.ToSlash(filepath.Clean(p))
		p = strings.TrimPrefix(p, "/")
		if p == "" || p == "." {
			split[i] = nil
		} else {
			split[i] = strings.Split(p, "/")
		}
	}

	prefix := split[0]
	for _, parts := range split[1:] {
		n := 0
		for n < len(prefix) && n < len(parts) && prefix[n] == parts[n] {
			n++
		}
		prefix = prefix[:n]
	}

	if len(prefix) == 0 && !abs {
		return "", false
	}
	joined := strings.Join(prefix, string(filepath.Separator))
	if abs {
		return string(filepath.Separator) + joined, true
	}
	return joined, true
}
