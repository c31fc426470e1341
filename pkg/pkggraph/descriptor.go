// Package pkggraph models workspace packages and renders their
// dependency relationships.
//
// The package provides the data model (Descriptor, Node, NodeSet), the
// edge collectors that derive direct and indirect relationships among a
// selected subset of nodes, and two renderers over the collected edges:
// an ASCII adjacency matrix (with an optional density metric) and a
// Graphviz DOT directed graph.
//
// Renderers are pure functions of an already-ordered NodeSet. They do
// not verify that the ordering is topologically valid - that is the
// responsibility of the toposort package.
package pkggraph

import "slices"

// Category classifies a dependency by when it is needed.
type Category string

// The closed set of dependency categories.
const (
	CategoryBuild Category = "build"
	CategoryRun   Category = "run"
	CategoryTest  Category = "test"
)

// Categories lists all categories in priority order. Iteration over
// categories must follow this order wherever display order matters
// (matrix symbols, DOT edge colors).
var Categories = []Category{CategoryBuild, CategoryRun, CategoryTest}

// Descriptor is an immutable description of a package: its name, its
// filesystem path, a build-type tag, and its declared dependency names
// per category.
//
// Names are not guaranteed unique across a workspace - two overlay
// workspaces may both contain a package called "common". Dependency
// names need not correspond to a known package either; unknown names
// are tolerated everywhere and simply never rendered.
type Descriptor struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type,omitempty"`

	// Dependencies maps each category to a sorted, de-duplicated list
	// of dependency names. Use AddDependency to maintain the invariant.
	Dependencies map[Category][]string `json:"dependencies,omitempty"`
}

// NewDescriptor creates a descriptor with an empty dependency mapping.
func NewDescriptor(name, path, typ string) *Descriptor {
	return &Descriptor{
		Name:         name,
		Path:         path,
		Type:         typ,
		Dependencies: make(map[Category][]string),
	}
}

// AddDependency records a dependency name under the given category,
// keeping the per-category list sorted and free of duplicates.
func (d *Descriptor) AddDependency(c Category, name string) {
	if d.Dependencies == nil {
		d.Dependencies = make(map[Category][]string)
	}
	deps := d.Dependencies[c]
	i, found := slices.BinarySearch(deps, name)
	if found {
		return
	}
	d.Dependencies[c] = slices.Insert(deps, i, name)
}

// DependsOn reports whether the descriptor declares name under any
// category.
func (d *Descriptor) DependsOn(name string) bool {
	for _, c := range Categories {
		if _, found := slices.BinarySearch(d.Dependencies[c], name); found {
			return true
		}
	}
	return false
}
