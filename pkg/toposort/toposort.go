// Package toposort orders workspace packages topologically with
// respect to their run-category dependencies and computes each
// package's transitive run-dependency closure.
//
// The produced NodeSet is the input contract of the pkggraph
// renderers: dependencies come before their dependents, and every node
// carries a precomputed run-closure over the entire set.
package toposort

import (
	"errors"
	"strconv"

	"github.com/dominikbraun/graph"

	pkgerrors "github.com/aws-ros-dev/colcon-package-information/pkg/errors"
	"github.com/aws-ros-dev/colcon-package-information/pkg/pkggraph"
)

// Order sorts the descriptors topologically over run-category
// dependencies and returns them as a NodeSet with all nodes selected
// and run-closures populated. Ties are broken by package name, then by
// input position, so the order is stable for a given workspace.
//
// Dependency names that match no descriptor are ignored for ordering.
// A run-dependency cycle is reported as an ErrCodeDependencyCycle
// error; the renderers downstream assume acyclic input.
func Order(descriptors []*pkggraph.Descriptor) (*pkggraph.NodeSet, error) {
	byName := make(map[string][]int)
	for i, d := range descriptors {
		byName[d.Name] = append(byName[d.Name], i)
	}

	// Vertices are keyed by input position: names are not unique.
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())
	for i := range descriptors {
		if err := g.AddVertex(strconv.Itoa(i)); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInternal, err, "add vertex %d", i)
		}
	}

	for i, d := range descriptors {
		for _, dep := range d.Dependencies[pkggraph.CategoryRun] {
			for _, j := range byName[dep] {
				if j == i {
					continue
				}
				// Dependency before dependent.
				err := g.AddEdge(strconv.Itoa(j), strconv.Itoa(i))
				if errors.Is(err, graph.ErrEdgeAlreadyExists) {
					continue
				}
				if errors.Is(err, graph.ErrEdgeCreatesCycle) {
					return nil, pkgerrors.New(pkgerrors.ErrCodeDependencyCycle,
						"run dependency cycle involving %s and %s", d.Name, dep)
				}
				if err != nil {
					return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInternal, err,
						"add edge %s -> %s", dep, d.Name)
				}
			}
		}
	}

	keys, err := graph.StableTopologicalSort(g, func(a, b string) bool {
		ai, _ := strconv.Atoi(a)
		bi, _ := strconv.Atoi(b)
		if descriptors[ai].Name != descriptors[bi].Name {
			return descriptors[ai].Name < descriptors[bi].Name
		}
		return ai < bi
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeDependencyCycle, err, "topological sort")
	}

	nodes := make([]pkggraph.Node, len(keys))
	position := make([]int, len(keys)) // node index -> descriptor index
	for n, key := range keys {
		i, _ := strconv.Atoi(key)
		position[n] = i
		nodes[n] = pkggraph.Node{
			Descriptor: descriptors[i],
			Selected:   true,
			RunClosure: make(map[string]bool),
		}
	}

	// Dependencies precede dependents, so one forward pass closes the
	// run-closures: a node's closure is its known run deps plus their
	// already-complete closures.
	closureByDesc := make([]map[string]bool, len(descriptors))
	for n := range nodes {
		closure := nodes[n].RunClosure
		for _, dep := range nodes[n].Descriptor.Dependencies[pkggraph.CategoryRun] {
			instances := byName[dep]
			if len(instances) == 0 {
				continue // unknown dependency, not an error
			}
			closure[dep] = true
			for _, j := range instances {
				for name := range closureByDesc[j] {
					closure[name] = true
				}
			}
		}
		closureByDesc[position[n]] = closure
	}

	return pkggraph.NewNodeSet(nodes), nil
}
