package pkggraph

import (
	"regexp"

	pkgerrors "github.com/aws-ros-dev/colcon-package-information/pkg/errors"
)

// Selection describes which packages should pass the selection filter.
// Positive filters (Names, Pattern, UpTo, Above) intersect with each
// other; Skip and SkipPattern are applied last and always win. A zero
// Selection keeps every package selected.
type Selection struct {
	Names   []string       // exact package names
	Pattern *regexp.Regexp // names matching the pattern
	UpTo    []string       // named packages plus their recursive dependencies
	Above   []string       // named packages plus their recursive dependents

	Skip        []string
	SkipPattern *regexp.Regexp
}

// Apply updates the Selected flag of every node in the set according
// to the selection. It returns an error when a filter names a package
// that does not exist in the set.
func (sel Selection) Apply(set *NodeSet) error {
	allowed, err := sel.allowedNames(set)
	if err != nil {
		return err
	}

	skip := make(map[string]bool, len(sel.Skip))
	for _, name := range sel.Skip {
		skip[name] = true
	}

	for i := 0; i < set.Len(); i++ {
		node := set.At(NodeID(i))
		name := node.Descriptor.Name
		node.Selected = (allowed == nil || allowed[name]) &&
			!skip[name] &&
			(sel.SkipPattern == nil || !sel.SkipPattern.MatchString(name))
	}
	return nil
}

// allowedNames intersects the positive filters. A nil result means no
// positive filter was given and every name is allowed.
func (sel Selection) allowedNames(set *NodeSet) (map[string]bool, error) {
	var sets []map[string]bool

	if len(sel.Names) > 0 {
		names := make(map[string]bool, len(sel.Names))
		for _, name := range sel.Names {
			if err := requireKnown(set, name); err != nil {
				return nil, err
			}
			names[name] = true
		}
		sets = append(sets, names)
	}

	if sel.Pattern != nil {
		names := make(map[string]bool)
		for i := 0; i < set.Len(); i++ {
			if name := set.At(NodeID(i)).Descriptor.Name; sel.Pattern.MatchString(name) {
				names[name] = true
			}
		}
		sets = append(sets, names)
	}

	if len(sel.UpTo) > 0 {
		names, err := dependencyClosure(set, sel.UpTo)
		if err != nil {
			return nil, err
		}
		sets = append(sets, names)
	}

	if len(sel.Above) > 0 {
		names, err := dependentClosure(set, sel.Above)
		if err != nil {
			return nil, err
		}
		sets = append(sets, names)
	}

	if len(sets) == 0 {
		return nil, nil
	}
	allowed := sets[0]
	for _, other := range sets[1:] {
		for name := range allowed {
			if !other[name] {
				delete(allowed, name)
			}
		}
	}
	return allowed, nil
}

// dependencyClosure returns the roots plus every name transitively
// reachable from them through any dependency category, restricted to
// names that exist in the set.
func dependencyClosure(set *NodeSet, roots []string) (map[string]bool, error) {
	closure := make(map[string]bool)
	queue := make([]string, 0, len(roots))
	for _, name := range roots {
		if err := requireKnown(set, name); err != nil {
			return nil, err
		}
		closure[name] = true
		queue = append(queue, name)
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		for _, id := range set.ByName(name) {
			desc := set.At(id).Descriptor
			for _, c := range Categories {
				for _, dep := range desc.Dependencies[c] {
					if closure[dep] || set.ByName(dep) == nil {
						continue
					}
					closure[dep] = true
					queue = append(queue, dep)
				}
			}
		}
	}
	return closure, nil
}

// dependentClosure returns the roots plus every name that transitively
// depends on them through any category.
func dependentClosure(set *NodeSet, roots []string) (map[string]bool, error) {
	closure := make(map[string]bool)
	queue := make([]string, 0, len(roots))
	for _, name := range roots {
		if err := requireKnown(set, name); err != nil {
			return nil, err
		}
		closure[name] = true
		queue = append(queue, name)
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		for i := 0; i < set.Len(); i++ {
			desc := set.At(NodeID(i)).Descriptor
			if closure[desc.Name] || !desc.DependsOn(name) {
				continue
			}
			closure[desc.Name] = true
			queue = append(queue, desc.Name)
		}
	}
	return closure, nil
}

func requireKnown(set *NodeSet, name string) error {
	if set.ByName(name) == nil {
		return pkgerrors.New(pkgerrors.ErrCodePackageNotFound, "unknown package: %s", name)
	}
	return nil
}
