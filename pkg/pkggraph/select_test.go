package pkggraph

import (
	"reflect"
	"regexp"
	"testing"

	pkgerrors "github.com/aws-ros-dev/colcon-package-information/pkg/errors"
)

// chainSet builds base <- lib <- app with a standalone extra package.
func chainSet() *NodeSet {
	return NewNodeSet([]Node{
		testNode(testDescriptor("base", nil)),
		testNode(testDescriptor("lib", map[Category][]string{
			CategoryRun: {"base"},
		}), "base"),
		testNode(testDescriptor("app", map[Category][]string{
			CategoryRun: {"lib"},
		}), "lib", "base"),
		testNode(testDescriptor("extra", nil)),
	})
}

func selectedNames(set *NodeSet) []string {
	var names []string
	for _, id := range set.SelectedIDs() {
		names = append(names, set.At(id).Descriptor.Name)
	}
	return names
}

func TestSelectionApply(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
		want []string
	}{
		{"zero selection keeps all", Selection{}, []string{"base", "lib", "app", "extra"}},
		{"names", Selection{Names: []string{"lib", "extra"}}, []string{"lib", "extra"}},
		{"pattern", Selection{Pattern: regexp.MustCompile("^(lib|app)$")}, []string{"lib", "app"}},
		{"up to", Selection{UpTo: []string{"lib"}}, []string{"base", "lib"}},
		{"above", Selection{Above: []string{"lib"}}, []string{"lib", "app"}},
		{"above leaf", Selection{Above: []string{"base"}}, []string{"base", "lib", "app"}},
		{"intersection", Selection{Pattern: regexp.MustCompile("b"), UpTo: []string{"app"}}, []string{"base", "lib"}},
		{"skip wins", Selection{UpTo: []string{"app"}, Skip: []string{"lib"}}, []string{"base", "app"}},
		{"skip pattern", Selection{SkipPattern: regexp.MustCompile("^e")}, []string{"base", "lib", "app"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := chainSet()
			if err := tt.sel.Apply(set); err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			if got := selectedNames(set); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("selected = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectionUnknownPackage(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
	}{
		{"names", Selection{Names: []string{"nope"}}},
		{"up to", Selection{UpTo: []string{"nope"}}},
		{"above", Selection{Above: []string{"nope"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sel.Apply(chainSet())
			if err == nil {
				t.Fatal("expected error for unknown package")
			}
			if code := pkgerrors.GetCode(err); code != pkgerrors.ErrCodePackageNotFound {
				t.Errorf("code = %v, want %v", code, pkgerrors.ErrCodePackageNotFound)
			}
		})
	}
}

func TestSelectionCoversDuplicateNames(t *testing.T) {
	set := NewNodeSet([]Node{
		testNode(testDescriptor("common", nil)),
		testNode(testDescriptor("common", nil)),
		testNode(testDescriptor("app", nil)),
	})

	sel := Selection{Names: []string{"common"}}
	if err := sel.Apply(set); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := selectedNames(set); !reflect.DeepEqual(got, []string{"common", "common"}) {
		t.Errorf("selected = %v, want both instances", got)
	}
}
