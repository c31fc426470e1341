package pkggraph

import (
	"reflect"
	"testing"
)

func TestDescriptorAddDependency(t *testing.T) {
	d := NewDescriptor("app", "/ws/app", "cmake")
	d.AddDependency(CategoryRun, "zlib")
	d.AddDependency(CategoryRun, "ament")
	d.AddDependency(CategoryRun, "zlib") // duplicate
	d.AddDependency(CategoryBuild, "cmake_modules")

	if got := d.Dependencies[CategoryRun]; !reflect.DeepEqual(got, []string{"ament", "zlib"}) {
		t.Errorf("run deps = %v, want sorted without duplicates", got)
	}
	if got := d.Dependencies[CategoryBuild]; !reflect.DeepEqual(got, []string{"cmake_modules"}) {
		t.Errorf("build deps = %v", got)
	}
}

func TestDescriptorDependsOn(t *testing.T) {
	d := NewDescriptor("app", "/ws/app", "cmake")
	d.AddDependency(CategoryTest, "gtest")

	if !d.DependsOn("gtest") {
		t.Error("DependsOn(gtest) = false")
	}
	if d.DependsOn("gmock") {
		t.Error("DependsOn(gmock) = true")
	}
}

func TestNodeSetByName(t *testing.T) {
	set := NewNodeSet([]Node{
		testNode(testDescriptor("common", nil)),
		testNode(testDescriptor("app", nil)),
		testNode(testDescriptor("common", nil)),
	})

	if got := set.ByName("common"); !reflect.DeepEqual(got, []NodeID{0, 2}) {
		t.Errorf("ByName(common) = %v, want [0 2]", got)
	}
	if set.ByName("ghost") != nil {
		t.Error("ByName(ghost) should be nil")
	}
	if !set.HasDuplicateSelectedNames() {
		t.Error("HasDuplicateSelectedNames() = false")
	}
}
