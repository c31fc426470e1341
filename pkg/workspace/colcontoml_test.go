package workspace

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	pkgerrors "github.com/aws-ros-dev/colcon-package-information/pkg/errors"
	"github.com/aws-ros-dev/colcon-package-information/pkg/pkggraph"
)

func TestColconTOML_Supports(t *testing.T) {
	parser := &ColconTOML{}

	tests := []struct {
		filename string
		want     bool
	}{
		{"colcon.toml", true},
		{"Colcon.toml", false},
		{"package.xml", false},
		{"pyproject.toml", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := parser.Supports(tt.filename); got != tt.want {
				t.Errorf("Supports(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestColconTOML_Parse(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "colcon.toml")
	content := `name = "imaging"
type = "cmake"

[dependencies]
build = ["common"]
run = ["common", "drivers"]
test = ["testkit"]
`
	if err := os.WriteFile(manifest, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	desc, err := (&ColconTOML{}).Parse(manifest)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if desc.Name != "imaging" {
		t.Errorf("Name = %q, want imaging", desc.Name)
	}
	if desc.Type != "cmake" {
		t.Errorf("Type = %q, want cmake", desc.Type)
	}

	want := map[pkggraph.Category][]string{
		pkggraph.CategoryBuild: {"common"},
		pkggraph.CategoryRun:   {"common", "drivers"},
		pkggraph.CategoryTest:  {"testkit"},
	}
	for c, deps := range want {
		if got := desc.Dependencies[c]; !reflect.DeepEqual(got, deps) {
			t.Errorf("%s deps = %v, want %v", c, got, deps)
		}
	}
}

func TestColconTOML_ParseDefaults(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "colcon.toml")
	if err := os.WriteFile(manifest, []byte(`name = "bare"`), 0644); err != nil {
		t.Fatal(err)
	}

	desc, err := (&ColconTOML{}).Parse(manifest)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if desc.Type != "cmake" {
		t.Errorf("Type = %q, want cmake", desc.Type)
	}
}

func TestColconTOML_ParseMissingName(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "colcon.toml")
	if err := os.WriteFile(manifest, []byte(`type = "cmake"`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := (&ColconTOML{}).Parse(manifest)
	if err == nil {
		t.Fatal("expected error")
	}
	if code := pkgerrors.GetCode(err); code != pkgerrors.ErrCodeInvalidManifest {
		t.Errorf("code = %v, want %v", code, pkgerrors.ErrCodeInvalidManifest)
	}
}
