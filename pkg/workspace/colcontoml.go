package workspace

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	pkgerrors "github.com/aws-ros-dev/colcon-package-information/pkg/errors"
	"github.com/aws-ros-dev/colcon-package-information/pkg/pkggraph"
)

// ColconTOML parses colcon.toml manifests, the plain descriptor format
// for packages outside the ROS ecosystem:
//
//	name = "imaging"
//	type = "cmake"
//
//	[dependencies]
//	build = ["common"]
//	run = ["common", "drivers"]
//	test = ["testkit"]
type ColconTOML struct{}

func (p *ColconTOML) Type() string              { return "colcon.toml" }
func (p *ColconTOML) Supports(name string) bool { return name == "colcon.toml" }

type colconManifest struct {
	Name         string `toml:"name"`
	Type         string `toml:"type"`
	Dependencies struct {
		Build []string `toml:"build"`
		Run   []string `toml:"run"`
		Test  []string `toml:"test"`
	} `toml:"dependencies"`
}

// Parse reads a colcon.toml manifest. The type tag defaults to "cmake"
// when omitted.
func (p *ColconTOML) Parse(path string) (*pkggraph.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeManifestNotFound, err, "read %s", path)
	}

	var m colconManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidManifest, err, "parse %s", path)
	}

	name := strings.TrimSpace(m.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.ErrCodeInvalidManifest, "missing name in %s", path)
	}
	typ := m.Type
	if typ == "" {
		typ = "cmake"
	}

	desc := pkggraph.NewDescriptor(name, filepath.Dir(path), typ)
	for _, dep := range m.Dependencies.Build {
		desc.AddDependency(pkggraph.CategoryBuild, dep)
	}
	for _, dep := range m.Dependencies.Run {
		desc.AddDependency(pkggraph.CategoryRun, dep)
	}
	for _, dep := range m.Dependencies.Test {
		desc.AddDependency(pkggraph.CategoryTest, dep)
	}
	return desc, nil
}
