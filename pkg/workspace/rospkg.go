package workspace

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"

	pkgerrors "github.com/aws-ros-dev/colcon-package-information/pkg/errors"
	"github.com/aws-ros-dev/colcon-package-information/pkg/pkggraph"
)

// PackageXML parses ROS package.xml manifests (format 1 through 3).
//
// Dependency tags map onto categories the way the ROS tooling treats
// them: <depend> counts as both build and run, <buildtool_depend> and
// <build_depend> as build, <exec_depend> and the legacy <run_depend>
// as run, and <test_depend> as test.
type PackageXML struct{}

func (p *PackageXML) Type() string              { return "ros.package.xml" }
func (p *PackageXML) Supports(name string) bool { return name == "package.xml" }

type rosPackage struct {
	XMLName         xml.Name `xml:"package"`
	Name            string   `xml:"name"`
	BuildtoolDepend []string `xml:"buildtool_depend"`
	BuildDepend     []string `xml:"build_depend"`
	ExecDepend      []string `xml:"exec_depend"`
	RunDepend       []string `xml:"run_depend"`
	TestDepend      []string `xml:"test_depend"`
	Depend          []string `xml:"depend"`
	Export          struct {
		BuildType string `xml:"build_type"`
	} `xml:"export"`
}

// Parse reads a package.xml manifest. The descriptor type is
// "ros.<build_type>", defaulting to ros.catkin when the manifest does
// not export a build type.
func (p *PackageXML) Parse(path string) (*pkggraph.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeManifestNotFound, err, "read %s", path)
	}

	var pkg rosPackage
	if err := xml.Unmarshal(data, &pkg); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidManifest, err, "parse %s", path)
	}

	name := strings.TrimSpace(pkg.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.ErrCodeInvalidManifest, "missing <name> in %s", path)
	}

	buildType := strings.TrimSpace(pkg.Export.BuildType)
	if buildType == "" {
		buildType = "catkin"
	}

	desc := pkggraph.NewDescriptor(name, filepath.Dir(path), "ros."+buildType)
	addAll := func(c pkggraph.Category, names []string) {
		for _, n := range names {
			if n = strings.TrimSpace(n); n != "" {
				desc.AddDependency(c, n)
			}
		}
	}
	addAll(pkggraph.CategoryBuild, pkg.BuildtoolDepend)
	addAll(pkggraph.CategoryBuild, pkg.BuildDepend)
	addAll(pkggraph.CategoryBuild, pkg.Depend)
	addAll(pkggraph.CategoryRun, pkg.ExecDepend)
	addAll(pkggraph.CategoryRun, pkg.RunDepend)
	addAll(pkggraph.CategoryRun, pkg.Depend)
	addAll(pkggraph.CategoryTest, pkg.TestDepend)
	return desc, nil
}
