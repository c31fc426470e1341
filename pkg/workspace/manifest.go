// Package workspace discovers packages in a workspace directory tree
// and parses their manifests into descriptors.
//
// Two manifest formats are supported: ROS-style package.xml and
// colcon.toml. Directories containing a COLCON_IGNORE marker are
// skipped, and the crawl does not descend into a directory once a
// manifest is found there.
package workspace

import (
	"path/filepath"

	pkgerrors "github.com/aws-ros-dev/colcon-package-information/pkg/errors"
	"github.com/aws-ros-dev/colcon-package-information/pkg/pkggraph"
)

// Parser reads a package descriptor from a manifest file.
type Parser interface {
	// Parse reads the manifest at path. The descriptor's Path is the
	// package directory, not the manifest file itself.
	Parse(path string) (*pkggraph.Descriptor, error)
	// Supports reports whether this parser handles the given filename.
	Supports(filename string) bool
	// Type returns the manifest type identifier (e.g., "ros.package.xml").
	Type() string
}

// DefaultParsers returns the parsers enabled by default, in detection
// priority order. package.xml wins over colcon.toml when a directory
// contains both.
func DefaultParsers() []Parser {
	return []Parser{&PackageXML{}, &ColconTOML{}}
}

// Detect finds a parser that supports the given file path.
func Detect(path string, parsers ...Parser) (Parser, error) {
	name := filepath.Base(path)
	for _, p := range parsers {
		if p.Supports(name) {
			return p, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.ErrCodeInvalidManifest, "unsupported manifest: %s", name)
}
