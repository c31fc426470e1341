package workspace

import (
	"testing"

	pkgerrors "github.com/aws-ros-dev/colcon-package-information/pkg/errors"
)

func TestDetect(t *testing.T) {
	parsers := DefaultParsers()

	tests := []struct {
		path     string
		wantType string
	}{
		{"/ws/nav/package.xml", "ros.package.xml"},
		{"/ws/imaging/colcon.toml", "colcon.toml"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p, err := Detect(tt.path, parsers...)
			if err != nil {
				t.Fatalf("Detect failed: %v", err)
			}
			if p.Type() != tt.wantType {
				t.Errorf("Type() = %q, want %q", p.Type(), tt.wantType)
			}
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		_, err := Detect("/ws/pkg/setup.py", parsers...)
		if code := pkgerrors.GetCode(err); code != pkgerrors.ErrCodeInvalidManifest {
			t.Errorf("code = %v, want %v", code, pkgerrors.ErrCodeInvalidManifest)
		}
	})
}
