package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pkgerrors "github.com/aws-ros-dev/colcon-package-information/pkg/errors"
)

// testWorkspace builds a three-package workspace: base <- lib <- app.
func testWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	manifests := map[string]string{
		"base/package.xml": `<package><name>base</name></package>`,
		"lib/package.xml": `<package>
  <name>lib</name>
  <depend>base</depend>
</package>`,
		"app/colcon.toml": `name = "app"
type = "python"

[dependencies]
run = ["lib"]
`,
	}
	for rel, content := range manifests {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// runCommand executes the root command with args and captures stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	root := testWorkspace(t)

	t.Run("default", func(t *testing.T) {
		out, err := runCommand(t, "list", "--base-path", root, "--no-cache")
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(out), "\n")
		if len(lines) != 3 {
			t.Fatalf("lines = %d, want 3: %q", len(lines), out)
		}
		// Alphabetical, one package per line with path and type.
		if !strings.HasPrefix(lines[0], "app\t") || !strings.HasSuffix(lines[0], "(python)") {
			t.Errorf("line 0 = %q", lines[0])
		}
		if !strings.HasPrefix(lines[1], "base\t") || !strings.HasSuffix(lines[1], "(ros.catkin)") {
			t.Errorf("line 1 = %q", lines[1])
		}
	})

	t.Run("names only topological", func(t *testing.T) {
		out, err := runCommand(t, "list", "--base-path", root, "--no-cache", "-n", "-t")
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		want := "base\nlib\napp\n"
		if out != want {
			t.Errorf("output = %q, want %q", out, want)
		}
	})

	t.Run("paths only", func(t *testing.T) {
		out, err := runCommand(t, "list", "--base-path", root, "--no-cache", "-p")
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
			if !strings.HasPrefix(line, root) {
				t.Errorf("line %q is not a workspace path", line)
			}
		}
	})

	t.Run("selection", func(t *testing.T) {
		out, err := runCommand(t, "list", "--base-path", root, "--no-cache", "-n", "--packages-up-to", "lib")
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if got := strings.TrimSpace(out); got != "base\nlib" {
			t.Errorf("output = %q, want base and lib", got)
		}
	})

	t.Run("unknown package", func(t *testing.T) {
		_, err := runCommand(t, "list", "--base-path", root, "--no-cache", "--packages-select", "nope")
		if code := pkgerrors.GetCode(err); code != pkgerrors.ErrCodePackageNotFound {
			t.Errorf("code = %v, want %v", code, pkgerrors.ErrCodePackageNotFound)
		}
	})
}

func TestGraphCommand(t *testing.T) {
	root := testWorkspace(t)

	out, err := runCommand(t, "graph", "--base-path", root, "--no-cache", "--density")
	if err != nil {
		t.Fatalf("graph failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	want := []string{
		"base  +  ",
		"lib   *+ ",
		"app    *+",
		"dependency density 66.67 %",
	}
	if len(lines) != len(want) {
		t.Fatalf("output = %q, want %d lines", out, len(want))
	}
	for i, line := range want {
		if lines[i] != line {
			t.Errorf("line %d = %q, want %q", i, lines[i], line)
		}
	}
}

func TestDotCommand(t *testing.T) {
	root := testWorkspace(t)
	outFile := filepath.Join(t.TempDir(), "graph.dot")

	_, err := runCommand(t, "dot", "--base-path", root, "--no-cache", "-o", outFile)
	if err != nil {
		t.Fatalf("dot failed: %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)

	for _, line := range []string{
		"digraph graphname {",
		`  "app" -> "lib" [color="red"];`,
		`  "lib" -> "base" [color="blue:red"];`,
	} {
		if !strings.Contains(got, line) {
			t.Errorf("missing %q in %q", line, got)
		}
	}
}

func TestDotCommandInvalidFormat(t *testing.T) {
	_, err := runCommand(t, "dot", "--base-path", t.TempDir(), "--no-cache", "-f", "gif")
	if code := pkgerrors.GetCode(err); code != pkgerrors.ErrCodeInvalidFormat {
		t.Errorf("code = %v, want %v", code, pkgerrors.ErrCodeInvalidFormat)
	}
}
