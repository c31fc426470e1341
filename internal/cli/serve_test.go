package cli

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestServeEndpoints(t *testing.T) {
	root := testWorkspace(t)
	c := New(io.Discard, LogInfo)
	flags := &workspaceFlags{basePath: root, noCache: true}
	srv := httptest.NewServer(c.router(flags))
	defer srv.Close()

	get := func(t *testing.T, path string) (*http.Response, string) {
		t.Helper()
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatal(err)
		}
		return resp, string(body)
	}

	t.Run("healthz", func(t *testing.T) {
		resp, body := get(t, "/healthz")
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d", resp.StatusCode)
		}
		if strings.TrimSpace(body) != "ok" {
			t.Errorf("body = %q", body)
		}
		if resp.Header.Get("X-Request-Id") == "" {
			t.Error("missing X-Request-Id header")
		}
	})

	t.Run("graph.dot", func(t *testing.T) {
		resp, body := get(t, "/graph.dot")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d: %s", resp.StatusCode, body)
		}
		if got := resp.Header.Get("Content-Type"); got != "text/vnd.graphviz" {
			t.Errorf("content type = %q", got)
		}
		if !strings.HasPrefix(body, "digraph graphname {") {
			t.Errorf("body = %q", body)
		}
		if !strings.Contains(body, `"lib" -> "base"`) {
			t.Errorf("missing edge in %q", body)
		}
	})

	t.Run("matrix", func(t *testing.T) {
		resp, body := get(t, "/matrix")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d: %s", resp.StatusCode, body)
		}
		if !strings.Contains(body, "lib   *+ ") {
			t.Errorf("missing matrix row in %q", body)
		}
		if !strings.Contains(body, "dependency density") {
			t.Errorf("missing density line in %q", body)
		}
	})

	t.Run("bad workspace", func(t *testing.T) {
		bad := New(io.Discard, LogInfo)
		badFlags := &workspaceFlags{basePath: "/does/not/exist", noCache: true}
		badSrv := httptest.NewServer(bad.router(badFlags))
		defer badSrv.Close()

		resp, err := http.Get(badSrv.URL + "/matrix")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", resp.StatusCode)
		}
	})
}
