package sandbox

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNormalizeLanguage(t *testing.T) {
	cases := map[string]string{
		"py":      "python",
		"Python3": "python",
		"JS":      "javascript",
		"node":    "javascript",
		"ts":      "typescript",
		"c++":     "cpp",
		"go":      "go",
		"haskell": "haskell",
	}
	for in, want := range cases {
		if got := NormalizeLanguage(in); got != want {
			t.Errorf("NormalizeLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExecute_SendsPayloadAndParsesResult(t *testing.T) {
	var gotReq pistonExecReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/execute" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_, _ = w.Write([]byte(`{"run":{"stdout":"42\n","stderr":"","code":0},"compile":{}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Execute(context.Background(), "print(42)", "py", "")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if res.Stdout != "42\n" || res.ExitCode != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if gotReq.Language != "python" || gotReq.Version != "3.10.0" {
		t.Fatalf("language mapping wrong: %s %s", gotReq.Language, gotReq.Version)
	}
	if len(gotReq.Files) != 1 || gotReq.Files[0].Name != "main.py" {
		t.Fatalf("files wrong: %+v", gotReq.Files)
	}
}

func TestExecute_UnknownLanguageUsesWildcardVersion(t *testing.T) {
	var gotReq pistonExecReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_, _ = w.Write([]byte(`{"run":{"stdout":"","stderr":"","code":0},"compile":{}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.Execute(context.Background(), "main = print 1", "haskell", ""); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if gotReq.Version != "*" {
		t.Fatalf("version = %q, want *", gotReq.Version)
	}
	if gotReq.Files[0].Name != "main.txt" {
		t.Fatalf("fallback extension wrong: %s", gotReq.Files[0].Name)
	}
}

func TestExecute_FoldsCompileErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"run":{"stdout":"","stderr":"segfault","code":139},"compile":{"stdout":"","stderr":"warning: unused var","code":0}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Execute(context.Background(), "int main(){}", "c", "")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(res.Stderr, "Compile Error:\nwarning: unused var") {
		t.Fatalf("compile stderr not folded: %q", res.Stderr)
	}
	if !strings.Contains(res.Stderr, "segfault") {
		t.Fatalf("run stderr lost: %q", res.Stderr)
	}
	if res.ExitCode != 139 {
		t.Fatalf("exit code = %d", res.ExitCode)
	}
}

func TestExecute_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "runtime not found", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.Execute(context.Background(), "x", "python", ""); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRuntimes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/runtimes" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`[{"language":"python","version":"3.10.0","aliases":["py","python3"]}]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	runtimes, err := c.Runtimes(context.Background())
	if err != nil {
		t.Fatalf("runtimes: %v", err)
	}
	if len(runtimes) != 1 || runtimes[0].Language != "python" || len(runtimes[0].Aliases) != 2 {
		t.Fatalf("unexpected runtimes: %+v", runtimes)
	}
}
