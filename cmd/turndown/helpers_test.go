package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-turndown/internal/config"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake network clients and environment
// ---------------------------------------------------------------------------

// fakeFetcher serves pages from a map. Unknown URLs fail with err.
type fakeFetcher struct {
	pages map[string]string
	err   error

	mu      sync.Mutex
	fetched []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, url)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page, ok := f.pages[url]
	if !ok {
		if f.err != nil {
			return nil, f.err
		}
		return nil, fmt.Errorf("no page for %s", url)
	}
	return []byte(page), nil
}

// fakeRenderer returns a fixed DOM or error and records Close.
type fakeRenderer struct {
	dom    *proto.DOMNode
	err    error
	closed bool
}

func (r *fakeRenderer) Document(_ context.Context, _ string) (*proto.DOMNode, error) {
	return r.dom, r.err
}

func (r *fakeRenderer) Close() error {
	r.closed = true
	return nil
}

// testEnv bundles an Environment with its captured output.
type testEnv struct {
	*Environment
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	fetcher  *fakeFetcher
	renderer *fakeRenderer
	timeout  time.Duration // timeout passed to the last client constructor
}

func newTestEnv(stdin string) *testEnv {
	te := &testEnv{
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		fetcher:  &fakeFetcher{pages: map[string]string{}},
		renderer: &fakeRenderer{},
	}
	te.Environment = &Environment{
		Stdin:  strings.NewReader(stdin),
		Stdout: te.stdout,
		Stderr: te.stderr,
		NewFetcher: func(_ config.FetchConfig, timeout time.Duration) pageFetcher {
			te.timeout = timeout
			return te.fetcher
		},
		NewRenderer: func(timeout time.Duration) domRenderer {
			te.timeout = timeout
			return te.renderer
		},
	}
	return te
}

// run invokes runMain with the program name prepended.
func (te *testEnv) run(args ...string) int {
	return runMain(append([]string{"turndown"}, args...), te.Environment)
}

// writeFile creates a file (and parent directories) under dir.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
