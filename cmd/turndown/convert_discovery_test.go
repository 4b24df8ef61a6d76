package main

import (
	"errors"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// TestDiscoverJobs
// ---------------------------------------------------------------------------

func TestDiscoverJobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	page := writeFile(t, dir, "page.html", "<p>x</p>")
	writeFile(t, dir, "site/index.html", "<p>i</p>")
	writeFile(t, dir, "site/docs/a.xhtml", "<p>a</p>")
	writeFile(t, dir, "site/style.css", "p{}")
	site := filepath.Join(dir, "site")
	out := filepath.Join(dir, "out")

	tests := []struct {
		name   string
		args   []string
		output string
		want   []job
	}{
		{
			name: "no args reads stdin",
			want: []job{{Source: "-", Kind: sourceStdin}},
		},
		{
			name: "single file to stdout",
			args: []string{page},
			want: []job{{Source: page, Kind: sourceFile}},
		},
		{
			name:   "single file to output file",
			args:   []string{page},
			output: filepath.Join(dir, "result.md"),
			want:   []job{{Source: page, Kind: sourceFile, Output: filepath.Join(dir, "result.md")}},
		},
		{
			name:   "single file to output dir",
			args:   []string{page},
			output: out,
			want:   []job{{Source: page, Kind: sourceFile, Output: filepath.Join(out, "page.md")}},
		},
		{
			name: "single URL to stdout",
			args: []string{"https://example.com/a"},
			want: []job{{Source: "https://example.com/a", Kind: sourceURL}},
		},
		{
			name: "directory next to sources",
			args: []string{site},
			want: []job{
				{Source: filepath.Join(site, "docs", "a.xhtml"), Kind: sourceFile, Output: filepath.Join(site, "docs", "a.md")},
				{Source: filepath.Join(site, "index.html"), Kind: sourceFile, Output: filepath.Join(site, "index.md")},
			},
		},
		{
			name:   "directory mirrored under output",
			args:   []string{site},
			output: out,
			want: []job{
				{Source: filepath.Join(site, "docs", "a.xhtml"), Kind: sourceFile, Output: filepath.Join(out, "docs", "a.md")},
				{Source: filepath.Join(site, "index.html"), Kind: sourceFile, Output: filepath.Join(out, "index.md")},
			},
		},
		{
			name: "mixed inputs without output",
			args: []string{page, "https://example.com/", "-"},
			want: []job{
				{Source: page, Kind: sourceFile, Output: filepath.Join(dir, "page.md")},
				{Source: "https://example.com/", Kind: sourceURL},
				{Source: "-", Kind: sourceStdin},
			},
		},
		{
			name:   "mixed inputs with output",
			args:   []string{"https://example.com/", "-"},
			output: out,
			want: []job{
				{Source: "https://example.com/", Kind: sourceURL, Output: filepath.Join(out, "example.md")},
				{Source: "-", Kind: sourceStdin, Output: filepath.Join(out, "stdin.md")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := discoverJobs(tt.args, tt.output)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d jobs, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("job[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDiscoverJobs_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "only.txt", "text")

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"missing path", []string{filepath.Join(dir, "missing.html")}, ErrReadInput},
		{"no HTML in directory", []string{dir}, ErrNoInput},
		{"stdin twice", []string{"-", "-"}, ErrUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := discoverJobs(tt.args, "")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsDirTarget / TestURLFileName
// ---------------------------------------------------------------------------

func TestIsDirTarget(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		output string
		want   bool
	}{
		{dir, true},
		{"out/", true},
		{"out", true},
		{"out/readme.md", false},
		{"notes.txt", false},
	}

	for _, tt := range tests {
		if got := isDirTarget(tt.output); got != tt.want {
			t.Errorf("isDirTarget(%q) = %v, want %v", tt.output, got, tt.want)
		}
	}
}

func TestURLFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/", "example.md"},
		{"https://example.com", "example.md"},
		{"https://example.com/blog/post.html", "post.md"},
		{"https://example.com/blog/post/", "post.md"},
		{"https://example.com/docs?page=2", "docs.md"},
		{"https://localhost:8080/", "localhost.md"},
	}

	for _, tt := range tests {
		if got := urlFileName(tt.url); got != tt.want {
			t.Errorf("urlFileName(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
