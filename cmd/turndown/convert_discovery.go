package main

import (
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/alnah/go-turndown/internal/fileutil"
)

// stdinArg names standard input on the command line.
const stdinArg = "-"

// sourceKind tells where a job reads its HTML from.
type sourceKind int

const (
	sourceFile sourceKind = iota
	sourceURL
	sourceStdin
)

// job is one input to convert.
type job struct {
	Source string     // file path, URL, or "-"
	Kind   sourceKind
	Output string     // output file; empty writes to stdout
}

// discoverJobs expands command-line inputs into jobs and assigns outputs.
// No input means standard input. Directories are walked for HTML files,
// whose Markdown is written next to them, or mirrored under output.
// A single file, URL or stdin input writes to stdout, or to output when it
// does not name a directory.
func discoverJobs(args []string, output string) ([]job, error) {
	if len(args) == 0 {
		args = []string{stdinArg}
	}

	var jobs []job
	var fromDirs []string // parallel to jobs: walked directory, or ""
	stdinSeen := false

	for _, arg := range args {
		switch {
		case arg == stdinArg:
			if stdinSeen {
				return nil, fmt.Errorf("%w: standard input given more than once", ErrUsage)
			}
			stdinSeen = true
			jobs = append(jobs, job{Source: arg, Kind: sourceStdin})
			fromDirs = append(fromDirs, "")
		case fileutil.IsURL(arg):
			jobs = append(jobs, job{Source: arg, Kind: sourceURL})
			fromDirs = append(fromDirs, "")
		default:
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
			}
			if !info.IsDir() {
				jobs = append(jobs, job{Source: arg, Kind: sourceFile})
				fromDirs = append(fromDirs, "")
				continue
			}
			files, err := walkHTML(arg)
			if err != nil {
				return nil, err
			}
			if len(files) == 0 {
				return nil, fmt.Errorf("%w: no HTML files found in %s", ErrNoInput, arg)
			}
			for _, f := range files {
				jobs = append(jobs, job{Source: f, Kind: sourceFile})
				fromDirs = append(fromDirs, arg)
			}
		}
	}

	single := len(jobs) == 1 && fromDirs[0] == ""
	if single {
		if output != "" && !isDirTarget(output) {
			jobs[0].Output = output
			return jobs, nil
		}
		if output == "" {
			return jobs, nil
		}
	}

	for i := range jobs {
		out, err := resolveOutputPath(jobs[i], fromDirs[i], output)
		if err != nil {
			return nil, err
		}
		jobs[i].Output = out
	}
	return jobs, nil
}

// walkHTML returns the HTML files under dir in lexical order.
func walkHTML(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: scanning %s: %w", ErrReadInput, p, err)
		}
		if !d.IsDir() && fileutil.IsHTML(p) {
			files = append(files, p)
		}
		return nil
	})
	return files, err
}

// resolveOutputPath determines the Markdown output path of a job in a
// multi-input run, or when output names a directory. Without output, files
// are written next to their source; URLs and stdin go to stdout.
func resolveOutputPath(j job, baseDir, outputDir string) (string, error) {
	switch j.Kind {
	case sourceStdin:
		if outputDir == "" {
			return "", nil
		}
		return filepath.Join(outputDir, "stdin.md"), nil
	case sourceURL:
		if outputDir == "" {
			return "", nil
		}
		return filepath.Join(outputDir, urlFileName(j.Source)), nil
	}

	if outputDir == "" {
		return fileutil.ReplaceExt(j.Source, ".md")
	}

	rel := filepath.Base(j.Source)
	if baseDir != "" {
		if r, err := filepath.Rel(baseDir, j.Source); err == nil {
			rel = r
		}
	}
	return fileutil.ReplaceExt(filepath.Join(outputDir, rel), ".md")
}

// isDirTarget reports whether output names a directory: an existing one,
// a path ending in a separator, or a path without extension.
func isDirTarget(output string) bool {
	if fileutil.DirExists(output) {
		return true
	}
	if strings.HasSuffix(output, "/") || strings.HasSuffix(output, string(filepath.Separator)) {
		return true
	}
	return filepath.Ext(output) == ""
}

// urlFileName derives a Markdown file name from the last path segment of a
// URL, falling back to the host for root URLs.
func urlFileName(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "index.md"
	}
	base := path.Base(u.Path)
	if base == "/" || base == "." || base == "" {
		base = u.Hostname()
	}
	base = strings.TrimSuffix(base, path.Ext(base))
	if base == "" {
		base = "index"
	}
	return base + ".md"
}
