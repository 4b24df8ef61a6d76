package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/alnah/go-turndown"
	"github.com/alnah/go-turndown/internal/cdp"
	"github.com/alnah/go-turndown/internal/extract"
	"github.com/alnah/go-turndown/internal/fileutil"
)

// filePermissions applies to written Markdown files.
const filePermissions = 0o644 // rw-r--r--: owner read+write, others read

// pipeline turns one input into Markdown. It is shared by all workers:
// every field is safe for concurrent use.
type pipeline struct {
	svc       *turndown.Service
	extractor *extract.Extractor
	fetcher   pageFetcher // set for URL inputs without --render
	renderer  domRenderer // set for URL inputs with --render
	stdin     io.Reader
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	Job      job
	Markdown string // kept only for stdout outputs
	Err      error
	Duration time.Duration
}

// batchError reports failed conversions of a batch. errors.Is matches the
// error of any failed conversion.
type batchError struct {
	failed, total int
	errs          []error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d conversion(s) failed", e.failed, e.total)
}

func (e *batchError) Unwrap() []error {
	return e.errs
}

// resolveWorkers determines the worker count.
// Priority: explicit flag > TURNDOWN_WORKERS > GOMAXPROCS-based calculation.
func resolveWorkers(flagWorkers, envWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	if envWorkers > 0 {
		return min(envWorkers, maxWorkers)
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0) / 2

	// Minimum 1, maximum 8
	if n < 1 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}

// needsNetwork reports whether any job reads a URL.
func needsNetwork(jobs []job) bool {
	for _, j := range jobs {
		if j.Kind == sourceURL {
			return true
		}
	}
	return false
}

// convertBatch converts jobs concurrently with up to workers goroutines.
// Results keep the order of jobs. Jobs not started when ctx is canceled
// fail with the context error.
func convertBatch(ctx context.Context, p *pipeline, jobs []job, workers int, logger *slog.Logger) []ConversionResult {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := min(max(workers, 1), len(jobs))

	results := make([]ConversionResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range queue {
				if err := ctx.Err(); err != nil {
					results[idx] = ConversionResult{Job: jobs[idx], Err: err}
					continue
				}
				results[idx] = p.run(ctx, jobs[idx], logger.With("input", jobs[idx].Source))
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// run converts one job and writes its file output.
func (p *pipeline) run(ctx context.Context, j job, logger *slog.Logger) ConversionResult {
	start := time.Now()
	result := ConversionResult{Job: j}

	md, err := p.convert(ctx, j)
	if err == nil && j.Output != "" {
		// #nosec G306 -- Markdown files are meant to be readable
		if werr := fileutil.WriteFileAtomic(j.Output, []byte(md+"\n"), filePermissions); werr != nil {
			err = fmt.Errorf("%w: %s: %w", ErrWriteOutput, j.Output, werr)
		}
	}
	result.Duration = time.Since(start)

	if err != nil {
		result.Err = err
		logger.Error("conversion failed", "err", err)
		return result
	}
	if j.Output == "" {
		result.Markdown = md
	}
	logger.Debug("converted", "output", outputName(j), "duration", result.Duration.Round(time.Millisecond))
	return result
}

// convert loads, parses, extracts and converts one input.
func (p *pipeline) convert(ctx context.Context, j job) (string, error) {
	root, err := p.load(ctx, j)
	if err != nil {
		return "", err
	}

	if p.extractor != nil && p.extractor.Active() {
		root, err = p.extractor.Extract(root)
		if err != nil {
			return "", err
		}
	}

	return p.svc.TurndownNode(turndown.FromHTMLNode(root))
}

// load returns the parsed document of a job.
func (p *pipeline) load(ctx context.Context, j job) (*html.Node, error) {
	var data []byte
	var err error

	switch j.Kind {
	case sourceStdin:
		data, err = io.ReadAll(p.stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: standard input: %w", ErrReadInput, err)
		}
	case sourceURL:
		if p.renderer != nil {
			dom, err := p.renderer.Document(ctx, j.Source)
			if err != nil {
				return nil, err
			}
			if doc := cdp.ToHTML(dom); doc != nil {
				return doc, nil
			}
			return nil, fmt.Errorf("%w: %s: empty document", ErrFetch, j.Source)
		}
		if p.fetcher == nil {
			return nil, fmt.Errorf("%w: %s: no fetcher configured", ErrFetch, j.Source)
		}
		data, err = p.fetcher.Fetch(ctx, j.Source)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: %w", ErrFetch, err)
		}
	default:
		data, err = os.ReadFile(j.Source) // #nosec G304 -- user-provided or discovered path
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
		}
	}

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", turndown.ErrParseHTML, err)
	}
	return doc, nil
}

// reportResults writes stdout Markdown in input order, logs file outputs
// and a summary, and returns a batchError when any conversion failed.
// A single failed conversion returns its own error.
func reportResults(results []ConversionResult, env *Environment, logger *slog.Logger) error {
	var errs []error
	var stdout []string

	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Job.Source, r.Err))
			continue
		}
		if r.Job.Output == "" {
			stdout = append(stdout, r.Markdown)
			continue
		}
		logger.Info("created", "output", r.Job.Output)
	}

	if len(stdout) > 0 {
		if _, err := io.WriteString(env.Stdout, strings.Join(stdout, "\n\n")+"\n"); err != nil {
			return fmt.Errorf("%w: standard output: %w", ErrWriteOutput, err)
		}
	}

	if len(results) > 1 {
		logger.Info("done", "succeeded", len(results)-len(errs), "failed", len(errs))
	}

	switch len(errs) {
	case 0:
		return nil
	case 1:
		if len(results) == 1 {
			return errs[0]
		}
	}
	return &batchError{failed: len(errs), total: len(results), errs: errs}
}

// outputName returns the job output for logs.
func outputName(j job) string {
	if j.Output == "" {
		return "stdout"
	}
	return j.Output
}
