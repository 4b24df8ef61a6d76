package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-turndown/internal/browser"
	"github.com/alnah/go-turndown/internal/config"
	"github.com/alnah/go-turndown/internal/fetch"
)

// pageFetcher downloads remote pages.
type pageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// domRenderer loads remote pages in a browser and returns their DOM.
type domRenderer interface {
	Document(ctx context.Context, url string) (*proto.DOMNode, error)
	Close() error
}

// Compile-time interface checks
var (
	_ pageFetcher = (*fetch.Client)(nil)
	_ domRenderer = (*browser.Renderer)(nil)
)

// Environment holds injectable dependencies for testability.
// Includes I/O streams and the constructors of network clients.
type Environment struct {
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
	NewFetcher  func(cfg config.FetchConfig, timeout time.Duration) pageFetcher
	NewRenderer func(timeout time.Duration) domRenderer
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		NewFetcher:  newHTTPFetcher,
		NewRenderer: func(timeout time.Duration) domRenderer { return browser.New(timeout) },
	}
}

// newHTTPFetcher builds the net/http fetcher from the fetch config.
func newHTTPFetcher(cfg config.FetchConfig, timeout time.Duration) pageFetcher {
	opts := []fetch.Option{
		fetch.WithTimeout(timeout),
		fetch.WithUserAgent(cfg.UserAgent),
	}
	if cfg.MaxBytes > 0 {
		opts = append(opts, fetch.WithMaxBytes(cfg.MaxBytes))
	}
	return fetch.New(opts...)
}
