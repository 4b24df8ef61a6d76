package main

import (
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-turndown/internal/browser"
	"github.com/alnah/go-turndown/internal/config"
	"github.com/alnah/go-turndown/internal/extract"
	"github.com/alnah/go-turndown/internal/fetch"
	"github.com/alnah/go-turndown/markdown"
	"github.com/alnah/go-turndown/plugin"
)

// Exit codes for the turndown CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error, failed rule
	ExitUsage   = 2 // Invalid flags, config, options or selectors
	ExitIO      = 3 // File not found, permission denied
	ExitNetwork = 4 // Browser or download errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser and network errors (exit 4)
	if errors.Is(err, browser.ErrBrowserConnect) ||
		errors.Is(err, browser.ErrPageCreate) ||
		errors.Is(err, browser.ErrPageLoad) ||
		errors.Is(err, browser.ErrDOMSnapshot) ||
		errors.Is(err, fetch.ErrHTTPStatus) ||
		errors.Is(err, fetch.ErrBodyTooLarge) ||
		errors.Is(err, ErrFetch) {
		return ExitNetwork
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, flag.ErrHelp) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, markdown.ErrInvalidOptions) ||
		errors.Is(err, plugin.ErrUnknownPlugin) ||
		errors.Is(err, extract.ErrInvalidSelector) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) {
		return ExitUsage
	}

	return ExitGeneral
}
