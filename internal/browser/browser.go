// Package browser renders remote pages in headless Chrome and returns their
// DOM as seen by the DevTools protocol, after scripts have run.
package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultTimeout bounds page loading when the context has no deadline.
const DefaultTimeout = 30 * time.Second

// Sentinel errors for browser operations.
var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrDOMSnapshot    = errors.New("failed to read page DOM")
)

// Renderer loads pages in a lazily launched headless Chrome.
// Rod downloads Chromium on first run if no browser is found.
// Safe for concurrent use; pages share one browser process.
type Renderer struct {
	mu      sync.Mutex
	browser *rod.Browser
	timeout time.Duration
}

// New creates a Renderer. A non-positive timeout selects DefaultTimeout.
func New(timeout time.Duration) *Renderer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Renderer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *Renderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New()

	// Pre-installed browser (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containers
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = b
	return b, nil
}

// Close releases browser resources. Calling Close on a Renderer that never
// launched a browser is a no-op.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// Document navigates to url, waits for the load event and returns the full
// DOM tree, shadow roots included.
func (r *Renderer) Document(ctx context.Context, url string) (*proto.DOMNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timeout, err := loadTimeout(ctx, r.timeout)
	if err != nil {
		return nil, err
	}

	b, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	if err := page.Context(ctx).Timeout(timeout).WaitLoad(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrPageLoad, url, err)
	}

	depth := -1
	res, err := proto.DOMGetDocument{Depth: &depth, Pierce: true}.Call(page.Context(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDOMSnapshot, err)
	}
	if res.Root == nil {
		return nil, fmt.Errorf("%w: empty document", ErrDOMSnapshot)
	}
	return res.Root, nil
}

// loadTimeout returns the time left before the context deadline, or def when
// the context has none.
func loadTimeout(ctx context.Context, def time.Duration) (time.Duration, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return def, nil
	}
	left := time.Until(deadline)
	if left <= 0 {
		return 0, context.DeadlineExceeded
	}
	return left, nil
}
