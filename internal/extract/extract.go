// Package extract isolates the main content of a parsed HTML page before
// conversion. It:
//  1. Removes noise elements matched by strip selectors
//  2. Selects the content root with a user selector, or picks the best
//     container (<main>, <article>, then <body>) in auto mode
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Sentinel errors for extraction.
var (
	ErrInvalidSelector = errors.New("invalid CSS selector")
	ErrNoContent       = errors.New("no content matched")
)

// DefaultNoise lists the elements stripped in auto mode. They carry no
// document content. Images and inputs are kept: they convert to Markdown.
var DefaultNoise = []string{
	"script", "style", "noscript", "template",
	"nav", "footer", "aside",
	"iframe", "svg", "canvas",
	"form", "button", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
}

// containers are tried in order when no selector is given in auto mode.
var containers = []string{"main", "article", "body"}

// Extractor strips noise and selects the content root of a page.
// It is immutable after New and safe for concurrent use.
type Extractor struct {
	selector cascadia.Selector
	strip    []cascadia.Selector
	auto     bool
}

// New compiles the selectors. selector may be empty; strip selectors are
// removed before selection. With auto set, DefaultNoise is stripped too and
// an empty selector falls back to main, article, then body.
func New(selector string, strip []string, auto bool) (*Extractor, error) {
	e := &Extractor{auto: auto}

	if s := strings.TrimSpace(selector); s != "" {
		sel, err := compile(s)
		if err != nil {
			return nil, err
		}
		e.selector = sel
	}

	if auto {
		strip = append(append([]string(nil), DefaultNoise...), strip...)
	}
	for _, s := range strip {
		if strings.TrimSpace(s) == "" {
			continue
		}
		sel, err := compile(s)
		if err != nil {
			return nil, err
		}
		e.strip = append(e.strip, sel)
	}

	return e, nil
}

func compile(s string) (cascadia.Selector, error) {
	sel, err := cascadia.Compile(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSelector, s, err)
	}
	return sel, nil
}

// Active reports whether Extract would change anything.
func (e *Extractor) Active() bool {
	return e.selector != nil || len(e.strip) > 0 || e.auto
}

// Extract removes stripped elements from doc, modifying it, and returns
// the content root. Without a selector or auto mode the root is doc itself.
func (e *Extractor) Extract(doc *html.Node) (*html.Node, error) {
	root := goquery.NewDocumentFromNode(doc)

	for _, sel := range e.strip {
		root.FindMatcher(sel).Remove()
	}

	if e.selector != nil {
		match := root.FindMatcher(e.selector)
		if match.Length() == 0 {
			return nil, ErrNoContent
		}
		return match.Get(0), nil
	}

	if e.auto {
		for _, tag := range containers {
			if match := root.Find(tag); match.Length() > 0 {
				return match.Get(0), nil
			}
		}
	}

	return doc, nil
}
