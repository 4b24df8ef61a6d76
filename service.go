package turndown

import (
	"fmt"
	"sync"

	"github.com/alnah/go-turndown/internal/textproc"
	"github.com/alnah/go-turndown/markdown"
)

// Service converts HTML to Markdown under one set of options and rules.
// Conversions may run concurrently. Registering rules waits for running
// conversions to finish.
type Service struct {
	mu      sync.RWMutex
	opts    Options
	reg     registry
	plugins []Plugin
}

// New creates a Service with default options.
// Use options to customize the output style (e.g., WithHeadingStyle).
func New(opts ...Option) (*Service, error) {
	s := &Service{opts: DefaultOptions()}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.opts.Validate(); err != nil {
		return nil, err
	}
	s.opts = s.opts.Normalize()

	// Plugins run after validation so they see the final options.
	plugins := s.plugins
	s.plugins = nil
	s.Use(plugins...)

	return s, nil
}

// Turndown parses an HTML fragment and converts it to Markdown.
func (s *Service) Turndown(html string) (string, error) {
	doc, err := ParseHTML(html)
	if err != nil {
		return "", err
	}
	return s.TurndownNode(doc)
}

// TurndownNode converts an already-built Node tree to Markdown.
// The tree is not modified.
func (s *Service) TurndownNode(n *Node) (out string, err error) {
	if n == nil {
		return "", ErrNilNode
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("internal error: %v", r)
		}
	}()

	c := converter{reg: &s.reg, opts: s.opts}
	doc := c.document(n)
	return markdown.Serialize(doc, s.opts)
}

// Document converts n to the Markdown AST without serializing it. Custom
// rules stay deferred inside ReplacedBlock and ReplacedInline nodes.
// Returns nil for a nil node.
func (s *Service) Document(n *Node) *markdown.Document {
	if n == nil {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c := converter{reg: &s.reg, opts: s.opts}
	doc := c.document(n)
	return &doc
}

// AddRule registers a custom rule. Custom rules are tried in registration
// order after keep and remove filters. Re-adding a name replaces the rule
// in place. Panics on an empty name, nil filter or nil replacement
// (programmer error).
func (s *Service) AddRule(name string, filter Filter, fn ReplacementFunc) *Service {
	if name == "" {
		panic("turndown: AddRule name must not be empty")
	}
	if filter == nil {
		panic("turndown: AddRule filter must not be nil")
	}
	if fn == nil {
		panic("turndown: AddRule replacement must not be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.add(Rule{Name: name, Filter: filter, Replacement: fn})
	return s
}

// Keep renders matching elements as their original HTML.
// Panics if filter is nil (programmer error).
func (s *Service) Keep(filter Filter) *Service {
	if filter == nil {
		panic("turndown: Keep filter must not be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.keep = append(s.reg.keep, filter)
	return s
}

// Remove drops matching elements and their content. Remove filters take
// precedence over every other rule.
// Panics if filter is nil (programmer error).
func (s *Service) Remove(filter Filter) *Service {
	if filter == nil {
		panic("turndown: Remove filter must not be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.remove = append(s.reg.remove, filter)
	return s
}

// Use applies plugins in order. Nil plugins are ignored.
func (s *Service) Use(plugins ...Plugin) *Service {
	for _, p := range plugins {
		if p != nil {
			p(s)
		}
	}
	return s
}

// Escape backslash-escapes Markdown syntax in text without collapsing
// whitespace.
func (s *Service) Escape(text string) string {
	return textproc.Escape(text)
}

// Options returns the normalized options of the service.
func (s *Service) Options() Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts
}
