package turndown

import "github.com/alnah/go-turndown/markdown"

// Output style types, shared with the markdown package.
type (
	Options            = markdown.Options
	HeadingStyle       = markdown.HeadingStyle
	CodeBlockStyle     = markdown.CodeBlockStyle
	LinkStyle          = markdown.LinkStyle
	LinkReferenceStyle = markdown.LinkReferenceStyle
)

// Heading styles.
const (
	HeadingSetext = markdown.HeadingSetext
	HeadingATX    = markdown.HeadingATX
)

// Code block styles.
const (
	CodeBlockIndented = markdown.CodeBlockIndented
	CodeBlockFenced   = markdown.CodeBlockFenced
)

// Link styles.
const (
	LinkInlined    = markdown.LinkInlined
	LinkReferenced = markdown.LinkReferenced
)

// Link reference styles.
const (
	ReferenceFull      = markdown.ReferenceFull
	ReferenceCollapsed = markdown.ReferenceCollapsed
	ReferenceShortcut  = markdown.ReferenceShortcut
)

// DefaultOptions returns the default output style: setext headings, "* * *"
// rules, "*" bullets, indented code, "_" emphasis, "**" strong, inline links.
func DefaultOptions() Options {
	return markdown.DefaultOptions()
}

// Option configures a Service.
type Option func(*Service)

// WithOptions replaces the whole output style. Empty fields keep defaults.
func WithOptions(o Options) Option {
	return func(s *Service) {
		s.opts = o
	}
}

// WithHeadingStyle sets how level 1 and 2 headings are written.
func WithHeadingStyle(style HeadingStyle) Option {
	return func(s *Service) {
		s.opts.HeadingStyle = style
	}
}

// WithHR sets the thematic break token, e.g. "---".
func WithHR(hr string) Option {
	return func(s *Service) {
		s.opts.HR = hr
	}
}

// WithBulletListMarker sets the bullet list marker: "*", "-" or "+".
func WithBulletListMarker(marker string) Option {
	return func(s *Service) {
		s.opts.BulletListMarker = marker
	}
}

// WithCodeBlockStyle sets indented or fenced code blocks.
func WithCodeBlockStyle(style CodeBlockStyle) Option {
	return func(s *Service) {
		s.opts.CodeBlockStyle = style
	}
}

// WithFence sets the fence token for fenced code blocks: "```" or "~~~".
func WithFence(fence string) Option {
	return func(s *Service) {
		s.opts.Fence = fence
	}
}

// WithEmDelimiter sets the emphasis delimiter: "_" or "*".
func WithEmDelimiter(delim string) Option {
	return func(s *Service) {
		s.opts.EmDelimiter = delim
	}
}

// WithStrongDelimiter sets the strong delimiter: "**" or "__".
func WithStrongDelimiter(delim string) Option {
	return func(s *Service) {
		s.opts.StrongDelimiter = delim
	}
}

// WithLinkStyle sets inline or reference links.
func WithLinkStyle(style LinkStyle) Option {
	return func(s *Service) {
		s.opts.LinkStyle = style
	}
}

// WithLinkReferenceStyle sets the reference form used by referenced links.
func WithLinkReferenceStyle(style LinkReferenceStyle) Option {
	return func(s *Service) {
		s.opts.LinkReferenceStyle = style
	}
}

// WithLineBreak sets the text written before the newline of a hard break.
func WithLineBreak(br string) Option {
	return func(s *Service) {
		s.opts.LineBreak = br
	}
}

// WithPlugins applies plugins once the options are validated.
// Panics if a plugin is nil (programmer error).
func WithPlugins(plugins ...Plugin) Option {
	for _, p := range plugins {
		if p == nil {
			panic("turndown: WithPlugins plugin must not be nil")
		}
	}
	return func(s *Service) {
		s.plugins = append(s.plugins, plugins...)
	}
}
