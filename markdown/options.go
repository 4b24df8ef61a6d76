package markdown

import (
	"fmt"
	"strings"
)

// HeadingStyle selects how level 1 and 2 headings are written.
type HeadingStyle string

// Heading styles.
const (
	HeadingSetext HeadingStyle = "setext"
	HeadingATX    HeadingStyle = "atx"
)

// CodeBlockStyle selects how code blocks are written.
type CodeBlockStyle string

// Code block styles.
const (
	CodeBlockIndented CodeBlockStyle = "indented"
	CodeBlockFenced   CodeBlockStyle = "fenced"
)

// LinkStyle selects inline or reference links.
type LinkStyle string

// Link styles.
const (
	LinkInlined    LinkStyle = "inlined"
	LinkReferenced LinkStyle = "referenced"
)

// LinkReferenceStyle selects the reference link form.
type LinkReferenceStyle string

// Link reference styles.
const (
	ReferenceFull      LinkReferenceStyle = "full"
	ReferenceCollapsed LinkReferenceStyle = "collapsed"
	ReferenceShortcut  LinkReferenceStyle = "shortcut"
)

// Default option values.
const (
	DefaultHR               = "* * *"
	DefaultBulletListMarker = "*"
	DefaultFence            = "```"
	DefaultEmDelimiter      = "_"
	DefaultStrongDelimiter  = "**"
	DefaultLineBreak        = "  "
)

// Options controls Markdown output style.
// Empty fields take their default value.
type Options struct {
	HeadingStyle       HeadingStyle       `yaml:"headingStyle"`
	HR                 string             `yaml:"hr"`
	BulletListMarker   string             `yaml:"bulletListMarker"`
	CodeBlockStyle     CodeBlockStyle     `yaml:"codeBlockStyle"`
	Fence              string             `yaml:"fence"`
	EmDelimiter        string             `yaml:"emDelimiter"`
	StrongDelimiter    string             `yaml:"strongDelimiter"`
	LinkStyle          LinkStyle          `yaml:"linkStyle"`
	LinkReferenceStyle LinkReferenceStyle `yaml:"linkReferenceStyle"`
	LineBreak          string             `yaml:"lineBreak"` // written before the newline of a hard break
}

// DefaultOptions returns the default output style.
func DefaultOptions() Options {
	return Options{
		HeadingStyle:       HeadingSetext,
		HR:                 DefaultHR,
		BulletListMarker:   DefaultBulletListMarker,
		CodeBlockStyle:     CodeBlockIndented,
		Fence:              DefaultFence,
		EmDelimiter:        DefaultEmDelimiter,
		StrongDelimiter:    DefaultStrongDelimiter,
		LinkStyle:          LinkInlined,
		LinkReferenceStyle: ReferenceFull,
		LineBreak:          DefaultLineBreak,
	}
}

// Normalize returns a copy with empty fields set to defaults and enum values
// lowercased.
func (o Options) Normalize() Options {
	def := DefaultOptions()

	o.HeadingStyle = HeadingStyle(lowerOr(string(o.HeadingStyle), string(def.HeadingStyle)))
	o.CodeBlockStyle = CodeBlockStyle(lowerOr(string(o.CodeBlockStyle), string(def.CodeBlockStyle)))
	o.LinkStyle = LinkStyle(lowerOr(string(o.LinkStyle), string(def.LinkStyle)))
	o.LinkReferenceStyle = LinkReferenceStyle(lowerOr(string(o.LinkReferenceStyle), string(def.LinkReferenceStyle)))

	if o.HR == "" {
		o.HR = def.HR
	}
	if o.BulletListMarker == "" {
		o.BulletListMarker = def.BulletListMarker
	}
	if o.Fence == "" {
		o.Fence = def.Fence
	}
	if o.EmDelimiter == "" {
		o.EmDelimiter = def.EmDelimiter
	}
	if o.StrongDelimiter == "" {
		o.StrongDelimiter = def.StrongDelimiter
	}
	if o.LineBreak == "" {
		o.LineBreak = def.LineBreak
	}
	return o
}

// Validate checks that every field holds a supported value.
// Enum fields are compared case-insensitively. Does not mutate.
func (o Options) Validate() error {
	n := o.Normalize()

	switch n.HeadingStyle {
	case HeadingSetext, HeadingATX:
	default:
		return invalid(ErrInvalidHeadingStyle, string(o.HeadingStyle), "setext, atx")
	}

	if !isThematicBreak(n.HR) {
		return invalid(ErrInvalidHR, n.HR, "three or more of the same *, - or _")
	}

	switch n.BulletListMarker {
	case "*", "-", "+":
	default:
		return invalid(ErrInvalidBulletMarker, n.BulletListMarker, "*, -, +")
	}

	switch n.CodeBlockStyle {
	case CodeBlockIndented, CodeBlockFenced:
	default:
		return invalid(ErrInvalidCodeBlockStyle, string(o.CodeBlockStyle), "indented, fenced")
	}

	switch n.Fence {
	case "```", "~~~":
	default:
		return invalid(ErrInvalidFence, n.Fence, "```, ~~~")
	}

	switch n.EmDelimiter {
	case "_", "*":
	default:
		return invalid(ErrInvalidEmDelimiter, n.EmDelimiter, "_, *")
	}

	switch n.StrongDelimiter {
	case "**", "__":
	default:
		return invalid(ErrInvalidStrongDelimiter, n.StrongDelimiter, "**, __")
	}

	switch n.LinkStyle {
	case LinkInlined, LinkReferenced:
	default:
		return invalid(ErrInvalidLinkStyle, string(o.LinkStyle), "inlined, referenced")
	}

	switch n.LinkReferenceStyle {
	case ReferenceFull, ReferenceCollapsed, ReferenceShortcut:
	default:
		return invalid(ErrInvalidLinkReferenceStyle, string(o.LinkReferenceStyle), "full, collapsed, shortcut")
	}

	if !isHardBreak(n.LineBreak) {
		return invalid(ErrInvalidLineBreak, n.LineBreak, `two or more spaces, \`)
	}

	return nil
}

func invalid(field error, value, allowed string) error {
	return fmt.Errorf("%w: %w: %q (must be one of %s)", ErrInvalidOptions, field, value, allowed)
}

func lowerOr(s, def string) string {
	if s == "" {
		return def
	}
	return strings.ToLower(s)
}

// isThematicBreak reports whether s is three or more of the same rule
// character, optionally separated by spaces.
func isThematicBreak(s string) bool {
	var ch byte
	count := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case ' ', '\t':
			continue
		case '*', '-', '_':
			if ch != 0 && c != ch {
				return false
			}
			ch = c
			count++
		default:
			return false
		}
	}
	return count >= 3
}

func isHardBreak(s string) bool {
	if s == `\` {
		return true
	}
	return len(s) >= 2 && strings.Trim(s, " ") == ""
}
