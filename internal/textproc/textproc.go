// Package textproc normalizes text content for Markdown output: whitespace
// runs collapse to a single space and Markdown syntax characters are escaped,
// both in one forward scan.
package textproc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// alwaysEscaped marks ASCII characters escaped wherever they appear.
var alwaysEscaped = [utf8.RuneSelf]bool{
	'\\': true, '*': true, '_': true, '`': true, '[': true, ']': true,
}

// lineStartSpecial marks ASCII characters that may need escaping only at the
// start of a line.
var lineStartSpecial = [utf8.RuneSelf]bool{
	'#': true, '>': true, '-': true, '+': true, '=': true, '~': true,
	'0': true, '1': true, '2': true, '3': true, '4': true,
	'5': true, '6': true, '7': true, '8': true, '9': true,
}

// Processor collapses and escapes consecutive text runs of one block.
// Whitespace state carries across calls so that adjacent runs never produce
// doubled spaces. The zero value is positioned at a block start, where
// leading whitespace is dropped.
type Processor struct {
	afterText bool
}

// Reset positions the processor at a block boundary.
func (p *Processor) Reset() {
	p.afterText = false
}

// Break records a hard line break: whitespace right after it is dropped.
func (p *Processor) Break() {
	p.afterText = false
}

// Continue records non-text output, such as an image, written between runs:
// whitespace that follows it is kept.
func (p *Processor) Continue() {
	p.afterText = true
}

// Text collapses whitespace in s and escapes Markdown syntax.
func (p *Processor) Text(s string) string {
	return p.process(s, true)
}

// Code collapses whitespace in s without escaping, for inline code.
func (p *Processor) Code(s string) string {
	return p.process(s, false)
}

func (p *Processor) process(s string, escape bool) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	lineStart := true
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) {
			if p.afterText {
				b.WriteByte(' ')
				p.afterText = false
				lineStart = false
			}
			i += size
			continue
		}

		p.afterText = true
		if !escape || r >= utf8.RuneSelf {
			b.WriteString(s[i : i+size])
			lineStart = false
			i += size
			continue
		}
		i = escapeAt(&b, s, i, lineStart)
		lineStart = false
	}
	return b.String()
}

// Escape backslash-escapes Markdown syntax in s without touching whitespace.
// Line-start rules apply at the beginning of s and after every newline.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	lineStart := true
	for i := 0; i < len(s); {
		c := s[i]
		if c == '\n' {
			b.WriteByte(c)
			lineStart = true
			i++
			continue
		}
		if c >= utf8.RuneSelf {
			_, size := utf8.DecodeRuneInString(s[i:])
			b.WriteString(s[i : i+size])
			lineStart = false
			i += size
			continue
		}
		i = escapeAt(&b, s, i, lineStart)
		lineStart = false
	}
	return b.String()
}

// escapeAt writes the ASCII character at s[i], escaped as needed, and returns
// the index of the next unwritten byte.
func escapeAt(b *strings.Builder, s string, i int, lineStart bool) int {
	c := s[i]
	if alwaysEscaped[c] {
		b.WriteByte('\\')
		b.WriteByte(c)
		return i + 1
	}
	if !lineStart || !lineStartSpecial[c] {
		b.WriteByte(c)
		return i + 1
	}

	switch {
	case c == '#':
		n := run(s, i, '#')
		if n <= 6 && spaceAt(s, i+n) {
			b.WriteByte('\\')
		}
		b.WriteString(s[i : i+n])
		return i + n
	case c == '>', c == '-', c == '=':
		b.WriteByte('\\')
	case c == '+':
		if spaceAt(s, i+1) {
			b.WriteByte('\\')
		}
	case c == '~':
		if strings.HasPrefix(s[i:], "~~~") {
			b.WriteByte('\\')
		}
	case c >= '0' && c <= '9':
		j := i
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		b.WriteString(s[i:j])
		if j < len(s) && s[j] == '.' && spaceAt(s, j+1) {
			b.WriteString(`\.`)
			return j + 1
		}
		return j
	}
	b.WriteByte(c)
	return i + 1
}

// run counts consecutive c bytes starting at s[i].
func run(s string, i int, c byte) int {
	n := 0
	for i+n < len(s) && s[i+n] == c {
		n++
	}
	return n
}

// spaceAt reports whether s has a whitespace rune at byte offset i.
func spaceAt(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return unicode.IsSpace(r)
}
