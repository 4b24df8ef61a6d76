package markdown

import "strings"

// Block is a structural Markdown node.
type Block interface {
	// IsBlank reports whether the block renders to nothing.
	IsBlank() bool
	block()
}

// Inline is a text-level Markdown node.
type Inline interface {
	// IsBlank reports whether the inline renders to nothing or only whitespace.
	IsBlank() bool
	inline()
}

// RenderFunc turns the rendered Markdown of a node's children into the final
// text for that node. It is called during serialization.
type RenderFunc func(content string) (string, error)

// Compile-time interface checks.
var (
	_ Block = Document{}
	_ Block = Paragraph{}
	_ Block = Heading{}
	_ Block = BlockQuote{}
	_ Block = List{}
	_ Block = CodeBlock{}
	_ Block = ThematicBreak{}
	_ Block = Table{}
	_ Block = HTMLBlock{}
	_ Block = ReplacedBlock{}

	_ Inline = Text{}
	_ Inline = Strong{}
	_ Inline = Emphasis{}
	_ Inline = Code{}
	_ Inline = Link{}
	_ Inline = Image{}
	_ Inline = LineBreak{}
	_ Inline = HTMLInline{}
	_ Inline = ReplacedInline{}
)

// Document is the root block.
type Document struct {
	Children []Block
}

// Paragraph is a run of inline content.
type Paragraph struct {
	Content []Inline
}

// Heading is a section heading. Level is clamped to 1..6 when rendered.
type Heading struct {
	Level   int
	Content []Inline
}

// BlockQuote wraps blocks rendered behind "> ".
type BlockQuote struct {
	Children []Block
}

// List is an ordered or bullet list. Start only applies to ordered lists.
type List struct {
	Ordered bool
	Start   uint32
	Items   []ListItem
}

// ListItem holds the blocks of one list entry.
type ListItem struct {
	Children []Block
}

// CodeBlock is preformatted code. Language is empty when unknown.
// Fenced forces the fenced form regardless of Options.CodeBlockStyle.
type CodeBlock struct {
	Language string
	Code     string
	Fenced   bool
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{}

// Table is a pipe table. The header row fixes the column count.
type Table struct {
	Headers [][]Inline
	Rows    [][][]Inline
}

// HTMLBlock is raw text emitted verbatim as a block.
type HTMLBlock struct {
	HTML string
}

// ReplacedBlock is a block whose final text comes from Render, given the
// rendered Markdown of Children.
type ReplacedBlock struct {
	Children []Block
	Render   RenderFunc
}

// Text is already-escaped literal text.
type Text struct {
	Value string
}

// Strong is strong emphasis.
type Strong struct {
	Content []Inline
}

// Emphasis is regular emphasis.
type Emphasis struct {
	Content []Inline
}

// Code is an inline code span holding raw code.
type Code struct {
	Value string
}

// Link is a hyperlink. Title is empty when absent.
type Link struct {
	Content []Inline
	URL     string
	Title   string
}

// Image is an inline image. Title is empty when absent.
type Image struct {
	URL   string
	Alt   string
	Title string
}

// LineBreak is a hard line break.
type LineBreak struct{}

// HTMLInline is raw text emitted verbatim inline.
type HTMLInline struct {
	HTML string
}

// ReplacedInline is an inline whose final text comes from Render, given the
// rendered Markdown of Content.
type ReplacedInline struct {
	Content []Inline
	Render  RenderFunc
}

func (d Document) IsBlank() bool       { return blocksBlank(d.Children) }
func (p Paragraph) IsBlank() bool      { return InlinesBlank(p.Content) }
func (h Heading) IsBlank() bool        { return InlinesBlank(h.Content) }
func (q BlockQuote) IsBlank() bool     { return blocksBlank(q.Children) }
func (c CodeBlock) IsBlank() bool      { return strings.TrimSpace(c.Code) == "" }
func (ThematicBreak) IsBlank() bool    { return false }
func (t Table) IsBlank() bool          { return len(t.Headers) == 0 }
func (h HTMLBlock) IsBlank() bool      { return strings.TrimSpace(h.HTML) == "" }
func (r ReplacedBlock) IsBlank() bool  { return r.Render == nil }
func (i ListItem) IsBlank() bool       { return blocksBlank(i.Children) }
func (t Text) IsBlank() bool           { return strings.TrimSpace(t.Value) == "" }
func (s Strong) IsBlank() bool         { return InlinesBlank(s.Content) }
func (e Emphasis) IsBlank() bool       { return InlinesBlank(e.Content) }
func (c Code) IsBlank() bool           { return strings.TrimSpace(c.Value) == "" }
func (l Link) IsBlank() bool           { return l.URL == "" && InlinesBlank(l.Content) }
func (i Image) IsBlank() bool          { return i.URL == "" }
func (LineBreak) IsBlank() bool        { return true }
func (h HTMLInline) IsBlank() bool     { return h.HTML == "" }
func (r ReplacedInline) IsBlank() bool { return r.Render == nil }

// IsBlank reports whether every item is blank.
func (l List) IsBlank() bool {
	for _, item := range l.Items {
		if !item.IsBlank() {
			return false
		}
	}
	return true
}

func (Document) block()      {}
func (Paragraph) block()     {}
func (Heading) block()       {}
func (BlockQuote) block()    {}
func (List) block()          {}
func (CodeBlock) block()     {}
func (ThematicBreak) block() {}
func (Table) block()         {}
func (HTMLBlock) block()     {}
func (ReplacedBlock) block() {}

func (Text) inline()           {}
func (Strong) inline()         {}
func (Emphasis) inline()       {}
func (Code) inline()           {}
func (Link) inline()           {}
func (Image) inline()          {}
func (LineBreak) inline()      {}
func (HTMLInline) inline()     {}
func (ReplacedInline) inline() {}

// InlinesBlank reports whether a run of inlines renders only whitespace.
func InlinesBlank(content []Inline) bool {
	for _, in := range content {
		if !in.IsBlank() {
			return false
		}
	}
	return true
}

func blocksBlank(blocks []Block) bool {
	for _, b := range blocks {
		if !b.IsBlank() {
			return false
		}
	}
	return true
}
