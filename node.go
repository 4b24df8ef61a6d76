package turndown

import "strings"

// NodeType identifies the kind of a Node.
type NodeType int

// Node types.
const (
	ElementNode NodeType = iota + 1
	TextNode
	CommentNode
	DocumentNode
)

// Attribute is one name/value pair of an element, in source order.
type Attribute struct {
	Name  string
	Value string
}

// Node is the input tree consumed by the converter. Conversion never mutates
// it, so one tree can be converted concurrently by several services.
type Node struct {
	Type     NodeType
	Tag      string // lowercase, elements only
	Data     string // text and comment content
	Attrs    []Attribute
	Children []*Node
}

// NewElement returns an element node. Tag and attribute names are lowercased.
func NewElement(tag string, attrs ...Attribute) *Node {
	n := &Node{Type: ElementNode, Tag: strings.ToLower(tag)}
	if len(attrs) > 0 {
		n.Attrs = make([]Attribute, len(attrs))
		for i, a := range attrs {
			n.Attrs[i] = Attribute{Name: strings.ToLower(a.Name), Value: a.Value}
		}
	}
	return n
}

// NewText returns a text node holding raw, unescaped character data.
func NewText(data string) *Node {
	return &Node{Type: TextNode, Data: data}
}

// NewComment returns a comment node.
func NewComment(data string) *Node {
	return &Node{Type: CommentNode, Data: data}
}

// NewDocument returns a document node with the given children.
func NewDocument(children ...*Node) *Node {
	return &Node{Type: DocumentNode, Children: children}
}

// Append adds children and returns n for chaining.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Attr returns the value of the named attribute. Names match case-insensitively.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if strings.EqualFold(a.Name, name) {
			return a.Value, true
		}
	}
	return "", false
}

// HasClass reports whether the class attribute contains the given token.
func (n *Node) HasClass(class string) bool {
	v, ok := n.Attr("class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// Is reports whether n is an element with one of the given tag names.
func (n *Node) Is(tags ...string) bool {
	if n == nil || n.Type != ElementNode {
		return false
	}
	for _, t := range tags {
		if strings.EqualFold(n.Tag, t) {
			return true
		}
	}
	return false
}

// IsBlock reports whether n is a block-level element.
func (n *Node) IsBlock() bool {
	return n.Type == ElementNode && blockElements[n.Tag]
}

// TextContent concatenates the text of all descendant text nodes.
func (n *Node) TextContent() string {
	if n.Type == TextNode {
		return n.Data
	}
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	for _, c := range n.Children {
		switch c.Type {
		case TextNode:
			b.WriteString(c.Data)
		case ElementNode, DocumentNode:
			c.writeText(b)
		}
	}
}

// OuterHTML serializes n and its subtree back to HTML. Text is escaped
// except inside raw text elements such as script and style.
func (n *Node) OuterHTML() string {
	var b strings.Builder
	n.writeHTML(&b)
	return b.String()
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;", "<", "&lt;", ">", "&gt;")
)

func (n *Node) writeHTML(b *strings.Builder) {
	switch n.Type {
	case TextNode:
		_, _ = textEscaper.WriteString(b, n.Data)
	case CommentNode:
		b.WriteString("<!--")
		b.WriteString(n.Data)
		b.WriteString("-->")
	case DocumentNode:
		for _, c := range n.Children {
			c.writeHTML(b)
		}
	case ElementNode:
		b.WriteByte('<')
		b.WriteString(n.Tag)
		for _, a := range n.Attrs {
			b.WriteByte(' ')
			b.WriteString(a.Name)
			if a.Value != "" {
				b.WriteString(`="`)
				_, _ = attrEscaper.WriteString(b, a.Value)
				b.WriteByte('"')
			}
		}
		b.WriteByte('>')
		if voidElements[n.Tag] {
			return
		}
		for _, c := range n.Children {
			if c.Type == TextNode && rawTextElements[n.Tag] {
				b.WriteString(c.Data)
				continue
			}
			c.writeHTML(b)
		}
		b.WriteString("</")
		b.WriteString(n.Tag)
		b.WriteByte('>')
	}
}

var blockElements = setOf(
	"address", "article", "aside", "audio", "blockquote", "body", "canvas",
	"center", "dd", "dir", "div", "dl", "dt", "fieldset", "figcaption", "figure",
	"footer", "form", "frameset", "h1", "h2", "h3", "h4", "h5", "h6", "header",
	"hgroup", "hr", "html", "isindex", "li", "main", "menu", "nav", "noframes",
	"noscript", "ol", "output", "p", "pre", "section", "table", "tbody", "td",
	"tfoot", "th", "thead", "tr", "ul",
)

// rawTextElements hold text that HTML serialization writes unescaped.
var rawTextElements = setOf(
	"iframe", "noembed", "noframes", "noscript", "plaintext", "script", "style", "xmp",
)

var voidElements = setOf(
	"area", "base", "br", "col", "command", "embed", "hr", "img", "input",
	"keygen", "link", "meta", "param", "source", "track", "wbr",
)

func setOf(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, s := range items {
		m[s] = true
	}
	return m
}
