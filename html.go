package turndown

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseHTML parses an HTML string as the content of a <body> element and
// returns a Document node. Full documents are accepted too: their head
// elements end up in the tree and are skipped during conversion.
func ParseHTML(src string) (*Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(src), context)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseHTML, err)
	}

	doc := NewDocument()
	for _, n := range nodes {
		if c := FromHTMLNode(n); c != nil {
			doc.Children = append(doc.Children, c)
		}
	}
	return doc, nil
}

// FromHTMLNode converts a golang.org/x/net/html tree. Doctype and unknown
// node kinds are dropped and return nil at the root.
func FromHTMLNode(n *html.Node) *Node {
	var out *Node
	switch n.Type {
	case html.DocumentNode:
		out = NewDocument()
	case html.ElementNode:
		attrs := make([]Attribute, 0, len(n.Attr))
		for _, a := range n.Attr {
			attrs = append(attrs, Attribute{Name: a.Key, Value: a.Val})
		}
		out = NewElement(n.Data, attrs...)
	case html.TextNode:
		return NewText(n.Data)
	case html.CommentNode:
		return NewComment(n.Data)
	default:
		return nil
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if child := FromHTMLNode(c); child != nil {
			out.Children = append(out.Children, child)
		}
	}
	return out
}
