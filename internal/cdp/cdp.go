// Package cdp converts DOM trees reported by the Chrome DevTools protocol
// into golang.org/x/net/html trees, so that pages rendered in a browser go
// through the same conversion path as parsed HTML.
package cdp

import (
	"strings"

	"github.com/go-rod/rod/lib/proto"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DOM node types as reported by DOM.getDocument.
const (
	elementNode  = 1
	textNode     = 3
	commentNode  = 8
	documentNode = 9
	doctypeNode  = 10
	fragmentNode = 11
)

// ToHTML converts a CDP node tree to an html.Node tree. Shadow roots are
// flattened ahead of the light children of their host. Frame documents,
// template contents and pseudo elements are not part of the result. Returns
// nil for a nil node or an unsupported node type.
func ToHTML(n *proto.DOMNode) *html.Node {
	if n == nil {
		return nil
	}

	switch n.NodeType {
	case documentNode, fragmentNode:
		doc := &html.Node{Type: html.DocumentNode}
		appendChildren(doc, n.Children)
		return doc
	case elementNode:
		return element(n)
	case textNode:
		return &html.Node{Type: html.TextNode, Data: n.NodeValue}
	case commentNode:
		return &html.Node{Type: html.CommentNode, Data: n.NodeValue}
	case doctypeNode:
		return &html.Node{Type: html.DoctypeNode, Data: strings.ToLower(n.NodeName)}
	}
	return nil
}

func element(n *proto.DOMNode) *html.Node {
	name := n.LocalName
	if name == "" {
		name = strings.ToLower(n.NodeName)
	}

	el := &html.Node{
		Type:     html.ElementNode,
		Data:     name,
		DataAtom: atom.Lookup([]byte(name)),
		Attr:     attributes(n.Attributes),
	}
	if n.IsSVG {
		el.Namespace = "svg"
	}

	for _, root := range n.ShadowRoots {
		if root != nil {
			appendChildren(el, root.Children)
		}
	}
	if el.DataAtom != atom.Template {
		appendChildren(el, n.Children)
	}
	return el
}

// appendChildren converts children and appends them to parent. Nested
// fragments are spliced in place.
func appendChildren(parent *html.Node, children []*proto.DOMNode) {
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.NodeType == fragmentNode {
			appendChildren(parent, c.Children)
			continue
		}
		if h := ToHTML(c); h != nil {
			parent.AppendChild(h)
		}
	}
}

// attributes converts the flat name, value, name, value... list of CDP.
// A trailing name without a value gets an empty value.
func attributes(flat []string) []html.Attribute {
	if len(flat) == 0 {
		return nil
	}
	attrs := make([]html.Attribute, 0, (len(flat)+1)/2)
	for i := 0; i < len(flat); i += 2 {
		a := html.Attribute{Key: strings.ToLower(flat[i])}
		if i+1 < len(flat) {
			a.Val = flat[i+1]
		}
		attrs = append(attrs, a)
	}
	return attrs
}
