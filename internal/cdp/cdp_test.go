package cdp

import (
	"bytes"
	"testing"

	"github.com/go-rod/rod/lib/proto"
	"golang.org/x/net/html"
)

func el(name string, attrs []string, children ...*proto.DOMNode) *proto.DOMNode {
	return &proto.DOMNode{
		NodeType:   elementNode,
		NodeName:   name,
		LocalName:  name,
		Attributes: attrs,
		Children:   children,
	}
}

func text(s string) *proto.DOMNode {
	return &proto.DOMNode{NodeType: textNode, NodeName: "#text", NodeValue: s}
}

func render(t *testing.T, n *html.Node) string {
	t.Helper()

	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   *proto.DOMNode
		want string
	}{
		{
			name: "element with text",
			in:   el("p", nil, text("hello")),
			want: "<p>hello</p>",
		},
		{
			name: "attributes keep order",
			in:   el("a", []string{"href", "/x", "title", "T"}, text("x")),
			want: `<a href="/x" title="T">x</a>`,
		},
		{
			name: "odd attribute list",
			in:   el("input", []string{"disabled"}),
			want: `<input disabled=""/>`,
		},
		{
			name: "comment",
			in:   el("div", nil, &proto.DOMNode{NodeType: commentNode, NodeValue: " c "}),
			want: "<div><!-- c --></div>",
		},
		{
			name: "node name fallback lowercased",
			in:   &proto.DOMNode{NodeType: elementNode, NodeName: "EM", Children: []*proto.DOMNode{text("e")}},
			want: "<em>e</em>",
		},
		{
			name: "shadow root flattened before light children",
			in: &proto.DOMNode{
				NodeType:  elementNode,
				NodeName:  "X-CARD",
				LocalName: "x-card",
				ShadowRoots: []*proto.DOMNode{
					{NodeType: fragmentNode, NodeName: "#document-fragment", Children: []*proto.DOMNode{el("b", nil, text("shadow"))}},
				},
				Children: []*proto.DOMNode{text("light")},
			},
			want: "<x-card><b>shadow</b>light</x-card>",
		},
		{
			name: "frame document ignored",
			in: &proto.DOMNode{
				NodeType:        elementNode,
				NodeName:        "IFRAME",
				LocalName:       "iframe",
				ContentDocument: &proto.DOMNode{NodeType: documentNode, Children: []*proto.DOMNode{el("p", nil, text("inner"))}},
			},
			want: "<iframe></iframe>",
		},
		{
			name: "template content ignored",
			in: &proto.DOMNode{
				NodeType:        elementNode,
				NodeName:        "TEMPLATE",
				LocalName:       "template",
				TemplateContent: &proto.DOMNode{NodeType: fragmentNode, Children: []*proto.DOMNode{text("t")}},
			},
			want: "<template></template>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ToHTML(tt.in)
			if got == nil {
				t.Fatal("ToHTML() = nil")
			}
			if rendered := render(t, got); rendered != tt.want {
				t.Errorf("ToHTML() = %q, want %q", rendered, tt.want)
			}
		})
	}
}

func TestToHTML_Document(t *testing.T) {
	t.Parallel()

	in := &proto.DOMNode{
		NodeType: documentNode,
		NodeName: "#document",
		Children: []*proto.DOMNode{
			{NodeType: doctypeNode, NodeName: "html"},
			el("html", nil, el("body", nil, el("h1", nil, text("T")))),
		},
	}

	doc := ToHTML(in)
	if doc == nil || doc.Type != html.DocumentNode {
		t.Fatalf("ToHTML() = %+v, want a document node", doc)
	}

	doctype := doc.FirstChild
	if doctype == nil || doctype.Type != html.DoctypeNode || doctype.Data != "html" {
		t.Fatalf("first child = %+v, want the html doctype", doctype)
	}

	body := doc.LastChild.FirstChild
	if body == nil || body.Data != "body" {
		t.Fatalf("body = %+v", body)
	}
	if body.FirstChild.Data != "h1" {
		t.Errorf("body child = %q, want h1", body.FirstChild.Data)
	}
	if body.FirstChild.Parent != body {
		t.Error("child Parent should point at body")
	}
}

func TestToHTML_Unsupported(t *testing.T) {
	t.Parallel()

	if got := ToHTML(nil); got != nil {
		t.Errorf("ToHTML(nil) = %+v, want nil", got)
	}
	if got := ToHTML(&proto.DOMNode{NodeType: 2}); got != nil {
		t.Errorf("ToHTML(attribute node) = %+v, want nil", got)
	}

	// Unsupported children are skipped.
	got := ToHTML(el("p", nil, &proto.DOMNode{NodeType: 4}, nil, text("x")))
	if got == nil {
		t.Fatal("ToHTML() = nil")
	}
	if rendered := render(t, got); rendered != "<p>x</p>" {
		t.Errorf("ToHTML() = %q, want %q", rendered, "<p>x</p>")
	}
}

func TestToHTML_NestedFragmentSpliced(t *testing.T) {
	t.Parallel()

	in := el("div", nil,
		&proto.DOMNode{NodeType: fragmentNode, Children: []*proto.DOMNode{text("a"), text("b")}},
	)
	got := ToHTML(in)
	if got == nil {
		t.Fatal("ToHTML() = nil")
	}
	if rendered := render(t, got); rendered != "<div>ab</div>" {
		t.Errorf("ToHTML() = %q, want %q", rendered, "<div>ab</div>")
	}
}
