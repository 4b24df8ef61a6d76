package turndown

// Notes:
// - Node is a plain data tree: tests cover constructors, lookups and the
//   HTML serialization used by keep rules
// - OuterHTML escaping is checked for text and attribute values separately

import "testing"

func TestNewElement_Lowercases(t *testing.T) {
	t.Parallel()

	n := NewElement("DIV", Attribute{Name: "Class", Value: "A b"})
	if n.Tag != "div" {
		t.Errorf("Tag = %q, want %q", n.Tag, "div")
	}
	if n.Attrs[0].Name != "class" {
		t.Errorf("attribute name = %q, want %q", n.Attrs[0].Name, "class")
	}
	if n.Attrs[0].Value != "A b" {
		t.Errorf("attribute value = %q, want it unchanged", n.Attrs[0].Value)
	}
}

func TestNode_Attr(t *testing.T) {
	t.Parallel()

	n := NewElement("a", Attribute{Name: "href", Value: "u"}, Attribute{Name: "title", Value: ""})

	tests := []struct {
		name   string
		attr   string
		want   string
		wantOK bool
	}{
		{"present", "href", "u", true},
		{"case-insensitive", "HREF", "u", true},
		{"empty value", "title", "", true},
		{"missing", "rel", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := n.Attr(tt.attr)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Attr(%q) = (%q, %v), want (%q, %v)", tt.attr, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNode_HasClass(t *testing.T) {
	t.Parallel()

	n := NewElement("div", Attribute{Name: "class", Value: " note  warning "})

	if !n.HasClass("note") || !n.HasClass("warning") {
		t.Error("HasClass should find both tokens")
	}
	if n.HasClass("not") {
		t.Error("HasClass should not match a prefix")
	}
	if NewElement("div").HasClass("note") {
		t.Error("HasClass should be false without a class attribute")
	}
}

func TestNode_Is(t *testing.T) {
	t.Parallel()

	var nilNode *Node
	if nilNode.Is("p") {
		t.Error("nil node should match nothing")
	}
	if NewText("p").Is("p") {
		t.Error("text node should match nothing")
	}
	if !NewElement("th").Is("td", "TH") {
		t.Error("th should match TH")
	}
}

func TestNode_IsBlock(t *testing.T) {
	t.Parallel()

	for _, tag := range []string{"p", "div", "ul", "li", "table", "h3", "pre", "blockquote"} {
		if !NewElement(tag).IsBlock() {
			t.Errorf("%s should be a block", tag)
		}
	}
	for _, tag := range []string{"span", "a", "em", "code", "img", "video"} {
		if NewElement(tag).IsBlock() {
			t.Errorf("%s should not be a block", tag)
		}
	}
}

func TestNode_TextContent(t *testing.T) {
	t.Parallel()

	n := NewElement("p").Append(
		NewText("a "),
		NewElement("b").Append(NewText("b")),
		NewComment("skip"),
		NewText(" c"),
	)
	if got := n.TextContent(); got != "a b c" {
		t.Errorf("TextContent() = %q, want %q", got, "a b c")
	}
	if got := NewText("x").TextContent(); got != "x" {
		t.Errorf("TextContent() of text = %q, want %q", got, "x")
	}
}

func TestNode_OuterHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node *Node
		want string
	}{
		{
			name: "element with text",
			node: NewElement("p").Append(NewText("a < b & c")),
			want: "<p>a &lt; b &amp; c</p>",
		},
		{
			name: "attributes escaped",
			node: NewElement("span", Attribute{Name: "title", Value: `say "hi" & go`}),
			want: `<span title="say &quot;hi&quot; &amp; go"></span>`,
		},
		{
			name: "boolean attribute",
			node: NewElement("input", Attribute{Name: "checked"}),
			want: "<input checked>",
		},
		{
			name: "void element",
			node: NewElement("br"),
			want: "<br>",
		},
		{
			name: "script text unescaped",
			node: NewElement("script").Append(NewText("if (a < b && c > d) {}")),
			want: "<script>if (a < b && c > d) {}</script>",
		},
		{
			name: "style text unescaped",
			node: NewElement("style").Append(NewText("a > b {}")),
			want: "<style>a > b {}</style>",
		},
		{
			name: "raw text only for direct children",
			node: NewElement("div").Append(NewElement("xmp").Append(NewText("<b>")), NewText("<")),
			want: "<div><xmp><b></xmp>&lt;</div>",
		},
		{
			name: "comment",
			node: NewElement("div").Append(NewComment(" x ")),
			want: "<div><!-- x --></div>",
		},
		{
			name: "document",
			node: NewDocument(NewElement("i").Append(NewText("a")), NewText("b")),
			want: "<i>a</i>b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.node.OuterHTML(); got != tt.want {
				t.Errorf("OuterHTML() = %q, want %q", got, tt.want)
			}
		})
	}
}
