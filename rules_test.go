package turndown

// Notes:
// - registry is tested directly for precedence; service_test.go covers the
//   same ordering through Turndown

import "testing"

func TestFilters(t *testing.T) {
	t.Parallel()

	div := NewElement("div", Attribute{Name: "id", Value: "main"})
	text := NewText("div")

	tests := []struct {
		name   string
		filter Filter
		node   *Node
		want   bool
	}{
		{"tag name", TagName("div"), div, true},
		{"tag name case-insensitive", TagName("DIV"), div, true},
		{"tag name mismatch", TagName("p"), div, false},
		{"tag name on text", TagName("div"), text, false},
		{"tag names", TagNames{"p", "Div"}, div, true},
		{"tag names mismatch", TagNames{"p", "span"}, div, false},
		{"predicate", Predicate(func(n *Node) bool { v, _ := n.Attr("id"); return v == "main" }), div, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.filter.Match(tt.node); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistry_Match(t *testing.T) {
	t.Parallel()

	noop := func(string, *Node, Options) (string, error) { return "", nil }

	var r registry
	r.add(Rule{Name: "first", Filter: TagName("em"), Replacement: noop})
	r.add(Rule{Name: "second", Filter: TagNames{"em", "i"}, Replacement: noop})
	r.keep = append(r.keep, TagName("i"))
	r.remove = append(r.remove, TagName("i"), TagName("s"))
	r.keep = append(r.keep, TagName("s"), TagName("u"))

	tests := []struct {
		tag      string
		wantKind matchKind
		wantRule string
	}{
		{"em", matchRule, "first"},
		{"i", matchRemove, ""},
		{"s", matchRemove, ""},
		{"u", matchKeep, ""},
		{"b", matchNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			t.Parallel()

			m := r.match(NewElement(tt.tag))
			if m.kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", m.kind, tt.wantKind)
			}
			if m.rule.Name != tt.wantRule {
				t.Errorf("rule = %q, want %q", m.rule.Name, tt.wantRule)
			}
		})
	}

	if m := r.match(NewText("em")); m.kind != matchNone {
		t.Errorf("text node matched %v", m.kind)
	}
}

func TestRegistry_AddReplacesInPlace(t *testing.T) {
	t.Parallel()

	noop := func(string, *Node, Options) (string, error) { return "", nil }

	var r registry
	r.add(Rule{Name: "a", Filter: TagName("p"), Replacement: noop})
	r.add(Rule{Name: "b", Filter: TagName("p"), Replacement: noop})
	r.add(Rule{Name: "a", Filter: TagName("div"), Replacement: noop})

	if len(r.rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(r.rules))
	}
	if r.rules[0].Name != "a" || r.rules[0].Filter != TagName("div") {
		t.Errorf("rules[0] = %+v, want replaced rule a", r.rules[0])
	}
	if got := r.match(NewElement("p")); got.rule.Name != "b" {
		t.Errorf("p matched %q, want %q", got.rule.Name, "b")
	}
}
