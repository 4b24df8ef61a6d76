package extract

// Notes:
// - Documents are parsed with html.Parse, so <html>, <head> and <body>
//   always exist; the body fallback is reached whenever main and article
//   are missing
// - Output is compared as rendered HTML of the returned subtree

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

const page = `<!DOCTYPE html><html><head><title>T</title><script>x()</script></head>
<body><nav>menu</nav><main><h1>Title</h1><p class="lead">Intro</p><div class="ads">buy</div></main><footer>f</footer></body></html>`

func parse(t *testing.T, src string) *html.Node {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func render(t *testing.T, n *html.Node) string {
	t.Helper()

	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestNew_InvalidSelector(t *testing.T) {
	t.Parallel()

	if _, err := New("main[", nil, false); !errors.Is(err, ErrInvalidSelector) {
		t.Errorf("New(bad selector) err = %v, want ErrInvalidSelector", err)
	}
	if _, err := New("", []string{"div..x"}, false); !errors.Is(err, ErrInvalidSelector) {
		t.Errorf("New(bad strip) err = %v, want ErrInvalidSelector", err)
	}
}

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		selector string
		strip    []string
		auto     bool
		want     string
	}{
		{
			name:     "selector",
			selector: "p.lead",
			want:     `<p class="lead">Intro</p>`,
		},
		{
			name:     "first match of a group",
			selector: "h1, p",
			want:     "<h1>Title</h1>",
		},
		{
			name:     "strip inside selection",
			selector: "main",
			strip:    []string{".ads", "h1"},
			want:     `<main><p class="lead">Intro</p></main>`,
		},
		{
			name: "auto picks main and strips noise",
			auto: true,
			want: `<main><h1>Title</h1><p class="lead">Intro</p></main>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, err := New(tt.selector, tt.strip, tt.auto)
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}

			got, err := e.Extract(parse(t, page))
			if err != nil {
				t.Fatalf("Extract() error: %v", err)
			}
			if rendered := render(t, got); rendered != tt.want {
				t.Errorf("Extract() = %q, want %q", rendered, tt.want)
			}
		})
	}
}

func TestExtract_AutoFallsBackToBody(t *testing.T) {
	t.Parallel()

	e, err := New("", nil, true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	got, err := e.Extract(parse(t, `<p>a</p><nav>n</nav>`))
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if rendered := render(t, got); rendered != "<body><p>a</p></body>" {
		t.Errorf("Extract() = %q, want %q", rendered, "<body><p>a</p></body>")
	}
}

func TestExtract_NoContent(t *testing.T) {
	t.Parallel()

	e, err := New("article", nil, false)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if _, err := e.Extract(parse(t, page)); !errors.Is(err, ErrNoContent) {
		t.Errorf("Extract() err = %v, want ErrNoContent", err)
	}
}

func TestExtract_Passthrough(t *testing.T) {
	t.Parallel()

	e, err := New("", nil, false)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if e.Active() {
		t.Error("Active() = true without selectors")
	}

	doc := parse(t, page)
	got, err := e.Extract(doc)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if got != doc {
		t.Error("Extract() should return the document itself")
	}
}
