package plugin

import (
	"regexp"
	"strings"

	"github.com/alnah/go-turndown"
	"github.com/alnah/go-turndown/markdown"
)

// Strikethrough renders del, s and strike as ~~text~~.
func Strikethrough(s *turndown.Service) {
	s.AddRule("strikethrough", turndown.TagNames{"del", "s", "strike"},
		func(content string, _ *turndown.Node, _ turndown.Options) (string, error) {
			if strings.TrimSpace(content) == "" {
				return "", nil
			}
			return "~~" + content + "~~", nil
		})
}

// TaskListItems renders checkboxes as [x] or [ ].
func TaskListItems(s *turndown.Service) {
	s.AddRule("taskListItems", turndown.Predicate(isCheckbox),
		func(_ string, n *turndown.Node, _ turndown.Options) (string, error) {
			if _, checked := n.Attr("checked"); checked {
				return "[x]", nil
			}
			return "[ ]", nil
		})
}

func isCheckbox(n *turndown.Node) bool {
	if !n.Is("input") {
		return false
	}
	typ, _ := n.Attr("type")
	return strings.EqualFold(typ, "checkbox")
}

var highlightClass = regexp.MustCompile(`highlight-(?:text-|source-)?([a-z0-9]+)`)

// HighlightedCodeBlock renders GitHub-style highlighted blocks
// (<div class="highlight-source-go"><pre>...</pre></div>) as fenced code
// with the language taken from the class.
func HighlightedCodeBlock(s *turndown.Service) {
	s.AddRule("highlightedCodeBlock", turndown.Predicate(isHighlightedBlock),
		func(_ string, n *turndown.Node, opts turndown.Options) (string, error) {
			class, _ := n.Attr("class")
			lang := highlightClass.FindStringSubmatch(class)[1]
			return markdown.FencedCodeBlock(firstElement(n).TextContent(), lang, opts), nil
		})
}

func isHighlightedBlock(n *turndown.Node) bool {
	if !n.Is("div") {
		return false
	}
	class, _ := n.Attr("class")
	return highlightClass.MatchString(class) && firstElement(n).Is("pre")
}

// firstElement returns the first element child, skipping whitespace text.
func firstElement(n *turndown.Node) *turndown.Node {
	for _, c := range n.Children {
		switch c.Type {
		case turndown.ElementNode:
			return c
		case turndown.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return nil
			}
		}
	}
	return nil
}
