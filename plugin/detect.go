package plugin

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/alnah/go-turndown"
	"github.com/alnah/go-turndown/markdown"
)

// DetectLanguage renders pre blocks that carry no language class as fenced
// code, guessing the language from the code itself. Blocks that cannot be
// identified are fenced without a language.
func DetectLanguage(s *turndown.Service) {
	s.AddRule("detectLanguage", turndown.Predicate(isUnlabeledCode),
		func(_ string, n *turndown.Node, opts turndown.Options) (string, error) {
			code := codeText(n)
			return markdown.FencedCodeBlock(code, Detect(code), opts), nil
		})
}

// Detect returns the short name of the language chroma recognizes in code,
// or "" when none scores.
func Detect(code string) string {
	lexer := lexers.Analyse(code)
	if lexer == nil {
		return ""
	}
	cfg := lexer.Config()
	if len(cfg.Aliases) > 0 {
		return cfg.Aliases[0]
	}
	return strings.ToLower(cfg.Name)
}

func isUnlabeledCode(n *turndown.Node) bool {
	if !n.Is("pre") || hasLanguageClass(n) {
		return false
	}
	if c := firstElement(n); c.Is("code") && hasLanguageClass(c) {
		return false
	}
	return strings.TrimSpace(n.TextContent()) != ""
}

func hasLanguageClass(n *turndown.Node) bool {
	class, _ := n.Attr("class")
	for _, token := range strings.Fields(class) {
		if strings.HasPrefix(token, "language-") || strings.HasPrefix(token, "lang-") {
			return true
		}
	}
	return false
}

func codeText(n *turndown.Node) string {
	if c := firstElement(n); c.Is("code") {
		return c.TextContent()
	}
	return n.TextContent()
}
