// Package turndown converts HTML to Markdown.
//
// # Quick Start
//
// Create a service, convert HTML, and use the result:
//
//	svc, err := turndown.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	md, err := svc.Turndown("<h1>Hello</h1><p>World</p>")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(md)
//	// Hello
//	// =====
//	//
//	// World
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. HTML parsing into a Node tree (golang.org/x/net/html), or a tree built
//     directly with NewElement and NewText
//  2. Rule matching per element: remove filters, keep filters, custom rules,
//     then the built-in CommonMark rules
//  3. Whitespace collapsing and escaping of text, in document order
//  4. Serialization of the resulting Markdown document under Options
//
// # Configuration
//
// Use functional options to choose the output style:
//
//	svc, err := turndown.New(
//	    turndown.WithHeadingStyle(turndown.HeadingATX),
//	    turndown.WithCodeBlockStyle(turndown.CodeBlockFenced),
//	    turndown.WithBulletListMarker("-"),
//	)
//
// Invalid values are reported by New as errors wrapping ErrInvalidOptions.
//
// # Rules
//
// Custom rules replace the rendering of matching elements. The replacement
// receives the Markdown already rendered from the element's children:
//
//	svc.AddRule("strike", turndown.TagNames{"del", "s"},
//	    func(content string, n *turndown.Node, opts turndown.Options) (string, error) {
//	        return "~~" + content + "~~", nil
//	    })
//
// Keep renders matching elements as HTML; Remove drops them. Ready-made rule
// sets live in the plugin package and are applied with Use.
//
// # Concurrency
//
// A Service is safe for concurrent use. Rule registration waits for running
// conversions to finish.
//
// # Error Handling
//
// Errors can be checked with errors.Is:
//
//	_, err := svc.Turndown(html)
//	if errors.Is(err, turndown.ErrRuleExecution) {
//	    var ruleErr *turndown.RuleError
//	    errors.As(err, &ruleErr)
//	    log.Printf("rule %s failed on <%s>", ruleErr.Rule, ruleErr.Tag)
//	}
//
// Sentinel errors:
//   - ErrInvalidOptions: an option value is not allowed (wraps a field error)
//   - ErrParseHTML: the HTML input could not be parsed
//   - ErrNilNode: TurndownNode was called with a nil node
//   - ErrRuleExecution: a custom replacement returned an error or panicked
package turndown
