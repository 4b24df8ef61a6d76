package turndown

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-turndown/internal/textproc"
	"github.com/alnah/go-turndown/markdown"
)

// skippedElements never produce output.
var skippedElements = setOf(
	"script", "style", "noscript", "template", "head", "title", "meta", "link", "base",
)

// converter walks a Node tree once and builds the Markdown document. It is
// single-use and not safe for concurrent use; the Service creates one per call.
type converter struct {
	reg  *registry
	opts Options
	ws   textproc.Processor
}

func (c *converter) document(n *Node) markdown.Document {
	nodes := []*Node{n}
	if n.Type == DocumentNode {
		nodes = n.Children
	}
	return markdown.Document{Children: c.blocks(nodes)}
}

// blocks converts sibling nodes into blocks. Consecutive inline content is
// grouped into paragraphs; block children are flattened in order.
func (c *converter) blocks(nodes []*Node) []markdown.Block {
	var out []markdown.Block
	var run []markdown.Inline

	flush := func() {
		if content := trimInlines(run); !markdown.InlinesBlank(content) {
			out = append(out, markdown.Paragraph{Content: content})
		}
		run = nil
		c.ws.Reset()
	}

	for _, n := range nodes {
		m := c.reg.match(n)
		if !c.isBlock(n, m) {
			run = append(run, c.inline(n, m)...)
			continue
		}
		flush()
		out = append(out, c.block(n, m)...)
		c.ws.Reset()
	}
	flush()

	return out
}

// isBlock decides whether n starts its own block. Unknown inline wrappers
// become blocks when they contain block-level descendants.
func (c *converter) isBlock(n *Node, m match) bool {
	switch n.Type {
	case DocumentNode:
		return true
	case ElementNode:
	default:
		return false
	}

	switch m.kind {
	case matchRemove:
		return false
	case matchKeep, matchRule:
		return n.IsBlock()
	}
	if skippedElements[n.Tag] {
		return false
	}
	if n.IsBlock() {
		return true
	}
	if isInlineElement(n.Tag) {
		return false
	}
	return containsBlock(n)
}

func isInlineElement(tag string) bool {
	switch tag {
	case "strong", "b", "em", "i", "code", "a", "img", "br":
		return true
	}
	return false
}

func containsBlock(n *Node) bool {
	for _, child := range n.Children {
		if child.Type != ElementNode || skippedElements[child.Tag] {
			continue
		}
		if child.IsBlock() {
			return true
		}
		if !isInlineElement(child.Tag) && containsBlock(child) {
			return true
		}
	}
	return false
}

func (c *converter) block(n *Node, m match) []markdown.Block {
	if n.Type == DocumentNode {
		return c.blocks(n.Children)
	}

	switch m.kind {
	case matchKeep:
		return []markdown.Block{markdown.HTMLBlock{HTML: n.OuterHTML()}}
	case matchRule:
		return []markdown.Block{markdown.ReplacedBlock{
			Children: c.blocks(n.Children),
			Render:   c.render(m.rule, n),
		}}
	}

	switch n.Tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return []markdown.Block{markdown.Heading{
			Level:   int(n.Tag[1] - '0'),
			Content: c.blockInlines(n.Children),
		}}
	case "blockquote":
		return []markdown.Block{markdown.BlockQuote{Children: c.blocks(n.Children)}}
	case "ul", "ol":
		return []markdown.Block{c.list(n)}
	case "pre":
		return []markdown.Block{c.codeBlock(n)}
	case "hr":
		return []markdown.Block{markdown.ThematicBreak{}}
	case "table":
		if t, ok := c.table(n); ok {
			return []markdown.Block{t}
		}
		return nil
	}
	return c.blocks(n.Children)
}

// blockInlines converts the inline content of a block that holds no nested
// blocks, such as a heading or a table cell.
func (c *converter) blockInlines(nodes []*Node) []markdown.Inline {
	c.ws.Reset()
	content := trimInlines(c.inlines(nodes))
	c.ws.Reset()
	return content
}

func (c *converter) list(n *Node) markdown.List {
	l := markdown.List{Ordered: n.Tag == "ol", Start: 1}
	if v, ok := n.Attr("start"); ok && l.Ordered {
		if start, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32); err == nil {
			l.Start = uint32(start)
		}
	}

	for _, child := range n.Children {
		m := c.reg.match(child)
		if child.Is("li") && m.kind == matchNone {
			l.Items = append(l.Items, markdown.ListItem{Children: c.blocks(child.Children)})
			continue
		}

		// Stray content and rule-handled items.
		blocks := c.blocks([]*Node{child})
		if len(blocks) == 0 {
			continue
		}
		if child.Is("li") || len(l.Items) == 0 {
			l.Items = append(l.Items, markdown.ListItem{Children: blocks})
			continue
		}
		last := &l.Items[len(l.Items)-1]
		last.Children = append(last.Children, blocks...)
	}
	c.ws.Reset()

	return l
}

func (c *converter) codeBlock(n *Node) markdown.CodeBlock {
	code := n.TextContent()
	lang := codeLanguage(n)
	if first := firstChild(n); first.Is("code") {
		code = first.TextContent()
		if l := codeLanguage(first); l != "" {
			lang = l
		}
	}
	return markdown.CodeBlock{
		Language: lang,
		Code:     code,
		Fenced:   c.opts.CodeBlockStyle == CodeBlockFenced,
	}
}

func firstChild(n *Node) *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// codeLanguage reads a language-* or lang-* class.
func codeLanguage(n *Node) string {
	class, _ := n.Attr("class")
	for _, token := range strings.Fields(class) {
		for _, prefix := range []string{"language-", "lang-"} {
			if lang, ok := strings.CutPrefix(token, prefix); ok && lang != "" {
				return lang
			}
		}
	}
	return ""
}

// table collects rows from thead, tbody, tfoot and direct tr children. The
// header is the first thead row, or else the first row.
func (c *converter) table(n *Node) (markdown.Table, bool) {
	var header []*Node
	var rows [][]*Node
	hasHeader := false

	add := func(tr *Node, head bool) {
		if !tr.Is("tr") {
			return
		}
		cells := tableCells(tr)
		if head && !hasHeader {
			header, hasHeader = cells, true
			return
		}
		rows = append(rows, cells)
	}

	for _, child := range n.Children {
		switch {
		case child.Is("thead"):
			for _, tr := range child.Children {
				add(tr, true)
			}
		case child.Is("tbody", "tfoot"):
			for _, tr := range child.Children {
				add(tr, false)
			}
		case child.Is("tr"):
			add(child, false)
		}
	}

	if !hasHeader {
		if len(rows) == 0 {
			return markdown.Table{}, false
		}
		header, rows = rows[0], rows[1:]
	}

	t := markdown.Table{Headers: make([][]markdown.Inline, len(header))}
	for i, cell := range header {
		t.Headers[i] = c.blockInlines(cell.Children)
	}
	for _, row := range rows {
		r := make([][]markdown.Inline, len(header))
		for i := 0; i < len(r) && i < len(row); i++ {
			r[i] = c.blockInlines(row[i].Children)
		}
		t.Rows = append(t.Rows, r)
	}
	return t, true
}

func tableCells(tr *Node) []*Node {
	var cells []*Node
	for _, child := range tr.Children {
		if child.Is("th", "td") {
			cells = append(cells, child)
		}
	}
	return cells
}

func (c *converter) inlines(nodes []*Node) []markdown.Inline {
	var out []markdown.Inline
	for _, n := range nodes {
		out = append(out, c.inline(n, c.reg.match(n))...)
	}
	return normalizeInlines(out)
}

func (c *converter) inline(n *Node, m match) []markdown.Inline {
	switch n.Type {
	case TextNode:
		if s := c.ws.Text(n.Data); s != "" {
			return []markdown.Inline{markdown.Text{Value: s}}
		}
		return nil
	case DocumentNode:
		return c.inlines(n.Children)
	case ElementNode:
	default:
		return nil
	}

	switch m.kind {
	case matchRemove:
		return nil
	case matchKeep:
		c.ws.Continue()
		return []markdown.Inline{markdown.HTMLInline{HTML: n.OuterHTML()}}
	case matchRule:
		render := c.render(m.rule, n)
		content := c.inlines(n.Children)
		if markdown.InlinesBlank(content) {
			// Rules on empty elements (inputs, icons) still produce text.
			c.ws.Continue()
		}
		return hoist(content, func(content []markdown.Inline) markdown.Inline {
			return markdown.ReplacedInline{Content: content, Render: render}
		})
	}
	if skippedElements[n.Tag] {
		return nil
	}

	switch n.Tag {
	case "strong", "b":
		content := unwrapStrong(c.inlines(n.Children))
		return hoist(content, func(content []markdown.Inline) markdown.Inline {
			return markdown.Strong{Content: content}
		})
	case "em", "i":
		content := unwrapEmphasis(c.inlines(n.Children))
		return hoist(content, func(content []markdown.Inline) markdown.Inline {
			return markdown.Emphasis{Content: content}
		})
	case "code":
		return c.code(n)
	case "a":
		return c.link(n)
	case "img":
		return c.image(n)
	case "br":
		c.ws.Break()
		return []markdown.Inline{markdown.LineBreak{}}
	}

	if n.IsBlock() {
		// Block element in inline context: keep its text, separated by spaces.
		out := c.space(nil)
		out = append(out, c.inlines(n.Children)...)
		return c.space(out)
	}
	return c.inlines(n.Children)
}

func (c *converter) space(out []markdown.Inline) []markdown.Inline {
	if s := c.ws.Text(" "); s != "" {
		out = append(out, markdown.Text{Value: s})
	}
	return out
}

func (c *converter) code(n *Node) []markdown.Inline {
	value := c.ws.Code(n.TextContent())
	lead := strings.HasPrefix(value, " ")
	value = strings.TrimPrefix(value, " ")
	trail := strings.HasSuffix(value, " ")
	value = strings.TrimSuffix(value, " ")

	var out []markdown.Inline
	if lead {
		out = append(out, markdown.Text{Value: " "})
	}
	if value != "" {
		out = append(out, markdown.Code{Value: value})
	}
	if trail {
		out = append(out, markdown.Text{Value: " "})
	}
	return out
}

func (c *converter) link(n *Node) []markdown.Inline {
	href, _ := n.Attr("href")
	href = strings.TrimSpace(href)
	content := c.inlines(n.Children)
	if href == "" {
		return content
	}
	if markdown.InlinesBlank(content) {
		c.ws.Continue()
	}

	title := cleanAttr(n, "title")
	return hoist(content, func(content []markdown.Inline) markdown.Inline {
		return markdown.Link{Content: content, URL: href, Title: title}
	})
}

func (c *converter) image(n *Node) []markdown.Inline {
	src, _ := n.Attr("src")
	src = strings.TrimSpace(src)
	if src == "" {
		return nil
	}
	c.ws.Continue()
	return []markdown.Inline{markdown.Image{
		URL:   src,
		Alt:   cleanAttr(n, "alt"),
		Title: cleanAttr(n, "title"),
	}}
}

// cleanAttr returns an attribute value with whitespace runs collapsed.
func cleanAttr(n *Node, name string) string {
	v, _ := n.Attr(name)
	return strings.Join(strings.Fields(v), " ")
}

// render binds a custom rule to its element. Errors and panics from the
// replacement surface as *RuleError.
func (c *converter) render(rule Rule, n *Node) markdown.RenderFunc {
	opts := c.opts
	return func(content string) (out string, err error) {
		defer func() {
			if r := recover(); r != nil {
				out, err = "", &RuleError{Rule: rule.Name, Tag: n.Tag, Err: fmt.Errorf("panic: %v", r)}
			}
		}()

		out, err = rule.Replacement(content, n, opts)
		if err != nil {
			return "", &RuleError{Rule: rule.Name, Tag: n.Tag, Err: err}
		}
		return out, nil
	}
}

// hoist moves a space at either edge of content outside the inline built by
// wrap, so delimiters sit against the text.
func hoist(content []markdown.Inline, wrap func([]markdown.Inline) markdown.Inline) []markdown.Inline {
	lead, content := cutLeadingSpace(content)
	content, trail := cutTrailingSpace(content)

	out := make([]markdown.Inline, 0, 3)
	if lead {
		out = append(out, markdown.Text{Value: " "})
	}
	out = append(out, wrap(content))
	if trail {
		out = append(out, markdown.Text{Value: " "})
	}
	return out
}

func cutLeadingSpace(in []markdown.Inline) (bool, []markdown.Inline) {
	if len(in) == 0 {
		return false, in
	}
	t, ok := in[0].(markdown.Text)
	if !ok || !strings.HasPrefix(t.Value, " ") {
		return false, in
	}
	out := make([]markdown.Inline, 0, len(in))
	if rest := t.Value[1:]; rest != "" {
		out = append(out, markdown.Text{Value: rest})
	}
	return true, append(out, in[1:]...)
}

func cutTrailingSpace(in []markdown.Inline) ([]markdown.Inline, bool) {
	if len(in) == 0 {
		return in, false
	}
	last := len(in) - 1
	t, ok := in[last].(markdown.Text)
	if !ok || !strings.HasSuffix(t.Value, " ") {
		return in, false
	}
	out := make([]markdown.Inline, 0, len(in))
	out = append(out, in[:last]...)
	if rest := t.Value[:len(t.Value)-1]; rest != "" {
		out = append(out, markdown.Text{Value: rest})
	}
	return out, true
}

func unwrapStrong(in []markdown.Inline) []markdown.Inline {
	out := make([]markdown.Inline, 0, len(in))
	for _, x := range in {
		if s, ok := x.(markdown.Strong); ok {
			out = append(out, s.Content...)
			continue
		}
		out = append(out, x)
	}
	return normalizeInlines(out)
}

func unwrapEmphasis(in []markdown.Inline) []markdown.Inline {
	out := make([]markdown.Inline, 0, len(in))
	for _, x := range in {
		if e, ok := x.(markdown.Emphasis); ok {
			out = append(out, e.Content...)
			continue
		}
		out = append(out, x)
	}
	return normalizeInlines(out)
}

// normalizeInlines merges adjacent text and adjacent same-kind delimiters,
// which would otherwise collide, and drops spaces before hard breaks.
func normalizeInlines(in []markdown.Inline) []markdown.Inline {
	out := make([]markdown.Inline, 0, len(in))
	for _, x := range in {
		if len(out) > 0 {
			last := len(out) - 1
			switch cur := x.(type) {
			case markdown.Text:
				if prev, ok := out[last].(markdown.Text); ok {
					out[last] = markdown.Text{Value: prev.Value + cur.Value}
					continue
				}
			case markdown.Emphasis:
				if prev, ok := out[last].(markdown.Emphasis); ok {
					out[last] = markdown.Emphasis{Content: joinInlines(prev.Content, cur.Content)}
					continue
				}
			case markdown.Strong:
				if prev, ok := out[last].(markdown.Strong); ok {
					out[last] = markdown.Strong{Content: joinInlines(prev.Content, cur.Content)}
					continue
				}
			case markdown.LineBreak:
				out = trimTrailingSpace(out)
			}
		}
		out = append(out, x)
	}
	return out
}

func joinInlines(a, b []markdown.Inline) []markdown.Inline {
	out := make([]markdown.Inline, 0, len(a)+len(b))
	out = append(out, a...)
	return normalizeInlines(append(out, b...))
}

func trimTrailingSpace(in []markdown.Inline) []markdown.Inline {
	if len(in) == 0 {
		return in
	}
	last := len(in) - 1
	t, ok := in[last].(markdown.Text)
	if !ok {
		return in
	}
	if v := strings.TrimRight(t.Value, " "); v != "" {
		in[last] = markdown.Text{Value: v}
		return in
	}
	return in[:last]
}

// trimInlines strips whitespace and hard breaks from both ends of a block's
// inline content.
func trimInlines(in []markdown.Inline) []markdown.Inline {
	in = normalizeInlines(in)

	for len(in) > 0 {
		if _, ok := in[0].(markdown.LineBreak); ok {
			in = in[1:]
			continue
		}
		t, ok := in[0].(markdown.Text)
		if !ok {
			break
		}
		v := strings.TrimLeft(t.Value, " ")
		if v == "" {
			in = in[1:]
			continue
		}
		in[0] = markdown.Text{Value: v}
		break
	}

	for len(in) > 0 {
		last := len(in) - 1
		if _, ok := in[last].(markdown.LineBreak); ok {
			in = in[:last]
			continue
		}
		t, ok := in[last].(markdown.Text)
		if !ok {
			break
		}
		v := strings.TrimRight(t.Value, " ")
		if v == "" {
			in = in[:last]
			continue
		}
		in[last] = markdown.Text{Value: v}
		break
	}

	return in
}
