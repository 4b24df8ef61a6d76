package markdown

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Serialize renders a block tree as Markdown under opts.
// Errors come from invalid options or from RenderFunc callbacks.
func Serialize(doc Block, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	opts = opts.Normalize()

	s := newSerializer(opts, &references{style: opts.LinkReferenceStyle})
	s.block(doc)
	if s.err != nil {
		return "", s.err
	}

	if defs := s.refs.defs; len(defs) > 0 {
		s.separate(2)
		s.write(strings.Join(defs, "\n"))
	}

	return strings.TrimRight(strings.TrimLeft(s.out.String(), "\n"), " \t\n"), nil
}

// linePrefix is the indentation contributed by one open container.
// first is written on the container's first line, rest on every later line.
type linePrefix struct {
	first string
	rest  string
	used  bool
}

// serializer writes Markdown into a single buffer. Block separation is lazy:
// a finished block only records how many newlines the next content needs, so
// empty output never leaves stray blank lines behind.
type serializer struct {
	opts        Options
	out         *strings.Builder
	refs        *references
	prefixes    []linePrefix
	atLineStart bool
	started     bool
	pending     int
	noBreak     int // >0 inside headings and table cells
	err         error
}

func newSerializer(opts Options, refs *references) *serializer {
	return &serializer{
		opts:        opts,
		out:         &strings.Builder{},
		refs:        refs,
		atLineStart: true,
	}
}

// sub returns a serializer writing to its own buffer but sharing references.
func (s *serializer) sub() *serializer {
	c := newSerializer(s.opts, s.refs)
	c.noBreak = s.noBreak
	return c
}

func (s *serializer) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

func (s *serializer) separate(n int) {
	if n > s.pending {
		s.pending = n
	}
}

func (s *serializer) flush() {
	if !s.started {
		s.started = true
		s.pending = 0
		return
	}
	for ; s.pending > 0; s.pending-- {
		s.newline()
	}
}

// write emits text, prefixing every new line with the open containers'
// indentation.
func (s *serializer) write(text string) {
	if text == "" || s.err != nil {
		return
	}
	s.flush()
	for {
		i := strings.IndexByte(text, '\n')
		line := text
		if i >= 0 {
			line = text[:i]
		}
		if line != "" {
			s.beginLine()
			s.out.WriteString(line)
		}
		if i < 0 {
			return
		}
		s.newline()
		text = text[i+1:]
	}
}

// beginLine writes the line prefix if nothing has been written on this line.
func (s *serializer) beginLine() {
	if !s.atLineStart {
		return
	}
	s.out.WriteString(s.linePrefix())
	s.atLineStart = false
}

// linePrefix composes the prefix of a content line and marks every open
// container as started.
func (s *serializer) linePrefix() string {
	var b strings.Builder
	for i := range s.prefixes {
		p := &s.prefixes[i]
		if p.used {
			b.WriteString(p.rest)
			continue
		}
		b.WriteString(p.first)
		p.used = true
	}
	return b.String()
}

func (s *serializer) newline() {
	if s.atLineStart {
		s.out.WriteString(s.blankPrefix())
	}
	s.out.WriteByte('\n')
	s.atLineStart = true
}

// blankPrefix is the prefix of an empty line: only containers that have
// started contribute, with trailing spaces removed.
func (s *serializer) blankPrefix() string {
	var b strings.Builder
	for _, p := range s.prefixes {
		if p.used {
			b.WriteString(p.rest)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func (s *serializer) push(first, rest string) {
	s.prefixes = append(s.prefixes, linePrefix{first: first, rest: rest})
}

func (s *serializer) pop() {
	s.prefixes = s.prefixes[:len(s.prefixes)-1]
}

func (s *serializer) block(b Block) {
	if s.err != nil || b.IsBlank() {
		return
	}

	switch b := b.(type) {
	case Document:
		s.blocks(b.Children, false)
	case Paragraph:
		s.inlines(b.Content)
	case Heading:
		s.heading(b)
	case BlockQuote:
		s.push("> ", "> ")
		s.blocks(b.Children, false)
		s.pop()
	case List:
		s.list(b)
	case CodeBlock:
		s.codeBlock(b)
	case ThematicBreak:
		s.write(s.opts.HR)
	case Table:
		s.table(b)
	case HTMLBlock:
		s.write(strings.Trim(b.HTML, "\n"))
	case ReplacedBlock:
		c := s.sub()
		c.blocks(b.Children, false)
		if c.err != nil {
			s.fail(c.err)
			return
		}
		out, err := b.Render(c.String())
		if err != nil {
			s.fail(err)
			return
		}
		s.write(strings.Trim(out, "\n"))
	}
}

// blocks writes sibling blocks. Inside list items a nested list follows the
// previous block on the next line; everything else is blank-line separated.
func (s *serializer) blocks(blocks []Block, inItem bool) {
	first := true
	for _, b := range blocks {
		if b.IsBlank() {
			continue
		}
		if !first {
			if _, isList := b.(List); inItem && isList {
				s.separate(1)
			} else {
				s.separate(2)
			}
		}
		s.block(b)
		first = false
	}
}

func (s *serializer) heading(h Heading) {
	level := min(max(h.Level, 1), 6)

	if level <= 2 && s.opts.HeadingStyle == HeadingSetext {
		s.flush()
		s.beginLine()
		start := s.out.Len()
		s.noBreak++
		s.inlines(h.Content)
		s.noBreak--
		width := utf8.RuneCountInString(s.out.String()[start:])

		underline := "="
		if level == 2 {
			underline = "-"
		}
		s.write("\n" + strings.Repeat(underline, width))
		return
	}

	s.write(strings.Repeat("#", level) + " ")
	s.noBreak++
	s.inlines(h.Content)
	s.noBreak--
}

func (s *serializer) list(l List) {
	n := uint64(l.Start)
	first := true
	for _, item := range l.Items {
		marker := s.opts.BulletListMarker + " "
		if l.Ordered {
			marker = strconv.FormatUint(n, 10) + ". "
			n++
		}

		if !first {
			s.separate(1)
		}
		first = false

		s.push(marker, strings.Repeat(" ", len(marker)))
		s.blocks(item.Children, true)
		if !s.prefixes[len(s.prefixes)-1].used {
			// Empty item: the marker alone still holds its place.
			s.flush()
			s.out.WriteString(strings.TrimRight(s.linePrefix(), " "))
			s.atLineStart = false
		}
		s.pop()
	}
}

func (s *serializer) codeBlock(c CodeBlock) {
	code := strings.TrimSuffix(c.Code, "\n")

	if c.Fenced || s.opts.CodeBlockStyle == CodeBlockFenced {
		fence := fenceFor(code, s.opts.Fence)
		s.write(fence + c.Language)
		s.write("\n")
		s.write(code)
		s.write("\n" + fence)
		return
	}

	s.write("    " + strings.ReplaceAll(code, "\n", "\n    "))
}

func (s *serializer) table(t Table) {
	cols := len(t.Headers)
	if cols == 0 {
		return
	}

	rows := make([][]string, 0, len(t.Rows)+1)
	rows = append(rows, s.cells(t.Headers, cols))
	for _, r := range t.Rows {
		rows = append(rows, s.cells(r, cols))
	}
	if s.err != nil {
		return
	}

	widths := make([]int, cols)
	for i := range widths {
		widths[i] = 3
	}
	for _, r := range rows {
		for i, cell := range r {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	sep := make([]string, cols)
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}

	s.tableRow(rows[0], widths)
	s.write("\n")
	s.tableRow(sep, widths)
	for _, r := range rows[1:] {
		s.write("\n")
		s.tableRow(r, widths)
	}
}

// cells renders a row to exactly cols cells, padding or truncating.
func (s *serializer) cells(row [][]Inline, cols int) []string {
	out := make([]string, cols)
	for i := 0; i < cols && i < len(row); i++ {
		c := s.sub()
		c.noBreak++
		c.inlines(row[i])
		if c.err != nil {
			s.fail(c.err)
			return out
		}
		out[i] = strings.ReplaceAll(strings.TrimSpace(c.String()), "|", `\|`)
	}
	return out
}

func (s *serializer) tableRow(cells []string, widths []int) {
	var b strings.Builder
	b.WriteString("|")
	for i, cell := range cells {
		b.WriteString(" ")
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell)))
		b.WriteString(" |")
	}
	s.write(b.String())
}

func (s *serializer) inlines(content []Inline) {
	for _, in := range content {
		s.inline(in)
	}
}

func (s *serializer) inline(in Inline) {
	if s.err != nil {
		return
	}

	switch in := in.(type) {
	case Text:
		s.write(in.Value)
	case Strong:
		s.delimited(s.opts.StrongDelimiter, in.Content)
	case Emphasis:
		s.delimited(s.opts.EmDelimiter, in.Content)
	case Code:
		s.write(CodeSpan(in.Value))
	case Link:
		s.link(in)
	case Image:
		if in.URL == "" {
			return
		}
		s.write("![" + in.Alt + "](" + escapeURL(in.URL) + titlePart(in.Title) + ")")
	case LineBreak:
		if s.noBreak > 0 {
			s.write(" ")
			return
		}
		s.write(s.opts.LineBreak + "\n")
	case HTMLInline:
		s.write(in.HTML)
	case ReplacedInline:
		c := s.sub()
		c.inlines(in.Content)
		if c.err != nil {
			s.fail(c.err)
			return
		}
		out, err := in.Render(c.String())
		if err != nil {
			s.fail(err)
			return
		}
		s.write(out)
	}
}

func (s *serializer) delimited(delim string, content []Inline) {
	if InlinesBlank(content) {
		return
	}
	s.write(delim)
	s.inlines(content)
	s.write(delim)
}

func (s *serializer) link(l Link) {
	if s.opts.LinkStyle == LinkInlined {
		s.write("[")
		s.inlines(l.Content)
		s.write("](" + escapeURL(l.URL) + titlePart(l.Title) + ")")
		return
	}

	c := s.sub()
	c.inlines(l.Content)
	if c.err != nil {
		s.fail(c.err)
		return
	}
	label := c.String()

	switch s.opts.LinkReferenceStyle {
	case ReferenceCollapsed:
		s.refs.labeled(label, l.URL, l.Title)
		s.write("[" + label + "][]")
	case ReferenceShortcut:
		s.refs.labeled(label, l.URL, l.Title)
		s.write("[" + label + "]")
	default:
		id := s.refs.numbered(l.URL, l.Title)
		s.write("[" + label + "][" + strconv.Itoa(id) + "]")
	}
}

// String returns the trimmed output of a sub-serializer.
func (s *serializer) String() string {
	return strings.TrimRight(strings.TrimLeft(s.out.String(), "\n"), "\n")
}

// references collects link definitions in first-use order.
type references struct {
	style LinkReferenceStyle
	defs  []string
	seen  map[string]int
}

// numbered returns the shared number for url+title, assigning the next one
// on first use.
func (r *references) numbered(url, title string) int {
	if r.seen == nil {
		r.seen = make(map[string]int)
	}
	key := url + "\x00" + title
	if id, ok := r.seen[key]; ok {
		return id
	}
	id := len(r.defs) + 1
	r.seen[key] = id
	r.defs = append(r.defs, definition(strconv.Itoa(id), url, title))
	return id
}

// labeled records a definition keyed by its label; identical definitions are
// emitted once.
func (r *references) labeled(label, url, title string) {
	if r.seen == nil {
		r.seen = make(map[string]int)
	}
	def := definition(label, url, title)
	if _, ok := r.seen[def]; ok {
		return
	}
	r.seen[def] = len(r.defs) + 1
	r.defs = append(r.defs, def)
}

func definition(label, url, title string) string {
	return "[" + label + "]: " + url + titlePart(title)
}

func titlePart(title string) string {
	if title == "" {
		return ""
	}
	return ` "` + strings.ReplaceAll(title, `"`, `\"`) + `"`
}

var urlEscaper = strings.NewReplacer("(", `\(`, ")", `\)`)

func escapeURL(url string) string {
	return urlEscaper.Replace(url)
}
