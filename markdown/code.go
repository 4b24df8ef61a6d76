package markdown

import "strings"

// CodeSpan renders code as an inline code span. The backtick run is the
// shortest one not already present in code; a space pads the content when it
// would otherwise touch the delimiters.
func CodeSpan(code string) string {
	code = lineEndings.Replace(code)
	if code == "" {
		return ""
	}

	runs := backtickRuns(code)
	n := 1
	for runs[n] {
		n++
	}
	delim := strings.Repeat("`", n)

	pad := ""
	if strings.HasPrefix(code, "`") || strings.HasSuffix(code, "`") ||
		(strings.HasPrefix(code, " ") && strings.HasSuffix(code, " ") && strings.TrimSpace(code) != "") {
		pad = " "
	}

	return delim + pad + code + pad + delim
}

// FencedCodeBlock renders a fenced code block using the fence style from opts.
// The fence grows past any fence-like run at the start of a code line.
func FencedCodeBlock(code, language string, opts Options) string {
	opts = opts.Normalize()
	code = strings.TrimSuffix(code, "\n")
	fence := fenceFor(code, opts.Fence)
	return fence + language + "\n" + code + "\n" + fence
}

var lineEndings = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// backtickRuns returns the set of backtick run lengths in s.
func backtickRuns(s string) map[int]bool {
	runs := make(map[int]bool)
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '`' {
			n++
			continue
		}
		if n > 0 {
			runs[n] = true
			n = 0
		}
	}
	if n > 0 {
		runs[n] = true
	}
	return runs
}

func fenceFor(code, fence string) string {
	ch := fence[0]
	size := len(fence)
	for _, line := range strings.Split(code, "\n") {
		n := 0
		for n < len(line) && line[n] == ch {
			n++
		}
		if n >= 3 && n >= size {
			size = n + 1
		}
	}
	return strings.Repeat(string(ch), size)
}
