package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds general flags.
type commonFlags struct {
	config      string
	quiet       bool
	verbose     bool
	printConfig bool
	version     bool
	completion  string
}

// markdownFlags holds output style flags. Empty values keep the config value.
type markdownFlags struct {
	headingStyle       string
	hr                 string
	bullet             string
	codeBlockStyle     string
	fence              string
	em                 string
	strong             string
	linkStyle          string
	linkReferenceStyle string
	br                 string
}

// ruleFlags holds keep/remove tag lists and plugin names.
type ruleFlags struct {
	keep    []string
	remove  []string
	plugins []string
}

// extractFlags holds content selection flags.
type extractFlags struct {
	selector string
	strip    []string
	auto     bool
}

// fetchFlags holds remote input flags.
type fetchFlags struct {
	render    bool
	timeout   string
	userAgent string
}

// cliFlags holds every flag of the turndown command.
type cliFlags struct {
	common   commonFlags
	markdown markdownFlags
	rules    ruleFlags
	extract  extractFlags
	fetch    fetchFlags
	output   string
	workers  int
}

// addCommonFlags adds general flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-file progress and timing")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective configuration as YAML and exit")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	fs.StringVar(&f.completion, "completion", "", "print a shell completion script (bash, zsh, fish) and exit")
}

// addMarkdownFlags adds output style flags to a FlagSet.
func addMarkdownFlags(fs *flag.FlagSet, f *markdownFlags) {
	fs.StringVar(&f.headingStyle, "heading-style", "", "heading style: setext, atx")
	fs.StringVar(&f.hr, "hr", "", "thematic break, e.g. \"* * *\" or \"---\"")
	fs.StringVar(&f.bullet, "bullet", "", "bullet list marker: *, -, +")
	fs.StringVar(&f.codeBlockStyle, "code-block-style", "", "code block style: indented, fenced")
	fs.StringVar(&f.fence, "fence", "", "code fence: ``` or ~~~")
	fs.StringVar(&f.em, "em", "", "emphasis delimiter: _ or *")
	fs.StringVar(&f.strong, "strong", "", "strong delimiter: ** or __")
	fs.StringVar(&f.linkStyle, "link-style", "", "link style: inlined, referenced")
	fs.StringVar(&f.linkReferenceStyle, "link-reference-style", "", "reference style: full, collapsed, shortcut")
	fs.StringVar(&f.br, "br", "", "text before the newline of a hard break (two or more spaces, or \\)")
}

// addRuleFlags adds rule and plugin flags to a FlagSet.
func addRuleFlags(fs *flag.FlagSet, f *ruleFlags) {
	fs.StringSliceVar(&f.keep, "keep", nil, "tags rendered as HTML (repeatable, comma-separated)")
	fs.StringSliceVar(&f.remove, "remove", nil, "tags dropped with their content (repeatable, comma-separated)")
	fs.StringSliceVar(&f.plugins, "plugin", nil, "plugins to apply (repeatable, comma-separated)")
}

// addExtractFlags adds content selection flags to a FlagSet.
func addExtractFlags(fs *flag.FlagSet, f *extractFlags) {
	fs.StringVar(&f.selector, "select", "", "CSS selector of the content to convert")
	fs.StringArrayVar(&f.strip, "strip", nil, "CSS selector removed before conversion (repeatable)")
	fs.BoolVar(&f.auto, "auto-content", false, "strip navigation and ads, convert main/article/body")
}

// addFetchFlags adds remote input flags to a FlagSet.
func addFetchFlags(fs *flag.FlagSet, f *fetchFlags) {
	fs.BoolVar(&f.render, "render", false, "load URLs in headless Chrome before converting")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "page load timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.userAgent, "user-agent", "", "User-Agent header for URL downloads")
}

// newFlagSet registers every flag of the turndown command into f.
// Shared by parseFlags and completion generation.
func newFlagSet(f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("turndown", flag.ContinueOnError)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	addCommonFlags(fs, &f.common)
	addMarkdownFlags(fs, &f.markdown)
	addRuleFlags(fs, &f.rules)
	addExtractFlags(fs, &f.extract)
	addFetchFlags(fs, &f.fetch)

	return fs
}

// parseFlags parses command-line flags and returns positional args.
// Usage is written to stderr on parse errors and for --help.
func parseFlags(args []string, stderr io.Writer) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := newFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
