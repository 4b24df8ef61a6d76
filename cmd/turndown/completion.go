package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-turndown/plugin"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// inputExtensions are offered for positional arguments.
var inputExtensions = []string{"html", "htm", "xhtml"}

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with extension filter
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long       string   // --output
	Short      string   // -o (empty if none)
	Type       flagType // completion type
	Desc       string   // help text
	Values     []string // for enum flags
	Extensions []string // for file flags
	Repeatable bool     // list flags may be given several times
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values     func() []string // enum values
	Extensions []string        // file extensions
	IsDir      bool            // directory completion
}

func values(v ...string) func() []string {
	return func() []string { return v }
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"heading-style":        {Values: values("setext", "atx")},
	"code-block-style":     {Values: values("indented", "fenced")},
	"link-style":           {Values: values("inlined", "referenced")},
	"link-reference-style": {Values: values("full", "collapsed", "shortcut")},
	"completion":           {Values: values(string(ShellBash), string(ShellZsh), string(ShellFish))},
	"plugin":               {Values: plugin.Names},

	// File and directory flags
	"config": {Extensions: []string{"yaml", "yml"}},
	"output": {IsDir: true},
}

// completionFlags extracts flag definitions from the command FlagSet,
// sorted by long name.
func completionFlags() []flagDef {
	fs := newFlagSet(&cliFlags{})

	var flags []flagDef
	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int":
			fd.Type = flagInt
		case "stringSlice", "stringArray":
			fd.Repeatable = true
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case meta.Values != nil:
				fd.Type = flagEnum
				fd.Values = meta.Values()
			case len(meta.Extensions) > 0:
				fd.Type = flagFile
				fd.Extensions = meta.Extensions
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	sort.Slice(flags, func(i, j int) bool { return flags[i].Long < flags[j].Long })
	return flags
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var b strings.Builder
	flags := completionFlags()

	switch shell {
	case ShellBash:
		writeBash(&b, flags)
	case ShellZsh:
		writeZsh(&b, flags)
	case ShellFish:
		writeFish(&b, flags)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func writeBash(b *strings.Builder, flags []flagDef) {
	var names []string
	for _, f := range flags {
		names = append(names, "--"+f.Long)
		if f.Short != "" {
			names = append(names, "-"+f.Short)
		}
	}

	b.WriteString("# bash completion for turndown\n")
	b.WriteString("_turndown() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	b.WriteString("    case \"$prev\" in\n")

	for _, f := range flags {
		if f.Type == flagBool {
			continue
		}
		fmt.Fprintf(b, "        %s)\n", bashPattern(f))
		switch f.Type {
		case flagEnum:
			fmt.Fprintf(b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(f.Values, " "))
		case flagFile:
			fmt.Fprintf(b, "            COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"$cur\") $(compgen -d -- \"$cur\"))\n",
				strings.Join(f.Extensions, "|"))
		case flagDir:
			b.WriteString("            COMPREPLY=($(compgen -d -- \"$cur\"))\n")
		default:
			b.WriteString("            COMPREPLY=()\n")
		}
		b.WriteString("            return\n            ;;\n")
	}

	b.WriteString("    esac\n\n")
	b.WriteString("    if [[ \"$cur\" == -* ]]; then\n")
	fmt.Fprintf(b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(names, " "))
	b.WriteString("        return\n    fi\n\n")
	fmt.Fprintf(b, "    COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"$cur\") $(compgen -d -- \"$cur\"))\n",
		strings.Join(inputExtensions, "|"))
	b.WriteString("}\n\n")
	b.WriteString("shopt -s extglob\n")
	b.WriteString("complete -o filenames -F _turndown turndown\n")
}

func bashPattern(f flagDef) string {
	if f.Short == "" {
		return "--" + f.Long
	}
	return "-" + f.Short + "|--" + f.Long
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func writeZsh(b *strings.Builder, flags []flagDef) {
	b.WriteString("#compdef turndown\n\n")
	b.WriteString("_turndown() {\n")
	b.WriteString("    _arguments -s \\\n")

	for _, f := range flags {
		fmt.Fprintf(b, "        %s \\\n", zshSpec(f))
	}

	fmt.Fprintf(b, "        '*:input:_files -g \"*.(%s)\"'\n", strings.Join(inputExtensions, "|"))
	b.WriteString("}\n\n")
	b.WriteString("compdef _turndown turndown\n")
}

func zshSpec(f flagDef) string {
	desc := zshEscape(f.Desc)

	var action string
	switch f.Type {
	case flagBool:
	case flagEnum:
		action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
	case flagFile:
		action = fmt.Sprintf(":file:_files -g \"*.(%s)\"", strings.Join(f.Extensions, "|"))
	case flagDir:
		action = ":path:_files"
	default:
		action = ":" + f.Long + ":"
	}

	repeat := ""
	if f.Repeatable {
		repeat = "*"
	}

	if f.Short == "" {
		return fmt.Sprintf("'%s--%s[%s]%s'", repeat, f.Long, desc, action)
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
}

var zshReplacer = strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)

func zshEscape(s string) string {
	return zshReplacer.Replace(s)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func writeFish(b *strings.Builder, flags []flagDef) {
	b.WriteString("# fish completion for turndown\n")
	b.WriteString("complete -c turndown -f\n")

	for _, f := range flags {
		b.WriteString("complete -c turndown")
		if f.Short != "" {
			fmt.Fprintf(b, " -s %s", f.Short)
		}
		fmt.Fprintf(b, " -l %s -d %s", f.Long, fishQuote(f.Desc))

		switch f.Type {
		case flagBool:
		case flagEnum:
			fmt.Fprintf(b, " -x -a %s", fishQuote(strings.Join(f.Values, " ")))
		case flagFile, flagDir:
			b.WriteString(" -r -F")
		default:
			b.WriteString(" -x")
		}
		b.WriteString("\n")
	}

	suffixes := make([]string, len(inputExtensions))
	for i, ext := range inputExtensions {
		suffixes[i] = "." + ext
	}
	fmt.Fprintf(b, "complete -c turndown -a '(__fish_complete_suffix %s)'\n", strings.Join(suffixes, " "))
}

func fishQuote(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s) + "'"
}
