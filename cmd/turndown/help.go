package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-turndown/plugin"
)

// printUsage prints the command usage.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: turndown [flags] [FILE|DIR|URL|-]...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert HTML to Markdown. With no input or \"-\", read standard input.")
	fmt.Fprintln(w, "Directories are searched for .html, .htm and .xhtml files.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>              Output file or directory (default: stdout,")
	fmt.Fprintln(w, "                                   or next to the source for directories)")
	fmt.Fprintln(w, "  -c, --config <name>              Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>                Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Markdown:")
	fmt.Fprintln(w, "      --heading-style <s>          setext, atx")
	fmt.Fprintln(w, "      --hr <s>                     Thematic break (default \"* * *\")")
	fmt.Fprintln(w, "      --bullet <s>                 *, -, +")
	fmt.Fprintln(w, "      --code-block-style <s>       indented, fenced")
	fmt.Fprintln(w, "      --fence <s>                  ``` or ~~~")
	fmt.Fprintln(w, "      --em <s>                     _ or *")
	fmt.Fprintln(w, "      --strong <s>                 ** or __")
	fmt.Fprintln(w, "      --link-style <s>             inlined, referenced")
	fmt.Fprintln(w, "      --link-reference-style <s>   full, collapsed, shortcut")
	fmt.Fprintln(w, "      --br <s>                     Hard break marker (two spaces or \\)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rules:")
	fmt.Fprintln(w, "      --keep <tags>                Render tags as HTML")
	fmt.Fprintln(w, "      --remove <tags>              Drop tags and their content")
	fmt.Fprintf(w, "      --plugin <names>             %s\n", strings.Join(plugin.Names(), ", "))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Content:")
	fmt.Fprintln(w, "      --select <css>               Convert only the first match")
	fmt.Fprintln(w, "      --strip <css>                Remove matches before converting")
	fmt.Fprintln(w, "      --auto-content               Strip page chrome, keep main/article/body")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Remote input:")
	fmt.Fprintln(w, "      --render                     Load URLs in headless Chrome")
	fmt.Fprintln(w, "  -t, --timeout <d>                Page load timeout (default 30s)")
	fmt.Fprintln(w, "      --user-agent <s>             User-Agent for downloads")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                      Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                    Show per-file progress and timing")
	fmt.Fprintln(w, "      --print-config               Print effective configuration and exit")
	fmt.Fprintln(w, "      --version                    Print version and exit")
	fmt.Fprintln(w, "      --completion <shell>         Print bash, zsh or fish completion and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  TURNDOWN_CONFIG, TURNDOWN_WORKERS, TURNDOWN_TIMEOUT, TURNDOWN_OUTPUT_DIR,")
	fmt.Fprintln(w, "  TURNDOWN_PLUGINS, TURNDOWN_USER_AGENT, ROD_BROWSER_BIN")
}
