package plugin

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alnah/go-turndown"
)

// registry maps configuration names to plugins.
var registry = map[string]turndown.Plugin{
	"gfm":                    GFM,
	"strikethrough":          Strikethrough,
	"task-list-items":        TaskListItems,
	"highlighted-code-block": HighlightedCodeBlock,
	"detect-language":        DetectLanguage,
}

// ByName resolves a plugin from its configuration name, case-insensitively.
func ByName(name string) (turndown.Plugin, error) {
	p, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownPlugin, name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// Names returns the configuration names of all plugins, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GFM applies Strikethrough, TaskListItems and HighlightedCodeBlock.
func GFM(s *turndown.Service) {
	s.Use(Strikethrough, TaskListItems, HighlightedCodeBlock)
}
