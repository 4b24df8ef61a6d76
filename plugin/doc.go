// Package plugin provides ready-made rule sets for turndown services.
//
// Plugins are applied at construction or later with Use:
//
//	svc, err := turndown.New(turndown.WithPlugins(plugin.GFM))
//	svc.Use(plugin.DetectLanguage)
//
// GFM bundles the GitHub Flavored Markdown rules: strikethrough, task list
// items and highlighted code blocks. Tables are produced by the core
// converter and need no plugin.
package plugin
