package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-turndown/internal/yamlutil"
	"github.com/alnah/go-turndown/markdown"
	"github.com/alnah/go-turndown/plugin"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Markdown != markdown.DefaultOptions() {
		t.Errorf("Markdown = %+v, want defaults", cfg.Markdown)
	}
	if len(cfg.Plugins) != 0 {
		t.Errorf("Plugins = %v, want empty", cfg.Plugins)
	}
	if cfg.Fetch.Render {
		t.Error("Fetch.Render = true, want false")
	}
	if cfg.Output.DefaultDir != "" {
		t.Errorf("Output.DefaultDir = %q, want empty", cfg.Output.DefaultDir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "test", "", 10, false},
		{"value at limit is valid", "test", "1234567890", 10, false},
		{"value over limit returns error", "test.field", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength(tt.fieldName, tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr error
	}{
		{
			name: "nil config is valid",
			cfg:  nil,
		},
		{
			name: "zero config is valid",
			cfg:  &Config{},
		},
		{
			name: "full valid config",
			cfg: &Config{
				Markdown: markdown.Options{HeadingStyle: "ATX", CodeBlockStyle: "fenced"},
				Rules:    RulesConfig{Keep: []string{"iframe"}, Remove: []string{"aside"}},
				Plugins:  []string{"gfm", "detect-language"},
				Extract:  ExtractConfig{Select: "article", Strip: []string{".ads"}},
				Fetch:    FetchConfig{Timeout: "45s", UserAgent: "bot", MaxBytes: 1 << 20},
				Output:   OutputConfig{DefaultDir: "out"},
			},
		},
		{
			name:    "invalid markdown option",
			cfg:     &Config{Markdown: markdown.Options{BulletListMarker: "x"}},
			wantErr: markdown.ErrInvalidBulletMarker,
		},
		{
			name:    "unknown plugin",
			cfg:     &Config{Plugins: []string{"tables"}},
			wantErr: plugin.ErrUnknownPlugin,
		},
		{
			name:    "empty keep entry",
			cfg:     &Config{Rules: RulesConfig{Keep: []string{" "}}},
			wantErr: ErrInvalidField,
		},
		{
			name:    "remove entry too long",
			cfg:     &Config{Rules: RulesConfig{Remove: []string{strings.Repeat("x", MaxTagLength+1)}}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "too many strip selectors",
			cfg:     &Config{Extract: ExtractConfig{Strip: make([]string, MaxListLength+1)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "select too long",
			cfg:     &Config{Extract: ExtractConfig{Select: strings.Repeat("a", MaxSelectorLength+1)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "malformed timeout",
			cfg:     &Config{Fetch: FetchConfig{Timeout: "soon"}},
			wantErr: ErrInvalidField,
		},
		{
			name:    "negative timeout",
			cfg:     &Config{Fetch: FetchConfig{Timeout: "-1s"}},
			wantErr: ErrInvalidField,
		},
		{
			name:    "negative max bytes",
			cfg:     &Config{Fetch: FetchConfig{MaxBytes: -1}},
			wantErr: ErrInvalidField,
		},
		{
			name:    "user agent too long",
			cfg:     &Config{Fetch: FetchConfig{UserAgent: strings.Repeat("u", MaxUserAgentLength+1)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "output dir too long",
			cfg:     &Config{Output: OutputConfig{DefaultDir: strings.Repeat("d", MaxPathLength+1)}},
			wantErr: ErrFieldTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFetchConfig_TimeoutDuration(t *testing.T) {
	tests := []struct {
		timeout string
		want    time.Duration
	}{
		{"", 0},
		{"90s", 90 * time.Second},
		{"2m", 2 * time.Minute},
		{"bogus", 0},
	}

	for _, tt := range tests {
		t.Run(tt.timeout, func(t *testing.T) {
			got := FetchConfig{Timeout: tt.timeout}.TimeoutDuration()
			if got != tt.want {
				t.Errorf("TimeoutDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		path := writeConfig(t, "test.yaml", `markdown:
  headingStyle: atx
  bulletListMarker: "-"
rules:
  keep: [iframe]
  remove: [aside, nav]
plugins: [gfm]
extract:
  select: "main"
  auto: true
fetch:
  render: true
  timeout: 1m
output:
  defaultDir: out
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Markdown.HeadingStyle != markdown.HeadingATX {
			t.Errorf("HeadingStyle = %q, want atx", cfg.Markdown.HeadingStyle)
		}
		if cfg.Markdown.BulletListMarker != "-" {
			t.Errorf("BulletListMarker = %q, want -", cfg.Markdown.BulletListMarker)
		}
		if cfg.Markdown.Fence != markdown.DefaultFence {
			t.Errorf("Fence = %q, want default kept", cfg.Markdown.Fence)
		}
		if len(cfg.Rules.Remove) != 2 || cfg.Rules.Remove[1] != "nav" {
			t.Errorf("Rules.Remove = %v, want [aside nav]", cfg.Rules.Remove)
		}
		if len(cfg.Plugins) != 1 || cfg.Plugins[0] != "gfm" {
			t.Errorf("Plugins = %v, want [gfm]", cfg.Plugins)
		}
		if !cfg.Extract.Auto || cfg.Extract.Select != "main" {
			t.Errorf("Extract = %+v", cfg.Extract)
		}
		if !cfg.Fetch.Render || cfg.Fetch.TimeoutDuration() != time.Minute {
			t.Errorf("Fetch = %+v", cfg.Fetch)
		}
		if cfg.Output.DefaultDir != "out" {
			t.Errorf("Output.DefaultDir = %q, want out", cfg.Output.DefaultDir)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, "invalid.yaml", "plugins: [unclosed")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		path := writeConfig(t, "unknown.yaml", "plugins: [gfm]\nunknownField: x\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		path := writeConfig(t, "bad.yaml", "markdown:\n  fence: \"'''\"\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, markdown.ErrInvalidFence) {
			t.Errorf("error = %v, want ErrInvalidFence", err)
		}
	})

	t.Run("empty file returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, "empty.yaml", "")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("name is searched in current directory", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "site.yml"), []byte("plugins: [gfm]\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		t.Chdir(dir)

		cfg, err := LoadConfig("site")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if len(cfg.Plugins) != 1 {
			t.Errorf("Plugins = %v, want [gfm]", cfg.Plugins)
		}
	})

	t.Run("unknown name lists searched paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("missing-config")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "missing-config.yaml") {
			t.Errorf("error %q does not list searched paths", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	paths := SearchPaths("cfg")

	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least local paths", paths)
	}
	if paths[0] != "cfg.yaml" || paths[1] != "cfg.yml" {
		t.Errorf("local paths = %v, want [cfg.yaml cfg.yml]", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, AppName) {
			t.Errorf("user path %q does not contain %q", p, AppName)
		}
	}
}

func TestConfig_Marshal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Plugins = []string{"gfm"}
	cfg.Fetch.Timeout = "10s"

	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var back Config
	if err := yamlutil.UnmarshalStrict(data, &back); err != nil {
		t.Fatalf("UnmarshalStrict() error = %v\n%s", err, data)
	}
	if back.Markdown != cfg.Markdown {
		t.Errorf("Markdown = %+v, want %+v", back.Markdown, cfg.Markdown)
	}
	if back.Fetch.Timeout != "10s" || len(back.Plugins) != 1 {
		t.Errorf("round trip lost fields: %+v", back)
	}
}
