package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-turndown"
	"github.com/alnah/go-turndown/internal/browser"
	"github.com/alnah/go-turndown/internal/config"
	"github.com/alnah/go-turndown/internal/extract"
	"github.com/alnah/go-turndown/internal/fetch"
	"github.com/alnah/go-turndown/internal/fileutil"
	"github.com/alnah/go-turndown/internal/hints"
	"github.com/alnah/go-turndown/markdown"
	"github.com/alnah/go-turndown/plugin"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrNoInput            = errors.New("no input specified")
	ErrReadInput          = errors.New("failed to read input")
	ErrWriteOutput        = errors.New("failed to write output")
	ErrFetch              = errors.New("failed to fetch page")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
)

// Limits for CLI values.
const (
	maxWorkers     = 64
	defaultTimeout = 30 * time.Second
)

// runMain parses args, runs the conversion and returns the exit code.
// args[0] is the program name.
func runMain(args []string, env *Environment) int {
	flags, positional, err := parseFlags(args[1:], env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	if flags.common.version {
		fmt.Fprintf(env.Stdout, "turndown %s\n", Version)
		return ExitSuccess
	}

	if flags.common.completion != "" {
		if err := GenerateCompletion(env.Stdout, Shell(flags.common.completion)); err != nil {
			fmt.Fprintf(env.Stderr, "error: %v\n", err)
			return ExitUsage
		}
		return ExitSuccess
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	warnUnknownEnvVars(logger)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env, logger); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, flags))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, flags *cliFlags, env *Environment, logger *slog.Logger) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.Markdown = cfg.Markdown.Normalize()

	if flags.common.printConfig {
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = env.Stdout.Write(data)
		return err
	}

	timeout, err := resolveTimeout(flags.fetch.timeout, cfg)
	if err != nil {
		return err
	}

	svc, err := buildService(cfg)
	if err != nil {
		return err
	}

	extractor, err := extract.New(cfg.Extract.Select, cfg.Extract.Strip, cfg.Extract.Auto)
	if err != nil {
		return err
	}

	jobs, err := discoverJobs(args, cfg.Output.DefaultDir)
	if err != nil {
		return err
	}

	p := &pipeline{
		svc:       svc,
		extractor: extractor,
		stdin:     env.Stdin,
	}
	if needsNetwork(jobs) {
		if cfg.Fetch.Render {
			r := env.NewRenderer(timeout)
			defer func() { _ = r.Close() }()
			p.renderer = r
		} else {
			p.fetcher = env.NewFetcher(cfg.Fetch, timeout)
		}
	}

	workers := resolveWorkers(flags.workers, envCfg.Workers)
	logger.Debug("starting conversion", "inputs", len(jobs), "workers", workers)

	results := convertBatch(ctx, p, jobs, workers, logger)
	return reportResults(results, env, logger)
}

// loadConfig loads the config named by the flag, else by TURNDOWN_CONFIG,
// else returns defaults.
func loadConfig(name string, envCfg *envConfig) (*config.Config, error) {
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. Scalar flags override config
// values; list flags extend config lists; boolean flags can only enable.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	md := &cfg.Markdown
	m := flags.markdown
	if m.headingStyle != "" {
		md.HeadingStyle = markdown.HeadingStyle(m.headingStyle)
	}
	if m.hr != "" {
		md.HR = m.hr
	}
	if m.bullet != "" {
		md.BulletListMarker = m.bullet
	}
	if m.codeBlockStyle != "" {
		md.CodeBlockStyle = markdown.CodeBlockStyle(m.codeBlockStyle)
	}
	if m.fence != "" {
		md.Fence = m.fence
	}
	if m.em != "" {
		md.EmDelimiter = m.em
	}
	if m.strong != "" {
		md.StrongDelimiter = m.strong
	}
	if m.linkStyle != "" {
		md.LinkStyle = markdown.LinkStyle(m.linkStyle)
	}
	if m.linkReferenceStyle != "" {
		md.LinkReferenceStyle = markdown.LinkReferenceStyle(m.linkReferenceStyle)
	}
	if m.br != "" {
		md.LineBreak = m.br
	}

	cfg.Rules.Keep = append(cfg.Rules.Keep, flags.rules.keep...)
	cfg.Rules.Remove = append(cfg.Rules.Remove, flags.rules.remove...)
	cfg.Plugins = append(cfg.Plugins, flags.rules.plugins...)

	if flags.extract.selector != "" {
		cfg.Extract.Select = flags.extract.selector
	}
	cfg.Extract.Strip = append(cfg.Extract.Strip, flags.extract.strip...)
	if flags.extract.auto {
		cfg.Extract.Auto = true
	}

	if flags.fetch.render {
		cfg.Fetch.Render = true
	}
	if flags.fetch.userAgent != "" {
		cfg.Fetch.UserAgent = flags.fetch.userAgent
	}

	if flags.output != "" {
		cfg.Output.DefaultDir = flags.output
	}
}

// buildService creates the conversion service from a validated config.
func buildService(cfg *config.Config) (*turndown.Service, error) {
	svc, err := turndown.New(turndown.WithOptions(cfg.Markdown))
	if err != nil {
		return nil, err
	}

	for _, name := range cfg.Plugins {
		p, err := plugin.ByName(name)
		if err != nil {
			return nil, err
		}
		svc.Use(p)
	}

	if len(cfg.Rules.Keep) > 0 {
		svc.Keep(turndown.TagNames(cfg.Rules.Keep))
	}
	if len(cfg.Rules.Remove) > 0 {
		svc.Remove(turndown.TagNames(cfg.Rules.Remove))
	}
	return svc, nil
}

// resolveTimeout returns the page load timeout.
// Priority: flag > config (which carries TURNDOWN_TIMEOUT) > default.
func resolveTimeout(flagTimeout string, cfg *config.Config) (time.Duration, error) {
	if flagTimeout != "" {
		d, err := time.ParseDuration(flagTimeout)
		if err != nil || d <= 0 {
			return 0, fmt.Errorf("%w: %q (must be a positive duration, e.g. 30s)", ErrInvalidTimeout, flagTimeout)
		}
		return d, nil
	}
	if d := cfg.Fetch.TimeoutDuration(); d > 0 {
		return d, nil
	}
	return defaultTimeout, nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, flags *cliFlags) string {
	switch {
	case errors.Is(err, browser.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, browser.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, fetch.ErrHTTPStatus), errors.Is(err, ErrFetch):
		return hints.ForNetwork()
	case errors.Is(err, config.ErrConfigNotFound):
		name := flags.common.config
		if name == "" || fileutil.IsFilePath(name) {
			return hints.ForConfigNotFound(nil)
		}
		return hints.ForConfigNotFound(config.SearchPaths(name))
	case errors.Is(err, extract.ErrInvalidSelector), errors.Is(err, extract.ErrNoContent):
		return hints.ForSelector()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
