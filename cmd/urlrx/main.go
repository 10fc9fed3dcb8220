// Package main implements urlrx, which turns a list of URLs into a single
// regular expression matching (or excluding) their paths.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/richardwooding/urlrx/internal/config"
	"github.com/richardwooding/urlrx/internal/input"
	"github.com/richardwooding/urlrx/internal/logging"
	"github.com/richardwooding/urlrx/internal/pattern"
	"github.com/richardwooding/urlrx/internal/printer"
	"github.com/richardwooding/urlrx/internal/stats"
	"github.com/richardwooding/urlrx/internal/tester"
)

const version = "1.0.0"

// Exit codes
const (
	exitOK    = 0
	exitError = 1
	exitMiss  = 2
)

var (
	// ErrMissingDomain is returned when no domain was given.
	ErrMissingDomain = errors.New("a domain is required (use --domain or set it in the config file)")
	// ErrStdinTwice is returned when both the URL list and the test lines
	// would be read from stdin.
	ErrStdinTwice = errors.New("stdin can supply either the URL list or the test lines, not both")
)

// CLI defines the command-line interface structure
type CLI struct {
	Domain     string          `short:"D" name:"domain" env:"URLRX_DOMAIN" help:"Domain to strip from each URL (e.g. example.com)"`
	WildStart  bool            `short:"s" name:"wild-start" env:"URLRX_WILD_START" help:"Allow anything before the path (drop the ^ anchor)"`
	WildEnd    bool            `short:"e" name:"wild-end" env:"URLRX_WILD_END" help:"Allow anything after the path (drop the $ anchor)"`
	IgnoreCase bool            `short:"i" name:"ignore-case" env:"URLRX_IGNORE_CASE" help:"Match the domain and paths case-insensitively"`
	Negate     bool            `short:"n" name:"negate" env:"URLRX_NEGATE" help:"Match everything except the listed paths"`
	Group      bool            `name:"group" default:"true" negatable:"" help:"Merge paths sharing a first segment into one alternation"`
	SkipBlank  bool            `name:"skip-blank" help:"Ignore blank lines in the URL list"`
	TestFile   string          `short:"t" name:"test" placeholder:"FILE" help:"Test the pattern against each line of FILE (- for stdin)"`
	TestLines  []string        `short:"T" name:"test-line" sep:"none" placeholder:"LINE" help:"Test the pattern against LINE (repeatable)"`
	Report     string          `name:"report" enum:"table,lines" default:"table" help:"Test report format (table/lines)"`
	FailOnMiss bool            `name:"fail-on-miss" help:"Exit with status 2 if any test line does not match"`
	Output     string          `short:"o" name:"output" placeholder:"FILE" help:"Also write the pattern to FILE"`
	JSON       bool            `name:"json" help:"Output the pattern, test results and statistics as JSON"`
	Stats      bool            `name:"stats" help:"Print build statistics"`
	Color      string          `name:"color" enum:"auto,always,never" default:"auto" help:"Colorize output (auto/always/never)"`
	Jobs       int             `short:"j" name:"jobs" default:"0" help:"Concurrent test workers (0 = number of CPUs)"`
	Timeout    time.Duration   `name:"timeout" default:"2s" help:"Per-line match timeout"`
	Config     kong.ConfigFlag `short:"c" name:"config" placeholder:"FILE" help:"Load defaults from a YAML file"`
	Verbose    bool            `short:"v" name:"verbose" help:"Log diagnostics to stderr"`
	Version    bool            `short:"V" name:"version" help:"Display version information"`
	Files      []string        `arg:"" optional:"" name:"file" help:"Files with one URL per line (default: stdin)"`
}

func main() {
	var cli CLI

	kong.Parse(&cli,
		kong.Name("urlrx"),
		kong.Description("Build a regular expression that matches (or excludes) a list of URL paths."),
		kong.UsageOnError(),
		kong.Configuration(config.YAML, config.DefaultPaths...),
	)

	if cli.Version {
		fmt.Printf("urlrx %s\n", version)
		os.Exit(exitOK)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code, err := run(ctx, cli, os.Stdin, os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "urlrx: %v\n", err)
	}
	os.Exit(code)
}

// options converts parsed flags into a build configuration
func (c CLI) options() pattern.Options {
	return pattern.Options{
		Domain:     strings.TrimSpace(c.Domain),
		WildStart:  c.WildStart,
		WildEnd:    c.WildEnd,
		IgnoreCase: c.IgnoreCase,
		Negate:     c.Negate,
		Group:      c.Group,
	}
}

func (c CLI) readsStdin() bool {
	if len(c.Files) == 0 {
		return true
	}
	for _, f := range c.Files {
		if f == "-" {
			return true
		}
	}
	return false
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, cli CLI, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	logger := logging.New(stderr, cli.Verbose)
	defer func() { _ = logger.Sync() }()

	opts := cli.options()
	if opts.Domain == "" {
		return exitError, ErrMissingDomain
	}
	if cli.TestFile == "-" && cli.readsStdin() {
		return exitError, ErrStdinTwice
	}

	inputConfig := input.Config{SkipBlank: cli.SkipBlank, Logger: logger}

	urls, err := input.ReadAll(cli.Files, stdin, inputConfig)
	if err != nil {
		if len(urls) == 0 {
			return exitError, err
		}
		// Keep going with the files that could be read
		fmt.Fprintf(stderr, "urlrx: %v\n", err)
	}

	res := pattern.Compose(urls, opts)
	logger.Debug("built pattern",
		zap.Int("urls", len(urls)),
		zap.Int("groups", len(res.Groups)),
		zap.Int("length", len(res.Pattern)),
	)
	for _, i := range res.Passthrough {
		if strings.TrimSpace(urls[i]) == "" {
			continue
		}
		logger.Warn("url does not start with the domain, kept whole",
			zap.String("url", urls[i]),
			zap.String("domain", opts.Domain),
		)
	}

	if cli.Output != "" {
		if err := os.WriteFile(cli.Output, []byte(res.Pattern+"\n"), 0o644); err != nil {
			return exitError, fmt.Errorf("writing %s: %w", cli.Output, err)
		}
		logger.Debug("exported pattern", zap.String("path", cli.Output))
	}

	// Blank test lines are still tested
	results, err := runTests(ctx, cli, res.Pattern, stdin, input.Config{Logger: logger})
	if err != nil {
		return exitError, err
	}

	var statistics *stats.Statistics
	if cli.Stats {
		statistics = stats.New(urls, res, opts)
	}

	colorMode := printer.ColorMode(cli.Color)
	if cli.JSON {
		jp := printer.NewJSONPrinter(stdout)
		jp.SetPattern(res.Pattern, opts)
		if results != nil {
			jp.SetResults(results)
		}
		if statistics != nil {
			jp.SetStats(statistics.Map())
		}
		if err := jp.Flush(); err != nil {
			return exitError, err
		}
	} else {
		useColor := printer.ShouldUseColor(colorMode)
		if err := printer.PrintPattern(stdout, res.Pattern, "\n", useColor); err != nil {
			return exitError, err
		}
		if results != nil {
			fmt.Fprintln(stdout)
			if cli.Report == "lines" {
				if err := printer.PrintResultLines(stdout, results, useColor); err != nil {
					return exitError, err
				}
			} else {
				printer.PrintResultTable(stdout, results, useColor)
			}
		}
		if statistics != nil {
			fmt.Fprintln(stdout)
			statistics.Format(stdout, colorMode)
		}
	}

	if cli.FailOnMiss && tester.Summarize(results).Unmatched > 0 {
		return exitMiss, nil
	}
	return exitOK, nil
}

// runTests gathers test lines from --test-line and --test and matches them.
// It returns nil results when no test lines were given.
func runTests(ctx context.Context, cli CLI, p string, stdin io.Reader, cfg input.Config) ([]tester.Result, error) {
	lines := append([]string(nil), cli.TestLines...)
	if cli.TestFile != "" {
		fromFile, err := input.ReadAll([]string{cli.TestFile}, stdin, cfg)
		if err != nil && !errors.Is(err, input.ErrNoInput) {
			return nil, fmt.Errorf("reading test lines: %w", err)
		}
		lines = append(lines, fromFile...)
	}
	if len(lines) == 0 && cli.TestFile == "" {
		return nil, nil
	}

	matcher, err := tester.Compile(p, cli.Timeout)
	if err != nil {
		return nil, err
	}
	return matcher.Run(ctx, lines, cli.Jobs)
}
