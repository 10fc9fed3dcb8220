// Package tester runs a generated pattern against sample lines.
//
// Patterns may contain a negative lookahead, which Go's regexp package does
// not support, so matching goes through github.com/dlclark/regexp2.
package tester

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds a single match so a pathological pattern cannot
// stall the run.
const DefaultTimeout = 2 * time.Second

// ErrInvalidPattern is returned when a pattern fails to compile.
var ErrInvalidPattern = errors.New("invalid pattern")

// Matcher is a compiled pattern.
type Matcher struct {
	re *regexp2.Regexp
}

// Result is the outcome for one test line
type Result struct {
	Line    string `json:"line"`
	Matched bool   `json:"matched"`
}

// Summary counts matched and unmatched lines
type Summary struct {
	Total     int `json:"total"`
	Matched   int `json:"matched"`
	Unmatched int `json:"unmatched"`
}

// Compile compiles pattern. A zero timeout selects DefaultTimeout.
func Compile(pattern string, timeout time.Duration) (*Matcher, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, pattern, err)
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	re.MatchTimeout = timeout

	return &Matcher{re: re}, nil
}

// String returns the source pattern.
func (m *Matcher) String() string {
	return m.re.String()
}

// Match reports whether line matches. Trailing "\r" is dropped so CRLF
// test files behave like LF ones.
func (m *Matcher) Match(line string) (bool, error) {
	ok, err := m.re.MatchString(strings.TrimSuffix(line, "\r"))
	if err != nil {
		return false, fmt.Errorf("matching %q: %w", line, err)
	}
	return ok, nil
}

// Run matches every line using up to workers goroutines. Results keep the
// order of lines. The first match error cancels the run.
func (m *Matcher) Run(ctx context.Context, lines []string, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]Result, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, line := range lines {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ok, err := m.Match(line)
			if err != nil {
				return err
			}
			results[i] = Result{Line: line, Matched: ok}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summarize counts results
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Matched {
			s.Matched++
		}
	}
	s.Unmatched = s.Total - s.Matched
	return s
}
