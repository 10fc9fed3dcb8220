package printer

import (
	"encoding/json"
	"io"
	"os"

	"github.com/richardwooding/urlrx/internal/pattern"
	"github.com/richardwooding/urlrx/internal/tester"
)

// OptionsResult mirrors pattern.Options in JSON form
type OptionsResult struct {
	Domain        string `json:"domain"`
	WildStart     bool   `json:"wild_start"`
	WildEnd       bool   `json:"wild_end"`
	CaseSensitive bool   `json:"case_sensitive"`
	NegativeMatch bool   `json:"negative_match"`
	Group         bool   `json:"group"`
}

// JSONOutput represents the complete JSON output structure
type JSONOutput struct {
	Pattern string          `json:"pattern"`
	Options OptionsResult   `json:"options"`
	Tests   []tester.Result `json:"tests,omitempty"`
	Summary *tester.Summary `json:"summary,omitempty"`
	Stats   any             `json:"stats,omitempty"`
}

// JSONPrinter collects a build and its test results and writes them as one
// JSON document
type JSONPrinter struct {
	output JSONOutput
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer
func NewJSONPrinter(writer io.Writer) *JSONPrinter {
	if writer == nil {
		writer = os.Stdout
	}
	return &JSONPrinter{writer: writer}
}

// SetPattern records the generated pattern and the options it was built with
func (jp *JSONPrinter) SetPattern(p string, opts pattern.Options) {
	jp.output.Pattern = p
	jp.output.Options = OptionsResult{
		Domain:        opts.Domain,
		WildStart:     opts.WildStart,
		WildEnd:       opts.WildEnd,
		CaseSensitive: !opts.IgnoreCase,
		NegativeMatch: opts.Negate,
		Group:         opts.Group,
	}
}

// SetResults records tester results and their summary
func (jp *JSONPrinter) SetResults(results []tester.Result) {
	summary := tester.Summarize(results)
	jp.output.Tests = results
	jp.output.Summary = &summary
}

// SetStats attaches a statistics value that marshals to JSON
func (jp *JSONPrinter) SetStats(stats any) {
	jp.output.Stats = stats
}

// Flush outputs the collected document
func (jp *JSONPrinter) Flush() error {
	encoder := json.NewEncoder(jp.writer)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(jp.output)
}
