package printer

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/richardwooding/urlrx/internal/pattern"
	"github.com/richardwooding/urlrx/internal/tester"
)

func TestJSONPrinter(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		opts        pattern.Options
		results     []tester.Result
		stats       any
		wantTests   int
		wantSummary bool
	}{
		{
			name:    "pattern only",
			pattern: `^a\/(b|c)$`,
			opts:    pattern.Options{Domain: "example.com", Group: true},
		},
		{
			name:    "with results",
			pattern: `^(?!^a$).*$`,
			opts:    pattern.Options{Domain: "example.com", Negate: true, IgnoreCase: true},
			results: []tester.Result{
				{Line: "a", Matched: false},
				{Line: "b", Matched: true},
			},
			wantTests:   2,
			wantSummary: true,
		},
		{
			name:    "with stats",
			pattern: `^a$`,
			opts:    pattern.Options{Domain: "example.com"},
			stats:   map[string]int{"urls": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			jp := NewJSONPrinter(&buf)
			jp.SetPattern(tt.pattern, tt.opts)
			if tt.results != nil {
				jp.SetResults(tt.results)
			}
			if tt.stats != nil {
				jp.SetStats(tt.stats)
			}
			if err := jp.Flush(); err != nil {
				t.Fatalf("Flush() error = %v", err)
			}

			var out map[string]any
			if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
				t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
			}

			if out["pattern"] != tt.pattern {
				t.Errorf("pattern = %v, want %q", out["pattern"], tt.pattern)
			}

			opts, ok := out["options"].(map[string]any)
			if !ok {
				t.Fatalf("options missing: %s", buf.String())
			}
			if opts["case_sensitive"] != !tt.opts.IgnoreCase {
				t.Errorf("case_sensitive = %v, want %v", opts["case_sensitive"], !tt.opts.IgnoreCase)
			}
			if opts["negative_match"] != tt.opts.Negate {
				t.Errorf("negative_match = %v, want %v", opts["negative_match"], tt.opts.Negate)
			}

			gotTests, _ := out["tests"].([]any)
			if len(gotTests) != tt.wantTests {
				t.Errorf("tests = %d, want %d", len(gotTests), tt.wantTests)
			}
			if _, ok := out["summary"]; ok != tt.wantSummary {
				t.Errorf("summary present = %v, want %v", ok, tt.wantSummary)
			}
			if _, ok := out["stats"]; ok != (tt.stats != nil) {
				t.Errorf("stats present = %v, want %v", ok, tt.stats != nil)
			}
		})
	}
}

func TestJSONPrinterNoHTMLEscape(t *testing.T) {
	var buf bytes.Buffer
	jp := NewJSONPrinter(&buf)
	jp.SetPattern(`^a&b<c>$`, pattern.Options{})
	if err := jp.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`a&b<c>`)) {
		t.Errorf("pattern was HTML-escaped: %s", buf.String())
	}
}
