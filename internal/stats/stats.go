// Package stats summarizes a pattern build.
package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/richardwooding/urlrx/internal/pattern"
	"github.com/richardwooding/urlrx/internal/printer"
)

// maxLargestGroups caps the number of groups listed in LargestGroups.
const maxLargestGroups = 5

// Statistics holds aggregated statistics about one build
type Statistics struct {
	Domain string

	// Input counts
	URLs        int
	Blank       int // Lines that were empty after trimming
	Passthrough int // URLs whose scheme and domain were not stripped

	// Grouping counts
	Fragments       int
	Groups          int // Zero when grouping is disabled
	MergedGroups    int // Groups emitted as an alternation
	MergedFragments int // Fragments folded into those alternations

	// Output size
	PatternLength   int
	UngroupedLength int

	LargestGroups []GroupInfo
}

// GroupInfo describes one merged group
type GroupInfo struct {
	Prefix  string
	Members int
}

// New computes statistics for a build of urls with opts.
func New(urls []string, res pattern.Result, opts pattern.Options) *Statistics {
	s := &Statistics{
		Domain:        opts.Domain,
		URLs:          len(urls),
		Passthrough:   len(res.Passthrough),
		Fragments:     len(res.Fragments),
		Groups:        len(res.Groups),
		PatternLength: len(res.Pattern),
	}

	for _, u := range urls {
		if strings.TrimSpace(u) == "" {
			s.Blank++
		}
	}

	ungrouped := opts
	ungrouped.Group = false
	s.UngroupedLength = len(pattern.Join(res.Fragments, ungrouped))

	for _, g := range res.Groups {
		if !g.Merged() {
			continue
		}
		s.MergedGroups++
		s.MergedFragments += len(g.Members)
		s.LargestGroups = append(s.LargestGroups, GroupInfo{Prefix: g.Prefix, Members: len(g.Members)})
	}

	// Stable so equal-sized groups keep first-seen order
	sort.SliceStable(s.LargestGroups, func(i, j int) bool {
		return s.LargestGroups[i].Members > s.LargestGroups[j].Members
	})
	if len(s.LargestGroups) > maxLargestGroups {
		s.LargestGroups = s.LargestGroups[:maxLargestGroups]
	}

	return s
}

// Reduction is the percentage of pattern length saved by grouping
func (s *Statistics) Reduction() float64 {
	if s.UngroupedLength == 0 {
		return 0.0
	}
	return float64(s.UngroupedLength-s.PatternLength) * 100.0 / float64(s.UngroupedLength)
}

// Format outputs human-readable statistics to the writer with optional colors
//
//nolint:errcheck // Writing to stderr/buffer, errors are not critical
func (s *Statistics) Format(w io.Writer, colorMode printer.ColorMode) {
	useColor := printer.ShouldUseColor(colorMode)

	header := "Statistics:"
	if s.Domain != "" {
		header = "Statistics for " + s.Domain + ":"
	}
	fmt.Fprintf(w, "%s\n", printer.ColorString(header, printer.AnsiBold+printer.AnsiCyan, useColor))

	num := func(n int) string {
		return printer.ColorString(formatNumber(n), printer.AnsiYellow, useColor)
	}

	fmt.Fprintf(w, "  URLs:              %s\n", num(s.URLs))
	if s.Blank > 0 {
		fmt.Fprintf(w, "  Blank lines:       %s\n", num(s.Blank))
	}
	if s.Passthrough > 0 {
		pct := printer.ColorString(fmt.Sprintf("%.1f%%", percentage(s.Passthrough, s.URLs)), printer.AnsiGreen, useColor)
		fmt.Fprintf(w, "  Not stripped:      %s (%s)\n", num(s.Passthrough), pct)
	}
	fmt.Fprintf(w, "  Fragments:         %s\n", num(s.Fragments))

	if s.Groups > 0 {
		fmt.Fprintf(w, "  Groups:            %s\n", num(s.Groups))
		fmt.Fprintf(w, "  Merged groups:     %s (%s fragments)\n", num(s.MergedGroups), num(s.MergedFragments))
	}

	fmt.Fprintf(w, "  Pattern length:    %s\n", num(s.PatternLength))
	if s.Groups > 0 {
		pct := printer.ColorString(fmt.Sprintf("%.1f%%", s.Reduction()), printer.AnsiGreen, useColor)
		fmt.Fprintf(w, "  Ungrouped length:  %s (saved %s)\n", num(s.UngroupedLength), pct)
	}

	if len(s.LargestGroups) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s\n", printer.ColorString("Largest groups:", printer.AnsiBold+printer.AnsiCyan, useColor))
		for _, g := range s.LargestGroups {
			prefix := printer.ColorString(g.Prefix, printer.AnsiMagenta, useColor)
			members := printer.ColorString(fmt.Sprintf("%6s", formatNumber(g.Members)), printer.AnsiYellow, useColor)
			fmt.Fprintf(w, "    %s  %s\n", members, prefix)
		}
	}
}

// formatNumber adds thousand separators to numbers
func formatNumber(n int) string {
	str := fmt.Sprintf("%d", n)
	if n < 1000 {
		return str
	}

	var result []byte
	for i, digit := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(digit))
	}
	return string(result)
}

// percentage calculates percentage with 1 decimal place
func percentage(part, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(part) * 100.0 / float64(total)
}

// Map returns the statistics as a JSON-ready map
func (s *Statistics) Map() map[string]any {
	output := map[string]any{
		"urls":           s.URLs,
		"fragments":      s.Fragments,
		"pattern_length": s.PatternLength,
	}

	if s.Domain != "" {
		output["domain"] = s.Domain
	}
	if s.Blank > 0 {
		output["blank"] = s.Blank
	}
	if s.Passthrough > 0 {
		output["passthrough"] = s.Passthrough
	}

	if s.Groups > 0 {
		output["groups"] = s.Groups
		output["merged_groups"] = s.MergedGroups
		output["merged_fragments"] = s.MergedFragments
		output["ungrouped_length"] = s.UngroupedLength
		output["reduction_percentage"] = s.Reduction()
	}

	if len(s.LargestGroups) > 0 {
		largest := make([]map[string]any, len(s.LargestGroups))
		for i, g := range s.LargestGroups {
			largest[i] = map[string]any{
				"prefix":  g.Prefix,
				"members": g.Members,
			}
		}
		output["largest_groups"] = largest
	}

	return output
}

// ToJSON converts statistics to JSON format
func (s *Statistics) ToJSON() ([]byte, error) {
	return json.MarshalIndent(s.Map(), "", "  ")
}
