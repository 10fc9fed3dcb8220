// Package printer handles output formatting for generated patterns and
// tester results.
package printer

import (
	"os"
	"strings"
)

// ColorMode selects when ANSI colors are emitted.
type ColorMode string

// Supported color modes.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ANSI color codes for terminal output.
const (
	// AnsiReset resets all color and style attributes.
	AnsiReset = "\x1b[0m"
	// AnsiRed sets text color to red.
	AnsiRed = "\x1b[31m"
	// AnsiCyan sets text color to cyan.
	AnsiCyan = "\x1b[36m"
	// AnsiYellow sets text color to yellow.
	AnsiYellow = "\x1b[33m"
	// AnsiGreen sets text color to green.
	AnsiGreen = "\x1b[32m"
	// AnsiMagenta sets text color to magenta.
	AnsiMagenta = "\x1b[35m"
	// AnsiDim sets text to dim/faint.
	AnsiDim = "\x1b[2m"
	// AnsiBold sets text to bold.
	AnsiBold = "\x1b[1m"
)

// ShouldUseColor determines if colored output should be used based on the mode,
// NO_COLOR environment variable, and whether stdout is a TTY.
func ShouldUseColor(mode ColorMode) bool {
	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	switch mode {
	case ColorNever:
		return false
	case ColorAlways:
		return true
	case ColorAuto, "":
		return isTerminal(os.Stdout)
	default:
		return false
	}
}

// isTerminal checks if the given file is a character device.
func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}

	fi, err := f.Stat()
	if err != nil {
		return false
	}

	return fi.Mode()&os.ModeCharDevice != 0
}

// ColorString wraps a string with ANSI color codes if colors are enabled.
func ColorString(s, colorCode string, enabled bool) string {
	if !enabled || s == "" {
		return s
	}
	return colorCode + s + AnsiReset
}

// Highlight colors the regex syntax of pattern: anchors in cyan, groups in
// yellow, alternation in green and lookarounds, inline flags and wildcards
// in magenta. Escaped literals are left uncolored.
func Highlight(pattern string, enabled bool) string {
	if !enabled {
		return pattern
	}

	var b strings.Builder
	for i := 0; i < len(pattern); {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			b.WriteString(pattern[i : i+2])
			i += 2
			continue
		case strings.HasPrefix(pattern[i:], "(?i)"):
			b.WriteString(ColorString("(?i)", AnsiMagenta, true))
			i += 4
			continue
		case strings.HasPrefix(pattern[i:], "(?!"), strings.HasPrefix(pattern[i:], "(?:"):
			b.WriteString(ColorString(pattern[i:i+3], AnsiMagenta, true))
			i += 3
			continue
		case c == '(' || c == ')':
			b.WriteString(ColorString(string(c), AnsiYellow, true))
		case c == '|':
			b.WriteString(ColorString("|", AnsiGreen, true))
		case c == '^' || c == '$':
			b.WriteString(ColorString(string(c), AnsiCyan, true))
		case c == '.' || c == '*':
			b.WriteString(ColorString(string(c), AnsiMagenta, true))
		default:
			b.WriteByte(c)
		}
		i++
	}
	return b.String()
}
