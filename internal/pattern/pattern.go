// Package pattern builds a single regular expression that matches (or
// excludes) a list of URL paths.
//
// The pipeline has two stages that always run in this order:
//
//  1. Normalize strips the scheme and domain from each URL, escapes regex
//     metacharacters and applies the start/end anchors.
//  2. Optimize (optional) merges fragments sharing a leading path segment
//     into one alternation group.
//
// Join then combines the result with "|" and applies the negative-lookahead
// wrapper and the case-insensitive flag. All functions are pure and safe for
// concurrent use.
package pattern

import "strings"

// Options is the configuration record for a single build.
type Options struct {
	// Domain is stripped, together with an http:// or https:// scheme and one
	// optional trailing slash, from the start of every URL.
	Domain string
	// WildStart omits the leading "^" anchor from every fragment.
	WildStart bool
	// WildEnd omits the trailing "$" anchor from every fragment.
	WildEnd bool
	// IgnoreCase compares scheme and domain case-insensitively and prefixes
	// the final pattern with "(?i)".
	IgnoreCase bool
	// Negate wraps the alternation in a negative lookahead so the pattern
	// matches every string except the listed paths.
	Negate bool
	// Group enables the prefix-grouping pass.
	Group bool
}

// Fragment is one normalized, escaped and optionally anchored path.
type Fragment string

// Result carries the final pattern along with the intermediate products of
// a build.
type Result struct {
	Pattern   string
	Fragments []Fragment
	// Groups is nil when grouping is disabled.
	Groups []Group
	// Passthrough holds the indexes of inputs whose scheme and domain did
	// not match and were kept whole.
	Passthrough []int
}

// Build returns the pattern for urls.
func Build(urls []string, opts Options) string {
	return Compose(urls, opts).Pattern
}

// Compose runs the full pipeline and returns every intermediate product.
func Compose(urls []string, opts Options) Result {
	n := newNormalizer(opts)

	res := Result{Fragments: make([]Fragment, 0, len(urls))}
	for i, url := range urls {
		frag, stripped := n.normalize(url)
		if !stripped {
			res.Passthrough = append(res.Passthrough, i)
		}
		res.Fragments = append(res.Fragments, frag)
	}

	parts := res.Fragments
	if opts.Group {
		res.Groups = Partition(res.Fragments)
		parts = mergeGroups(res.Groups)
	}

	res.Pattern = Join(parts, opts)
	return res
}

// Join combines parts into the final pattern.
//
// An empty parts list yields "^$", or "^(?!).*$" when negated. When Negate
// is set and fragments are not start-anchored, the lookahead is prefixed
// with ".*" so a path found anywhere in the input still excludes it.
func Join(parts []Fragment, opts Options) string {
	var b strings.Builder

	if opts.IgnoreCase {
		b.WriteString("(?i)")
	}

	switch {
	case opts.Negate:
		b.WriteString("^(?!")
		if opts.WildStart && len(parts) > 0 {
			b.WriteString(".*(?:")
			writeAlternation(&b, parts)
			b.WriteString(")")
		} else {
			writeAlternation(&b, parts)
		}
		b.WriteString(").*$")
	case len(parts) == 0:
		b.WriteString("^$")
	default:
		writeAlternation(&b, parts)
	}

	return b.String()
}

func writeAlternation(b *strings.Builder, parts []Fragment) {
	for i, p := range parts {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(string(p))
	}
}
