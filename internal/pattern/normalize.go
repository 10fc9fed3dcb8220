package pattern

import (
	"regexp"
	"strings"
)

// schemes are the URL schemes stripped before the domain.
var schemes = []string{"https://", "http://"}

type normalizer struct {
	domain     string
	ignoreCase bool
	opts       Options
}

func newNormalizer(opts Options) *normalizer {
	return &normalizer{domain: opts.Domain, ignoreCase: opts.IgnoreCase, opts: opts}
}

func (n *normalizer) normalize(url string) (Fragment, bool) {
	path, stripped := n.stripPrefix(strings.TrimSpace(url))
	return anchor(Escape(path), n.opts), stripped
}

// stripPrefix removes a leading scheme, the literal domain and one optional
// slash. The domain is compared byte for byte, or with Unicode case folding
// when ignoreCase is set, so any domain text is accepted.
func (n *normalizer) stripPrefix(url string) (string, bool) {
	for _, scheme := range schemes {
		rest, ok := n.cut(url, scheme)
		if !ok {
			continue
		}
		if rest, ok = n.cut(rest, n.domain); !ok {
			continue
		}
		return strings.TrimPrefix(rest, "/"), true
	}
	return url, false
}

func (n *normalizer) cut(s, prefix string) (string, bool) {
	if len(s) < len(prefix) {
		return s, false
	}
	head := s[:len(prefix)]
	if head == prefix || (n.ignoreCase && strings.EqualFold(head, prefix)) {
		return s[len(prefix):], true
	}
	return s, false
}

// Normalize converts urls into fragments, one per input, in input order.
func Normalize(urls []string, opts Options) []Fragment {
	n := newNormalizer(opts)
	frags := make([]Fragment, len(urls))
	for i, url := range urls {
		frags[i], _ = n.normalize(url)
	}
	return frags
}

// StripPrefix removes a leading http:// or https:// scheme followed by domain
// and one optional slash. The bool reports whether anything was removed; a
// URL without that prefix is returned unchanged.
func StripPrefix(url, domain string, ignoreCase bool) (string, bool) {
	n := &normalizer{domain: domain, ignoreCase: ignoreCase}
	return n.stripPrefix(url)
}

// Escape quotes every regex metacharacter in s and rewrites "/" as "\/".
// "-" is left as is.
func Escape(s string) string {
	return strings.ReplaceAll(regexp.QuoteMeta(s), "/", `\/`)
}

func anchor(s string, opts Options) Fragment {
	if !opts.WildStart {
		s = "^" + s
	}
	if !opts.WildEnd {
		s += "$"
	}
	return Fragment(s)
}
