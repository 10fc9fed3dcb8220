package pattern

import "strings"

// sep is the escaped path separator produced by Escape.
const sep = `\/`

// Group is a set of fragments sharing the same prefix key.
type Group struct {
	Prefix  string
	Members []Fragment
}

// Merged reports whether the group is emitted as an alternation.
func (g Group) Merged() bool {
	return len(g.Members) > 1
}

// Optimize merges fragments that share a leading path segment. The output
// matches exactly the same strings as the "|"-join of frags.
func Optimize(frags []Fragment) []Fragment {
	return mergeGroups(Partition(frags))
}

// PrefixKey returns the grouping key of f.
//
// The key is the "^" anchor if present, one optional leading "\/", and
// everything up to and including the next "\/". Escape pairs are never split.
// A fragment without such a separator is its own key.
func PrefixKey(f Fragment) string {
	s := string(f)

	i := 0
	if strings.HasPrefix(s, "^") {
		i = 1
	}
	if strings.HasPrefix(s[i:], sep) {
		i += len(sep)
	}

	for i < len(s) {
		if s[i] != '\\' {
			i++
			continue
		}
		if strings.HasPrefix(s[i:], sep) {
			return s[:i+len(sep)]
		}
		i += 2
	}
	return s
}

// Partition groups frags by PrefixKey. Groups are ordered by the first
// appearance of their key and members keep their input order.
func Partition(frags []Fragment) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, f := range frags {
		key := PrefixKey(f)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Prefix: key})
		}
		groups[i].Members = append(groups[i].Members, f)
	}
	return groups
}

func mergeGroups(groups []Group) []Fragment {
	out := make([]Fragment, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.merge())
	}
	return out
}

// merge renders g as prefix(s1|s2|...). A shared trailing "$" anchor is
// moved after the closing parenthesis.
func (g Group) merge() Fragment {
	if !g.Merged() {
		return g.Members[0]
	}

	suffixes := make([]string, len(g.Members))
	allEmpty, allAnchored := true, true
	for i, m := range g.Members {
		s := strings.TrimPrefix(string(m), g.Prefix)
		suffixes[i] = s
		if s != "" {
			allEmpty = false
		}
		if !endAnchored(s) {
			allAnchored = false
		}
	}

	if allEmpty {
		return Fragment(g.Prefix)
	}

	tail := ""
	if allAnchored {
		tail = "$"
		for i, s := range suffixes {
			suffixes[i] = s[:len(s)-1]
		}
	}

	return Fragment(g.Prefix + "(" + strings.Join(suffixes, "|") + ")" + tail)
}

// endAnchored reports whether s ends with an unescaped "$".
func endAnchored(s string) bool {
	if !strings.HasSuffix(s, "$") {
		return false
	}
	slashes := 0
	for i := len(s) - 2; i >= 0 && s[i] == '\\'; i-- {
		slashes++
	}
	return slashes%2 == 0
}
