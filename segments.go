package envoverlay

import (
	"sort"
	"strings"
)

// PathSet is a case-folded lookup set of registered dotted paths, built
// once per overlay pass and consulted for every candidate the resolver
// generates.
type PathSet map[string]struct{}

// NewPathSet collects the lowercased paths of the given keys. Nil keys are
// skipped.
func NewPathSet(keys []Key) PathSet {
	set := make(PathSet, len(keys))
	for _, k := range keys {
		if k == nil {
			continue
		}
		set[strings.ToLower(k.Path())] = struct{}{}
	}
	return set
}

// Contains reports whether the dotted path is registered, ignoring case.
func (s PathSet) Contains(path string) bool {
	_, ok := s[strings.ToLower(path)]
	return ok
}

// ResolveSegments reconstructs the tree address named by the lowercased
// words of an environment variable. An underscore in the variable may be a
// path separator or a hyphen inside a key name, so every contiguous
// grouping of the words is tried as a candidate path (words in a group
// joined by "-", groups forming the dotted path) and the first candidate
// present in known wins. Candidates with fewer groups are tried first:
// schemas favor long hyphenated names over deep nesting.
//
// When no candidate matches, each word becomes its own segment with literal
// hyphens normalized to underscores, so the write still lands on a
// predictable path. An empty word sequence resolves to nil.
func ResolveSegments(words []string, known PathSet) []string {
	if len(words) == 0 {
		return nil
	}

	candidates := Partitions(words)
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i]) < len(candidates[j])
	})

	for _, c := range candidates {
		if known.Contains(strings.Join(c, ".")) {
			return c
		}
	}

	fallback := make([]string, len(words))
	for i, w := range words {
		fallback[i] = strings.ReplaceAll(w, "-", "_")
	}
	return fallback
}

// Partitions enumerates every grouping of consecutive words, joining the
// words of each group with "-". For n words there are 2^(n-1) groupings.
func Partitions(words []string) [][]string {
	var out [][]string
	var current []string

	var walk func(idx int)
	walk = func(idx int) {
		if idx == len(words) {
			out = append(out, append([]string(nil), current...))
			return
		}
		var group strings.Builder
		for end := idx; end < len(words); end++ {
			if group.Len() > 0 {
				group.WriteByte('-')
			}
			group.WriteString(words[end])
			current = append(current, group.String())
			walk(end + 1)
			current = current[:len(current)-1]
		}
	}
	walk(0)

	return out
}
