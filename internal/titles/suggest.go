package titles

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// canonicalIndex maps normalized canonical titles back to their table keys;
// normalizedKeys is the deduped list used for the fuzzy scan.
var canonicalIndex, normalizedKeys = buildCanonicalIndex()

func buildCanonicalIndex() (map[string]string, []string) {
	idx := make(map[string]string, len(synonymTable))
	for key := range synonymTable {
		idx[normalizeTitle(key)] = key
	}
	all := make([]string, 0, len(idx))
	for n := range idx {
		all = append(all, n)
	}
	sort.Strings(all)
	return idx, all
}

// Suggest maps a free-form title to the nearest canonical table key: exact
// match on the normalized form first, then a fuzzy scan over the canonical
// set. The bool reports whether anything landed within the distance
// threshold.
func Suggest(title string) (string, bool) {
	n := normalizeTitle(title)
	if n == "" {
		return "", false
	}

	if key, ok := canonicalIndex[n]; ok {
		return key, true
	}

	thr := distanceThreshold(len(n))
	candidates := filterCandidates(normalizedKeys, n, thr)
	if len(candidates) == 0 {
		return "", false
	}

	ranks := fuzzy.RankFind(n, candidates)
	if len(ranks) == 0 {
		return "", false
	}
	sort.Sort(ranks)
	if ranks[0].Distance > thr {
		return "", false
	}
	return canonicalIndex[ranks[0].Target], true
}

// distanceThreshold calculates acceptable edit distance (~20% of length).
func distanceThreshold(n int) int {
	th := n / 5
	if th < 1 {
		return 1
	}
	if th > 3 {
		return 3
	}
	return th
}

// filterCandidates pre-filters candidates by length window and first rune.
func filterCandidates(all []string, pattern string, threshold int) []string {
	if len(all) == 0 {
		return nil
	}

	firstRune := func(s string) rune {
		for _, r := range s {
			return r
		}
		return 0
	}

	fr := firstRune(pattern)
	patLen := len(pattern)

	candidates := make([]string, 0, len(all)/4+1)
	for _, t := range all {
		if abs(len(t)-patLen) > threshold {
			continue
		}
		if firstRune(t) != fr {
			continue
		}
		candidates = append(candidates, t)
	}
	return candidates
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
