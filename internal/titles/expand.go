// Package titles widens job-title search recall: a fixed synonym table plus
// substring rewrite rules turn a handful of selected titles into the full set
// of phrasings the scrapers should query for.
package titles

import (
	"sort"
	"strings"
)

// patternRule derives title variants by substring replacement. Replacement
// uses ReplaceAll, so a trigger occurring twice is rewritten in both places
// within each variant.
type patternRule struct {
	trigger      string
	replacements []string
}

var patternRules = []patternRule{
	{
		trigger:      "M&A",
		replacements: []string{"Mergers & Acquisitions", "Mergers and Acquisitions", "MA", "M and A"},
	},
	{
		trigger:      "Investment Banking",
		replacements: []string{"IB", "IBD", "Corporate Finance", "Banking"},
	},
}

// Expand returns the deduplicated union of the input titles, their table
// synonyms and their pattern-derived variants, sorted ascending. Every input
// title passes through unchanged; matching is case-sensitive and no
// normalization happens on this path. An empty input yields an empty result.
func Expand(titles []string) []string {
	seen := make(map[string]struct{}, len(titles)*4)
	for _, t := range titles {
		seen[t] = struct{}{}
		for _, syn := range synonymTable[t] {
			seen[syn] = struct{}{}
		}
		for _, rule := range patternRules {
			if !strings.Contains(t, rule.trigger) {
				continue
			}
			for _, repl := range rule.replacements {
				seen[strings.ReplaceAll(t, rule.trigger, repl)] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
