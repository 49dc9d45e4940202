package titles

import "sort"

// synonymTable maps a canonical job title to its known alternate phrasings.
// Populated once at startup and never mutated. Synonym strings deliberately
// avoid the pattern trigger substrings and never collide with another
// canonical key, so repeated expansion settles after one pass.
var synonymTable = map[string][]string{
	"M&A Analyst": {
		"Mergers & Acquisitions Analyst",
		"Corporate Development Analyst",
		"Transaction Advisory Analyst",
		"Transaction Services Analyst",
		"Deal Advisory Analyst",
		"Acquisitions Analyst",
		"Divestitures Analyst",
		"Merger Integration Analyst",
		"Corporate Transactions Analyst",
		"Strategic Transactions Analyst",
	},
	"M&A Associate": {
		"Mergers & Acquisitions Associate",
		"Corporate Development Associate",
		"Transaction Advisory Associate",
		"Deal Advisory Associate",
		"Acquisitions Associate",
		"Merger Integration Associate",
	},
	"Vice President M&A": {
		"VP Mergers & Acquisitions",
		"Vice President Mergers & Acquisitions",
		"VP Corporate Development",
		"Vice President Corporate Development",
		"VP Transactions",
	},
	"M&A Director": {
		"Director of Mergers & Acquisitions",
		"Director Corporate Development",
		"Head of Corporate Development",
		"Director Transaction Services",
		"Director Deal Advisory",
	},
	"Managing Director - Investment Banking": {
		"Managing Director IBD",
		"MD IBD",
		"Managing Director Corporate Finance",
		"Head of IBD",
		"Group Head Banking",
	},
	"Director - Investment Banking": {
		"Director IBD",
		"Executive Director IBD",
		"Director Corporate Finance",
		"Senior Banker",
	},
	"Investment Banking Analyst": {
		"IB Analyst",
		"Global Banking Analyst",
		"Capital Markets Analyst",
		"Leveraged Finance Analyst",
		"Financial Sponsors Analyst",
		"Corporate Banking Analyst",
		"ECM Analyst",
		"DCM Analyst",
		"Deal Team Analyst",
	},
	"Investment Banking Associate": {
		"IB Associate",
		"IBD Associate",
		"Global Banking Associate",
		"Capital Markets Associate",
		"Leveraged Finance Associate",
		"Corporate Banking Associate",
	},
	"Vice President - Investment Banking": {
		"VP IBD",
		"Vice President IBD",
		"VP Corporate Finance",
		"Vice President Capital Markets",
		"SVP Banking",
	},
	"Corporate Finance": {
		"Corporate Finance Executive",
		"Corporate Finance Advisory",
		"Corporate Development",
		"Financial Advisory",
		"Transaction Services",
	},
}

// Canonical returns the table's canonical titles, sorted.
func Canonical() []string {
	keys := make([]string, 0, len(synonymTable))
	for k := range synonymTable {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Synonyms returns a copy of the table synonyms for an exact canonical key,
// preserving their listed order. Unknown keys yield nil.
func Synonyms(title string) []string {
	syns, ok := synonymTable[title]
	if !ok {
		return nil
	}
	out := make([]string, len(syns))
	copy(out, syns)
	return out
}
