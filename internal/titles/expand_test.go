package titles

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandMAAnalyst(t *testing.T) {
	got := Expand([]string{"M&A Analyst"})

	want := []string{
		"Acquisitions Analyst",
		"Corporate Development Analyst",
		"Corporate Transactions Analyst",
		"Deal Advisory Analyst",
		"Divestitures Analyst",
		"M and A Analyst",
		"M&A Analyst",
		"MA Analyst",
		"Merger Integration Analyst",
		"Mergers & Acquisitions Analyst",
		"Mergers and Acquisitions Analyst",
		"Strategic Transactions Analyst",
		"Transaction Advisory Analyst",
		"Transaction Services Analyst",
	}
	assert.Equal(t, want, got)
	assert.Len(t, got, 14)
}

func TestExpandInvestmentBankingAnalyst(t *testing.T) {
	got := Expand([]string{"Investment Banking Analyst"})

	want := []string{
		"Banking Analyst",
		"Capital Markets Analyst",
		"Corporate Banking Analyst",
		"Corporate Finance Analyst",
		"DCM Analyst",
		"Deal Team Analyst",
		"ECM Analyst",
		"Financial Sponsors Analyst",
		"Global Banking Analyst",
		"IB Analyst",
		"IBD Analyst",
		"Investment Banking Analyst",
		"Leveraged Finance Analyst",
	}
	assert.Equal(t, want, got)

	// Both the table and the pattern rule produce "IB Analyst"; dedup must
	// absorb the collision.
	count := 0
	for _, s := range got {
		if s == "IB Analyst" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestExpandEmpty(t *testing.T) {
	assert.Empty(t, Expand(nil))
	assert.Empty(t, Expand([]string{}))
}

func TestExpandUnknownTitlePassesThrough(t *testing.T) {
	assert.Equal(t, []string{"Random Title"}, Expand([]string{"Random Title"}))
}

func TestExpandDuplicateInputsCollapse(t *testing.T) {
	assert.Equal(t, []string{"Random Title"}, Expand([]string{"Random Title", "Random Title"}))
}

func TestExpandIsCaseSensitive(t *testing.T) {
	// Lowercase input matches neither the table key nor the "M&A" trigger.
	assert.Equal(t, []string{"m&a analyst"}, Expand([]string{"m&a analyst"}))
}

func TestExpandNeverDropsInputs(t *testing.T) {
	tests := []struct {
		name   string
		titles []string
	}{
		{"canonical keys", []string{"M&A Analyst", "Investment Banking Analyst"}},
		{"mixed known and unknown", []string{"M&A Director", "Random Title", "Quant Researcher"}},
		{"pattern only", []string{"Head of M&A Integration"}},
		{"punctuation preserved", []string{"  Padded Title  ", "VP, M&A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Expand(tt.titles)
			for _, in := range tt.titles {
				assert.Contains(t, got, in)
			}
		})
	}
}

func TestExpandOutputSortedAndDeduplicated(t *testing.T) {
	got := Expand([]string{"M&A Analyst", "Investment Banking Analyst", "M&A Associate", "Corporate Finance"})

	assert.True(t, sort.StringsAreSorted(got))

	seen := make(map[string]struct{}, len(got))
	for _, s := range got {
		_, dup := seen[s]
		assert.False(t, dup, "duplicate %q in output", s)
		seen[s] = struct{}{}
	}
}

func TestExpandFixedPointAfterFirstPass(t *testing.T) {
	tests := []struct {
		name  string
		seeds []string
	}{
		{"m&a analyst", []string{"M&A Analyst"}},
		{"investment banking analyst", []string{"Investment Banking Analyst"}},
		{"full default selection", Canonical()},
		{"unknown title", []string{"Random Title"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := Expand(tt.seeds)
			twice := Expand(once)
			assert.Equal(t, once, twice)
		})
	}
}

func TestExpandReplacesEveryOccurrence(t *testing.T) {
	got := Expand([]string{"M&A / M&A Analyst"})

	// ReplaceAll semantics: both occurrences rewritten within each variant.
	assert.Contains(t, got, "MA / MA Analyst")
	assert.Contains(t, got, "Mergers and Acquisitions / Mergers and Acquisitions Analyst")
	assert.NotContains(t, got, "MA / M&A Analyst")
}

func TestExpandPatternAppliesToNonTableTitles(t *testing.T) {
	got := Expand([]string{"Senior M&A Advisor"})

	require.Contains(t, got, "Senior M&A Advisor")
	assert.Contains(t, got, "Senior Mergers & Acquisitions Advisor")
	assert.Contains(t, got, "Senior Mergers and Acquisitions Advisor")
	assert.Contains(t, got, "Senior MA Advisor")
	assert.Contains(t, got, "Senior M and A Advisor")
	assert.Len(t, got, 5)
}

func TestCanonicalSortedAndComplete(t *testing.T) {
	keys := Canonical()
	assert.True(t, sort.StringsAreSorted(keys))
	assert.Len(t, keys, 10)
	assert.Contains(t, keys, "M&A Analyst")
	assert.Contains(t, keys, "Investment Banking Analyst")
}

func TestSynonymsReturnsCopy(t *testing.T) {
	first := Synonyms("M&A Analyst")
	require.Len(t, first, 10)

	first[0] = "mutated"
	again := Synonyms("M&A Analyst")
	assert.Equal(t, "Mergers & Acquisitions Analyst", again[0])

	assert.Nil(t, Synonyms("Random Title"))
}
