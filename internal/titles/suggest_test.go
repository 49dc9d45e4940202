package titles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestExactAfterNormalization(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "m&a analyst", "M&A Analyst"},
		{"extra spacing", "  M&A   Analyst ", "M&A Analyst"},
		{"diacritics", "M&A Anälyst", "M&A Analyst"},
		{"separator dropped", "Director Investment Banking", "Director - Investment Banking"},
		{"canonical unchanged", "Corporate Finance", "Corporate Finance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Suggest(tt.input)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggestFuzzy(t *testing.T) {
	// Dropped characters stay within the edit-distance threshold.
	got, ok := Suggest("M&A Anlyst")
	assert.True(t, ok)
	assert.Equal(t, "M&A Analyst", got)

	got, ok = Suggest("Corprate Finance")
	assert.True(t, ok)
	assert.Equal(t, "Corporate Finance", got)
}

func TestSuggestMiss(t *testing.T) {
	for _, input := range []string{"", "   ", "Software Engineer", "Random Title"} {
		_, ok := Suggest(input)
		assert.False(t, ok, "expected no suggestion for %q", input)
	}
}

func TestDistanceThreshold(t *testing.T) {
	tests := []struct {
		length int
		want   int
	}{
		{0, 1},
		{4, 1},
		{10, 2},
		{15, 3},
		{40, 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, distanceThreshold(tt.length))
	}
}

func TestFilterCandidates(t *testing.T) {
	all := []string{"corporate finance", "m a analyst", "m a associate", "vice president m a"}

	got := filterCandidates(all, "m a analyst", 2)
	assert.Equal(t, []string{"m a analyst", "m a associate"}, got)

	assert.Nil(t, filterCandidates(nil, "m a analyst", 2))
	assert.Empty(t, filterCandidates(all, "zzz", 1))
}
