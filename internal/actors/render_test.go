package actors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderQuery(t *testing.T) {
	tmpl := `site:linkedin.com/in/ OR site:linkedin.com/pub/ "{title}" "{company}" "{location}"`

	got := RenderQuery(tmpl, "M&A Analyst", "Acme Capital", "London")
	assert.Equal(t, `site:linkedin.com/in/ OR site:linkedin.com/pub/ "M&A Analyst" "Acme Capital" "London"`, got)
}

func TestRenderQueryEmptyFields(t *testing.T) {
	got := RenderQuery(`"{title}" "{company}"`, "Analyst", "", "")
	assert.Equal(t, `"Analyst" ""`, got)
}

func TestRenderQueryRepeatedPlaceholder(t *testing.T) {
	got := RenderQuery(`{title} OR intitle:{title}`, "VP", "", "")
	assert.Equal(t, "VP OR intitle:VP", got)
}

func TestRenderQueries(t *testing.T) {
	titles := []string{"M&A Analyst", "MA Analyst", "Mergers and Acquisitions Analyst"}

	got := RenderQueries(`"{title}" "{location}"`, titles, "", "London")
	require.Len(t, got, 3)
	assert.Equal(t, `"M&A Analyst" "London"`, got[0])
	assert.Equal(t, `"MA Analyst" "London"`, got[1])
	assert.Equal(t, `"Mergers and Acquisitions Analyst" "London"`, got[2])
}

func TestRenderQueriesNoTitlePlaceholder(t *testing.T) {
	got := RenderQueries(`jobs in "{location}"`, []string{"A", "B", "C"}, "", "Berlin")
	assert.Equal(t, []string{`jobs in "Berlin"`}, got)
}

func TestBuildPayload(t *testing.T) {
	cfg := Config{
		ActorID: "apify/google-search-scraper",
		Inputs: map[string]any{
			"queries":        `"{title}" "{company}"`,
			"resultsPerPage": 10,
		},
	}

	payload := BuildPayload(cfg, []string{"M&A Analyst", "IB Analyst"}, "Acme Capital", "London")

	queries, ok := payload["queries"].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{`"M&A Analyst" "Acme Capital"`, `"IB Analyst" "Acme Capital"`}, queries)
	assert.Equal(t, 10, payload["resultsPerPage"])

	// The config's own inputs stay untouched.
	assert.Equal(t, `"{title}" "{company}"`, cfg.Inputs["queries"])
}

func TestBuildPayloadWithoutQueries(t *testing.T) {
	cfg := Config{
		ActorID: "apify/linkedin-profile-scraper",
		Inputs:  map[string]any{"maxProfiles": 10},
	}

	payload := BuildPayload(cfg, []string{"Analyst"}, "", "")
	assert.Equal(t, map[string]any{"maxProfiles": 10}, payload)
}
