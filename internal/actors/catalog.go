// Package actors manages the catalog of Apify scraping actors and prepares
// the input payloads their runs would receive. Nothing here talks to Apify;
// prepared payloads are recorded for the tracker service to execute.
package actors

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// Actor describes one actor available for selection.
type Actor struct {
	ID           string         `yaml:"id"`
	Name         string         `yaml:"name"`
	DefaultInput map[string]any `yaml:"default_input"`
}

// Config is an actor selected for a run with its resolved inputs.
type Config struct {
	ActorID string         `json:"actorId"`
	Inputs  map[string]any `json:"inputs"`
}

// BuiltinCatalog returns the actors compiled into the binary. A YAML catalog
// file replaces it entirely, see LoadCatalog.
func BuiltinCatalog() []Actor {
	return []Actor{
		{
			ID:   "apify/google-search-scraper",
			Name: "Google Search Scraper",
			DefaultInput: map[string]any{
				"queries":          `site:linkedin.com/in/ OR site:linkedin.com/pub/ "{title}" "{company}" "{location}"`,
				"maxPagesPerQuery": 1,
				"resultsPerPage":   10,
				"countryCode":      "US",
			},
		},
		{
			ID:   "apify/linkedin-profile-scraper",
			Name: "LinkedIn Profile Scraper",
			DefaultInput: map[string]any{
				"fields":      []any{"fullName", "location", "experiences"},
				"maxProfiles": 10,
			},
		},
	}
}

type catalogFile struct {
	Actors []Actor `yaml:"actors"`
}

// LoadCatalog reads an actor catalog from a YAML file. An empty path returns
// the built-in catalog.
func LoadCatalog(path string) ([]Actor, error) {
	if path == "" {
		return BuiltinCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read actor catalog: %w", err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse actor catalog: %w", err)
	}
	if len(file.Actors) == 0 {
		return nil, fmt.Errorf("actor catalog %s defines no actors", path)
	}
	for i := range file.Actors {
		if file.Actors[i].ID == "" {
			return nil, fmt.Errorf("actor catalog %s: entry %d has no id", path, i)
		}
		file.Actors[i].DefaultInput = normalizeMap(file.Actors[i].DefaultInput)
	}
	return file.Actors, nil
}

// Find looks an actor up by ID.
func Find(catalog []Actor, id string) (Actor, bool) {
	for _, a := range catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Actor{}, false
}

// Select builds run configs for the chosen actor IDs, layering per-actor
// input overrides on top of the catalog defaults.
func Select(catalog []Actor, ids []string, overrides map[string]map[string]string) ([]Config, error) {
	configs := make([]Config, 0, len(ids))
	for _, id := range ids {
		actor, ok := Find(catalog, id)
		if !ok {
			return nil, fmt.Errorf("unknown actor %q", id)
		}
		inputs := make(map[string]any, len(actor.DefaultInput))
		for k, v := range actor.DefaultInput {
			inputs[k] = v
		}
		for k, raw := range overrides[id] {
			inputs[k] = ParseInputValue(raw)
		}
		configs = append(configs, Config{ActorID: id, Inputs: inputs})
	}
	return configs, nil
}

// ParseInputValue interprets one override value. Valid JSON (objects, arrays,
// numbers, booleans, quoted strings) is decoded so numeric inputs stay
// numeric in the payload; anything else passes through as a raw string.
func ParseInputValue(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}
	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
		return v
	}
	return raw
}

// yaml.v2 decodes nested mappings as map[interface{}]interface{}, which
// json.Marshal rejects. Rewrite them with string keys.
func normalizeMap(m map[string]any) map[string]any {
	for k, v := range m {
		m[k] = normalizeValue(v)
	}
	return m
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprintf("%v", k)] = normalizeValue(val)
		}
		return m
	case []any:
		for i := range t {
			t[i] = normalizeValue(t[i])
		}
		return t
	}
	return v
}
