package actors

import "strings"

// Placeholders recognized in actor query templates.
const (
	placeholderTitle    = "{title}"
	placeholderCompany  = "{company}"
	placeholderLocation = "{location}"
)

// RenderQuery substitutes the job fields into a query template. Every
// occurrence of a placeholder is replaced; empty fields substitute to the
// empty string.
func RenderQuery(template, title, company, location string) string {
	q := strings.ReplaceAll(template, placeholderTitle, title)
	q = strings.ReplaceAll(q, placeholderCompany, company)
	q = strings.ReplaceAll(q, placeholderLocation, location)
	return q
}

// RenderQueries renders one query per title with company and location held
// fixed, deduplicated in input order. A template without a {title}
// placeholder therefore renders exactly once.
func RenderQueries(template string, titles []string, company, location string) []string {
	seen := make(map[string]struct{}, len(titles))
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		q := RenderQuery(template, t, company, location)
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}
	return out
}

// BuildPayload resolves the input payload an actor run would receive: the
// selected config's inputs with the queries template expanded to one query
// per title. Inputs without a queries template are passed through untouched.
func BuildPayload(cfg Config, titles []string, company, location string) map[string]any {
	payload := make(map[string]any, len(cfg.Inputs))
	for k, v := range cfg.Inputs {
		payload[k] = v
	}
	if tmpl, ok := payload["queries"].(string); ok {
		payload["queries"] = RenderQueries(tmpl, titles, company, location)
	}
	return payload
}
