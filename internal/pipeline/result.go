package pipeline

// Run statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is the outcome of one pipeline run in the shape the display layer
// expects: a status with a user-facing message, structured output, a flat
// table and the accumulated run logs.
type Result struct {
	RunID       string           `json:"run_id"`
	Status      string           `json:"status"`
	Message     string           `json:"message"`
	OutputJSON  map[string]any   `json:"output_json"`
	OutputTable []map[string]any `json:"output_table"`
	Logs        string           `json:"logs"`
}

// Succeeded reports whether the run finished without a stage failure.
func (r Result) Succeeded() bool {
	return r.Status == StatusSuccess
}
