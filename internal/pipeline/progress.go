package pipeline

// ProgressUpdate represents a status update during a run
type ProgressUpdate struct {
	Type    string `json:"type"` // "info", "progress", "error", "complete"
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// emit sends an update without blocking; slow consumers drop updates rather
// than stalling the run.
func (r *Runner) emit(typ, message string, data any) {
	if r.Progress == nil {
		return
	}
	select {
	case r.Progress <- ProgressUpdate{Type: typ, Message: message, Data: data}:
	default:
	}
}
