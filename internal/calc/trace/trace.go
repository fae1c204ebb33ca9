// Package trace keeps the bounded per-session operation history. The API is
// pure: the caller owns the Trace value and replaces it on every append, so
// the engine itself holds no ambient session state.
package trace

import "time"

// Capacity bounds the trace; the oldest entry is evicted first.
const Capacity = 12

// Entry summarizes one completed pipeline run. Never mutated after append.
type Entry struct {
	Timestamp        time.Time `json:"timestamp"`
	ProfileID        string    `json:"profile_id"`
	ProfileName      string    `json:"profile_name"`
	AggregateScore   float64   `json:"aggregate_score"`
	StabilityIndex   float64   `json:"stability_index"`
	AssemblyFitScore float64   `json:"assembly_fit_score"`
	Converged        bool      `json:"converged"`
	Remark           string    `json:"remark"`
}

// Trace is the ordered run history, oldest first.
type Trace []Entry

// Record appends an entry, evicting the oldest past Capacity. Strict FIFO;
// cannot fail.
func Record(tr Trace, e Entry) Trace {
	out := make(Trace, 0, len(tr)+1)
	out = append(out, tr...)
	out = append(out, e)
	if len(out) > Capacity {
		out = out[len(out)-Capacity:]
	}
	return out
}
