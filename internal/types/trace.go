package types

import "time"

// TraceStatus is the outcome of a single pipeline decision.
type TraceStatus string

// Trace statuses.
const (
	StatusApplied TraceStatus = "applied"
	StatusSkipped TraceStatus = "skipped"
	StatusWarning TraceStatus = "warning"
)

// TraceRecord describes a single extraction, rule, or mapping decision and
// its outcome. Records are append-only; none is mutated or removed once
// recorded. ID is the 1-based append sequence number, so two runs over
// identical inputs produce identical records apart from timestamps.
type TraceRecord struct {
	ID        int         `json:"id"`
	Step      string      `json:"step"`
	InputRef  string      `json:"input_ref,omitempty"`
	OutputRef string      `json:"output_ref,omitempty"`
	Status    TraceStatus `json:"status"`
	Reason    string      `json:"reason,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
