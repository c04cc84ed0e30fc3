// Package trace provides the append-only traceability recorder shared by all
// pipeline components. Components write to the recorder but never read from
// it during a run; each pipeline instance owns its own recorder.
package trace

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/cv-automation/internal/types"
)

// Step names used across the pipeline. Downstream tooling parses the export,
// so these are stable identifiers.
const (
	StepExtraction   = "section_extraction"
	StepRuleLoad     = "rule_load"
	StepRuleApply    = "rule_apply"
	StepJobSignal    = "job_signal"
	StepSlideMapping = "slide_mapping"
	StepReport       = "report"
)

// Recorder accumulates trace records for a single pipeline run.
// Record never fails and never blocks; the run is single-threaded, so no
// locking discipline is required.
type Recorder struct {
	runID   uuid.UUID
	started time.Time
	records []types.TraceRecord
	now     func() time.Time
}

// NewRecorder creates a Recorder with a fresh run ID.
func NewRecorder() *Recorder {
	return &Recorder{
		runID:   uuid.New(),
		started: time.Now().UTC(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// RunID returns the identifier of the run this recorder belongs to.
func (r *Recorder) RunID() uuid.UUID {
	return r.runID
}

// Record appends one trace record. It never fails. The record ID is the
// append sequence number: deterministic for identical inputs, unlike the
// run ID, which identifies the run instance.
func (r *Recorder) Record(step string, status types.TraceStatus, inputRef, outputRef, reason string) {
	r.records = append(r.records, types.TraceRecord{
		ID:        len(r.records) + 1,
		Step:      step,
		InputRef:  inputRef,
		OutputRef: outputRef,
		Status:    status,
		Reason:    reason,
		Timestamp: r.now(),
	})
}

// Applied records a successfully applied decision.
func (r *Recorder) Applied(step, inputRef, outputRef string) {
	r.Record(step, types.StatusApplied, inputRef, outputRef, "")
}

// AppliedWithReason records an applied decision with a human-readable reason,
// e.g. a fallback layout or a job-description match.
func (r *Recorder) AppliedWithReason(step, inputRef, outputRef, reason string) {
	r.Record(step, types.StatusApplied, inputRef, outputRef, reason)
}

// Skipped records a decision that was skipped with a human-readable reason.
func (r *Recorder) Skipped(step, inputRef, reason string) {
	r.Record(step, types.StatusSkipped, inputRef, "", reason)
}

// Warning records a structural anomaly that was resolved in best-effort form.
func (r *Recorder) Warning(step, inputRef, reason string) {
	r.Record(step, types.StatusWarning, inputRef, "", reason)
}

// Records returns a copy of the ordered record sequence.
func (r *Recorder) Records() []types.TraceRecord {
	out := make([]types.TraceRecord, len(r.records))
	copy(out, r.records)
	return out
}

// Len returns the number of records accumulated so far.
func (r *Recorder) Len() int {
	return len(r.records)
}
