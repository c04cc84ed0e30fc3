package trace

import (
	"time"

	"github.com/jonathan/cv-automation/internal/types"
)

// Inputs references the run's input artifacts by path, never by content.
type Inputs struct {
	CV             string `json:"cv"`
	Instructions   string `json:"instructions"`
	Template       string `json:"template"`
	JobDescription string `json:"job_description,omitempty"`
}

// Summary aggregates record counts for the export.
type Summary struct {
	Applied  int `json:"applied"`
	Skipped  int `json:"skipped"`
	Warnings int `json:"warnings"`
	Total    int `json:"total"`
}

// Export is the serializable audit log handed to the report writer. Each
// record carries step, status, and timestamp as independently addressable
// fields.
type Export struct {
	RunID       string              `json:"run_id"`
	GeneratedAt time.Time           `json:"generated_at"`
	StartedAt   time.Time           `json:"started_at"`
	CompletedAt time.Time           `json:"completed_at"`
	Inputs      Inputs              `json:"inputs"`
	Summary     Summary             `json:"summary"`
	Records     []types.TraceRecord `json:"records"`
}

// Export returns the full ordered record sequence plus a summary.
func (r *Recorder) Export(inputs Inputs) Export {
	records := r.Records()

	var summary Summary
	for _, rec := range records {
		switch rec.Status {
		case types.StatusApplied:
			summary.Applied++
		case types.StatusSkipped:
			summary.Skipped++
		case types.StatusWarning:
			summary.Warnings++
		}
	}
	summary.Total = len(records)

	now := r.now()
	return Export{
		RunID:       r.runID.String(),
		GeneratedAt: now,
		StartedAt:   r.started,
		CompletedAt: now,
		Inputs:      inputs,
		Summary:     summary,
		Records:     records,
	}
}
