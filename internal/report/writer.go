// Package report writes the pipeline's output artifacts: the slide
// assignment plan consumed by the presentation writer and the traceability
// report consumed by downstream audit tooling.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/cv-automation/internal/trace"
	"github.com/jonathan/cv-automation/internal/types"
)

// timestampLayout matches the original output naming scheme.
const timestampLayout = "20060102_150405"

// WriteSlidePlan writes the slide assignment plan as JSON and returns the
// path of the written file.
func WriteSlidePlan(dir string, plan *types.SlideAssignment, at time.Time) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("CV_Presentation_%s.json", at.Format(timestampLayout)))
	if err := writeJSON(path, plan); err != nil {
		return "", fmt.Errorf("failed to write slide plan: %w", err)
	}
	return path, nil
}

// WriteTraceReport writes the trace export as JSON and returns the path of
// the written file.
func WriteTraceReport(dir string, export trace.Export, at time.Time) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("Traceability_Report_%s.json", at.Format(timestampLayout)))
	if err := writeJSON(path, export); err != nil {
		return "", fmt.Errorf("failed to write traceability report: %w", err)
	}
	return path, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
