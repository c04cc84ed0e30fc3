package types

import "sort"

// JobSignal maps job-description keywords to non-negative weights in [0, 1].
// Absence of a job description is modeled as a nil *JobSignal, never as an
// empty signal; callers branch on presence.
type JobSignal struct {
	Keywords map[string]float64 `json:"keywords"`
}

// SortedKeywords returns the keyword set in lexical order so that iteration
// over the signal is deterministic.
func (s *JobSignal) SortedKeywords() []string {
	keys := make([]string, 0, len(s.Keywords))
	for k := range s.Keywords {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
