package rules

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/cv-automation/internal/types"
)

// ellipsisMarker is appended to content that max_words truncated.
const ellipsisMarker = "…"

// outcome is the trace result of applying one operation to one section.
type outcome struct {
	status    types.TraceStatus
	outputRef string
	reason    string
}

// operation is a tagged variant over the rule operation kinds. Each variant
// carries its own typed parameter and transforms a single section's content.
type operation interface {
	apply(sc *types.SectionContent) outcome
}

// compileRule turns a validated rule into its typed operation. A nil
// operation with a non-empty reason means the rule is skipped with that
// reason and the underlying content left unchanged.
func compileRule(rule types.Rule) (operation, string) {
	switch rule.Operation {
	case types.OpMaxWords:
		n, err := strconv.Atoi(rule.Value)
		if err != nil || n <= 0 {
			return nil, fmt.Sprintf("invalid max_words value %q", rule.Value)
		}
		return maxWordsOp{n: n}, ""
	case types.OpInclude:
		return includeOp{term: rule.Value}, ""
	case types.OpExclude:
		return excludeOp{term: rule.Value}, ""
	case types.OpHighlight:
		return highlightOp{term: rule.Value}, ""
	case types.OpReorder:
		return reorderOp{criteria: canonical(rule.Value)}, ""
	default:
		return nil, fmt.Sprintf("unsupported operation %q", rule.Operation)
	}
}

// maxWordsOp truncates a section to its first n whitespace-tokenized words,
// appending an ellipsis marker if truncation occurred.
type maxWordsOp struct {
	n int
}

func (op maxWordsOp) apply(sc *types.SectionContent) outcome {
	budget := op.n
	truncated := false

	kept := make([]types.Line, 0, len(sc.Lines))
	for _, line := range sc.Lines {
		if budget == 0 {
			truncated = true
			break
		}
		words := strings.Fields(line.Text)
		if len(words) > budget {
			line.Text = strings.Join(words[:budget], " ")
			budget = 0
			truncated = true
		} else {
			budget -= len(words)
		}
		kept = append(kept, line)
	}
	sc.Lines = kept

	entries := make([]types.ExperienceEntry, 0, len(sc.Entries))
	for _, entry := range sc.Entries {
		if budget == 0 {
			if len(entry.Bullets) > 0 || entry.Organization != "" {
				truncated = true
			}
			continue
		}
		bullets := make([]string, 0, len(entry.Bullets))
		for _, bullet := range entry.Bullets {
			if budget == 0 {
				truncated = true
				break
			}
			words := strings.Fields(bullet)
			if len(words) > budget {
				bullet = strings.Join(words[:budget], " ")
				budget = 0
				truncated = true
			} else {
				budget -= len(words)
			}
			bullets = append(bullets, bullet)
		}
		entry.Bullets = bullets
		entries = append(entries, entry)
	}
	sc.Entries = entries

	if truncated {
		appendEllipsis(sc)
		return outcome{
			status:    types.StatusApplied,
			outputRef: fmt.Sprintf("truncated to %d words", op.n),
		}
	}

	return outcome{
		status:    types.StatusApplied,
		outputRef: fmt.Sprintf("content within %d words", op.n),
	}
}

// appendEllipsis attaches the truncation marker to the section's last line.
func appendEllipsis(sc *types.SectionContent) {
	if n := len(sc.Entries); n > 0 {
		entry := &sc.Entries[n-1]
		if m := len(entry.Bullets); m > 0 {
			entry.Bullets[m-1] += " " + ellipsisMarker
			return
		}
	}
	if n := len(sc.Lines); n > 0 {
		sc.Lines[n-1].Text += " " + ellipsisMarker
	}
}

// includeOp drops sub-entries that do not contain the term. It never reduces
// a section to zero entries on its own.
type includeOp struct {
	term string
}

func (op includeOp) apply(sc *types.SectionContent) outcome {
	return filterEntries(sc, op.term, true)
}

// excludeOp drops sub-entries that contain the term, with the same
// empty-section guard as include.
type excludeOp struct {
	term string
}

func (op excludeOp) apply(sc *types.SectionContent) outcome {
	return filterEntries(sc, op.term, false)
}

func filterEntries(sc *types.SectionContent, term string, keepMatching bool) outcome {
	if len(sc.Entries) == 0 {
		return outcome{status: types.StatusSkipped, reason: "no sub-entries"}
	}

	kept := make([]types.ExperienceEntry, 0, len(sc.Entries))
	for _, entry := range sc.Entries {
		if entryMatches(entry, term) == keepMatching {
			kept = append(kept, entry)
		}
	}

	if len(kept) == 0 {
		return outcome{status: types.StatusSkipped, reason: "would-empty-section"}
	}

	dropped := len(sc.Entries) - len(kept)
	sc.Entries = kept
	return outcome{
		status:    types.StatusApplied,
		outputRef: fmt.Sprintf("dropped %d of %d sub-entries", dropped, dropped+len(kept)),
	}
}

// entryMatches reports whether any field of the entry case-insensitively
// contains the term.
func entryMatches(entry types.ExperienceEntry, term string) bool {
	needle := strings.ToLower(term)
	for _, field := range []string{entry.Organization, entry.Role, entry.DateRange} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	for _, bullet := range entry.Bullets {
		if strings.Contains(strings.ToLower(bullet), needle) {
			return true
		}
	}
	return false
}

// highlightOp marks matching content lines with the emphasis flag consumed
// by the slide mapper. Cumulative across multiple highlight rules.
type highlightOp struct {
	term string
}

func (op highlightOp) apply(sc *types.SectionContent) outcome {
	needle := strings.ToLower(op.term)
	marked := 0
	for i := range sc.Lines {
		if strings.Contains(strings.ToLower(sc.Lines[i].Text), needle) {
			sc.Lines[i].Emphasis = true
			marked++
		}
	}

	if marked == 0 {
		return outcome{status: types.StatusSkipped, reason: "no matching content"}
	}
	return outcome{
		status:    types.StatusApplied,
		outputRef: fmt.Sprintf("%d lines emphasized", marked),
	}
}

// reorderOp reorders a section's sub-entries by a named criterion. Unknown
// criteria skip with the original order preserved.
type reorderOp struct {
	criteria string
}

func (op reorderOp) apply(sc *types.SectionContent) outcome {
	if len(sc.Entries) == 0 {
		return outcome{status: types.StatusSkipped, reason: "no sub-entries"}
	}

	switch op.criteria {
	case "chronological":
		sort.SliceStable(sc.Entries, func(i, j int) bool {
			return endDateKey(sc.Entries[i]) > endDateKey(sc.Entries[j])
		})
	case "alphabetical":
		sort.SliceStable(sc.Entries, func(i, j int) bool {
			return strings.ToLower(entrySortName(sc.Entries[i])) < strings.ToLower(entrySortName(sc.Entries[j]))
		})
	default:
		return outcome{status: types.StatusSkipped, reason: fmt.Sprintf("unknown reorder criterion %q", op.criteria)}
	}

	return outcome{
		status:    types.StatusApplied,
		outputRef: fmt.Sprintf("reordered %d sub-entries (%s)", len(sc.Entries), op.criteria),
	}
}

// endDateKey ranks an entry's date range for descending chronological order.
// Open-ended ranges ("Present", "Current") rank newest; entries without a
// parseable year keep their relative order at the end.
func endDateKey(entry types.ExperienceEntry) int {
	lower := strings.ToLower(entry.DateRange)
	if strings.Contains(lower, "present") || strings.Contains(lower, "current") {
		return 10000
	}

	key := -1
	fields := strings.FieldsFunc(entry.DateRange, func(r rune) bool {
		return r < '0' || r > '9'
	})
	for _, f := range fields {
		if len(f) == 4 {
			if year, err := strconv.Atoi(f); err == nil && year > key {
				key = year
			}
		}
	}
	return key
}

// entrySortName is the alphabetical sort key: the organization, or the first
// raw line for unstructured entries.
func entrySortName(entry types.ExperienceEntry) string {
	if entry.Organization != "" {
		return entry.Organization
	}
	if len(entry.Bullets) > 0 {
		return entry.Bullets[0]
	}
	return ""
}
