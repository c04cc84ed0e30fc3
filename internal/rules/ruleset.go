// Package rules loads declarative customization rule sets and applies them
// to extracted CV content.
package rules

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/cv-automation/internal/trace"
	"github.com/jonathan/cv-automation/internal/types"
)

var validate = validator.New()

// sectionNames maps instruction-table section names to section identifiers.
var sectionNames = map[string]types.SectionID{
	"summary":        types.SectionSummary,
	"experience":     types.SectionExperience,
	"education":      types.SectionEducation,
	"skills":         types.SectionSkills,
	"certifications": types.SectionCertifications,
	"other":          types.SectionOther,
}

// operations maps instruction-table rule names to operations.
var operations = map[string]types.Operation{
	"max_words": types.OpMaxWords,
	"include":   types.OpInclude,
	"exclude":   types.OpExclude,
	"highlight": types.OpHighlight,
	"reorder":   types.OpReorder,
}

// RuleLoadError indicates that no usable rules could be loaded at all.
type RuleLoadError struct {
	Rows int
}

func (e *RuleLoadError) Error() string {
	return fmt.Sprintf("no valid rules in %d instruction rows", e.Rows)
}

// Load validates raw instruction rows into an ordered RuleSet. A row missing
// any required field is excluded and recorded as skipped rather than aborting
// the load; only a table with zero usable rows is fatal.
func Load(rows []types.RuleRow, rec *trace.Recorder) (*types.RuleSet, error) {
	set := &types.RuleSet{}

	for i, row := range rows {
		ref := fmt.Sprintf("row %d", i+1)

		if err := validate.Struct(row); err != nil {
			rec.Skipped(trace.StepRuleLoad, ref, "incomplete rule")
			continue
		}

		section, ok := sectionNames[canonical(row.Section)]
		if !ok {
			rec.Skipped(trace.StepRuleLoad, ref, fmt.Sprintf("unknown section %q", row.Section))
			continue
		}

		op, ok := operations[canonical(row.Rule)]
		if !ok {
			rec.Skipped(trace.StepRuleLoad, ref, fmt.Sprintf("unsupported operation %q", row.Rule))
			continue
		}

		set.Rules = append(set.Rules, types.Rule{
			Section:   section,
			Field:     strings.TrimSpace(row.Field),
			Operation: op,
			Value:     strings.TrimSpace(row.Value),
		})
		rec.Applied(trace.StepRuleLoad, ref, fmt.Sprintf("%s.%s %s", section, row.Field, op))
	}

	if len(set.Rules) == 0 {
		return nil, &RuleLoadError{Rows: len(rows)}
	}

	return set, nil
}

// canonical lowers and whitespace-normalizes a table cell for lookup.
func canonical(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
