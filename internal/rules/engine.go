package rules

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-automation/internal/trace"
	"github.com/jonathan/cv-automation/internal/types"
)

// boostThreshold is the minimum normalized job-signal weight for a keyword
// to boost highlighting in the skills section.
const boostThreshold = 0.5

// Engine applies a RuleSet against extracted sections, producing a
// transformed content model plus one trace decision per rule evaluation.
type Engine struct {
	rec    *trace.Recorder
	signal *types.JobSignal
}

// NewEngine creates an Engine. signal may be nil when no job description was
// supplied; absence never changes a rule's default behavior.
func NewEngine(rec *trace.Recorder, signal *types.JobSignal) *Engine {
	return &Engine{rec: rec, signal: signal}
}

// Apply evaluates the rule set in file order. Every section key present in
// the extracted CV is present in the returned model, possibly emptied, never
// dropped.
func (e *Engine) Apply(cv *types.CV, set *types.RuleSet) *types.ContentModel {
	model := newModel(cv)
	superseded := supersededMaxWords(set)

	for i, rule := range set.Rules {
		ref := ruleRef(rule)

		if superseded[i] {
			e.rec.Skipped(trace.StepRuleApply, ref, "superseded by later max_words rule")
			continue
		}

		sc, ok := model.Sections[rule.Section]
		if !ok {
			e.rec.Skipped(trace.StepRuleApply, ref, "section not present in CV")
			continue
		}

		op, reason := compileRule(rule)
		if op == nil {
			e.rec.Skipped(trace.StepRuleApply, ref, reason)
			continue
		}

		out := op.apply(sc)
		e.rec.Record(trace.StepRuleApply, out.status, ref, out.outputRef, out.reason)
	}

	e.boostFromSignal(model)

	return model
}

// newModel copies the extracted sections into a mutable content model,
// preserving the extraction order and the full key set.
func newModel(cv *types.CV) *types.ContentModel {
	model := &types.ContentModel{
		Header:   cv.Header,
		Sections: make(map[types.SectionID]*types.SectionContent, len(cv.Sections)),
		Order:    append([]types.SectionID(nil), cv.Order...),
	}

	for id, section := range cv.Sections {
		sc := &types.SectionContent{ID: id, Heading: section.Heading}
		for _, line := range section.Lines {
			sc.Lines = append(sc.Lines, types.Line{Text: line})
		}
		for _, entry := range section.Entries {
			copied := entry
			copied.Bullets = append([]string(nil), entry.Bullets...)
			sc.Entries = append(sc.Entries, copied)
		}
		model.Sections[id] = sc
	}

	return model
}

// supersededMaxWords marks every max_words rule that a later rule on the same
// (section, field) overrides: last one wins.
func supersededMaxWords(set *types.RuleSet) []bool {
	superseded := make([]bool, len(set.Rules))
	last := make(map[string]int)

	for i, rule := range set.Rules {
		if rule.Operation != types.OpMaxWords {
			continue
		}
		key := string(rule.Section) + "." + strings.ToLower(rule.Field)
		if prev, ok := last[key]; ok {
			superseded[prev] = true
		}
		last[key] = i
	}

	return superseded
}

// boostFromSignal raises highlight emphasis for skill lines that intersect
// the job signal above the weight threshold. Purely additive: it never
// removes content a rule would otherwise keep.
func (e *Engine) boostFromSignal(model *types.ContentModel) {
	if e.signal == nil {
		return
	}
	sc, ok := model.Sections[types.SectionSkills]
	if !ok {
		return
	}

	for _, keyword := range e.signal.SortedKeywords() {
		if e.signal.Keywords[keyword] < boostThreshold {
			continue
		}
		boosted := false
		for i := range sc.Lines {
			if strings.Contains(strings.ToLower(sc.Lines[i].Text), keyword) {
				sc.Lines[i].Emphasis = true
				boosted = true
			}
		}
		if boosted {
			e.rec.AppliedWithReason(trace.StepRuleApply, keyword, string(types.SectionSkills), "job-description match")
		}
	}
}

// ruleRef renders a rule as a stable trace reference.
func ruleRef(rule types.Rule) string {
	return fmt.Sprintf("%s.%s %s=%s", rule.Section, rule.Field, rule.Operation, rule.Value)
}
