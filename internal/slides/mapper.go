// Package slides deterministically assigns transformed CV content to the
// placeholders of a presentation template's layout set. The mapper performs
// assignment only; rendering of emphasis flags belongs to the presentation
// writer.
package slides

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-automation/internal/trace"
	"github.com/jonathan/cv-automation/internal/types"
)

// preferredLayouts maps each section to the layout name it should occupy.
var preferredLayouts = map[types.SectionID]string{
	types.SectionSummary:        "Summary",
	types.SectionExperience:     "Experience",
	types.SectionEducation:      "Education",
	types.SectionSkills:         "Skills",
	types.SectionCertifications: "Certifications",
	types.SectionOther:          "Content",
}

// MappingError indicates the template exposes no usable layout set at all.
type MappingError struct {
	Message string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("slide mapping failed: %s", e.Message)
}

// Mapper assigns content model sections to template placeholders.
type Mapper struct {
	rec *trace.Recorder
}

// NewMapper creates a Mapper reporting to the given recorder.
func NewMapper(rec *trace.Recorder) *Mapper {
	return &Mapper{rec: rec}
}

// Map produces the slide assignment plan for the model against the template.
// Sections whose preferred layout is missing fall back to the first layout
// exposing a generic title+body pair; sections with no compatible layout are
// skipped and recorded, never failing the run. An empty layout set is fatal.
func (m *Mapper) Map(model *types.ContentModel, tmpl *types.Template) (*types.SlideAssignment, error) {
	if tmpl == nil || len(tmpl.Layouts) == 0 {
		return nil, &MappingError{Message: "template has an empty layout set"}
	}

	plan := &types.SlideAssignment{}

	for _, id := range model.Order {
		sc := model.Sections[id]
		if sc.Empty() {
			m.rec.Skipped(trace.StepSlideMapping, string(id), "empty section")
			continue
		}

		layoutIdx, titlePH, bodyPH, viaFallback, ok := pickLayout(tmpl, id)
		if !ok {
			m.rec.Skipped(trace.StepSlideMapping, string(id), "no compatible layout")
			continue
		}

		layout := tmpl.Layouts[layoutIdx]
		plan.Assignments = append(plan.Assignments, types.PlaceholderAssignment{
			LayoutIndex: layoutIdx,
			LayoutName:  layout.Name,
			Placeholder: titlePH,
			Section:     id,
			Lines:       []types.Line{{Text: sc.Heading}},
		})
		plan.Assignments = append(plan.Assignments, types.PlaceholderAssignment{
			LayoutIndex: layoutIdx,
			LayoutName:  layout.Name,
			Placeholder: bodyPH,
			Section:     id,
			Lines:       bodyLines(sc),
		})

		if viaFallback {
			m.rec.AppliedWithReason(trace.StepSlideMapping, string(id), layout.Name, "fallback layout")
		} else {
			m.rec.Applied(trace.StepSlideMapping, string(id), layout.Name)
		}
	}

	return plan, nil
}

// pickLayout selects the preferred layout for the section if the template has
// it with a usable title+body pair, otherwise the first layout exposing such
// a pair.
func pickLayout(tmpl *types.Template, id types.SectionID) (layoutIdx int, titlePH, bodyPH string, viaFallback, ok bool) {
	preferred := strings.ToLower(preferredLayouts[id])

	for i, layout := range tmpl.Layouts {
		if strings.ToLower(layout.Name) != preferred {
			continue
		}
		if title, body, found := titleBodyPair(layout); found {
			return i, title, body, false, true
		}
	}

	for i, layout := range tmpl.Layouts {
		if title, body, found := titleBodyPair(layout); found {
			return i, title, body, true, true
		}
	}

	return 0, "", "", false, false
}

// titleBodyPair finds a title-like and a body-like placeholder in a layout.
func titleBodyPair(layout types.LayoutDescriptor) (title, body string, ok bool) {
	for _, ph := range layout.Placeholders {
		lower := strings.ToLower(ph)
		if title == "" && strings.Contains(lower, "title") {
			title = ph
			continue
		}
		if body == "" && (strings.Contains(lower, "body") || strings.Contains(lower, "content")) {
			body = ph
		}
	}
	return title, body, title != "" && body != ""
}

// bodyLines flattens a section's content into placeholder lines, preserving
// the transformed order and emphasis flags. Experience entries render as a
// header line followed by their bullets.
func bodyLines(sc *types.SectionContent) []types.Line {
	lines := make([]types.Line, 0, len(sc.Lines))
	lines = append(lines, sc.Lines...)

	for _, entry := range sc.Entries {
		if !entry.Unstructured {
			header := fmt.Sprintf("%s - %s (%s)", entry.Organization, entry.Role, entry.DateRange)
			lines = append(lines, types.Line{Text: header})
		}
		for _, bullet := range entry.Bullets {
			lines = append(lines, types.Line{Text: bullet})
		}
	}

	return lines
}
