package slides

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-automation/internal/trace"
	"github.com/jonathan/cv-automation/internal/types"
)

func contentModel() *types.ContentModel {
	return &types.ContentModel{
		Sections: map[types.SectionID]*types.SectionContent{
			types.SectionSummary: {
				ID:      types.SectionSummary,
				Heading: "Summary",
				Lines:   []types.Line{{Text: "Seasoned engineer."}},
			},
			types.SectionSkills: {
				ID:      types.SectionSkills,
				Heading: "Skills",
				Lines:   []types.Line{{Text: "Go", Emphasis: true}, {Text: "PostgreSQL"}},
			},
		},
		Order: []types.SectionID{types.SectionSummary, types.SectionSkills},
	}
}

func fullTemplate() *types.Template {
	return &types.Template{Layouts: []types.LayoutDescriptor{
		{Name: "Summary", Placeholders: []string{"Title 1", "Body 1"}},
		{Name: "Skills", Placeholders: []string{"Title 1", "Content 1"}},
	}}
}

func TestMap_PreferredLayouts(t *testing.T) {
	rec := trace.NewRecorder()
	plan, err := NewMapper(rec).Map(contentModel(), fullTemplate())
	require.NoError(t, err)

	// Two placeholders per mapped section: title plus body.
	require.Len(t, plan.Assignments, 4)
	assert.Equal(t, "Summary", plan.Assignments[0].LayoutName)
	assert.Equal(t, "Title 1", plan.Assignments[0].Placeholder)
	assert.Equal(t, "Summary", plan.Assignments[0].Lines[0].Text)
	assert.Equal(t, "Body 1", plan.Assignments[1].Placeholder)
	assert.Equal(t, "Skills", plan.Assignments[2].LayoutName)

	for _, r := range rec.Records() {
		assert.Equal(t, types.StatusApplied, r.Status)
		assert.Empty(t, r.Reason, "preferred layouts must not be marked as fallbacks")
	}
}

func TestMap_FallbackToGenericTitleBody(t *testing.T) {
	model := &types.ContentModel{
		Sections: map[types.SectionID]*types.SectionContent{
			types.SectionCertifications: {
				ID:      types.SectionCertifications,
				Heading: "Certifications",
				Lines:   []types.Line{{Text: "CKA"}},
			},
		},
		Order: []types.SectionID{types.SectionCertifications},
	}
	tmpl := &types.Template{Layouts: []types.LayoutDescriptor{
		{Name: "Generic", Placeholders: []string{"Title 1", "Body 1"}},
	}}

	rec := trace.NewRecorder()
	plan, err := NewMapper(rec).Map(model, tmpl)
	require.NoError(t, err)
	require.Len(t, plan.Assignments, 2)
	assert.Equal(t, "Generic", plan.Assignments[0].LayoutName)

	records := rec.Records()
	require.Len(t, records, 1)
	assert.Equal(t, types.StatusApplied, records[0].Status, "fallback usage is applied, not a skip")
	assert.Equal(t, "fallback layout", records[0].Reason)
}

func TestMap_NoCompatibleLayoutSkipsSection(t *testing.T) {
	tmpl := &types.Template{Layouts: []types.LayoutDescriptor{
		{Name: "Picture", Placeholders: []string{"Image 1"}},
	}}

	rec := trace.NewRecorder()
	plan, err := NewMapper(rec).Map(contentModel(), tmpl)
	require.NoError(t, err, "an incompatible layout set must not fail the run")
	assert.Empty(t, plan.Assignments)

	for _, r := range rec.Records() {
		assert.Equal(t, types.StatusSkipped, r.Status)
		assert.Equal(t, "no compatible layout", r.Reason)
	}
}

func TestMap_EmptyLayoutSetIsFatal(t *testing.T) {
	rec := trace.NewRecorder()

	_, err := NewMapper(rec).Map(contentModel(), &types.Template{})

	var mappingErr *MappingError
	require.ErrorAs(t, err, &mappingErr)
}

func TestMap_EmphasisPassesThrough(t *testing.T) {
	rec := trace.NewRecorder()
	plan, err := NewMapper(rec).Map(contentModel(), fullTemplate())
	require.NoError(t, err)

	skillsBody := plan.Assignments[3]
	require.Equal(t, "Content 1", skillsBody.Placeholder)
	assert.True(t, skillsBody.Lines[0].Emphasis, "emphasis flag must reach the writer intact")
	assert.False(t, skillsBody.Lines[1].Emphasis)
}

func TestMap_EmptySectionIsSkipped(t *testing.T) {
	model := contentModel()
	model.Sections[types.SectionSummary].Lines = nil

	rec := trace.NewRecorder()
	plan, err := NewMapper(rec).Map(model, fullTemplate())
	require.NoError(t, err)

	require.Len(t, plan.Assignments, 2, "only the skills section should be mapped")

	var skipped bool
	for _, r := range rec.Records() {
		if r.Status == types.StatusSkipped && r.Reason == "empty section" {
			skipped = true
		}
	}
	assert.True(t, skipped)
}

func TestMap_ExperienceEntriesRenderInOrder(t *testing.T) {
	model := &types.ContentModel{
		Sections: map[types.SectionID]*types.SectionContent{
			types.SectionExperience: {
				ID:      types.SectionExperience,
				Heading: "Experience",
				Entries: []types.ExperienceEntry{
					{Organization: "ABC Corp", Role: "Senior Engineer", DateRange: "2020 - Present", Bullets: []string{"Led the migration"}},
					{Unstructured: true, Bullets: []string{"Freelance consulting"}},
				},
			},
		},
		Order: []types.SectionID{types.SectionExperience},
	}
	tmpl := &types.Template{Layouts: []types.LayoutDescriptor{
		{Name: "Experience", Placeholders: []string{"Title 1", "Body 1"}},
	}}

	plan, err := NewMapper(trace.NewRecorder()).Map(model, tmpl)
	require.NoError(t, err)

	body := plan.Assignments[1]
	require.Len(t, body.Lines, 3)
	assert.Equal(t, "ABC Corp - Senior Engineer (2020 - Present)", body.Lines[0].Text)
	assert.Equal(t, "Led the migration", body.Lines[1].Text)
	assert.Equal(t, "Freelance consulting", body.Lines[2].Text)
}
