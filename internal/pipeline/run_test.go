package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-automation/internal/extraction"
	"github.com/jonathan/cv-automation/internal/types"
)

const pipelineCV = `John Doe
Senior Software Engineer

SUMMARY
Seasoned engineer with a decade of experience building backend systems in Go
and operating PostgreSQL clusters at scale for product teams.

EXPERIENCE
ABC Corp | Senior Engineer | 2020 - Present
- Led the migration to Kubernetes
- Cut infrastructure cost by thirty percent

XYZ Inc | Engineer | 2016 - 2020
- Built the billing pipeline

SKILLS
- Go
- PostgreSQL
- Kubernetes
`

const pipelineRules = `section,field,rule,value
Summary,content,max_words,20
Experience,entries,include,ABC Corp
Skills,content,highlight,Kubernetes
`

const pipelineTemplate = `{
	"layouts": [
		{"name": "Summary", "placeholders": ["Title 1", "Body 1"]},
		{"name": "Experience", "placeholders": ["Title 1", "Body 1"]},
		{"name": "Content", "placeholders": ["Title 1", "Content 1"]}
	]
}`

const pipelineJD = `We are hiring a platform engineer with deep Kubernetes and
PostgreSQL experience to own our deployment tooling.`

// writeFixtures lays out a complete input set in its own temp directory and
// returns ready-to-run options.
func writeFixtures(t *testing.T) RunOptions {
	t.Helper()
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(outDir, 0o755))

	return RunOptions{
		CVPath:           write("cv.txt", pipelineCV),
		InstructionsPath: write("rules.csv", pipelineRules),
		TemplatePath:     write("template.json", pipelineTemplate),
		JobDescription:   write("jd.txt", pipelineJD),
		OutputDir:        outDir,
	}
}

func TestRun_EndToEnd(t *testing.T) {
	opts := writeFixtures(t)

	result, err := Run(context.Background(), opts)
	require.NoError(t, err)

	// Outputs exist on disk.
	assert.FileExists(t, result.SlidePlanPath)
	assert.FileExists(t, result.ReportPath)

	// The summary was truncated to the rule's budget.
	summary := result.Model.Sections[types.SectionSummary]
	words := 0
	for _, line := range summary.Lines {
		words += len(strings.Fields(line.Text))
	}
	assert.LessOrEqual(t, words, 21, "20 word budget plus the ellipsis marker")

	// The include rule kept only the matching employer.
	exp := result.Model.Sections[types.SectionExperience]
	require.Len(t, exp.Entries, 1)
	assert.Equal(t, "ABC Corp", exp.Entries[0].Organization)

	// Highlight plus job signal marked the Kubernetes skill.
	var emphasized bool
	for _, line := range result.Model.Sections[types.SectionSkills].Lines {
		if line.Emphasis && line.Text == "Kubernetes" {
			emphasized = true
		}
	}
	assert.True(t, emphasized)

	// Every assignment references a layout from the template.
	for _, a := range result.Assignment.Assignments {
		assert.Less(t, a.LayoutIndex, 3)
		assert.NotEmpty(t, a.Placeholder)
	}

	assert.Equal(t, result.Export.Summary.Total, len(result.Export.Records))
	assert.Positive(t, result.Export.Summary.Applied)
}

func TestRun_DeterministicAssignment(t *testing.T) {
	first, err := Run(context.Background(), writeFixtures(t))
	require.NoError(t, err)

	second, err := Run(context.Background(), writeFixtures(t))
	require.NoError(t, err)

	assert.Equal(t, first.Assignment, second.Assignment)
	assert.Equal(t, first.Model.Order, second.Model.Order)
}

// Identical inputs must yield identical trace exports apart from timestamps
// and the run identity.
func TestRun_DeterministicTraceRecords(t *testing.T) {
	first, err := Run(context.Background(), writeFixtures(t))
	require.NoError(t, err)

	second, err := Run(context.Background(), writeFixtures(t))
	require.NoError(t, err)

	a := first.Export.Records
	b := second.Export.Records
	require.Equal(t, len(a), len(b))
	for i := range a {
		a[i].Timestamp = time.Time{}
		b[i].Timestamp = time.Time{}
		if !assert.Equal(t, a[i], b[i], "record %d differs", i) {
			break
		}
	}
	assert.Equal(t, first.Export.Summary, second.Export.Summary)
}

func TestRun_NoSectionsIsFatal(t *testing.T) {
	opts := writeFixtures(t)
	require.NoError(t, os.WriteFile(opts.CVPath, []byte("John Doe\nEngineer\n\njust prose with no headings\n"), 0o644))

	_, err := Run(context.Background(), opts)
	require.Error(t, err)

	var nse *extraction.NoSectionsError
	assert.True(t, errors.As(err, &nse))
}

func TestRun_MissingJobDescriptionIsRecoverable(t *testing.T) {
	opts := writeFixtures(t)
	require.NoError(t, os.Remove(opts.JobDescription))

	result, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Positive(t, result.Export.Summary.Warnings)
}
