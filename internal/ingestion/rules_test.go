package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonathan/cv-automation/internal/types"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadRuleRows_CSV(t *testing.T) {
	path := writeCSV(t, "Section,Field,Rule,Value\nSummary,content,max_words,100\nExperience,entries,include,ABC Corp\n")

	rows, err := ReadRuleRows(path)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, types.RuleRow{Section: "Summary", Field: "content", Rule: "max_words", Value: "100"}, rows[0])
	assert.Equal(t, types.RuleRow{Section: "Experience", Field: "entries", Rule: "include", Value: "ABC Corp"}, rows[1])
}

func TestReadRuleRows_CSVHeaderIsCaseInsensitive(t *testing.T) {
	path := writeCSV(t, "SECTION,FIELD,RULE,VALUE\nSkills,content,highlight,Go\n")

	rows, err := ReadRuleRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "highlight", rows[0].Rule)
}

func TestReadRuleRows_ShortRowsArePadded(t *testing.T) {
	path := writeCSV(t, "section,field,rule,value\nSummary,content\n")

	rows, err := ReadRuleRows(path)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "Summary", rows[0].Section)
	assert.Empty(t, rows[0].Rule)
	assert.Empty(t, rows[0].Value)
}

func TestReadRuleRows_MissingColumn(t *testing.T) {
	path := writeCSV(t, "section,field,rule\nSummary,content,max_words\n")

	_, err := ReadRuleRows(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing column "value"`)
}

func TestReadRuleRows_Excel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]string{"Section", "Field", "Rule", "Value"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]string{"Summary", "content", "max_words", "100"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]string{"Experience", "entries", "exclude", "Freelance"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	rows, err := ReadRuleRows(path)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "max_words", rows[0].Rule)
	assert.Equal(t, "Freelance", rows[1].Value)
}

func TestReadRuleRows_UnsupportedExtension(t *testing.T) {
	_, err := ReadRuleRows("rules.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported instructions format")
}
