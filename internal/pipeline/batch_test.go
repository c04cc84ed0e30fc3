package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBatch_ProcessesEachCVIndependently(t *testing.T) {
	base := writeFixtures(t)
	dir := filepath.Dir(base.CVPath)

	second := filepath.Join(dir, "cv2.txt")
	require.NoError(t, os.WriteFile(second, []byte(pipelineCV), 0o644))

	results, err := RunBatch(context.Background(), []string{base.CVPath, second}, base)
	require.NoError(t, err)

	require.Len(t, results, 2)
	for _, result := range results {
		require.NotNil(t, result)
		assert.FileExists(t, result.SlidePlanPath)
		assert.FileExists(t, result.ReportPath)
	}

	// Results keep input order and land in per-CV subdirectories.
	assert.Equal(t, filepath.Join(base.OutputDir, "cv"), filepath.Dir(results[0].SlidePlanPath))
	assert.Equal(t, filepath.Join(base.OutputDir, "cv2"), filepath.Dir(results[1].SlidePlanPath))
	assert.NotEqual(t, results[0].Export.RunID, results[1].Export.RunID)
}

func TestRunBatch_FirstFailureWins(t *testing.T) {
	base := writeFixtures(t)
	missing := filepath.Join(filepath.Dir(base.CVPath), "missing.txt")

	_, err := RunBatch(context.Background(), []string{base.CVPath, missing}, base)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.txt")
}
