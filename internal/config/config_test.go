package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"cv": "cv.txt",
		"instructions": "rules.xlsx",
		"template": "template.json",
		"output_dir": "out",
		"verbose": true
	}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "cv.txt", cfg.CV)
	assert.Equal(t, "rules.xlsx", cfg.Instructions)
	assert.Equal(t, "template.json", cfg.Template)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestValidate_JobDescriptionSourcesAreMutuallyExclusive(t *testing.T) {
	cfg := &Config{
		JobDescription:    "jd.txt",
		JobDescriptionURL: "https://example.com/posting",
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidate_MissingInputFile(t *testing.T) {
	cfg := &Config{CV: filepath.Join(t.TempDir(), "missing.txt")}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cv file not found")
}

func TestValidate_ExistingFilesPass(t *testing.T) {
	dir := t.TempDir()
	cv := filepath.Join(dir, "cv.txt")
	require.NoError(t, os.WriteFile(cv, []byte("x"), 0o644))

	cfg := &Config{CV: cv, JobDescriptionURL: "https://example.com/posting"}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{CV: "explicit.txt", Verbose: true}
	defaults := Config{
		CV:           "default.txt",
		Instructions: "rules.csv",
		Template:     "template.json",
		OutputDir:    "out",
		DatabaseURL:  "postgres://localhost/runs",
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "explicit.txt", merged.CV, "explicit values win")
	assert.Equal(t, "rules.csv", merged.Instructions)
	assert.Equal(t, "template.json", merged.Template)
	assert.Equal(t, "out", merged.OutputDir)
	assert.Equal(t, "postgres://localhost/runs", merged.DatabaseURL)
	assert.True(t, merged.Verbose)
}
