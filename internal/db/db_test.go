package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArtifactCategoryConstants(t *testing.T) {
	categories := []string{
		CategoryExtraction,
		CategoryRules,
		CategoryMatching,
		CategoryMapping,
		CategoryReport,
	}

	seen := make(map[string]bool, len(categories))
	for _, category := range categories {
		assert.NotEmpty(t, category)
		assert.False(t, seen[category], "category %q duplicated", category)
		seen[category] = true
	}
}
