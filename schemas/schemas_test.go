package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"

	internalschemas "github.com/jonathan/cv-automation/internal/schemas"
)

func TestTemplateSchema_AcceptsValidDescriptor(t *testing.T) {
	doc := `{
		"layouts": [
			{"name": "Summary", "placeholders": ["Title 1", "Body 1"]}
		]
	}`
	assert.NoError(t, internalschemas.ValidateJSONString(TemplateSchema, doc))
}

func TestTemplateSchema_RejectsBadDescriptors(t *testing.T) {
	cases := map[string]string{
		"missing layouts":    `{}`,
		"layouts not array":  `{"layouts": {}}`,
		"empty layout name":  `{"layouts": [{"name": "", "placeholders": []}]}`,
		"unknown top field":  `{"layouts": [], "slides": []}`,
		"placeholder number": `{"layouts": [{"name": "Summary", "placeholders": [1]}]}`,
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, internalschemas.ValidateJSONString(TemplateSchema, doc))
		})
	}
}
