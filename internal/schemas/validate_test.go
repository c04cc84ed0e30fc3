package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string", "minLength": 1}
	},
	"additionalProperties": false
}`

func TestValidateJSONString_Valid(t *testing.T) {
	assert.NoError(t, ValidateJSONString(testSchema, `{"name": "Summary"}`))
}

func TestValidateJSONString_CollectsFieldErrors(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"name": "", "extra": true}`)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.NotEmpty(t, verr.Errors)
	assert.Contains(t, verr.Error(), "validation failed")
}

func TestValidateJSONString_MalformedDocument(t *testing.T) {
	err := ValidateJSONString(testSchema, `{broken`)
	require.Error(t, err)

	var serr *SchemaLoadError
	assert.True(t, errors.As(err, &serr))
}
