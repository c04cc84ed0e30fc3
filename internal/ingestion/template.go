package ingestion

import (
	"encoding/json"
	"fmt"
	"os"

	internalschemas "github.com/jonathan/cv-automation/internal/schemas"
	"github.com/jonathan/cv-automation/internal/types"
	"github.com/jonathan/cv-automation/schemas"
)

// ReadTemplate reads a template descriptor JSON file and validates it against
// the embedded template schema before decoding.
func ReadTemplate(path string) (*types.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file %s: %w", path, err)
	}

	if err := internalschemas.ValidateJSONString(schemas.TemplateSchema, string(data)); err != nil {
		return nil, fmt.Errorf("template %s is not a valid descriptor: %w", path, err)
	}

	var tmpl types.Template
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("failed to parse template JSON %s: %w", path, err)
	}

	return &tmpl, nil
}
