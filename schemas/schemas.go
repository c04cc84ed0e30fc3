// Package schemas embeds the JSON Schemas that external input files are
// validated against before the pipeline consumes them.
package schemas

import _ "embed"

// TemplateSchema validates presentation template descriptor files.
//
//go:embed template.schema.json
var TemplateSchema string
