package types

// Operation enumerates the supported rule operations.
type Operation string

// Supported operations. Rows naming anything else are excluded at load time.
const (
	OpMaxWords  Operation = "max_words"
	OpInclude   Operation = "include"
	OpExclude   Operation = "exclude"
	OpHighlight Operation = "highlight"
	OpReorder   Operation = "reorder"
)

// RuleRow is one raw row from the instruction table, prior to validation.
// All four fields are required; rows missing any of them are excluded from
// the RuleSet and recorded as skipped.
type RuleRow struct {
	Section string `json:"section" validate:"required"`
	Field   string `json:"field" validate:"required"`
	Rule    string `json:"rule" validate:"required"`
	Value   string `json:"value" validate:"required"`
}

// Rule is a validated customization instruction binding a section and field
// to an operation and a value.
type Rule struct {
	Section   SectionID `json:"section"`
	Field     string    `json:"field"`
	Operation Operation `json:"operation"`
	Value     string    `json:"value"`
}

// RuleSet is an ordered collection of validated rules, applied in file order.
type RuleSet struct {
	Rules []Rule `json:"rules"`
}
