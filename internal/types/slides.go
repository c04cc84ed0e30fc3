package types

// LayoutDescriptor describes one slide layout exposed by a presentation
// template: a name plus the ordered named placeholders it contains.
type LayoutDescriptor struct {
	Name         string   `json:"name"`
	Placeholders []string `json:"placeholders"`
}

// Template is the ordered layout set of a presentation template, already
// decoded from the physical file by an external reader.
type Template struct {
	Layouts []LayoutDescriptor `json:"layouts"`
}

// PlaceholderAssignment binds one placeholder of one layout to its content.
type PlaceholderAssignment struct {
	LayoutIndex int       `json:"layout_index"`
	LayoutName  string    `json:"layout_name"`
	Placeholder string    `json:"placeholder"`
	Section     SectionID `json:"section"`
	Lines       []Line    `json:"lines"`
}

// SlideAssignment is the ordered placeholder population plan consumed by the
// presentation writer. One entry per populated placeholder.
type SlideAssignment struct {
	Assignments []PlaceholderAssignment `json:"assignments"`
}
