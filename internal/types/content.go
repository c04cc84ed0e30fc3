package types

// Line is a single content line plus the emphasis flag consumed by the
// presentation writer for distinct rendering.
type Line struct {
	Text     string `json:"text"`
	Emphasis bool   `json:"emphasis,omitempty"`
}

// SectionContent is the transformed content for one section after rule
// application.
type SectionContent struct {
	ID      SectionID         `json:"id"`
	Heading string            `json:"heading"`
	Lines   []Line            `json:"lines"`
	Entries []ExperienceEntry `json:"entries,omitempty"`
}

// Empty reports whether the section carries no remaining content.
func (sc *SectionContent) Empty() bool {
	return len(sc.Lines) == 0 && len(sc.Entries) == 0
}

// ContentModel maps every extracted section to its transformed content.
// Invariant: its key set equals the extracted CV's key set; sections are
// emptied or transformed, never dropped.
type ContentModel struct {
	Header   Header                        `json:"header"`
	Sections map[SectionID]*SectionContent `json:"sections"`
	Order    []SectionID                   `json:"order"`
}
