// Package types provides type definitions for structured data used throughout the cv-automation system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SectionID identifies one of the fixed logical CV sections.
type SectionID string

// The fixed section set. Unrecognized headings accumulate under SectionOther.
const (
	SectionSummary        SectionID = "summary"
	SectionExperience     SectionID = "experience"
	SectionEducation      SectionID = "education"
	SectionSkills         SectionID = "skills"
	SectionCertifications SectionID = "certifications"
	SectionOther          SectionID = "other"
)

// SectionOrder is the canonical ordering used wherever sections are iterated.
var SectionOrder = []SectionID{
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionCertifications,
	SectionOther,
}

// Header holds the content found before the first recognized heading,
// typically the candidate's name and title. It is metadata, not a Section.
type Header struct {
	Name  string   `json:"name,omitempty"`
	Title string   `json:"title,omitempty"`
	Lines []string `json:"lines,omitempty"`
}

// ExperienceEntry is one blank-line-delimited block within the Experience section.
// Unstructured marks entries whose first line did not parse as
// "organization | role | date-range"; their raw lines are kept as bullets.
type ExperienceEntry struct {
	Organization string   `json:"organization,omitempty"`
	Role         string   `json:"role,omitempty"`
	DateRange    string   `json:"date_range,omitempty"`
	Bullets      []string `json:"bullets"`
	Unstructured bool     `json:"unstructured,omitempty"`
}

// Section is a named logical block of a CV. Lines hold the section's content
// in document order; Entries is populated only for the Experience section.
type Section struct {
	ID      SectionID         `json:"id"`
	Heading string            `json:"heading"`
	Lines   []string          `json:"lines"`
	Entries []ExperienceEntry `json:"entries,omitempty"`
}

// CV is the structured result of section extraction. Order preserves the
// order in which sections first appeared in the document.
type CV struct {
	Header   Header                 `json:"header"`
	Sections map[SectionID]*Section `json:"sections"`
	Order    []SectionID            `json:"order"`
}
