// Package extraction turns raw CV text into a mapping of named sections to
// content blocks. Extraction is total: it always returns a CV structure and
// signals anomalies through the trace channel, never through errors.
package extraction

import (
	"strings"
	"unicode"

	"github.com/jonathan/cv-automation/internal/trace"
	"github.com/jonathan/cv-automation/internal/types"
)

// headingAliases maps normalized heading variants to their canonical section.
var headingAliases = map[string]types.SectionID{
	"summary":              types.SectionSummary,
	"professional summary": types.SectionSummary,
	"profile":              types.SectionSummary,
	"about":                types.SectionSummary,
	"experience":           types.SectionExperience,
	"work experience":      types.SectionExperience,
	"professional experience": types.SectionExperience,
	"employment history":      types.SectionExperience,
	"education":               types.SectionEducation,
	"academic background":     types.SectionEducation,
	"skills":                  types.SectionSkills,
	"technical skills":        types.SectionSkills,
	"core competencies":       types.SectionSkills,
	"certifications":          types.SectionCertifications,
	"certificates":            types.SectionCertifications,
	"licenses and certifications": types.SectionCertifications,
}

// maxHeadingWords bounds how long a line may be and still count as a heading.
const maxHeadingWords = 6

// bulletMarkers are the leading list markers recognized in section bodies.
var bulletMarkers = []string{"- ", "* ", "• "}

// Extractor recognizes section boundaries in raw CV text.
type Extractor struct {
	rec *trace.Recorder
}

// New creates an Extractor reporting to the given recorder.
func New(rec *trace.Recorder) *Extractor {
	return &Extractor{rec: rec}
}

// Extract walks the CV lines and produces the section mapping. Content before
// the first recognized heading becomes header metadata. Content under
// unrecognized headings accumulates in the "other" bucket.
func (e *Extractor) Extract(lines []string) *types.CV {
	cv := &types.CV{
		Sections: make(map[types.SectionID]*types.Section),
	}

	// Raw lines per section, blank lines preserved for block splitting.
	raw := make(map[types.SectionID][]string)
	var current types.SectionID
	inHeader := true

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if id, ok := matchHeading(trimmed); ok {
			inHeader = false
			current = id
			if _, seen := cv.Sections[id]; !seen {
				cv.Sections[id] = &types.Section{ID: id, Heading: displayHeading(trimmed)}
				cv.Order = append(cv.Order, id)
				e.rec.Applied(trace.StepExtraction, trimmed, string(id))
			}
			continue
		}

		if looksLikeHeading(trimmed) {
			// Unrecognized heading: bucket it and everything under it.
			inHeader = false
			current = types.SectionOther
			if _, seen := cv.Sections[types.SectionOther]; !seen {
				cv.Sections[types.SectionOther] = &types.Section{ID: types.SectionOther, Heading: "Other"}
				cv.Order = append(cv.Order, types.SectionOther)
			}
			raw[types.SectionOther] = append(raw[types.SectionOther], trimmed)
			e.rec.Warning(trace.StepExtraction, trimmed, "unrecognized heading")
			continue
		}

		if inHeader {
			if trimmed != "" {
				cv.Header.Lines = append(cv.Header.Lines, trimmed)
			}
			continue
		}

		raw[current] = append(raw[current], line)
	}

	// First two non-empty header lines are conventionally name and title.
	if len(cv.Header.Lines) > 0 {
		cv.Header.Name = cv.Header.Lines[0]
	}
	if len(cv.Header.Lines) > 1 {
		cv.Header.Title = cv.Header.Lines[1]
	}

	// Experience content lives in its parsed entries; duplicating it in the
	// flat line list would double-count words and render twice.
	for id, section := range cv.Sections {
		if id == types.SectionExperience {
			section.Entries = e.parseExperience(raw[id])
			continue
		}
		section.Lines = contentLines(raw[id])
	}

	return cv
}

// parseExperience splits the raw experience lines into blank-line-delimited
// blocks and parses each block's first line as "organization | role | dates".
// Malformed first lines are retained verbatim as unstructured bullets.
func (e *Extractor) parseExperience(lines []string) []types.ExperienceEntry {
	var entries []types.ExperienceEntry

	for _, block := range splitBlocks(lines) {
		first := block[0]
		parts := strings.Split(first, "|")
		if len(parts) == 3 {
			entry := types.ExperienceEntry{
				Organization: strings.TrimSpace(parts[0]),
				Role:         strings.TrimSpace(parts[1]),
				DateRange:    strings.TrimSpace(parts[2]),
			}
			for _, bullet := range block[1:] {
				entry.Bullets = append(entry.Bullets, stripBulletMarker(bullet))
			}
			entries = append(entries, entry)
			continue
		}

		// Keep the whole block as an unstructured entry rather than failing.
		entry := types.ExperienceEntry{Unstructured: true}
		for _, bullet := range block {
			entry.Bullets = append(entry.Bullets, stripBulletMarker(bullet))
		}
		entries = append(entries, entry)
		e.rec.Warning(trace.StepExtraction, first, "malformed experience entry")
	}

	return entries
}

// matchHeading reports whether the line is one of the fixed section headings,
// matched case-insensitively after trimming and punctuation normalization.
func matchHeading(line string) (types.SectionID, bool) {
	id, ok := headingAliases[normalizeHeading(line)]
	return id, ok
}

// normalizeHeading lowers the line, strips trailing punctuation, and
// collapses internal whitespace.
func normalizeHeading(line string) string {
	s := strings.ToLower(strings.TrimSpace(line))
	s = strings.TrimRight(s, ":;.,-–— \t")
	return strings.Join(strings.Fields(s), " ")
}

// looksLikeHeading applies the heading heuristic for lines that are not in
// the fixed set: short, and either all-caps or colon-terminated. Bullet lines
// are list content, never headings, even when all-caps (acronym skills).
func looksLikeHeading(line string) bool {
	if line == "" || hasBulletMarker(line) {
		return false
	}
	words := strings.Fields(line)
	if len(words) > maxHeadingWords {
		return false
	}
	if strings.HasSuffix(line, ":") {
		return true
	}
	hasLetter := false
	for _, r := range line {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

// displayHeading returns the heading as it appeared, minus trailing
// punctuation, for use as a slide title.
func displayHeading(line string) string {
	return strings.TrimRight(strings.TrimSpace(line), ":;.,-–— \t")
}

// splitBlocks groups lines into blank-line-delimited blocks of trimmed,
// non-empty lines.
func splitBlocks(lines []string) [][]string {
	var blocks [][]string
	var current []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, trimmed)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}

	return blocks
}

// contentLines returns the trimmed, non-empty lines of a raw section body
// with leading list markers removed.
func contentLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := stripBulletMarker(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// hasBulletMarker reports whether the trimmed line starts with a list marker.
func hasBulletMarker(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}

// stripBulletMarker removes a leading list marker from a bullet line.
func stripBulletMarker(line string) string {
	trimmed := strings.TrimSpace(line)
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return strings.TrimSpace(trimmed[len(marker):])
		}
	}
	return trimmed
}
