// Package ingestion reads and normalizes the external input files the
// pipeline consumes: CV text, instruction tables, template descriptors, and
// optional job descriptions.
package ingestion

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var multiSpace = regexp.MustCompile(`\s+`)

// ReadCVLines reads a UTF-8 CV text file and returns its cleaned lines.
func ReadCVLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CV file %s: %w", path, err)
	}
	return strings.Split(CleanText(string(data)), "\n"), nil
}

// CleanText normalizes text content while preserving line structure.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// Normalize line endings (CRLF -> LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = removeExcessiveBlankLines(result)

	return strings.TrimSpace(result)
}

// cleanLine trims trailing whitespace and collapses internal runs of spaces,
// preserving leading indentation and bullet markers.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	indent := len(line) - len(trimmed)

	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(trimmed, marker) {
			rest := multiSpace.ReplaceAllString(strings.TrimSpace(trimmed[len(marker):]), " ")
			return strings.Repeat(" ", indent) + marker + rest
		}
	}

	content := multiSpace.ReplaceAllString(strings.TrimSpace(trimmed), " ")
	if indent > 0 {
		return strings.Repeat(" ", indent) + content
	}
	return content
}

// removeExcessiveBlankLines caps consecutive blank lines at one.
func removeExcessiveBlankLines(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))
	blanks := 0

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blanks++
			if blanks > 1 {
				continue
			}
			result = append(result, "")
			continue
		}
		blanks = 0
		result = append(result, line)
	}

	return strings.Join(result, "\n")
}
