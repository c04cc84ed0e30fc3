package ingestion

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/cv-automation/internal/fetch"
)

// ReadJobDescription reads an optional job description text file. An empty
// path returns empty text: no job description was supplied.
func ReadJobDescription(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read job description %s: %w", path, err)
	}
	return CleanText(string(data)), nil
}

// IngestJobDescriptionURL fetches a job posting page and reduces it to plain
// text suitable for keyword matching.
func IngestJobDescriptionURL(ctx context.Context, urlStr string) (string, error) {
	html, err := fetch.URL(ctx, urlStr)
	if err != nil {
		return "", err
	}
	text, err := fetch.ExtractMainText(html)
	if err != nil {
		return "", fmt.Errorf("failed to extract job description text: %w", err)
	}
	return CleanText(text), nil
}
