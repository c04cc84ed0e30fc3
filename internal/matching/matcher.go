// Package matching derives keyword weights from an optional job description.
// The matcher is structural: word tokenization, a fixed stop-word set, and
// normalized frequency weighting. Deterministic for identical input.
package matching

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jonathan/cv-automation/internal/trace"
	"github.com/jonathan/cv-automation/internal/types"
)

// minTokenLength filters noise tokens like "a" or "of" fragments.
const minTokenLength = 3

// stopWords are discarded before weighting.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "you": {}, "your": {},
	"our": {}, "are": {}, "will": {}, "have": {}, "has": {}, "this": {},
	"that": {}, "from": {}, "not": {}, "all": {}, "can": {}, "who": {},
	"what": {}, "their": {}, "they": {}, "them": {}, "was": {}, "were": {},
	"been": {}, "being": {}, "but": {}, "into": {}, "about": {}, "other": {},
	"more": {}, "than": {}, "such": {}, "its": {}, "also": {}, "any": {},
	"per": {}, "etc": {}, "within": {}, "across": {}, "including": {},
	"required": {}, "requirements": {}, "preferred": {}, "experience": {},
	"ability": {}, "skills": {}, "work": {}, "working": {}, "role": {},
	"team": {}, "years": {}, "strong": {}, "plus": {}, "must": {},
	"should": {}, "would": {}, "could": {}, "well": {}, "using": {},
	"use": {}, "used": {}, "new": {}, "job": {}, "position": {},
	"candidate": {}, "candidates": {}, "company": {}, "opportunity": {},
}

// Match tokenizes job description text into a JobSignal, weighting each
// surviving term by its frequency normalized against the most frequent term.
// Blank input returns nil: no job description means no signal, not an empty
// one.
func Match(text string, rec *trace.Recorder) *types.JobSignal {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	counts := make(map[string]int)
	maxCount := 0
	for _, token := range tokenize(text) {
		counts[token]++
		if counts[token] > maxCount {
			maxCount = counts[token]
		}
	}

	signal := &types.JobSignal{Keywords: make(map[string]float64, len(counts))}
	for token, count := range counts {
		signal.Keywords[token] = float64(count) / float64(maxCount)
	}

	rec.Applied(trace.StepJobSignal, "job description", fmt.Sprintf("%d keywords", len(signal.Keywords)))
	return signal
}

// tokenize lowercases the text, splits on non-alphanumeric runes, and drops
// short tokens and stop words.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if len(field) < minTokenLength {
			continue
		}
		if _, stop := stopWords[field]; stop {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}
