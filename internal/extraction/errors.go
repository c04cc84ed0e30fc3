package extraction

import "fmt"

// NoSectionsError indicates a CV with zero extractable sections. The pipeline
// treats this as fatal: there is nothing structurally usable to work with.
type NoSectionsError struct {
	Source string
}

func (e *NoSectionsError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("no recognizable sections extracted from %s", e.Source)
	}
	return "no recognizable sections extracted"
}
