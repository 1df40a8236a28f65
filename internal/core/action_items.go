// ABOUTME: Action item extraction: sentences that contain a date expression
// ABOUTME: One sentence per found date, deduplicated, in order of discovery
package core

import (
	"strings"
	"time"

	"github.com/harper/actionbrief/internal/dates"
)

// ActionItemExtractor finds date-bearing sentences
type ActionItemExtractor struct {
	finder dates.Finder
	now    func() time.Time
}

// NewActionItemExtractor creates an extractor using finder for date search
func NewActionItemExtractor(finder dates.Finder) *ActionItemExtractor {
	return &ActionItemExtractor{finder: finder, now: time.Now}
}

// Extract returns the action item sentences in text
func (e *ActionItemExtractor) Extract(text string) ([]string, error) {
	matches, err := e.finder.Find(text, e.now())
	if err != nil {
		return nil, err
	}
	return SentencesWithDates(text, matches), nil
}

// SentencesWithDates maps each date match to the first period-delimited
// segment of text containing it. Segments are trimmed and re-terminated with
// a period. A sentence holding several dates is returned once.
func SentencesWithDates(text string, matches []dates.Match) []string {
	if len(matches) == 0 {
		return nil
	}

	segments := strings.Split(text, ".")
	seen := make(map[string]bool)
	var items []string

	for _, m := range matches {
		if m.Text == "" {
			continue
		}
		for _, segment := range segments {
			if !strings.Contains(segment, m.Text) {
				continue
			}
			sentence := strings.TrimSpace(segment) + "."
			if !seen[sentence] {
				seen[sentence] = true
				items = append(items, sentence)
			}
			break
		}
	}

	return items
}
