// ABOUTME: Date search over free text, preferring future interpretations
// ABOUTME: Wraps go-dateparser behind a small Finder interface
package dates

import (
	"fmt"
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"
)

// Match is one date-like substring found in a text
type Match struct {
	Text string
	Time time.Time
}

// Finder locates date expressions in text relative to now
type Finder interface {
	Find(text string, now time.Time) ([]Match, error)
}

// DateparserFinder resolves dates with go-dateparser. Expressions without an
// explicit zone are read in loc.
type DateparserFinder struct {
	loc *time.Location
}

// NewFinder creates a finder that localizes naive dates to loc
func NewFinder(loc *time.Location) *DateparserFinder {
	if loc == nil {
		loc = time.UTC
	}
	return &DateparserFinder{loc: loc}
}

// Location returns the zone naive dates are read in
func (f *DateparserFinder) Location() *time.Location {
	return f.loc
}

// Find returns every date expression in text, in order of appearance
func (f *DateparserFinder) Find(text string, now time.Time) ([]Match, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	cfg := &dps.Configuration{
		CurrentTime:         now.In(f.loc),
		DefaultTimezone:     f.loc,
		PreferredDateSource: dps.Future,
	}

	_, results, err := dps.Search(cfg, text)
	if err != nil {
		return nil, fmt.Errorf("date search: %w", err)
	}

	matches := make([]Match, 0, len(results))
	for _, r := range results {
		if r.Date.Time.IsZero() {
			continue
		}
		matches = append(matches, Match{Text: r.Text, Time: r.Date.Time.In(f.loc)})
	}
	return matches, nil
}

// FirstAfter returns the first match strictly after now
func FirstAfter(matches []Match, now time.Time) (Match, bool) {
	for _, m := range matches {
		if m.Time.After(now) {
			return m, true
		}
	}
	return Match{}, false
}
