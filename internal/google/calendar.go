// ABOUTME: Creates a one-hour calendar event at the first future date in a text
// ABOUTME: No future date means no API call at all
package google

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harper/actionbrief/internal/dates"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const (
	// PrimaryCalendar is the calendar events are inserted into
	PrimaryCalendar = "primary"
	// DefaultEventTitle is used when the form leaves the title blank
	DefaultEventTitle = "Meeting from AI Assistant"
	// EventDuration is the length of every created event
	EventDuration = time.Hour
)

// ErrNoFutureDate means the text holds no date after now
var ErrNoFutureDate = errors.New("could not find a future date in the text")

// EventInserter inserts an event into a calendar
type EventInserter interface {
	Insert(ctx context.Context, calendarID string, ev *calendar.Event) (*calendar.Event, error)
}

type calendarInserter struct {
	svc *calendar.Service
}

// NewEventInserter builds a Calendar API client using ts
func NewEventInserter(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (EventInserter, error) {
	svc, err := calendar.NewService(ctx, append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return &calendarInserter{svc: svc}, nil
}

func (c *calendarInserter) Insert(ctx context.Context, calendarID string, ev *calendar.Event) (*calendar.Event, error) {
	return c.svc.Events.Insert(calendarID, ev).Context(ctx).Do()
}

// EventRequest is what the automate step asks to schedule
type EventRequest struct {
	Title        string
	Summary      string
	OriginalText string
}

// Scheduler picks the event time and builds the event
type Scheduler struct {
	finder dates.Finder
	loc    *time.Location
	now    func() time.Time
}

// NewScheduler creates a scheduler reading naive dates in loc
func NewScheduler(finder dates.Finder, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{finder: finder, loc: loc, now: time.Now}
}

// Location returns the event timezone
func (s *Scheduler) Location() *time.Location {
	return s.loc
}

// NextDate returns the first date in text strictly after now
func (s *Scheduler) NextDate(text string) (time.Time, error) {
	now := s.now().In(s.loc)
	matches, err := s.finder.Find(text, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("find dates: %w", err)
	}
	m, ok := dates.FirstAfter(matches, now)
	if !ok {
		return time.Time{}, ErrNoFutureDate
	}
	return m.Time.In(s.loc), nil
}

// BuildEvent returns the calendar event for req starting at start
func (s *Scheduler) BuildEvent(req EventRequest, start time.Time) *calendar.Event {
	title := req.Title
	if title == "" {
		title = DefaultEventTitle
	}
	start = start.In(s.loc)
	end := start.Add(EventDuration)

	return &calendar.Event{
		Summary:     title,
		Description: "Generated Summary:\n" + req.Summary,
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: s.loc.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: s.loc.String(),
		},
	}
}

// Schedule finds the next date in req.OriginalText and inserts the event.
// It returns the event start.
func (s *Scheduler) Schedule(ctx context.Context, events EventInserter, req EventRequest) (time.Time, error) {
	start, err := s.NextDate(req.OriginalText)
	if err != nil {
		return time.Time{}, err
	}
	if _, err := events.Insert(ctx, PrimaryCalendar, s.BuildEvent(req, start)); err != nil {
		return time.Time{}, fmt.Errorf("insert event: %w", err)
	}
	return start, nil
}
