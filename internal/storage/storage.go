package storage

import "time"

// Event is one exchange of the console session: the query, how it was routed
// and what was answered. Events are appended in chronological order.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Query     string    `json:"query"`
	Intent    string    `json:"intent"`
	Source    string    `json:"source"`
	Response  string    `json:"response"`
}

// Recorder abstracts persistence of session exchanges.
type Recorder interface {
	AppendInteraction(event Event) error
	// LoadDay returns the events of day's calendar day, in day's location,
	// in the order they were recorded.
	LoadDay(day time.Time) ([]Event, error)
}

// Values of Event.Source.
const (
	SourceLocal     = "local"
	SourceWikipedia = "wikipedia"
)

// DayBounds returns the half-open interval [start, end) covering t's
// calendar day in t's location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// within reports whether ev was recorded inside [start, end).
func (ev Event) within(start, end time.Time) bool {
	return !ev.Timestamp.Before(start) && ev.Timestamp.Before(end)
}
