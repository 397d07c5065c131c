// Package tracker classifies remote episodes and movie release dates against
// what the user has already watched or is waiting for.
package tracker

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used by the metadata APIs and the
// persisted state.
const DateLayout = "2006-01-02"

// WatchPosition is the (season, episode) pair a user has confirmed watching
// up to for one show.
type WatchPosition struct {
	Season  int
	Episode int
}

func (p WatchPosition) String() string {
	return fmt.Sprintf("S%02dE%02d", p.Season, p.Episode)
}

// Episode is a single episode as listed by the metadata source.
type Episode struct {
	Season  int
	Number  int
	Name    string
	AirDate time.Time // zero when the air date is not known
}

// Code renders the episode as S01E02.
func (e Episode) Code() string {
	return fmt.Sprintf("S%02dE%02d", e.Season, e.Number)
}

// AirDateString returns the air date as YYYY-MM-DD, or "TBA" if unknown.
func (e Episode) AirDateString() string {
	if e.AirDate.IsZero() {
		return "TBA"
	}
	return e.AirDate.Format(DateLayout)
}

// MovieDetails is the release information for a movie.
type MovieDetails struct {
	Title       string
	ReleaseDate time.Time // zero when no release date is known
}

// ParseDate parses a YYYY-MM-DD date. An empty string yields the zero time.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// civilDay strips the clock from t, keeping the calendar date t has in its
// own location. The result is in UTC so day arithmetic ignores DST.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from "from" to "to".
func DaysBetween(from, to time.Time) int {
	return int(civilDay(to).Sub(civilDay(from)).Hours() / 24)
}
