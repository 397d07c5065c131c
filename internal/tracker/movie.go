package tracker

import "time"

// SoonWindowDays is the largest day count still classified as StatusSoon.
const SoonWindowDays = 30

// RecentReleaseDays is how long after release a movie stays in the digest.
const RecentReleaseDays = 7

// Status buckets a movie by its release date relative to today.
type Status int

const (
	StatusUnknown  Status = iota // no release date
	StatusReleased               // release date in the past
	StatusToday                  // releases today
	StatusSoon                   // releases within SoonWindowDays
	StatusFuture                 // releases later than that
)

func (s Status) String() string {
	switch s {
	case StatusReleased:
		return "released"
	case StatusToday:
		return "today"
	case StatusSoon:
		return "soon"
	case StatusFuture:
		return "future"
	default:
		return "unknown"
	}
}

// MovieStatus is the classification of one movie.
// DaysDelta is days ago for StatusReleased and days until release for
// StatusSoon and StatusFuture; it is zero otherwise.
type MovieStatus struct {
	Status    Status
	DaysDelta int
}

// ClassifyMovie buckets a release date relative to today.
func ClassifyMovie(release, today time.Time) MovieStatus {
	if release.IsZero() {
		return MovieStatus{Status: StatusUnknown}
	}

	daysUntil := DaysBetween(today, release)
	switch {
	case daysUntil < 0:
		return MovieStatus{Status: StatusReleased, DaysDelta: -daysUntil}
	case daysUntil == 0:
		return MovieStatus{Status: StatusToday}
	case daysUntil <= SoonWindowDays:
		return MovieStatus{Status: StatusSoon, DaysDelta: daysUntil}
	default:
		return MovieStatus{Status: StatusFuture, DaysDelta: daysUntil}
	}
}

// Notable reports whether the status alone warrants sending a digest.
func (m MovieStatus) Notable() bool {
	return m.Status == StatusToday || m.Status == StatusSoon
}

// Surfaced reports whether the movie belongs in a digest. Movies released
// more than window days ago are dropped.
func (m MovieStatus) Surfaced(window int) bool {
	return m.Status != StatusReleased || m.DaysDelta <= window
}
