// Package notify renders check reports as plain-text digests and delivers
// them by email.
package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/vmunix/tvtrack/internal/checker"
	"github.com/vmunix/tvtrack/internal/tracker"
)

// DefaultSubject is used when no subject is configured.
const DefaultSubject = "Episode Tracker Update"

// Digest is a rendered notification.
type Digest struct {
	Subject string
	Body    string
}

// BuildDigest renders a report. Sections with nothing to say are left out.
func BuildDigest(report *checker.Report, now time.Time) Digest {
	var b strings.Builder
	fmt.Fprintf(&b, "Episode Update - %s\n", now.Format(tracker.DateLayout))

	if shows := report.NewEpisodeShows(); len(shows) > 0 {
		section(&b, "NEW EPISODES")
		for _, s := range shows {
			fmt.Fprintf(&b, "%s:\n", s.Show.Name)
			for _, ep := range s.NewEpisodes {
				fmt.Fprintf(&b, "  - %s (aired %s) - %s\n", ep.Code(), ep.AirDateString(), ep.Name)
			}
			b.WriteString("\n")
		}
	}

	if movies := report.SurfacedMovies(); len(movies) > 0 {
		section(&b, "MOVIES")
		for _, m := range movies {
			fmt.Fprintf(&b, "  - %s: %s\n", m.Title(), MovieLine(m))
		}
		b.WriteString("\n")
	}

	if shows := report.UpToDateShows(); len(shows) > 0 {
		section(&b, "NO NEW EPISODES")
		for _, s := range shows {
			fmt.Fprintf(&b, "  - %s (watched %s)\n", s.Show.Name, s.Show.Position())
		}
		b.WriteString("\n")
	}

	if failures := report.Failures(); len(failures) > 0 {
		section(&b, "ERRORS")
		for _, f := range failures {
			fmt.Fprintf(&b, "  - %s %q: %v\n", f.Kind, f.Name, f.Err)
		}
		b.WriteString("\n")
	}

	return Digest{
		Subject: DefaultSubject,
		Body:    strings.TrimRight(b.String(), "\n") + "\n",
	}
}

// MovieLine describes a movie's release status in words.
func MovieLine(m checker.MovieResult) string {
	switch m.Status.Status {
	case tracker.StatusToday:
		return "releases today"
	case tracker.StatusSoon:
		return fmt.Sprintf("releases in %s (%s)", days(m.Status.DaysDelta), m.Details.ReleaseDate.Format(tracker.DateLayout))
	case tracker.StatusReleased:
		return fmt.Sprintf("released %s ago", days(m.Status.DaysDelta))
	case tracker.StatusFuture:
		return fmt.Sprintf("releases in %s", days(m.Status.DaysDelta))
	default:
		return "release date not announced"
	}
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func section(b *strings.Builder, title string) {
	fmt.Fprintf(b, "\n%s\n%s\n\n", title, strings.Repeat("=", len(title)))
}
