package checker

import (
	"time"

	"github.com/vmunix/tvtrack/internal/library"
	"github.com/vmunix/tvtrack/internal/tracker"
)

// ShowResult is the outcome of checking one show. Err is set when the remote
// lookup failed, in which case NewEpisodes is empty.
type ShowResult struct {
	Show        library.Show
	NewEpisodes []tracker.Episode
	Err         error
}

// MovieResult is the outcome of checking one movie.
type MovieResult struct {
	Movie   library.Movie
	Details tracker.MovieDetails
	Status  tracker.MovieStatus
	Err     error
}

// Title prefers the current remote title over the one stored at add time.
func (r MovieResult) Title() string {
	if r.Details.Title != "" {
		return r.Details.Title
	}
	return r.Movie.Title
}

// Failure names an entity whose check failed.
type Failure struct {
	Kind string // "show" or "movie"
	Name string
	Err  error
}

// Report collects every per-entity outcome of one check-all run.
type Report struct {
	CheckedAt time.Time
	Shows     []ShowResult
	Movies    []MovieResult
	Notified  bool

	// Unsent is set when the report was notable but no notifier is
	// configured.
	Unsent bool
}

// Empty reports whether nothing is tracked at all.
func (r *Report) Empty() bool {
	return len(r.Shows) == 0 && len(r.Movies) == 0
}

// NewEpisodeShows returns shows that have at least one new episode.
func (r *Report) NewEpisodeShows() []ShowResult {
	var out []ShowResult
	for _, s := range r.Shows {
		if s.Err == nil && len(s.NewEpisodes) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// UpToDateShows returns shows checked successfully with nothing new.
func (r *Report) UpToDateShows() []ShowResult {
	var out []ShowResult
	for _, s := range r.Shows {
		if s.Err == nil && len(s.NewEpisodes) == 0 {
			out = append(out, s)
		}
	}
	return out
}

// SurfacedMovies returns movies checked successfully that belong in a digest.
func (r *Report) SurfacedMovies() []MovieResult {
	var out []MovieResult
	for _, m := range r.Movies {
		if m.Err == nil && m.Status.Surfaced(tracker.RecentReleaseDays) {
			out = append(out, m)
		}
	}
	return out
}

// NotableMovies returns movies releasing today or soon.
func (r *Report) NotableMovies() []MovieResult {
	var out []MovieResult
	for _, m := range r.Movies {
		if m.Err == nil && m.Status.Notable() {
			out = append(out, m)
		}
	}
	return out
}

// Failures lists every entity whose check failed, shows first.
func (r *Report) Failures() []Failure {
	var out []Failure
	for _, s := range r.Shows {
		if s.Err != nil {
			out = append(out, Failure{Kind: "show", Name: s.Show.Name, Err: s.Err})
		}
	}
	for _, m := range r.Movies {
		if m.Err != nil {
			out = append(out, Failure{Kind: "movie", Name: m.Movie.Title, Err: m.Err})
		}
	}
	return out
}

// Notable reports whether the run found anything worth sending: a new
// episode, or a movie releasing today or soon.
func (r *Report) Notable() bool {
	return len(r.NewEpisodeShows()) > 0 || len(r.NotableMovies()) > 0
}
