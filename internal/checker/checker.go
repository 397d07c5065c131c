// Package checker runs the check-all operation: every tracked show and movie
// is looked up, classified, and collected into a Report.
package checker

//go:generate mockgen -destination=mocks/mocks.go -package=mocks . Library,ShowSource,MovieSource,Notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vmunix/tvtrack/internal/library"
	"github.com/vmunix/tvtrack/internal/tracker"
)

// ErrNotifyFailed wraps a failed digest transmission.
var ErrNotifyFailed = errors.New("notification failed")

// Library lists the tracked entities.
type Library interface {
	ListShows(ctx context.Context) ([]library.Show, error)
	ListMovies(ctx context.Context) ([]library.Movie, error)
}

// ShowSource lists a show's episodes by name.
type ShowSource interface {
	ShowEpisodes(ctx context.Context, name string) ([]tracker.Episode, error)
}

// MovieSource fetches release details for a movie.
type MovieSource interface {
	MovieDetails(ctx context.Context, tmdbID int64) (tracker.MovieDetails, error)
}

// Notifier delivers a report.
type Notifier interface {
	Notify(ctx context.Context, report *Report) error
}

// Checker checks tracked entities one at a time.
type Checker struct {
	lib      Library
	shows    ShowSource
	movies   MovieSource
	notifier Notifier
	log      *slog.Logger
	now      func() time.Time
}

// Option configures a Checker.
type Option func(*Checker)

// WithNotifier sets where notable reports are sent. Without one, Run only
// logs that sending was skipped.
func WithNotifier(n Notifier) Option {
	return func(c *Checker) {
		c.notifier = n
	}
}

// WithClock sets the clock used as "today".
func WithClock(now func() time.Time) Option {
	return func(c *Checker) {
		c.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Checker) {
		c.log = log
	}
}

// New creates a checker.
func New(lib Library, shows ShowSource, movies MovieSource, opts ...Option) *Checker {
	c := &Checker{
		lib:    lib,
		shows:  shows,
		movies: movies,
		log:    slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckAll checks every tracked show and movie. A failed lookup is recorded
// on that entity's result and never stops the rest. The only returned error
// is failing to load the tracked collections.
func (c *Checker) CheckAll(ctx context.Context) (*Report, error) {
	shows, err := c.lib.ListShows(ctx)
	if err != nil {
		return nil, err
	}
	movies, err := c.lib.ListMovies(ctx)
	if err != nil {
		return nil, err
	}

	today := c.now()
	report := &Report{
		CheckedAt: today,
		Shows:     make([]ShowResult, 0, len(shows)),
		Movies:    make([]MovieResult, 0, len(movies)),
	}

	for _, show := range shows {
		report.Shows = append(report.Shows, c.checkShow(ctx, show, today))
	}
	for _, movie := range movies {
		report.Movies = append(report.Movies, c.checkMovie(ctx, movie, today))
	}

	c.log.Info("check complete",
		"shows", len(report.Shows),
		"movies", len(report.Movies),
		"shows_with_new", len(report.NewEpisodeShows()),
		"failures", len(report.Failures()),
	)
	return report, nil
}

func (c *Checker) checkShow(ctx context.Context, show library.Show, today time.Time) ShowResult {
	episodes, err := c.shows.ShowEpisodes(ctx, show.Name)
	if err != nil {
		c.log.Error("show check failed", "show", show.Name, "error", err)
		return ShowResult{Show: show, Err: err}
	}

	fresh := tracker.CollectNewEpisodes(episodes, show.Position(), today)
	if len(fresh) > 0 {
		c.log.Info("new episodes", "show", show.Name, "watched", show.Position().String(), "count", len(fresh))
	} else {
		c.log.Debug("no new episodes", "show", show.Name, "watched", show.Position().String())
	}
	return ShowResult{Show: show, NewEpisodes: fresh}
}

func (c *Checker) checkMovie(ctx context.Context, movie library.Movie, today time.Time) MovieResult {
	details, err := c.movies.MovieDetails(ctx, movie.TMDBID)
	if err != nil {
		c.log.Error("movie check failed", "movie", movie.Title, "tmdb_id", movie.TMDBID, "error", err)
		return MovieResult{Movie: movie, Err: err}
	}

	status := tracker.ClassifyMovie(details.ReleaseDate, today)
	c.log.Debug("movie classified", "movie", movie.Title, "status", status.Status.String(), "days", status.DaysDelta)
	return MovieResult{Movie: movie, Details: details, Status: status}
}

// Run checks everything and sends one digest when the report is notable.
// A failed send is logged and returned wrapped in ErrNotifyFailed; the report
// is still returned.
func (c *Checker) Run(ctx context.Context) (*Report, error) {
	report, err := c.CheckAll(ctx)
	if err != nil {
		return nil, err
	}

	if !report.Notable() {
		c.log.Info("nothing new to report, not sending notification")
		return report, nil
	}
	if c.notifier == nil {
		c.log.Warn("notifications not configured, skipping digest")
		report.Unsent = true
		return report, nil
	}

	if err := c.notifier.Notify(ctx, report); err != nil {
		c.log.Error("sending digest failed", "error", err)
		return report, fmt.Errorf("%w: %w", ErrNotifyFailed, err)
	}
	report.Notified = true
	c.log.Info("digest sent")
	return report, nil
}
