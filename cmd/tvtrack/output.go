package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/vmunix/tvtrack/internal/checker"
	"github.com/vmunix/tvtrack/internal/config"
	"github.com/vmunix/tvtrack/internal/library"
	"github.com/vmunix/tvtrack/internal/notify"
	"github.com/vmunix/tvtrack/internal/tracker"
)

var (
	okText   = color.New(color.FgGreen).SprintFunc()
	warnText = color.New(color.FgYellow).SprintFunc()
	errText  = color.New(color.FgRed).SprintFunc()
	boldText = color.New(color.Bold).SprintFunc()
)

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render() + "\n"
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printShows(w io.Writer, shows []library.Show) {
	if len(shows) == 0 {
		fmt.Fprintln(w, "No shows tracked.")
		return
	}
	rows := make([][]string, len(shows))
	for i, s := range shows {
		rows[i] = []string{strconv.Itoa(i + 1), s.Name, s.Position().String()}
	}
	fmt.Fprint(w, renderTable([]string{"#", "Show", "Watched"}, rows, []columnAlignment{alignRight, alignLeft, alignLeft}))
}

func printMovies(w io.Writer, movies []library.Movie) {
	if len(movies) == 0 {
		fmt.Fprintln(w, "No movies tracked.")
		return
	}
	rows := make([][]string, len(movies))
	for i, m := range movies {
		rows[i] = []string{strconv.Itoa(i + 1), m.Title, strconv.FormatInt(m.TMDBID, 10), m.AddedDate}
	}
	fmt.Fprint(w, renderTable([]string{"#", "Title", "TMDB ID", "Added"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft}))
}

// printReport writes the console view of a check run.
func printReport(w io.Writer, r *checker.Report) {
	if r.Empty() {
		fmt.Fprintln(w, warnText("No shows or movies tracked. Add some first."))
		return
	}

	for _, s := range r.NewEpisodeShows() {
		fmt.Fprintf(w, "%s %s:\n", okText("New episodes for"), boldText(s.Show.Name))
		for _, ep := range s.NewEpisodes {
			fmt.Fprintf(w, "  - %s (aired %s) - %s\n", ep.Code(), ep.AirDateString(), ep.Name)
		}
		fmt.Fprintln(w)
	}

	if upToDate := r.UpToDateShows(); len(upToDate) > 0 {
		names := make([]string, len(upToDate))
		for i, s := range upToDate {
			names[i] = s.Show.Name
		}
		fmt.Fprintf(w, "No new episodes: %s\n\n", strings.Join(names, ", "))
	}

	if len(r.Movies) > 0 {
		rows := make([][]string, 0, len(r.Movies))
		for _, m := range r.Movies {
			if m.Err != nil {
				continue
			}
			release := "TBA"
			if !m.Details.ReleaseDate.IsZero() {
				release = m.Details.ReleaseDate.Format(tracker.DateLayout)
			}
			rows = append(rows, []string{m.Title(), statusText(m.Status), release, notify.MovieLine(m)})
		}
		if len(rows) > 0 {
			fmt.Fprint(w, renderTable([]string{"Movie", "Status", "Release", "Note"}, rows, nil))
			fmt.Fprintln(w)
		}
	}

	for _, f := range r.Failures() {
		fmt.Fprintf(w, "%s checking %s %q: %v\n", errText("Error"), f.Kind, f.Name, f.Err)
	}

	switch {
	case r.Notified:
		fmt.Fprintln(w, okText("Digest email sent."))
	case r.Unsent:
		fmt.Fprintln(w, warnText("Email not configured, digest not sent."))
	case !r.Notable():
		fmt.Fprintln(w, "Nothing new to report, no email sent.")
	}
}

func statusText(s tracker.MovieStatus) string {
	switch s.Status {
	case tracker.StatusToday, tracker.StatusSoon:
		return okText(s.Status.String())
	case tracker.StatusReleased:
		return warnText(s.Status.String())
	default:
		return s.Status.String()
	}
}

func printConfigErrors(w io.Writer, e *config.Error) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
		fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			fmt.Fprintf(w, "  - %s\n", err)
		}
		fmt.Fprintln(w)
	}
}
