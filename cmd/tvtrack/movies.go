package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/tvtrack/internal/library"
	"github.com/vmunix/tvtrack/internal/metadata"
	"github.com/vmunix/tvtrack/internal/tmdb"
	"github.com/vmunix/tvtrack/pkg/titlematch"
)

// movieFinder is satisfied by *metadata.Gateway.
type movieFinder interface {
	FindMovie(ctx context.Context, title string) (*metadata.MovieMatch, error)
}

func init() {
	movieCmd := &cobra.Command{
		Use:     "movie",
		Aliases: []string{"movies"},
		Short:   "Manage tracked movies",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked movies",
		Args:  cobra.NoArgs,
		RunE:  runMovieList,
	}

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Search TMDB and start tracking a movie",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runMovieAdd,
	}
	addCmd.Flags().BoolP("yes", "y", false, "Track the best match without asking")

	removeCmd := &cobra.Command{
		Use:   "remove <tmdb-id>",
		Short: "Stop tracking a movie",
		Args:  cobra.ExactArgs(1),
		RunE:  runMovieRemove,
	}

	movieCmd.AddCommand(listCmd, addCmd, removeCmd)
	rootCmd.AddCommand(movieCmd)
}

func runMovieList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	movies, err := a.store.ListMovies(cmd.Context())
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), movies)
	}
	printMovies(cmd.OutOrStdout(), movies)
	return nil
}

func runMovieAdd(cmd *cobra.Command, args []string) error {
	yes, _ := cmd.Flags().GetBool("yes")

	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	return addMovie(cmd.Context(), p, a.store, a.gateway, strings.Join(args, " "), yes)
}

func runMovieRemove(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("tmdb id %q: %w", args[0], errNotNumber)
	}

	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	movie, err := a.store.RemoveMovie(cmd.Context(), id)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %q removed\n", okText("✓"), movie.Title)
	return nil
}

// addMovie looks a title up, asks for confirmation unless yes is set, and
// tracks the match. Declining is not an error.
func addMovie(ctx context.Context, p *prompter, store *library.Store, finder movieFinder, title string, yes bool) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: movie title is empty", library.ErrInvalid)
	}

	match, err := finder.FindMovie(ctx, title)
	if err != nil {
		if errors.Is(err, tmdb.ErrAPIKeyMissing) {
			return fmt.Errorf("%w (set TMDB_API_KEY or tmdb.api_key)", err)
		}
		return err
	}

	tracked, err := store.HasMovie(ctx, match.TMDBID)
	if err != nil {
		return err
	}
	if tracked {
		return fmt.Errorf("movie %s: %w", describeMatch(match), library.ErrDuplicate)
	}

	fmt.Fprintf(p.out, "Found: %s\n", boldText(describeMatch(match)))
	if match.Confidence < titlematch.ConfidenceMedium {
		fmt.Fprintln(p.out, warnText("  This is the closest result, not an exact title match."))
	}

	if !yes {
		ok, err := p.confirm("Track this movie?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(p.out, "Not added.")
			return nil
		}
	}

	movie, err := store.AddMovie(ctx, library.Movie{Title: match.Title, TMDBID: match.TMDBID})
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "%s %q added\n", okText("✓"), movie.Title)
	return nil
}

func describeMatch(m *metadata.MovieMatch) string {
	s := m.Title
	if y := m.Year(); y > 0 {
		s += fmt.Sprintf(" (%d)", y)
	}
	return fmt.Sprintf("%s [tmdb %d]", s, m.TMDBID)
}
