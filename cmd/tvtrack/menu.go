package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/tvtrack/internal/library"
)

var menuOptions = []string{
	"Check for new episodes and movies (sends email)",
	"Add a show",
	"Remove a show",
	"Update watched episode",
	"Add a movie",
	"Remove a movie",
	"List tracked shows and movies",
	"Exit",
}

// menu is the interactive session. List selections are turned into a name
// or TMDB ID right away, and every change goes through the store by that
// identifier.
type menu struct {
	*prompter
	store  *library.Store
	movies movieFinder
	check  func(ctx context.Context) error
}

func runMenu(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdin) {
		return errors.New("interactive menu needs a terminal; use --auto or a subcommand")
	}

	a, err := newApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	c := a.checker()
	m := &menu{
		prompter: newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()),
		store:    a.store,
		movies:   a.gateway,
		check: func(ctx context.Context) error {
			return checkAndReport(ctx, c, cmd.OutOrStdout())
		},
	}
	return m.run(cmd.Context())
}

func (m *menu) run(ctx context.Context) error {
	for {
		fmt.Fprintln(m.out, boldText("TV Episode Tracker"))
		for i, opt := range menuOptions {
			fmt.Fprintf(m.out, "%d) %s\n", i+1, opt)
		}

		choice, err := m.ask("Select an option: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = m.check(ctx)
		case "2":
			err = m.addShow(ctx)
		case "3":
			err = m.removeShow(ctx)
		case "4":
			err = m.updateShow(ctx)
		case "5":
			err = m.addMovie(ctx)
		case "6":
			err = m.removeMovie(ctx)
		case "7":
			err = m.list(ctx)
		case "8":
			fmt.Fprintln(m.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(m.out, errText("Invalid option."))
		}

		if done := m.report(err); done {
			return nil
		}
		fmt.Fprintln(m.out)
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// report prints an operation's error. It returns true when input has ended.
func (m *menu) report(err error) bool {
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		return true
	case errors.Is(err, errNotNumber):
		fmt.Fprintln(m.out, warnText("Please enter a valid number."))
	case errors.Is(err, errInvalidSelection):
		fmt.Fprintln(m.out, errText("Invalid selection."))
	case errors.Is(err, library.ErrDuplicate), errors.Is(err, library.ErrNotFound), errors.Is(err, library.ErrInvalid):
		fmt.Fprintln(m.out, warnText(err.Error()))
	default:
		fmt.Fprintf(m.out, "%s %v\n", errText("Error:"), err)
	}
	return false
}

func (m *menu) addShow(ctx context.Context) error {
	fmt.Fprintln(m.out, "\nAdd a show")
	name, err := m.ask("Show name: ")
	if err != nil {
		return err
	}
	exists, err := m.store.HasShow(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("show %q: %w", name, library.ErrDuplicate)
	}

	season, err := m.askInt("Last watched season (use 0 if none): ")
	if err != nil {
		return err
	}
	episode, err := m.askInt("Last watched episode (use 0 if none): ")
	if err != nil {
		return err
	}

	show, err := m.store.AddShow(ctx, name, season, episode)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "%s %q added.\n", okText("✓"), show.Name)
	return nil
}

// chooseShow lists shows and resolves the user's pick to a show. ok is false
// when there is nothing to choose from.
func (m *menu) chooseShow(ctx context.Context, label string) (show library.Show, ok bool, err error) {
	shows, err := m.store.ListShows(ctx)
	if err != nil {
		return library.Show{}, false, err
	}
	if len(shows) == 0 {
		fmt.Fprintln(m.out, warnText("No shows tracked."))
		return library.Show{}, false, nil
	}

	fmt.Fprintln(m.out, "Current shows:")
	for i, s := range shows {
		fmt.Fprintf(m.out, "  %d) %s (%s)\n", i+1, s.Name, s.Position())
	}
	i, err := m.pick(label, len(shows))
	if err != nil {
		return library.Show{}, false, err
	}
	return shows[i], true, nil
}

func (m *menu) removeShow(ctx context.Context) error {
	fmt.Fprintln(m.out, "\nRemove a show")
	show, ok, err := m.chooseShow(ctx, "Enter the number of the show to remove: ")
	if err != nil || !ok {
		return err
	}
	removed, err := m.store.RemoveShow(ctx, show.Name)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "%s %q removed.\n", okText("✓"), removed.Name)
	return nil
}

func (m *menu) updateShow(ctx context.Context) error {
	fmt.Fprintln(m.out, "\nUpdate watched episode")
	show, ok, err := m.chooseShow(ctx, "Enter the number of the show to update: ")
	if err != nil || !ok {
		return err
	}

	fmt.Fprintf(m.out, "Updating %q, currently season %d, episode %d\n", show.Name, show.LastSeason, show.LastEpisode)
	season, err := m.askInt("New season number: ")
	if err != nil {
		return err
	}
	episode, err := m.askInt("New episode number: ")
	if err != nil {
		return err
	}

	updated, err := m.store.UpdateShow(ctx, show.Name, season, episode)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "%s %q updated to %s.\n", okText("✓"), updated.Name, updated.Position())
	return nil
}

func (m *menu) addMovie(ctx context.Context) error {
	fmt.Fprintln(m.out, "\nAdd a movie")
	title, err := m.ask("Movie title: ")
	if err != nil {
		return err
	}
	return addMovie(ctx, m.prompter, m.store, m.movies, title, false)
}

func (m *menu) removeMovie(ctx context.Context) error {
	fmt.Fprintln(m.out, "\nRemove a movie")
	movies, err := m.store.ListMovies(ctx)
	if err != nil {
		return err
	}
	if len(movies) == 0 {
		fmt.Fprintln(m.out, warnText("No movies tracked."))
		return nil
	}

	fmt.Fprintln(m.out, "Current movies:")
	for i, mv := range movies {
		fmt.Fprintf(m.out, "  %d) %s\n", i+1, mv.Title)
	}
	i, err := m.pick("Enter the number of the movie to remove: ", len(movies))
	if err != nil {
		return err
	}

	removed, err := m.store.RemoveMovie(ctx, movies[i].TMDBID)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "%s %q removed.\n", okText("✓"), removed.Title)
	return nil
}

func (m *menu) list(ctx context.Context) error {
	shows, err := m.store.ListShows(ctx)
	if err != nil {
		return err
	}
	movies, err := m.store.ListMovies(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out)
	printShows(m.out, shows)
	printMovies(m.out, movies)
	return nil
}
