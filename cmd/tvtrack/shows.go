package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/tvtrack/internal/library"
)

func init() {
	showCmd := &cobra.Command{
		Use:     "show",
		Aliases: []string{"shows"},
		Short:   "Manage tracked shows",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked shows",
		Args:  cobra.NoArgs,
		RunE:  runShowList,
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Start tracking a show",
		Long:  "Tracks a show by name. --season and --episode give the last episode you watched; use 0 for none.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runShowAdd,
	}
	addCmd.Flags().IntP("season", "s", 0, "Last watched season")
	addCmd.Flags().IntP("episode", "e", 0, "Last watched episode")

	updateCmd := &cobra.Command{
		Use:   "update <name>",
		Short: "Set the last watched episode of a show",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runShowUpdate,
	}
	updateCmd.Flags().IntP("season", "s", 0, "Last watched season (required)")
	updateCmd.Flags().IntP("episode", "e", 0, "Last watched episode (required)")
	_ = updateCmd.MarkFlagRequired("season")
	_ = updateCmd.MarkFlagRequired("episode")

	removeCmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Stop tracking a show",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runShowRemove,
	}

	showCmd.AddCommand(listCmd, addCmd, updateCmd, removeCmd)
	rootCmd.AddCommand(showCmd)
}

func runShowList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	shows, err := a.store.ListShows(cmd.Context())
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), shows)
	}
	printShows(cmd.OutOrStdout(), shows)
	return nil
}

func runShowAdd(cmd *cobra.Command, args []string) error {
	season, _ := cmd.Flags().GetInt("season")
	episode, _ := cmd.Flags().GetInt("episode")

	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	show, err := a.store.AddShow(cmd.Context(), strings.Join(args, " "), season, episode)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %q added (watched %s)\n", okText("✓"), show.Name, show.Position())
	return nil
}

func runShowUpdate(cmd *cobra.Command, args []string) error {
	season, _ := cmd.Flags().GetInt("season")
	episode, _ := cmd.Flags().GetInt("episode")

	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	name := strings.Join(args, " ")
	show, err := a.store.UpdateShow(cmd.Context(), name, season, episode)
	if err != nil {
		return withSuggestion(cmd.Context(), a.store, name, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %q updated to %s\n", okText("✓"), show.Name, show.Position())
	return nil
}

func runShowRemove(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	name := strings.Join(args, " ")
	show, err := a.store.RemoveShow(cmd.Context(), name)
	if err != nil {
		return withSuggestion(cmd.Context(), a.store, name, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %q removed\n", okText("✓"), show.Name)
	return nil
}

// withSuggestion adds a "did you mean" hint to a not-found error.
func withSuggestion(ctx context.Context, store *library.Store, name string, err error) error {
	if !errors.Is(err, library.ErrNotFound) {
		return err
	}
	if suggestion := store.SuggestShow(ctx, name); suggestion != "" {
		return fmt.Errorf("%w (did you mean %q?)", err, suggestion)
	}
	return err
}
