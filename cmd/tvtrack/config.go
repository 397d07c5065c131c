package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/tvtrack/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate configuration file",
	Long:  "Validates config.toml syntax, required fields, and environment variable substitution without checking anything.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an example configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configTestCmd, configInitCmd)
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	path := configPath
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		found, err := config.Discover()
		if err != nil {
			return err
		}
		path = found
	}

	fmt.Fprintf(out, "Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.Error
		if errors.As(err, &configErr) {
			printConfigErrors(out, configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(out, cfg)
	fmt.Fprintln(out, "\nConfiguration valid!")
	return nil
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Configuration Summary:")
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		fmt.Fprintf(w, "  Storage:  sqlite (%s)\n", cfg.Storage.SQLitePath)
	default:
		fmt.Fprintf(w, "  Storage:  file (%s)\n", cfg.Storage.Dir)
	}

	if cfg.TMDB.APIKey != "" {
		fmt.Fprintf(w, "  TMDB:     %s\n", okText("api key set"))
	} else {
		fmt.Fprintf(w, "  TMDB:     %s\n", warnText("no api key, movie tracking disabled"))
	}

	if cfg.Email.Enabled() {
		fmt.Fprintf(w, "  Email:    %s via %s:%d -> %s\n", cfg.Email.Sender, cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.Recipient)
	} else {
		fmt.Fprintf(w, "  Email:    %s (missing %v)\n", warnText("disabled"), cfg.Email.MissingFields())
	}

	logDest := "stderr"
	if cfg.Log.File != "" {
		logDest = cfg.Log.File
	}
	fmt.Fprintf(w, "  Log:      %s (%s)\n", cfg.Log.Level, logDest)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}

	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s\n", okText("✓"), path)
	return nil
}
