package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath string
	dataDir    string
	logLevel   string
	jsonOutput bool
	autoMode   bool
)

var rootCmd = &cobra.Command{
	Use:   "tvtrack",
	Short: "Track TV shows and movies and email a digest of what's new",
	Long: `tvtrack - TV show and movie release tracker

Tracks the last episode you watched for each show and the movies you are
waiting for, checks TVMaze and TMDB for new episodes and upcoming releases,
and emails a digest when there is something to report.

Run without arguments for the interactive menu. Use --auto from cron or a
systemd timer to check everything and exit.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runRoot,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: discovered)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding tracked state")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output listings as JSON")
	rootCmd.Flags().BoolVar(&autoMode, "auto", false, "Check everything, send the digest, and exit")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("tvtrack {{.Version}}\n")
}

func runRoot(cmd *cobra.Command, args []string) error {
	if autoMode {
		return runCheck(cmd, args)
	}
	return runMenu(cmd, args)
}
