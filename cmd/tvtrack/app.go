package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vmunix/tvtrack/internal/checker"
	"github.com/vmunix/tvtrack/internal/config"
	"github.com/vmunix/tvtrack/internal/library"
	"github.com/vmunix/tvtrack/internal/metadata"
	"github.com/vmunix/tvtrack/internal/notify"
	"github.com/vmunix/tvtrack/internal/tmdb"
	"github.com/vmunix/tvtrack/pkg/tvmaze"
)

// app holds everything a command needs, built once from config.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	store    *library.Store
	gateway  *metadata.Gateway
	notifier checker.Notifier
	closers  []io.Closer
}

// loadConfig resolves the config file from --config, TVTRACK_CONFIG or the
// search path. No file at all means defaults plus environment.
func loadConfig() (*config.Config, string, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, "", err
	}

	path := configPath
	if path == "" {
		found, err := config.Discover()
		switch {
		case errors.Is(err, config.ErrNotFound):
			cfg := config.Default()
			applyFlagOverrides(cfg)
			return cfg, "", nil
		case err != nil:
			return nil, "", err
		}
		path = found
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, err
	}
	applyFlagOverrides(cfg)
	return cfg, path, nil
}

func applyFlagOverrides(cfg *config.Config) {
	if dataDir != "" {
		cfg.Storage.Dir = dataDir
		cfg.Storage.SQLitePath = filepath.Join(dataDir, "tvtrack.db")
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger writes text logs to console and, when log.file is set, to a
// rotated file as well. minLevel raises the level for interactive use.
func newLogger(cfg config.LogConfig, console io.Writer, minLevel slog.Level) (*slog.Logger, io.Closer) {
	level := parseLogLevel(cfg.Level)
	if level < minLevel {
		level = minLevel
	}

	out := console
	var closer io.Closer
	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			LocalTime:  true,
		}
		out = io.MultiWriter(console, rotator)
		closer = rotator
	}

	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})), closer
}

func openBackend(cfg config.StorageConfig) (library.Backend, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return library.OpenSQLite(cfg.SQLitePath)
	case config.BackendFile, "":
		return library.NewFileBackend(cfg.Dir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// newApp loads config and wires the store, metadata clients and notifier.
// Interactive sessions only log warnings and above to the console.
func newApp(cmd *cobra.Command, interactive bool) (*app, error) {
	cfg, path, err := loadConfig()
	if err != nil {
		var cfgErr *config.Error
		if errors.As(err, &cfgErr) {
			printConfigErrors(cmd.ErrOrStderr(), cfgErr)
		}
		return nil, fmt.Errorf("config: %w", err)
	}

	minLevel := slog.LevelDebug
	if interactive {
		minLevel = slog.LevelWarn
	}
	logger, logCloser := newLogger(cfg.Log, cmd.ErrOrStderr(), minLevel)
	a := &app{cfg: cfg, log: logger}
	if logCloser != nil {
		a.closers = append(a.closers, logCloser)
	}
	if path != "" {
		logger.Debug("config loaded", "path", path)
	} else {
		logger.Debug("no config file found, using defaults and environment")
	}

	backend, err := openBackend(cfg.Storage)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("open storage: %w", err)
	}
	a.store = library.NewStore(backend)
	a.closers = append(a.closers, a.store)
	logger.Debug("storage ready", "backend", cfg.Storage.Backend, "dir", cfg.Storage.Dir)

	var showOpts []tvmaze.Option
	if cfg.TVMaze.BaseURL != "" {
		showOpts = append(showOpts, tvmaze.WithBaseURL(cfg.TVMaze.BaseURL))
	}
	showOpts = append(showOpts, tvmaze.WithLogger(logger))

	var movieOpts []tmdb.Option
	if cfg.TMDB.BaseURL != "" {
		movieOpts = append(movieOpts, tmdb.WithBaseURL(cfg.TMDB.BaseURL))
	}
	movieOpts = append(movieOpts, tmdb.WithLogger(logger))
	movies := tmdb.NewClient(cfg.TMDB.APIKey, movieOpts...)
	if !movies.IsConfigured() {
		logger.Debug("tmdb api key not set, movie lookups will fail")
	}

	a.gateway = metadata.NewGateway(tvmaze.New(showOpts...), movies, logger.With("component", "metadata"))

	if cfg.Email.Enabled() {
		a.notifier = notify.NewEmail(cfg.Email, logger)
	} else {
		logger.Debug("email not configured, digest will not be sent", "missing", strings.Join(cfg.Email.MissingFields(), ", "))
	}

	return a, nil
}

func (a *app) checker() *checker.Checker {
	opts := []checker.Option{checker.WithLogger(a.log.With("component", "checker"))}
	if a.notifier != nil {
		opts = append(opts, checker.WithNotifier(a.notifier))
	}
	return checker.New(a.store, a.gateway, a.gateway, opts...)
}

// Close releases storage and the log file, in reverse order of opening.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
