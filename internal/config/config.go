// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Email defaults match a Gmail app-password setup.
const (
	DefaultSMTPHost = "smtp.gmail.com"
	DefaultSMTPPort = 587
)

// Config is the root configuration structure.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	TVMaze  TVMazeConfig  `toml:"tvmaze"`
	TMDB    TMDBConfig    `toml:"tmdb"`
	Email   EmailConfig   `toml:"email"`
	Log     LogConfig     `toml:"log"`
}

type StorageConfig struct {
	Backend    string `toml:"backend"`
	Dir        string `toml:"dir"`
	SQLitePath string `toml:"sqlite_path"`
}

type TVMazeConfig struct {
	BaseURL string `toml:"base_url"`
}

type TMDBConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

type EmailConfig struct {
	SMTPHost  string `toml:"smtp_host"`
	SMTPPort  int    `toml:"smtp_port"`
	Sender    string `toml:"sender"`
	Password  string `toml:"password"`
	Recipient string `toml:"recipient"` // comma-separated
	Subject   string `toml:"subject"`
}

// Enabled reports whether every credential needed to send is present.
func (e EmailConfig) Enabled() bool {
	return e.Sender != "" && e.Password != "" && e.Recipient != ""
}

// MissingFields names the unset credentials, for logging why email is off.
func (e EmailConfig) MissingFields() []string {
	var missing []string
	if e.Sender == "" {
		missing = append(missing, "email.sender")
	}
	if e.Password == "" {
		missing = append(missing, "email.password")
	}
	if e.Recipient == "" {
		missing = append(missing, "email.recipient")
	}
	return missing
}

type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// Environment variables that override file values when set.
const (
	EnvEmailSender   = "EMAIL_SENDER"
	EnvEmailPassword = "EMAIL_PASSWORD"
	EnvEmailReceiver = "EMAIL_RECEIVER"
	EnvTMDBAPIKey    = "TMDB_API_KEY"
	EnvDataDir       = "TVTRACK_DATA_DIR"
)

// Default returns a config with defaults and environment overrides applied,
// as used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	return cfg
}

// Load reads, parses and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, err := LoadWithoutValidation(path)
	if err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &Error{Path: path, Errors: errs}
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file, applying
// substitution, environment overrides and defaults.
func LoadWithoutValidation(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &Error{Path: path, Missing: missing}
	}

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadDotEnv loads KEY=value pairs from a .env file into the process
// environment. Variables already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	override := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	override(&c.Email.Sender, EnvEmailSender)
	override(&c.Email.Password, EnvEmailPassword)
	override(&c.Email.Recipient, EnvEmailReceiver)
	override(&c.TMDB.APIKey, EnvTMDBAPIKey)
	override(&c.Storage.Dir, EnvDataDir)
}

func (c *Config) applyDefaults() {
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendFile
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = DefaultDataDir()
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = filepath.Join(c.Storage.Dir, "tvtrack.db")
	}
	if c.Email.SMTPHost == "" {
		c.Email.SMTPHost = DefaultSMTPHost
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = DefaultSMTPPort
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 10
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 3
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = 28
	}
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// substituteEnvVars replaces ${VAR}, ${VAR:-default} and ${VAR:?message}
// with environment values. Unresolved references are left unchanged and
// reported in missing. Comment lines are copied as is.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	seen := make(map[string]bool)
	report := func(s string) {
		if !seen[s] {
			seen[s] = true
			missing = append(missing, s)
		}
	}

	expand := func(match string) string {
		expr := match[2 : len(match)-1] // Strip ${ and }

		if name, def, ok := strings.Cut(expr, ":-"); ok {
			if value := os.Getenv(name); value != "" {
				return value
			}
			return def
		}
		if name, msg, ok := strings.Cut(expr, ":?"); ok {
			if value := os.Getenv(name); value != "" {
				return value
			}
			report(name + ": " + msg)
			return match
		}

		if value, ok := os.LookupEnv(expr); ok {
			return value
		}
		report(expr)
		return match
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lines[i] = envVarPattern.ReplaceAllStringFunc(line, expand)
	}
	return strings.Join(lines, "\n"), missing
}
