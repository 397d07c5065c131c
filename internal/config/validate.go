package config

import (
	"fmt"
	"net/url"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validBackends = map[string]bool{
	BackendFile: true, BackendSQLite: true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validBackends[c.Storage.Backend] {
		errs = append(errs, fmt.Sprintf("storage.backend: must be one of file, sqlite; got %q", c.Storage.Backend))
	}
	if c.Storage.Dir == "" {
		errs = append(errs, "storage.dir: required")
	}

	errs = appendURLError(errs, "tvmaze.base_url", c.TVMaze.BaseURL)
	errs = appendURLError(errs, "tmdb.base_url", c.TMDB.BaseURL)

	if c.Email.SMTPPort < 1 || c.Email.SMTPPort > 65535 {
		errs = append(errs, fmt.Sprintf("email.smtp_port: must be between 1 and 65535, got %d", c.Email.SMTPPort))
	}

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		errs = append(errs, "log: rotation limits must not be negative")
	}

	return errs
}

func appendURLError(errs []string, field, raw string) []string {
	if raw == "" {
		return errs
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return append(errs, fmt.Sprintf("%s: must be an http(s) URL, got %q", field, raw))
	}
	return errs
}
