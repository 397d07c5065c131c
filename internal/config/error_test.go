package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	const path = "/home/me/.config/tvtrack/config.toml"

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "nothing wrong",
			err:  &Error{Path: path},
			want: "",
		},
		{
			name: "missing variables",
			err:  &Error{Path: path, Missing: []string{"TMDB_API_KEY", "EMAIL_PASSWORD: app password"}},
			want: "config " + path + ":\nmissing environment variables: TMDB_API_KEY, EMAIL_PASSWORD: app password",
		},
		{
			name: "validation only, no path",
			err:  &Error{Errors: []string{"storage.dir: required", "log.level: bad"}},
			want: "validation failed:\n  - storage.dir: required\n  - log.level: bad",
		},
		{
			name: "both",
			err:  &Error{Path: path, Missing: []string{"X"}, Errors: []string{"email.smtp_port: out of range"}},
			want: "config " + path + ":\nmissing environment variables: X\nvalidation failed:\n  - email.smtp_port: out of range",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}
