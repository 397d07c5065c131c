package library

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound indicates the requested show or movie isn't tracked.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates the show or movie is already tracked.
	ErrDuplicate = errors.New("already tracked")

	// ErrInvalid indicates a rejected field value.
	ErrInvalid = errors.New("invalid value")
)

// mapSQLiteError converts SQLite constraint failures to the package errors.
// modernc.org/sqlite only exposes them through the message text.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "PRIMARY KEY constraint failed") {
		return ErrDuplicate
	}
	if strings.Contains(msg, "CHECK constraint failed") {
		return ErrInvalid
	}
	return err
}
