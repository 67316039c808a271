package services

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
)

var (
	// ErrNotFound is returned when a lookup by id or key matches no row.
	ErrNotFound = errors.New("not found")
	// ErrUsernameTaken is returned when signing up with an existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials covers both an unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// recordEvent writes an activity event; a failure is logged but never fails the caller.
func recordEvent(events EventServiceProvider, eventType, level, message string) {
	if events == nil {
		return
	}
	if err := events.CreateEvent(eventType, level, message); err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Msg("Failed to record event")
	}
}
