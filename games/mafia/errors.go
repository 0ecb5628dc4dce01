/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package mafia

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRoleNotFound is returned when a role id is not in the registry.
	ErrRoleNotFound = errors.New("role not found")

	// ErrInvalidConfiguration is matched by *InvalidConfigurationError.
	ErrInvalidConfiguration = errors.New("invalid role configuration")

	// ErrInput indicates player names that do not fit the configuration.
	ErrInput = errors.New("invalid player input")

	// ErrConfirmationRequired is returned by Session.Allocate when the
	// configuration carries warnings that were not confirmed.
	ErrConfirmationRequired = errors.New("configuration has warnings that must be confirmed")
)

// Reveal rejections. None of these change session state.
var (
	ErrNoAssignment     = errors.New("no assignment in progress")
	ErrOutOfOrderReveal = errors.New("player is not next in reveal order")
	ErrAlreadyOpen      = errors.New("a reveal dialog is already open")
	ErrAlreadyRevealed  = errors.New("role already revealed")
	ErrNotOpen          = errors.New("no reveal dialog is open")
	ErrNotRevealed      = errors.New("role has not been revealed yet")
	ErrBusy             = errors.New("another transition is in flight")
)

// InvalidConfigurationError carries the ERROR-severity results that blocked
// an assignment.
type InvalidConfigurationError struct {
	Errors []ValidationResult
}

func (e *InvalidConfigurationError) Error() string {
	if len(e.Errors) == 0 {
		return ErrInvalidConfiguration.Error()
	}

	msgs := make([]string, 0, len(e.Errors))
	for _, r := range e.Errors {
		msgs = append(msgs, r.Message)
	}

	return fmt.Sprintf("%s: %s", ErrInvalidConfiguration, strings.Join(msgs, "; "))
}

// Is lets errors.Is match ErrInvalidConfiguration.
func (e *InvalidConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}
