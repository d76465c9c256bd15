// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
)

// ErrInvalidCommandName is the sentinel error wrapped by InvalidCommandNameError.
var ErrInvalidCommandName = errors.New("invalid command name")

type (
	// CommandName is the identifier of a documented command. It consists of
	// one or more ASCII letters, digits, underscores or hyphens.
	CommandName string

	// InvalidCommandNameError is returned when a CommandName is empty or
	// contains a character outside [A-Za-z0-9_-].
	InvalidCommandNameError struct {
		Value CommandName
	}
)

// String returns the string representation of the CommandName.
func (n CommandName) String() string { return string(n) }

// IsValid returns whether the CommandName is valid.
func (n CommandName) IsValid() (bool, []error) {
	if n == "" {
		return false, []error{&InvalidCommandNameError{Value: n}}
	}
	for i := 0; i < len(n); i++ {
		if !IsCommandNameByte(n[i]) {
			return false, []error{&InvalidCommandNameError{Value: n}}
		}
	}
	return true, nil
}

// IsCommandNameByte reports whether c may appear in a CommandName.
func IsCommandNameByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '-':
		return true
	}
	return false
}

// Error implements the error interface for InvalidCommandNameError.
func (e *InvalidCommandNameError) Error() string {
	return fmt.Sprintf("invalid command name %q: must be one or more of [A-Za-z0-9_-]", e.Value)
}

// Unwrap returns ErrInvalidCommandName for errors.Is() compatibility.
func (e *InvalidCommandNameError) Unwrap() error { return ErrInvalidCommandName }
