// SPDX-License-Identifier: MPL-2.0

package listing

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"makehelp/pkg/makefile"
)

const (
	// SortLine orders entries by their whole raw line, byte-wise. A name that
	// is a prefix of another therefore sorts by the character following it
	// ("build:" after "build-all:", since '-' < ':').
	SortLine SortMode = "line"
	// SortName orders entries by name only, keeping input order for equal
	// names.
	SortName SortMode = "name"
)

// ErrInvalidSortMode is the sentinel error wrapped by InvalidSortModeError.
var ErrInvalidSortMode = errors.New("invalid sort mode")

type (
	// SortMode selects the listing order.
	SortMode string

	// InvalidSortModeError is returned when a SortMode value is not recognized.
	InvalidSortModeError struct {
		Value SortMode
	}
)

// Sort returns a sorted copy of entries. An empty mode means SortLine.
func Sort(entries []makefile.Entry, mode SortMode) []makefile.Entry {
	sorted := slices.Clone(entries)
	switch mode {
	case SortName:
		slices.SortStableFunc(sorted, func(a, b makefile.Entry) int {
			return strings.Compare(string(a.Name), string(b.Name))
		})
	default:
		slices.SortStableFunc(sorted, func(a, b makefile.Entry) int {
			return strings.Compare(a.Line, b.Line)
		})
	}
	return sorted
}

// String returns the string representation of the SortMode.
func (m SortMode) String() string { return string(m) }

// IsValid returns whether the SortMode is one of the defined modes.
func (m SortMode) IsValid() (bool, []error) {
	switch m {
	case SortLine, SortName:
		return true, nil
	default:
		return false, []error{&InvalidSortModeError{Value: m}}
	}
}

// Error implements the error interface for InvalidSortModeError.
func (e *InvalidSortModeError) Error() string {
	return fmt.Sprintf("invalid sort mode %q (valid: line, name)", e.Value)
}

// Unwrap returns ErrInvalidSortMode for errors.Is() compatibility.
func (e *InvalidSortModeError) Unwrap() error { return ErrInvalidSortMode }
