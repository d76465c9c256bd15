// SPDX-License-Identifier: MPL-2.0

package listing

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	// ColorAuto colors the name only when writing to a terminal and NO_COLOR
	// is unset or empty.
	ColorAuto ColorMode = "auto"
	// ColorAlways always emits escape sequences.
	ColorAlways ColorMode = "always"
	// ColorNever never emits escape sequences.
	ColorNever ColorMode = "never"

	// nameColor is the ANSI foreground color of command names (cyan).
	nameColor = lipgloss.Color("6")
)

// ErrInvalidColorMode is the sentinel error wrapped by InvalidColorModeError.
var ErrInvalidColorMode = errors.New("invalid color mode")

// isTerminal is swapped in tests.
var isTerminal = func(fd uintptr) bool { return term.IsTerminal(int(fd)) }

type (
	// Formatter decorates the padded command name of a listing line.
	Formatter interface {
		FormatName(padded string) string
	}

	// Plain leaves names undecorated.
	Plain struct{}

	// ANSIColor brackets names with an ANSI foreground color sequence and a
	// reset sequence.
	ANSIColor struct {
		style lipgloss.Style
	}

	// ColorMode selects the formatter.
	ColorMode string

	// InvalidColorModeError is returned when a ColorMode value is not recognized.
	InvalidColorModeError struct {
		Value ColorMode
	}
)

// FormatName returns padded unchanged.
func (Plain) FormatName(padded string) string { return padded }

// NewANSIColor returns a formatter that always emits ANSI escapes,
// independent of the terminal the process is attached to.
func NewANSIColor() *ANSIColor {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)
	return &ANSIColor{style: r.NewStyle().Foreground(nameColor)}
}

// FormatName wraps padded in the name color.
func (f *ANSIColor) FormatName(padded string) string {
	return f.style.Render(padded)
}

// SelectFormatter picks the formatter for out once, at startup.
func SelectFormatter(mode ColorMode, out io.Writer) Formatter {
	switch mode {
	case ColorAlways:
		return NewANSIColor()
	case ColorNever:
		return Plain{}
	}
	// An empty NO_COLOR does not disable color.
	if os.Getenv("NO_COLOR") != "" {
		return Plain{}
	}
	if f, ok := out.(*os.File); ok && isTerminal(f.Fd()) {
		return NewANSIColor()
	}
	return Plain{}
}

// String returns the string representation of the ColorMode.
func (m ColorMode) String() string { return string(m) }

// IsValid returns whether the ColorMode is one of the defined modes.
func (m ColorMode) IsValid() (bool, []error) {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true, nil
	default:
		return false, []error{&InvalidColorModeError{Value: m}}
	}
}

// Error implements the error interface for InvalidColorModeError.
func (e *InvalidColorModeError) Error() string {
	return fmt.Sprintf("invalid color mode %q (valid: auto, always, never)", e.Value)
}

// Unwrap returns ErrInvalidColorMode for errors.Is() compatibility.
func (e *InvalidColorModeError) Unwrap() error { return ErrInvalidColorMode }
