// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"makehelp/pkg/listing"
)

// DefaultWidth is the default name column width.
const DefaultWidth = ColumnWidth(listing.DefaultWidth)

var (
	// ErrInvalidColumnWidth is returned when a ColumnWidth is below 1.
	ErrInvalidColumnWidth = errors.New("invalid column width")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColumnWidth is the minimum width of the name column.
	ColumnWidth int

	// InvalidColumnWidthError is returned when a ColumnWidth is below 1.
	InvalidColumnWidthError struct {
		Value ColumnWidth
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sections.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// UI configures output decoration and diagnostics.
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Listing configures what is listed and how.
		Listing ListingConfig `json:"listing" mapstructure:"listing"`
	}

	// UIConfig configures output decoration and diagnostics.
	UIConfig struct {
		// Color selects when names are colorized
		Color listing.ColorMode `json:"color" mapstructure:"color"`
		// Verbose enables debug logging on stderr
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// ListingConfig configures the listing.
	ListingConfig struct {
		// Width is the minimum name column width
		Width ColumnWidth `json:"width" mapstructure:"width"`
		// Sort selects the listing order
		Sort listing.SortMode `json:"sort" mapstructure:"sort"`
		// Files are the definition files to scan. Empty means the file make
		// would pick in the working directory.
		Files []string `json:"files" mapstructure:"files"`
		// Registry, when set, lists the commands of a registry file instead
		// of scanning definition files.
		Registry string `json:"registry" mapstructure:"registry"`
		// FollowIncludes scans the files named by include directives too.
		FollowIncludes bool `json:"follow_includes" mapstructure:"follow_includes"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Color:   listing.ColorAuto,
			Verbose: false,
		},
		Listing: ListingConfig{
			Width:          DefaultWidth,
			Sort:           listing.SortLine,
			Files:          []string{},
			Registry:       "",
			FollowIncludes: true,
		},
	}
}

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.UI.Color.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Listing.Width.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Listing.Sort.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// IsValid returns whether the ColumnWidth is at least 1.
func (w ColumnWidth) IsValid() (bool, []error) {
	if w < 1 {
		return false, []error{&InvalidColumnWidthError{Value: w}}
	}
	return true, nil
}

// Error implements the error interface for InvalidColumnWidthError.
func (e *InvalidColumnWidthError) Error() string {
	return fmt.Sprintf("invalid column width %d (must be at least 1)", e.Value)
}

// Unwrap returns ErrInvalidColumnWidth for errors.Is() compatibility.
func (e *InvalidColumnWidthError) Unwrap() error { return ErrInvalidColumnWidth }
