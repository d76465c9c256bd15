// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// FormatCUE is a CUE document validated against the #Registry schema.
	FormatCUE Format = "cue"
	// FormatTOML is a TOML document with a [[commands]] array of tables.
	FormatTOML Format = "toml"
	// FormatYAML is a YAML document.
	FormatYAML Format = "yaml"
	// FormatJSON is a JSON document.
	FormatJSON Format = "json"
)

var (
	// ErrUnsupportedFormat is the sentinel error wrapped by UnsupportedFormatError.
	ErrUnsupportedFormat = errors.New("unsupported registry format")
	// ErrDecode is the sentinel error wrapped by DecodeError.
	ErrDecode = errors.New("cannot decode registry")
)

type (
	// Format identifies a registry file encoding.
	Format string

	// UnsupportedFormatError is returned for unknown formats or file extensions.
	UnsupportedFormatError struct {
		Value string
	}

	// DecodeError is returned when a registry file is syntactically or
	// semantically invalid.
	DecodeError struct {
		Path   string
		Format Format
		Err    error
	}
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatCUE, FormatTOML, FormatYAML, FormatJSON}
}

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue":
		return FormatCUE, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", &UnsupportedFormatError{Value: ext}
	}
}

// String returns the string representation of the Format.
func (f Format) String() string { return string(f) }

// IsValid returns whether the Format is supported.
func (f Format) IsValid() (bool, []error) {
	switch f {
	case FormatCUE, FormatTOML, FormatYAML, FormatJSON:
		return true, nil
	default:
		return false, []error{&UnsupportedFormatError{Value: string(f)}}
	}
}

// Error implements the error interface for UnsupportedFormatError.
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported registry format %q (valid: cue, toml, yaml, json)", e.Value)
}

// Unwrap returns ErrUnsupportedFormat for errors.Is() compatibility.
func (e *UnsupportedFormatError) Unwrap() error { return ErrUnsupportedFormat }

// Error implements the error interface for DecodeError.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid %s registry %s: %v", e.Format, e.Path, e.Err)
}

// Unwrap returns both ErrDecode and the underlying cause.
func (e *DecodeError) Unwrap() []error { return []error{ErrDecode, e.Err} }
