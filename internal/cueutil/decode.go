// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DefaultMaxFileSize bounds documents read into memory.
const DefaultMaxFileSize = 1 << 20

// ErrFileTooLarge is the sentinel error wrapped by FileTooLargeError.
var ErrFileTooLarge = errors.New("file too large")

type (
	// FileTooLargeError is returned when a document exceeds the size limit.
	FileTooLargeError struct {
		Filename string
		Size     int
		Limit    int
	}

	options struct {
		filename    string
		concrete    bool
		maxFileSize int
	}

	// Option configures Decode.
	Option func(*options)
)

// WithFilename names the document in positions and error messages.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// WithConcrete controls whether every value must be concrete after
// unification. Defaults to true.
func WithConcrete(concrete bool) Option {
	return func(o *options) { o.concrete = concrete }
}

// WithMaxFileSize overrides DefaultMaxFileSize.
func WithMaxFileSize(size int) Option {
	return func(o *options) { o.maxFileSize = size }
}

// Decode unifies data with the schema definition named by definition (for
// example "#Config") and decodes the result into a T.
func Decode[T any](schema string, data []byte, definition string, opts ...Option) (T, error) {
	o := options{filename: "<input>", concrete: true, maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(&o)
	}

	var zero T
	if len(data) > o.maxFileSize {
		return zero, &FileTooLargeError{Filename: o.filename, Size: len(data), Limit: o.maxFileSize}
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return zero, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}
	root := schemaValue.LookupPath(cue.ParsePath(definition))
	if !root.Exists() {
		return zero, fmt.Errorf("internal error: schema definition %s not found", definition)
	}

	userValue := ctx.CompileBytes(data, cue.Filename(o.filename))
	if userValue.Err() != nil {
		return zero, FormatError(userValue.Err(), o.filename)
	}

	unified := root.Unify(userValue)
	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return zero, FormatError(err, o.filename)
	}

	var out T
	if err := unified.Decode(&out); err != nil {
		return zero, FormatError(err, o.filename)
	}
	return out, nil
}

// Error implements the error interface for FileTooLargeError.
func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("%s: file size %d bytes exceeds maximum %d bytes", e.Filename, e.Size, e.Limit)
}

// Unwrap returns ErrFileTooLarge for errors.Is() compatibility.
func (e *FileTooLargeError) Unwrap() error { return ErrFileTooLarge }
