// SPDX-License-Identifier: MPL-2.0

package makefile

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrFileAccess is the sentinel error wrapped by FileAccessError.
var ErrFileAccess = errors.New("definition file not accessible")

// FileAccessError is returned when a definition file cannot be opened or
// read. No partial listing accompanies it.
type FileAccessError struct {
	Path string
	Err  error
}

// Error implements the error interface for FileAccessError.
func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot read definition file %s: %v", e.Path, e.Err)
}

// Unwrap returns both the sentinel and the underlying cause, so errors.Is
// matches ErrFileAccess as well as fs.ErrNotExist or fs.ErrPermission.
func (e *FileAccessError) Unwrap() []error { return []error{ErrFileAccess, e.Err} }

// NotExist reports whether the file is missing.
func (e *FileAccessError) NotExist() bool { return errors.Is(e.Err, fs.ErrNotExist) }

// Permission reports whether the file exists but may not be read.
func (e *FileAccessError) Permission() bool { return errors.Is(e.Err, fs.ErrPermission) }
