// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"makehelp/pkg/makefile"
	"makehelp/pkg/types"
)

// ErrDuplicateCommand is the sentinel error wrapped by DuplicateCommandError.
var ErrDuplicateCommand = errors.New("duplicate command")

type (
	// Registry maps command names to descriptions. The zero value is not
	// usable; call New.
	Registry struct {
		commands map[types.CommandName]types.DescriptionText
	}

	// DuplicateCommandError is returned when a name is registered twice.
	DuplicateCommandError struct {
		Name types.CommandName
	}
)

// New returns an empty registry.
func New() *Registry {
	return &Registry{commands: make(map[types.CommandName]types.DescriptionText)}
}

// FromEntries builds a registry from scanned entries. A definition file may
// document the same name twice; the first description is kept and the
// repeated names are returned so callers can report them.
func FromEntries(entries []makefile.Entry) (*Registry, []types.CommandName, error) {
	r := New()
	var dropped []types.CommandName
	for _, e := range entries {
		err := r.Register(e.Name, e.Description)
		if errors.Is(err, ErrDuplicateCommand) {
			dropped = append(dropped, e.Name)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
	}
	return r, dropped, nil
}

// Register adds a command. The name must be a valid CommandName and the
// description a single line.
func (r *Registry) Register(name types.CommandName, desc types.DescriptionText) error {
	if valid, errs := name.IsValid(); !valid {
		return errors.Join(errs...)
	}
	if valid, errs := desc.IsValid(); !valid {
		return fmt.Errorf("command %q: %w", name, errors.Join(errs...))
	}
	if _, exists := r.commands[name]; exists {
		return &DuplicateCommandError{Name: name}
	}
	r.commands[name] = desc
	return nil
}

// Lookup returns the description registered for name.
func (r *Registry) Lookup(name types.CommandName) (types.DescriptionText, bool) {
	desc, ok := r.commands[name]
	return desc, ok
}

// Len returns the number of registered commands.
func (r *Registry) Len() int { return len(r.commands) }

// Names returns the registered names in ascending order.
func (r *Registry) Names() []types.CommandName {
	return slices.Sorted(maps.Keys(r.commands))
}

// Entries returns one entry per command, ordered by name. Each entry carries
// a synthesized definition line, so line and name ordering agree.
func (r *Registry) Entries(context.Context) ([]makefile.Entry, error) {
	names := r.Names()
	entries := make([]makefile.Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, makefile.NewEntry(name, r.commands[name]))
	}
	return entries, nil
}

// Error implements the error interface for DuplicateCommandError.
func (e *DuplicateCommandError) Error() string {
	return fmt.Sprintf("command %q is already registered", e.Name)
}

// Unwrap returns ErrDuplicateCommand for errors.Is() compatibility.
func (e *DuplicateCommandError) Unwrap() error { return ErrDuplicateCommand }
