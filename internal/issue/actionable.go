// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

type (
	// ActionableError is a user-facing error: what makehelp was doing, on
	// which file, why it failed and what the user can try next.
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("load registry").
	//		WithResource("./commands.cue").
	//		WithSuggestion("Run 'makehelp export' to regenerate it").
	//		WithIssue(issue.RegistryParseErrorId).
	//		Wrap(cause).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase such as "read definition file".
		Operation string
		// Resource is the file or path involved, if any.
		Resource string
		// Suggestions are printed as a bullet list under the message.
		Suggestions []string
		// Cause is the underlying error.
		Cause error
		// Issue selects the guide printed after the error. Zero means none.
		Issue Id
	}

	// ErrorContext accumulates the fields of an ActionableError. A context
	// may be kept and built several times with different causes.
	ErrorContext struct {
		draft ActionableError
	}
)

// NewErrorContext returns an empty builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// WithOperation sets the operation that failed.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.draft.Operation = op
	return c
}

// WithResource sets the file or path involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.draft.Resource = res
	return c
}

// WithSuggestion appends suggestions.
func (c *ErrorContext) WithSuggestion(sugs ...string) *ErrorContext {
	c.draft.Suggestions = append(c.draft.Suggestions, sugs...)
	return c
}

// WithIssue attaches the guide rendered below the error in CLI output.
func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.draft.Issue = id
	return c
}

// Wrap sets the cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.draft.Cause = err
	return c
}

// Build returns the error, or nil when no operation was set.
func (c *ErrorContext) Build() *ActionableError {
	if c.draft.Operation == "" {
		return nil
	}
	ae := c.draft
	ae.Suggestions = slices.Clone(c.draft.Suggestions)
	return &ae
}

// BuildError is Build returning an error interface, so that a missing
// operation yields a nil interface rather than a typed nil.
func (c *ErrorContext) BuildError() error {
	if ae := c.Build(); ae != nil {
		return ae
	}
	return nil
}

// Error returns "failed to <operation>[: <resource>][: <cause>]".
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the cause.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// HasSuggestions reports whether any suggestion is attached.
func (e *ActionableError) HasSuggestions() bool {
	return len(e.Suggestions) > 0
}

// Guide returns the attached issue, or nil.
func (e *ActionableError) Guide() *Issue {
	if e.Issue == 0 {
		return nil
	}
	return Get(e.Issue)
}

// Format renders the message followed by the suggestions as bullets. In
// verbose mode the numbered chain of causes follows.
func (e *ActionableError) Format(verbose bool) string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if e.HasSuggestions() {
		sb.WriteByte('\n')
		for _, s := range e.Suggestions {
			sb.WriteString("\n  • ")
			sb.WriteString(s)
		}
	}

	if verbose && e.Cause != nil {
		sb.WriteString("\n\nError chain:")
		for i, err := 1, e.Cause; err != nil; i, err = i+1, errors.Unwrap(err) {
			fmt.Fprintf(&sb, "\n  %d. %s", i, err)
		}
	}
	return sb.String()
}
