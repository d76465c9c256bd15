// SPDX-License-Identifier: MPL-2.0

package listing

import (
	"fmt"
	"io"
	"strings"

	"makehelp/pkg/makefile"
)

// DefaultWidth is the minimum name column width.
const DefaultWidth = 20

// Options controls rendering. The zero value renders plain text sorted by
// line with the default width.
type Options struct {
	// Width is the minimum name column width. Zero or negative means
	// DefaultWidth.
	Width int
	// Sort selects the ordering.
	Sort SortMode
	// Formatter decorates names. Nil means Plain.
	Formatter Formatter
}

// Render writes the listing of entries to w in a single write. An empty
// entry set writes nothing.
func Render(w io.Writer, entries []makefile.Entry, opts Options) error {
	if len(entries) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, Format(entries, opts)); err != nil {
		return fmt.Errorf("write listing: %w", err)
	}
	return nil
}

// Format returns the listing of entries as a string.
func Format(entries []makefile.Entry, opts Options) string {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	f := opts.Formatter
	if f == nil {
		f = Plain{}
	}

	var sb strings.Builder
	for _, e := range Sort(entries, opts.Sort) {
		sb.WriteString(f.FormatName(PadName(string(e.Name), width)))
		sb.WriteString(string(e.Description))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// PadName pads name with spaces to width columns. A name at least width
// columns wide is followed by exactly one space.
func PadName(name string, width int) string {
	if n := len(name); n < width {
		return name + strings.Repeat(" ", width-n)
	}
	return name + " "
}
