// SPDX-License-Identifier: MPL-2.0

package makefile

import (
	"regexp"
	"strings"

	"makehelp/pkg/types"
)

// Marker is the documentation marker that opts a command into the listing.
const Marker = "## "

// linePattern matches a documented command line. The greedy ".*" makes the
// description start after the last marker on the line.
var linePattern = regexp.MustCompile(`^([A-Za-z0-9_-]+):.*## (.*)$`)

// Entry is one documented command.
type Entry struct {
	// Name is the text before the first colon.
	Name types.CommandName
	// Description is the text after the last "## " marker.
	Description types.DescriptionText
	// Line is the raw qualifying line. Listings sort on it by default.
	Line string
}

// ParseLine returns the entry documented by line, or false when the line does
// not qualify.
func ParseLine(line string) (Entry, bool) {
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, false
	}
	return Entry{
		Name:        types.CommandName(m[1]),
		Description: types.DescriptionText(m[2]),
		Line:        line,
	}, true
}

// NewEntry builds an entry for a command defined outside a definition file.
// The synthesized line has the same shape a definition file would carry, so
// line ordering and name ordering agree for such entries.
func NewEntry(name types.CommandName, desc types.DescriptionText) Entry {
	var sb strings.Builder
	sb.WriteString(string(name))
	sb.WriteString(": ")
	sb.WriteString(Marker)
	sb.WriteString(string(desc))
	return Entry{Name: name, Description: desc, Line: sb.String()}
}
