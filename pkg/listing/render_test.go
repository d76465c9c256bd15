// SPDX-License-Identifier: MPL-2.0

package listing

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"makehelp/pkg/makefile"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"
)

func mustScan(t *testing.T, text string) []makefile.Entry {
	t.Helper()
	entries, err := makefile.Scan(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	return entries
}

func TestFormat_EndToEnd(t *testing.T) {
	t.Parallel()

	entries := mustScan(t, "test: ## run tests\nbuild: ## main build fn\nrun: ## run binary\n")

	want := "" +
		"build               main build fn\n" +
		"run                 run binary\n" +
		"test                run tests\n"

	if diff := cmp.Diff(want, Format(entries, Options{})); diff != "" {
		t.Errorf("Format() mismatch (-want +got):\n%s", diff)
	}

	colored := Format(entries, Options{Formatter: NewANSIColor()})
	if diff := cmp.Diff(want, ansi.Strip(colored)); diff != "" {
		t.Errorf("Format() with color, stripped, mismatch (-want +got):\n%s", diff)
	}
}

func TestFormat_ANSIBracketsPaddedName(t *testing.T) {
	t.Parallel()

	got := Format(mustScan(t, "build: ## main build fn\n"), Options{Formatter: NewANSIColor()})
	want := "\x1b[36mbuild               \x1b[0mmain build fn\n"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormat_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Render(&buf, nil, Options{Formatter: NewANSIColor()}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Render() wrote %q for no entries, want nothing", buf.String())
	}
}

func TestFormat_Idempotent(t *testing.T) {
	t.Parallel()

	entries := mustScan(t, "b: ## 2\na: ## 1\nc: ## 3\n")
	opts := Options{Formatter: NewANSIColor()}
	if first, second := Format(entries, opts), Format(entries, opts); first != second {
		t.Errorf("Format() not idempotent:\n%q\n%q", first, second)
	}
}

func TestPadName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		width int
		want  string
	}{
		{"a", 20, "a" + strings.Repeat(" ", 19)},
		{strings.Repeat("n", 19), 20, strings.Repeat("n", 19) + " "},
		{strings.Repeat("n", 20), 20, strings.Repeat("n", 20) + " "},
		{strings.Repeat("n", 25), 20, strings.Repeat("n", 25) + " "},
		{"ab", 4, "ab  "},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if got := PadName(tt.name, tt.width); got != tt.want {
				t.Errorf("PadName(%q, %d) = %q, want %q", tt.name, tt.width, got, tt.want)
			}
		})
	}
}

func TestFormat_ColumnAlignment(t *testing.T) {
	t.Parallel()

	entries := mustScan(t, strings.Join([]string{
		"a: ## short",
		"exactly_twenty_chars: ## boundary",
		"this-name-is-longer-than-twenty: ## long",
		"nineteen_characters: ## one less",
	}, "\n"))

	for _, line := range strings.Split(strings.TrimSuffix(Format(entries, Options{}), "\n"), "\n") {
		name, rest, _ := strings.Cut(line, " ")
		desc := strings.TrimLeft(rest, " ")
		switch {
		case len(name) < DefaultWidth:
			if col := strings.Index(line, desc); col != DefaultWidth {
				t.Errorf("%q: description starts at column %d, want %d", line, col, DefaultWidth)
			}
		default:
			if want := name + " " + desc; line != want {
				t.Errorf("line = %q, want exactly one separating space: %q", line, want)
			}
		}
	}
}

func TestFormat_CustomWidth(t *testing.T) {
	t.Parallel()

	got := Format(mustScan(t, "run: ## go\n"), Options{Width: 6})
	if want := "run   go\n"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestRender_WriteError(t *testing.T) {
	t.Parallel()

	err := Render(failingWriter{}, mustScan(t, "a: ## b\n"), Options{})
	if err == nil || !strings.Contains(err.Error(), "closed pipe") {
		t.Errorf("Render() error = %v, want wrapped write error", err)
	}
}
