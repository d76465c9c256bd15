// SPDX-License-Identifier: MPL-2.0

package makefile

import (
	"testing"

	"makehelp/pkg/types"
)

func TestParseLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		line     string
		wantOK   bool
		wantName types.CommandName
		wantDesc types.DescriptionText
	}{
		{"documented target", "build: ## main build fn", true, "build", "main build fn"},
		{"prerequisites before marker", "test: build lint ## run tests", true, "test", "run tests"},
		{"hyphen underscore digit", "lint_go-2: ## lint", true, "lint_go-2", "lint"},
		{"marker directly after colon", "run:## run binary", true, "run", "run binary"},
		{"empty description", "fmt: ## ", true, "fmt", ""},
		{"last marker wins", "doc: ## a ## b", true, "doc", "b"},
		{"double colon rule", "clean:: ## remove artifacts", true, "clean", "remove artifacts"},
		{"description keeps inner spaces", "kill: ##   stop   it", true, "kill", "  stop   it"},
		{"no marker", "buildall:", false, "", ""},
		{"marker without space", "build: ##main", false, "", ""},
		{"single hash", "build: # main", false, "", ""},
		{"leading space", " build: ## main", false, "", ""},
		{"recipe line", "\t@echo build: ## main", false, "", ""},
		{"dot in name", "test.unit: ## unit", false, "", ""},
		{"variable assignment", "GO := go ## compiler", false, "", ""},
		{"no colon", "build ## main", false, "", ""},
		{"empty line", "", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, ok := ParseLine(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("ParseLine(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if e.Name != tt.wantName {
				t.Errorf("ParseLine(%q).Name = %q, want %q", tt.line, e.Name, tt.wantName)
			}
			if e.Description != tt.wantDesc {
				t.Errorf("ParseLine(%q).Description = %q, want %q", tt.line, e.Description, tt.wantDesc)
			}
			if e.Line != tt.line {
				t.Errorf("ParseLine(%q).Line = %q, want the raw line", tt.line, e.Line)
			}
		})
	}
}

func TestNewEntry_RoundTripsThroughParseLine(t *testing.T) {
	t.Parallel()

	e := NewEntry("coverage", "open coverage report")
	parsed, ok := ParseLine(e.Line)
	if !ok {
		t.Fatalf("synthesized line %q does not qualify", e.Line)
	}
	if parsed != e {
		t.Errorf("ParseLine(NewEntry(...).Line) = %+v, want %+v", parsed, e)
	}
}
