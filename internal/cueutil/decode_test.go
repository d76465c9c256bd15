// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

const testSchema = `
#Doc: {
	name:  =~"^[a-z]+$"
	count?: int & >=1
	tags?: [...string]
}
`

type doc struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags"`
}

func TestDecode(t *testing.T) {
	t.Parallel()

	got, err := Decode[doc](testSchema, []byte(`name: "build", count: 2, tags: ["a", "b"]`), "#Doc")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.Name != "build" || got.Count != 2 || len(got.Tags) != 2 {
		t.Errorf("Decode() = %+v", got)
	}
}

func TestDecode_IntoMap(t *testing.T) {
	t.Parallel()

	got, err := Decode[map[string]any](testSchema, []byte(`name: "x"`), "#Doc", WithConcrete(false))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got["name"] != "x" {
		t.Errorf("Decode()[name] = %v, want x", got["name"])
	}
	if _, ok := got["count"]; ok {
		t.Error("optional field absent from input should be absent from the map")
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     string
		contains []string
	}{
		{"syntax", `name: "x`, []string{"doc.cue:"}},
		{"pattern", `name: "Has Caps"`, []string{"doc.cue: ", "name:"}},
		{"bound", `name: "x", count: 0`, []string{"count:"}},
		{"closed", `name: "x", extra: true`, []string{"extra"}},
		{"list element", `name: "x", tags: ["a", 1]`, []string{"tags[1]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decode[doc](testSchema, []byte(tt.data), "#Doc", WithFilename("doc.cue"))
			if err == nil {
				t.Fatal("Decode() error = nil, want error")
			}
			for _, want := range tt.contains {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q does not contain %q", err, want)
				}
			}
		})
	}
}

func TestDecode_FileTooLarge(t *testing.T) {
	t.Parallel()

	_, err := Decode[doc](testSchema, []byte(`name: "abcdef"`), "#Doc", WithMaxFileSize(4))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("Decode() error = %v, want ErrFileTooLarge", err)
	}
}

func TestDecode_UnknownDefinition(t *testing.T) {
	t.Parallel()

	if _, err := Decode[doc](testSchema, []byte(`name: "x"`), "#Missing"); err == nil {
		t.Error("Decode() error = nil, want error")
	}
}

func TestJSONPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"listing"}, "listing"},
		{[]string{"listing", "width"}, "listing.width"},
		{[]string{"commands", "0", "name"}, "commands[0].name"},
		{[]string{"0"}, "0"},
	}

	for _, tt := range tests {
		if got := jsonPath(tt.path); got != tt.want {
			t.Errorf("jsonPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
