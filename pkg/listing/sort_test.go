// SPDX-License-Identifier: MPL-2.0

package listing

import (
	"errors"
	"testing"

	"makehelp/pkg/makefile"

	"github.com/google/go-cmp/cmp"
)

func entryNames(entries []makefile.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, string(e.Name))
	}
	return out
}

func TestSort_WholeLineOrder(t *testing.T) {
	t.Parallel()

	entries := mustScan(t, "build: ## b\nbuild-all: ## ba\nbuild_x: ## bx\nBuild: ## upper\n")

	// '-' (0x2D) < ':' (0x3A) < '_' (0x5F), uppercase before lowercase.
	want := []string{"Build", "build-all", "build", "build_x"}
	if diff := cmp.Diff(want, entryNames(Sort(entries, SortLine))); diff != "" {
		t.Errorf("Sort(line) mismatch (-want +got):\n%s", diff)
	}
}

func TestSort_NameOrder(t *testing.T) {
	t.Parallel()

	entries := mustScan(t, "build: ## b\nbuild-all: ## ba\nbuild_x: ## bx\n")

	want := []string{"build", "build-all", "build_x"}
	if diff := cmp.Diff(want, entryNames(Sort(entries, SortName))); diff != "" {
		t.Errorf("Sort(name) mismatch (-want +got):\n%s", diff)
	}
}

func TestSort_LineOrderUsesPrerequisites(t *testing.T) {
	t.Parallel()

	// Same name: the rest of the line decides.
	entries := mustScan(t, "dup: z ## second\ndup: a ## first\n")
	got := Sort(entries, SortLine)
	if got[0].Description != "first" || got[1].Description != "second" {
		t.Errorf("Sort(line) = %+v, want prerequisites to break the tie", got)
	}

	byName := Sort(entries, SortName)
	if byName[0].Description != "second" {
		t.Errorf("Sort(name) = %+v, want input order kept for equal names", byName)
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	entries := mustScan(t, "b: ## 2\na: ## 1\n")
	_ = Sort(entries, SortLine)
	if entries[0].Name != "b" {
		t.Error("Sort() reordered its input")
	}
}

func TestSortMode_IsValid(t *testing.T) {
	t.Parallel()

	for _, m := range []SortMode{SortLine, SortName} {
		if ok, errs := m.IsValid(); !ok {
			t.Errorf("SortMode(%q).IsValid() = false, %v", m, errs)
		}
	}
	ok, errs := SortMode("random").IsValid()
	if ok || len(errs) != 1 || !errors.Is(errs[0], ErrInvalidSortMode) {
		t.Errorf("SortMode(random).IsValid() = %v, %v; want ErrInvalidSortMode", ok, errs)
	}
}
