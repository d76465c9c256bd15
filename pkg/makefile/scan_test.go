// SPDX-License-Identifier: MPL-2.0

package makefile

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleMakefile = `.PHONY: build run test

BINARY := app

build: ## main build fn
	go build -o $(BINARY) .

buildall:
	go build ./...

run: build ## run binary
	./$(BINARY)

test: ## run tests
	go test ./...
`

func TestScan(t *testing.T) {
	t.Parallel()

	entries, err := Scan(strings.NewReader(sampleMakefile))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	got := names(entries)
	want := []string{"build", "run", "test"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Scan() names mismatch (-want +got):\n%s", diff)
	}
}

func TestScan_CRLF(t *testing.T) {
	t.Parallel()

	entries, err := Scan(strings.NewReader("build: ## main build fn\r\nrun: ## run binary\r\n"))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Scan() returned %d entries, want 2", len(entries))
	}
	if entries[0].Description != "main build fn" {
		t.Errorf("description = %q, want carriage return stripped", entries[0].Description)
	}
}

func TestScan_NoTrailingNewline(t *testing.T) {
	t.Parallel()

	entries, err := Scan(strings.NewReader("build: ## main build fn\nrun: ## run binary"))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if diff := cmp.Diff([]string{"build", "run"}, names(entries)); diff != "" {
		t.Errorf("Scan() names mismatch (-want +got):\n%s", diff)
	}
}

func TestScanFile_LongLine(t *testing.T) {
	t.Parallel()

	// Generated variable lines can run past any fixed buffer size.
	long := "SRCS := " + strings.Repeat("src/generated/file.go ", 60_000)
	path := filepath.Join(t.TempDir(), "Makefile")
	content := "build: ## main build fn\n" + long + "\n" + "test: ## run tests\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := ScanFile(path)
	if err != nil {
		t.Fatalf("ScanFile() error = %v", err)
	}
	if diff := cmp.Diff([]string{"build", "test"}, names(entries)); diff != "" {
		t.Errorf("ScanFile() names mismatch (-want +got):\n%s", diff)
	}
}

func TestScan_NoQualifyingLines(t *testing.T) {
	t.Parallel()

	entries, err := Scan(strings.NewReader("all:\n\tgo build\n"))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Scan() = %v, want no entries", entries)
	}
}

func TestScan_DuplicatesAreKept(t *testing.T) {
	t.Parallel()

	entries, err := Scan(strings.NewReader("a: ## first\na: ## second\n"))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Scan() returned %d entries, want both duplicates", len(entries))
	}
}

func TestScanFile_Missing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Makefile")
	_, err := ScanFile(path)
	if err == nil {
		t.Fatal("ScanFile() error = nil, want FileAccessError")
	}

	var fae *FileAccessError
	if !errors.As(err, &fae) {
		t.Fatalf("error type = %T, want *FileAccessError", err)
	}
	if fae.Path != path {
		t.Errorf("Path = %q, want %q", fae.Path, path)
	}
	if !fae.NotExist() {
		t.Error("NotExist() = false, want true")
	}
	if !errors.Is(err, ErrFileAccess) {
		t.Error("error does not wrap ErrFileAccess")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("error does not wrap fs.ErrNotExist")
	}
}

func TestScanFile_PermissionDenied(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("file mode permissions are not enforced")
	}

	path := filepath.Join(t.TempDir(), "Makefile")
	if err := os.WriteFile(path, []byte("build: ## b\n"), 0o000); err != nil {
		t.Fatal(err)
	}

	_, err := ScanFile(path)
	var fae *FileAccessError
	if !errors.As(err, &fae) || !fae.Permission() {
		t.Errorf("ScanFile() error = %v, want permission FileAccessError", err)
	}
}

func TestScanFiles_AllOrNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "Makefile")
	if err := os.WriteFile(good, []byte(sampleMakefile), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := ScanFiles(context.Background(), []string{good, filepath.Join(dir, "missing.mk")})
	if err == nil {
		t.Fatal("ScanFiles() error = nil, want FileAccessError")
	}
	if entries != nil {
		t.Errorf("ScanFiles() returned partial entries %v", entries)
	}
}

func TestScanFiles_Concatenates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.mk")
	b := filepath.Join(dir, "b.mk")
	if err := os.WriteFile(a, []byte("zeta: ## z\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("alpha: ## a\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := ScanFiles(context.Background(), []string{a, b})
	if err != nil {
		t.Fatalf("ScanFiles() error = %v", err)
	}
	if diff := cmp.Diff([]string{"zeta", "alpha"}, names(entries)); diff != "" {
		t.Errorf("ScanFiles() keeps file order (-want +got):\n%s", diff)
	}
}

func TestScanFiles_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ScanFiles(ctx, []string{"Makefile"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ScanFiles() error = %v, want context.Canceled", err)
	}
}

func names(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, string(e.Name))
	}
	return out
}
