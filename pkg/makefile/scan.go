// SPDX-License-Identifier: MPL-2.0

package makefile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Scan returns the documented entries of r in input order.
func Scan(r io.Reader) ([]Entry, error) {
	var entries []Entry
	err := eachLine(r, func(line string) {
		if e, ok := ParseLine(line); ok {
			entries = append(entries, e)
		}
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ScanFile reads path and returns its documented entries in file order.
// Any open or read failure is reported as a *FileAccessError.
func ScanFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer f.Close() //nolint:errcheck // read-only file

	entries, err := Scan(f)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	return entries, nil
}

// ScanFiles scans each path in order and concatenates the entries. It is
// all-or-nothing: the first unreadable file aborts the scan.
func ScanFiles(ctx context.Context, paths []string) ([]Entry, error) {
	var all []Entry
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scan canceled: %w", err)
		}
		entries, err := ScanFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return all, nil
}

// eachLine calls fn for every line of r with the line terminator removed
// (both "\n" and "\r\n"). Lines may be of any length.
func eachLine(r io.Reader, fn func(string)) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			fn(strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"))
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
