// SPDX-License-Identifier: MPL-2.0

package makefile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultFile is the definition file read when none is given and none of
// the conventional names exists.
const DefaultFile = "Makefile"

// conventionalNames lists the definition file names in the order make
// itself looks for them.
var conventionalNames = []string{"GNUmakefile", "makefile", "Makefile"}

// Discover returns the definition file make would read in dir. When no
// conventional file exists it returns dir/Makefile so the subsequent read
// reports a FileAccessError for the expected name.
func Discover(dir string) string {
	for _, name := range conventionalNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return filepath.Join(dir, DefaultFile)
}

// FileList expands roots into the full list of cooperating definition files:
// each root followed, depth-first, by the files it includes. Include paths are
// resolved against the working directory the way make resolves them.
// Each file appears once, at its first position.
//
// Include arguments containing variable references cannot be resolved
// without evaluating the file and are skipped; skipped is called for each of
// them when non-nil.
func FileList(ctx context.Context, roots []string, skipped func(file, arg string)) ([]string, error) {
	l := &fileLister{ctx: ctx, seen: make(map[string]bool), skipped: skipped}
	for _, root := range roots {
		if err := l.visit(root, true); err != nil {
			return nil, err
		}
	}
	return l.files, nil
}

type fileLister struct {
	ctx     context.Context
	seen    map[string]bool
	files   []string
	skipped func(file, arg string)
}

func (l *fileLister) visit(path string, required bool) error {
	if err := l.ctx.Err(); err != nil {
		return fmt.Errorf("resolve includes canceled: %w", err)
	}
	key := filepath.Clean(path)
	if l.seen[key] {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		if !required && os.IsNotExist(err) {
			return nil
		}
		return &FileAccessError{Path: path, Err: err}
	}
	l.seen[key] = true
	l.files = append(l.files, path)

	var includes []include
	scanErr := eachLine(f, func(line string) {
		if inc, ok := parseInclude(line); ok {
			includes = append(includes, inc)
		}
	})
	f.Close() //nolint:errcheck // read-only file
	if scanErr != nil {
		return &FileAccessError{Path: path, Err: scanErr}
	}

	for _, inc := range includes {
		for _, arg := range inc.args {
			if strings.Contains(arg, "$") {
				if l.skipped != nil {
					l.skipped(path, arg)
				}
				continue
			}
			targets, err := expandInclude(arg)
			if err != nil {
				return fmt.Errorf("%s: include %q: %w", path, arg, err)
			}
			if len(targets) == 0 && inc.required {
				return &FileAccessError{Path: arg, Err: os.ErrNotExist}
			}
			for _, target := range targets {
				if err := l.visit(target, inc.required); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

type include struct {
	required bool
	args     []string
}

// parseInclude recognizes "include", "-include" and "sinclude" directives.
// Recipe lines start with a tab and are never directives.
func parseInclude(line string) (include, bool) {
	if strings.HasPrefix(line, "\t") {
		return include{}, false
	}
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return include{}, false
	}
	switch fields[0] {
	case "include":
		return include{required: true, args: fields[1:]}, true
	case "-include", "sinclude":
		return include{required: false, args: fields[1:]}, true
	}
	return include{}, false
}

// expandInclude returns the files an include argument names. Arguments
// without glob metacharacters are returned as-is so a missing required file
// surfaces as a FileAccessError on open.
func expandInclude(arg string) ([]string, error) {
	if !strings.ContainsAny(arg, "*?[{") {
		return []string{arg}, nil
	}
	matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	return matches, nil
}
