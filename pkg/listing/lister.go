// SPDX-License-Identifier: MPL-2.0

package listing

import (
	"context"
	"io"

	"makehelp/pkg/makefile"

	"github.com/charmbracelet/log"
)

type (
	// Source yields the entries of a listing.
	Source interface {
		Entries(ctx context.Context) ([]makefile.Entry, error)
	}

	// DefinitionFiles is a Source reading documented commands from
	// definition files.
	DefinitionFiles struct {
		// Paths are the root definition files, in order.
		Paths []string
		// FollowIncludes adds the files named by include directives, the way
		// make builds its own file list.
		FollowIncludes bool
		// Logger receives debug output. Nil discards it.
		Logger *log.Logger
	}

	// Lister renders a Source to Out.
	Lister struct {
		Out     io.Writer
		Options Options
		Logger  *log.Logger
	}
)

// Entries scans the definition files. An unreadable file fails the whole
// scan with a *makefile.FileAccessError.
func (d DefinitionFiles) Entries(ctx context.Context) ([]makefile.Entry, error) {
	logger := orDiscard(d.Logger)

	files := d.Paths
	if d.FollowIncludes {
		var err error
		files, err = makefile.FileList(ctx, d.Paths, func(file, arg string) {
			logger.Debug("skipping include with variable reference", "file", file, "include", arg)
		})
		if err != nil {
			return nil, err
		}
	}

	logger.Debug("scanning definition files", "files", files)
	entries, err := makefile.ScanFiles(ctx, files)
	if err != nil {
		return nil, err
	}
	logger.Debug("scan complete", "entries", len(entries))
	return entries, nil
}

// List reads src and writes its listing. Nothing is written when src fails.
func (l *Lister) List(ctx context.Context, src Source) error {
	entries, err := src.Entries(ctx)
	if err != nil {
		return err
	}
	orDiscard(l.Logger).Debug("rendering listing", "entries", len(entries), "sort", l.Options.Sort, "width", l.Options.Width)
	return Render(l.Out, entries, l.Options)
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}
