// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"makehelp/internal/cueutil"
	"makehelp/pkg/makefile"
	"makehelp/pkg/types"

	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// maxFileSize bounds registry files; a registry is a short list.
const maxFileSize = 1 << 20

//go:embed schema.cue
var schemaSource string

type (
	// Document is the on-disk shape of a registry in every format.
	Document struct {
		Commands []Command `json:"commands" yaml:"commands" toml:"commands"`
	}

	// Command is one registry document entry.
	Command struct {
		Name        string `json:"name" yaml:"name" toml:"name"`
		Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	}

	// File is a listing source backed by a registry file, loaded on every
	// call to Entries so watch mode picks up edits.
	File struct {
		Path string
	}
)

// Entries loads the file and returns its commands ordered by name.
func (f File) Entries(ctx context.Context) ([]makefile.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load registry canceled: %w", err)
	}
	r, err := Load(f.Path)
	if err != nil {
		return nil, err
	}
	return r.Entries(ctx)
}

// Load reads a registry file, choosing the decoder by extension. A file
// that cannot be read yields a *makefile.FileAccessError.
func Load(path string) (*Registry, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &makefile.FileAccessError{Path: path, Err: err}
	}
	if len(data) > maxFileSize {
		return nil, &DecodeError{Path: path, Format: f, Err: fmt.Errorf("file is %d bytes, limit is %d", len(data), maxFileSize)}
	}
	return Decode(data, f, path)
}

// Decode parses data in format f. path is used in error messages only.
func Decode(data []byte, f Format, path string) (*Registry, error) {
	var doc Document
	var err error
	switch f {
	case FormatCUE:
		err = decodeCUE(data, path, &doc)
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(&doc); err == io.EOF {
			err = nil
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	default:
		return nil, &UnsupportedFormatError{Value: string(f)}
	}
	if err != nil {
		return nil, &DecodeError{Path: path, Format: f, Err: err}
	}

	r := New()
	for _, c := range doc.Commands {
		if err := r.Register(types.CommandName(c.Name), types.DescriptionText(c.Description)); err != nil {
			return nil, &DecodeError{Path: path, Format: f, Err: err}
		}
	}
	return r, nil
}

// decodeCUE unifies the file with the #Registry schema before decoding, so
// schema violations are reported with field paths.
func decodeCUE(data []byte, path string, doc *Document) error {
	decoded, err := cueutil.Decode[Document](schemaSource, data, "#Registry",
		cueutil.WithFilename(path),
		cueutil.WithMaxFileSize(maxFileSize),
	)
	if err != nil {
		return err
	}
	*doc = decoded
	return nil
}

// Encode writes r in format f, commands ordered by name.
func Encode(w io.Writer, f Format, r *Registry) error {
	doc := Document{Commands: make([]Command, 0, r.Len())}
	for _, name := range r.Names() {
		desc, _ := r.Lookup(name)
		doc.Commands = append(doc.Commands, Command{Name: string(name), Description: string(desc)})
	}

	var out []byte
	var err error
	switch f {
	case FormatCUE:
		out, err = encodeCUE(doc)
	case FormatTOML:
		out, err = toml.Marshal(doc)
	case FormatYAML:
		out, err = yaml.Marshal(doc)
	case FormatJSON:
		out, err = json.MarshalIndent(doc, "", "  ")
		out = append(out, '\n')
	default:
		return &UnsupportedFormatError{Value: string(f)}
	}
	if err != nil {
		return fmt.Errorf("encode %s registry: %w", f, err)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write %s registry: %w", f, err)
	}
	return nil
}

// encodeCUE renders doc as a CUE file with top-level fields.
func encodeCUE(doc Document) ([]byte, error) {
	v := cuecontext.New().Encode(doc)
	if v.Err() != nil {
		return nil, v.Err()
	}
	node := v.Syntax()
	if st, ok := node.(*ast.StructLit); ok {
		node = &ast.File{Decls: st.Elts}
	}
	return format.Node(node)
}
