// Package document models a Markdown document as an ordered line sequence.
//
// A document is loaded fully into memory, mutated by the processing passes,
// and written back to the same path. The line separator style of the
// original file (CRLF, LF, or CR) is detected on load and preserved for
// every rewritten and appended line.
//
// All filesystem access goes through afero so the whole package can be
// exercised against an in-memory filesystem in tests.
package document

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/mdimg/mdimg/pkg/errors"
)

// DefaultSep is used when a document contains no line break at all.
const DefaultSep = "\n"

// Document is an in-memory Markdown document.
type Document struct {
	fs          afero.Fs
	path        string
	dir         string
	sep         string
	lines       []string
	trailingSep bool
	mode        os.FileMode
}

// Load reads the document at path into memory.
// It fails with ErrCodeFileNotFound before any mutation if the file is missing.
func Load(fs afero.Fs, path string) (*Document, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if err := errors.ValidateDocumentPath(path); err != nil {
		return nil, err
	}

	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "no such file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "stat %s", path)
	}
	if info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "%s is a directory", path)
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}

	sep := detectSep(data)
	content := string(data)
	lines := strings.Split(content, sep)
	trailing := false
	if len(lines) > 0 && lines[len(lines)-1] == "" && content != "" {
		trailing = true
		lines = lines[:len(lines)-1]
	}

	return &Document{
		fs:          fs,
		path:        path,
		dir:         filepath.Dir(path),
		sep:         sep,
		lines:       lines,
		trailingSep: trailing,
		mode:        info.Mode().Perm(),
	}, nil
}

// detectSep returns the line separator used by the document.
// CRLF beats LF beats CR, anywhere in the document; a document without any
// line break gets DefaultSep.
func detectSep(data []byte) string {
	switch {
	case bytes.Contains(data, []byte("\r\n")):
		return "\r\n"
	case bytes.ContainsRune(data, '\n'):
		return "\n"
	case bytes.ContainsRune(data, '\r'):
		return "\r"
	}
	return DefaultSep
}

// Path returns the document's file path.
func (d *Document) Path() string { return d.path }

// Dir returns the directory containing the document.
// Relative image paths resolve against this directory.
func (d *Document) Dir() string { return d.dir }

// Sep returns the detected line separator.
func (d *Document) Sep() string { return d.sep }

// Len returns the number of lines.
func (d *Document) Len() int { return len(d.lines) }

// Lines returns the backing line slice. Passes mutate the document by
// replacing it with SetLines.
func (d *Document) Lines() []string { return d.lines }

// SetLines replaces the document's content.
func (d *Document) SetLines(lines []string) { d.lines = lines }

// Append adds lines to the end of the document. When the document does not
// end with a separator, the first appended line continues the last body line
// rather than starting a new one, so the rendered output gains exactly one
// separator per appended line.
func (d *Document) Append(lines ...string) {
	if len(lines) == 0 {
		return
	}
	if !d.trailingSep && len(d.lines) > 0 {
		d.lines[len(d.lines)-1] += lines[0]
		lines = lines[1:]
	}
	d.lines = append(d.lines, lines...)
	// Appended data blocks always terminate with a separator.
	d.trailingSep = true
}

// Content renders the document with its original separator.
func (d *Document) Content() string {
	s := strings.Join(d.lines, d.sep)
	if d.trailingSep && s != "" {
		s += d.sep
	}
	return s
}

// Save writes the document back to its path, preserving the file mode.
func (d *Document) Save() error {
	if err := afero.WriteFile(d.fs, d.path, []byte(d.Content()), d.mode); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", d.path)
	}
	return nil
}
