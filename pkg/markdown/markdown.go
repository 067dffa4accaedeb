// Package markdown classifies and rewrites image references in Markdown lines.
//
// Three line shapes matter to the tool:
//
//	embedded reference:  ![alt-text][label]
//	external reference:  ![alt-text](path)
//	data block:          [label]:data:image/<ext>;base64,<data>
//
// Classification is a pure decision over one line plus file-existence checks:
// a line that matches none of the shapes (or references a missing or
// non-image file) is simply not an image line. That is normal control flow,
// never an error.
package markdown

import (
	"context"
	"path/filepath"
	"regexp"

	"github.com/spf13/afero"

	"github.com/mdimg/mdimg/pkg/hash"
)

var (
	imagePattern    = regexp.MustCompile(`!\[([^]]*)\]`)
	embeddedPattern = regexp.MustCompile(`!\[([^]]*)\]\[([^]]*)\]`)
	externalPattern = regexp.MustCompile(`!\[([^]]*)\]\(([^)]*)\)`)
	dataPattern     = regexp.MustCompile(`\[([^]]*)\]:data:image.*`)
)

// allowedExts is the image extension allow-list, leading dot included.
// The dot travels all the way into the data block ("data:image/.png"),
// matching the established on-disk format.
var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".svg":  true,
	".webp": true,
	".bmp":  true,
	".tif":  true,
}

// Kind discriminates the classification result.
type Kind int

const (
	// RefNone marks a line with no usable image reference.
	RefNone Kind = iota
	// RefEmbedded marks an ![alt][label] reference.
	RefEmbedded
	// RefExternal marks an ![alt](path) reference to an existing image file.
	RefExternal
)

// Ref is the result of classifying one line.
type Ref struct {
	Kind    Kind
	Label   string // content-hash label (embedded: as written)
	Path    string // path exactly as written in the document (external only)
	AbsPath string // resolved path on disk (external only)
	Ext     string // extension with leading dot (external only)
}

// Classifier resolves image references for one document.
// Relative paths resolve against baseDir, the document's directory.
type Classifier struct {
	fs      afero.Fs
	hasher  *hash.Hasher
	baseDir string
}

// NewClassifier creates a classifier for a document located in baseDir.
func NewClassifier(fs afero.Fs, hasher *hash.Hasher, baseDir string) *Classifier {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Classifier{fs: fs, hasher: hasher, baseDir: baseDir}
}

// Classify determines whether line contains an image reference and of which
// kind. Embedded references win over external ones. An external reference
// only classifies when its path is non-empty, the resolved file exists, and
// the extension is on the allow-list; its label is the truncated content
// hash of the file.
func (c *Classifier) Classify(ctx context.Context, line string) Ref {
	if !imagePattern.MatchString(line) {
		return Ref{Kind: RefNone}
	}

	if m := embeddedPattern.FindStringSubmatch(line); m != nil {
		return Ref{Kind: RefEmbedded, Label: m[2]}
	}

	m := externalPattern.FindStringSubmatch(line)
	if m == nil {
		return Ref{Kind: RefNone}
	}

	path := m[2]
	if path == "" {
		return Ref{Kind: RefNone}
	}

	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(c.baseDir, abs)
	}
	if exists, err := afero.Exists(c.fs, abs); err != nil || !exists {
		return Ref{Kind: RefNone}
	}

	ext := filepath.Ext(filepath.Base(abs))
	if !allowedExts[ext] {
		return Ref{Kind: RefNone}
	}

	label, ok := c.hasher.Label(ctx, abs, hash.LabelLength)
	if !ok {
		return Ref{Kind: RefNone}
	}

	return Ref{Kind: RefExternal, Label: label, Path: path, AbsPath: abs, Ext: ext}
}

// ReplaceExternal rewrites every external reference on the line to the
// embedded form ![label][label], label standing in for both the visible
// text and the reference.
func ReplaceExternal(line, label string) string {
	return externalPattern.ReplaceAllLiteralString(line, "!["+label+"]["+label+"]")
}

// ExternalPath returns the path of the first external reference on the
// line, purely syntactically: no existence or extension checks are applied.
func ExternalPath(line string) (string, bool) {
	m := externalPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[2], true
}

// ReplaceExternalPath rewrites every external reference on the line to
// point at newPath, keeping the alt text and the parenthesized syntax.
func ReplaceExternalPath(line, newPath string) string {
	return externalPattern.ReplaceAllStringFunc(line, func(ref string) string {
		sub := externalPattern.FindStringSubmatch(ref)
		return "![" + sub[1] + "](" + newPath + ")"
	})
}

// MatchDataBlock reports whether line is a data block and returns its
// label, which may be empty.
func MatchDataBlock(line string) (string, bool) {
	m := dataPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// FormatDataBlock renders a data block line for label with the given
// extension (leading dot preserved) and base64 payload.
func FormatDataBlock(label, ext, encoded string) string {
	return "[" + label + "]:data:image/" + ext + ";base64," + encoded
}
