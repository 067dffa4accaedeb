// Package pipeline provides the core document-processing pipeline for mdimg.
//
// This package implements the complete rewrite → clean → append sequence
// over a single Markdown document. Centralizing this logic keeps the CLI a
// thin shell and makes the whole flow testable against an in-memory
// filesystem.
//
// # Architecture
//
// The pipeline consists of three strictly sequential passes:
//
//  1. Rewrite: classify every line, record the label→image mapping, and
//     rewrite external references (to embedded form, or to hash-named paths
//     in rename mode)
//  2. Clean: drop or keep existing data blocks depending on whether their
//     label is still referenced and whether fresh data will replace them
//  3. Append: base64-encode each mapped image and append its data block
//
// Each pass fully rewrites the document file before the next pass begins.
// Rename mode stops after the first pass; nothing is embedded.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(afero.NewOsFs(), logger)
//	opts := pipeline.Options{
//	    Document:   "notes.md",
//	    Mode:       pipeline.ModeEmbed,
//	    SpaceLines: 20,
//	}
//	result, err := runner.Execute(ctx, opts)
package pipeline

import (
	"time"

	"github.com/mdimg/mdimg/pkg/errors"
)

// Mode selects the rewrite policy of the first pass.
type Mode string

const (
	// ModeEmbed converts external references to embedded ones and appends
	// base64 data blocks.
	ModeEmbed Mode = "embed"

	// ModeRename renames referenced image files to their content-hash name
	// and updates the paths in the document. Nothing is embedded.
	ModeRename Mode = "rename"
)

// ValidModes is the set of supported modes.
var ValidModes = map[Mode]bool{
	ModeEmbed:  true,
	ModeRename: true,
}

// renameMinPathLen is the threshold for rename mode: a written path shorter
// than this is already short enough and is left completely untouched.
const renameMinPathLen = 12

// Options configures one pipeline execution.
type Options struct {
	// Document is the path of the Markdown file to process.
	Document string

	// Mode selects embed or rename behavior.
	Mode Mode

	// SpaceLines is the number of blank lines ahead of each appended data
	// block. Zero is valid; blocks then directly follow the body.
	SpaceLines int

	// UseOldData keeps matching existing data blocks instead of re-encoding.
	UseOldData bool

	// KeepUselessData keeps data blocks whose label is no longer referenced.
	KeepUselessData bool

	// Backup writes a verbatim copy of the document before the first pass.
	Backup bool

	// BackupDir receives the copy; empty means the document's directory.
	BackupDir string

	// BackupExt overrides the timestamp-derived backup extension.
	BackupExt string
}

// ValidateAndSetDefaults checks the options and fills derived defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if err := errors.ValidateDocumentPath(o.Document); err != nil {
		return err
	}
	if o.Mode == "" {
		o.Mode = ModeEmbed
	}
	if !ValidModes[o.Mode] {
		return errors.New(errors.ErrCodeInvalidAction, "unknown mode %q", o.Mode)
	}
	if err := errors.ValidateSpaceLines(o.SpaceLines); err != nil {
		return err
	}
	return nil
}

// Stats collects per-pass timings.
type Stats struct {
	RewriteTime time.Duration
	CleanTime   time.Duration
	AppendTime  time.Duration
	TotalTime   time.Duration
}

// Result reports what one execution did to the document.
type Result struct {
	Mode  Mode
	Lines int // lines in the document after processing

	// Pass 1
	References int // distinct labels recorded
	Rewritten  int // lines whose references were rewritten
	Renamed    int // image files renamed on disk (rename mode)

	// Pass 2
	DroppedBlocks int // data blocks removed (stale or replaced)
	KeptBlocks    int // data blocks left in place

	// Pass 3
	AppendedBlocks int   // data blocks appended
	SkippedMissing int   // mapping entries whose image vanished before encoding
	BytesEncoded   int64 // raw image bytes encoded

	// Backup
	BackupPath string // empty when no backup was requested
	BackupKept bool   // false when the backup was removed as redundant

	Stats Stats
}
