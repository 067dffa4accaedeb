package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/mdimg/mdimg/pkg/document"
	"github.com/mdimg/mdimg/pkg/observability"
)

// Runner executes the document-processing pipeline.
//
// The Runner is stateless except for the filesystem and logger - per-run
// state (the label mapping and hash memo) lives in a Session created for
// each Execute call, so the same Runner can process many documents.
type Runner struct {
	fs     afero.Fs
	logger *log.Logger
}

// NewRunner creates a runner over the given filesystem.
// A nil fs defaults to the OS filesystem; a nil logger to log.Default().
func NewRunner(fs afero.Fs, logger *log.Logger) *Runner {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{fs: fs, logger: logger}
}

// Execute runs the complete pipeline on one document.
//
// The document is loaded and the optional backup written before any
// mutation. Every pass is flushed to disk before the next begins. In
// rename mode only the first pass runs. After processing, a backup that is
// byte-identical to the final document is removed as redundant.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	total := time.Now()
	doc, err := document.Load(r.fs, opts.Document)
	if err != nil {
		return nil, err
	}

	sess := NewSession(r.fs)
	result := &Result{Mode: opts.Mode}

	if opts.Backup {
		ext := opts.BackupExt
		if ext == "" {
			ext = document.DefaultBackupExt(time.Now())
		}
		backupPath, err := doc.Backup(opts.BackupDir, ext)
		if err != nil {
			return nil, err
		}
		result.BackupPath = backupPath
		result.BackupKept = true
		r.logger.Debug("wrote backup", "path", backupPath)
	}

	// Pass 1: rewrite references.
	start := time.Now()
	observability.Pipeline().OnRewriteStart(ctx, opts.Document, string(opts.Mode))
	rewritten, renamed, err := r.rewrite(ctx, doc, sess, opts)
	if err == nil {
		err = doc.Save()
	}
	result.Stats.RewriteTime = time.Since(start)
	observability.Pipeline().OnRewriteComplete(ctx, opts.Document, string(opts.Mode), sess.labels.len(), result.Stats.RewriteTime, err)
	if err != nil {
		return nil, err
	}
	result.References = sess.labels.len()
	result.Rewritten = rewritten
	result.Renamed = renamed
	r.logger.Info("rewrote references",
		"mode", opts.Mode,
		"labels", result.References,
		"lines", rewritten,
		"duration", result.Stats.RewriteTime)

	if opts.Mode == ModeEmbed {
		// Pass 2: stale data blocks.
		start = time.Now()
		observability.Pipeline().OnCleanStart(ctx, opts.Document)
		dropped, kept := r.clean(ctx, doc, sess, opts)
		err = doc.Save()
		result.Stats.CleanTime = time.Since(start)
		observability.Pipeline().OnCleanComplete(ctx, opts.Document, dropped, result.Stats.CleanTime, err)
		if err != nil {
			return nil, err
		}
		result.DroppedBlocks = dropped
		result.KeptBlocks = kept
		r.logger.Info("cleaned data blocks",
			"dropped", dropped,
			"kept", kept,
			"duration", result.Stats.CleanTime)

		// Pass 3: fresh data blocks.
		start = time.Now()
		observability.Pipeline().OnAppendStart(ctx, opts.Document, sess.labels.len())
		appended, skipped, encoded, err := r.appendData(ctx, doc, sess, opts)
		if err == nil {
			err = doc.Save()
		}
		result.Stats.AppendTime = time.Since(start)
		observability.Pipeline().OnAppendComplete(ctx, opts.Document, appended, result.Stats.AppendTime, err)
		if err != nil {
			return nil, err
		}
		result.AppendedBlocks = appended
		result.SkippedMissing = skipped
		result.BytesEncoded = encoded
		r.logger.Info("appended data blocks",
			"blocks", appended,
			"skipped", skipped,
			"bytes", encoded,
			"duration", result.Stats.AppendTime)
	}

	if result.BackupPath != "" {
		removed, err := doc.RemoveBackupIfRedundant(ctx, sess.hasher, result.BackupPath)
		if err != nil {
			return nil, err
		}
		if removed {
			result.BackupPath = ""
			result.BackupKept = false
			r.logger.Debug("removed redundant backup")
		}
	}

	result.Lines = doc.Len()
	result.Stats.TotalTime = time.Since(total)
	return result, nil
}
