package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mdimg/mdimg/pkg/document"
	"github.com/mdimg/mdimg/pkg/errors"
	"github.com/mdimg/mdimg/pkg/markdown"
)

// rewrite is pass 1: stream the document line by line, classify each line,
// and apply the mode's rewrite policy while building the label mapping.
func (r *Runner) rewrite(ctx context.Context, doc *document.Document, sess *Session, opts Options) (rewritten, renamed int, err error) {
	classifier := markdown.NewClassifier(r.fs, sess.hasher, doc.Dir())

	// Written paths already renamed on disk during this pass. A later line
	// referencing the same path would otherwise fail the existence check and
	// dangle on the old name.
	renames := make(map[string]string)

	lines := doc.Lines()
	for i, line := range lines {
		ref := classifier.Classify(ctx, line)

		switch {
		case ref.Kind == markdown.RefEmbedded && opts.Mode == ModeEmbed:
			// The reference exists but its source is unknown; the label must
			// survive the stale-data pass.
			sess.labels.set(ref.Label, nil)

		case ref.Kind == markdown.RefExternal && opts.Mode == ModeEmbed:
			sess.labels.set(ref.Label, &Source{Path: ref.AbsPath, Ext: ref.Ext})
			lines[i] = markdown.ReplaceExternal(line, ref.Label)
			rewritten++

		case ref.Kind == markdown.RefExternal && opts.Mode == ModeRename:
			if len(ref.Path) < renameMinPathLen {
				continue
			}
			newPath, didRename, renameErr := r.renameToLabel(ref.AbsPath, ref.Path, ref.Label, ref.Ext)
			if renameErr != nil {
				return rewritten, renamed, renameErr
			}
			if didRename {
				renamed++
			}
			renames[ref.Path] = newPath
			lines[i] = markdown.ReplaceExternalPath(line, newPath)
			rewritten++

		case ref.Kind == markdown.RefNone && opts.Mode == ModeRename:
			path, ok := markdown.ExternalPath(line)
			if !ok {
				continue
			}
			if newPath, done := renames[path]; done {
				lines[i] = markdown.ReplaceExternalPath(line, newPath)
				rewritten++
			}
		}
	}

	doc.SetLines(lines)
	return rewritten, renamed, nil
}

// renameToLabel renames the image file to <label><ext> in its own directory
// and returns the rewritten path text for the document. A file already
// sitting at the target means the rename happened on an earlier run; that
// is already-done, not an error.
func (r *Runner) renameToLabel(absPath, writtenPath, label, ext string) (string, bool, error) {
	newName := label + ext
	newAbs := filepath.Join(filepath.Dir(absPath), newName)
	newWritten := filepath.Join(filepath.Dir(writtenPath), newName)

	if _, err := r.fs.Stat(newAbs); err == nil {
		return newWritten, false, nil
	} else if !os.IsNotExist(err) {
		return "", false, errors.Wrap(errors.ErrCodeIO, err, "stat %s", newAbs)
	}

	if err := r.fs.Rename(absPath, newAbs); err != nil {
		return "", false, errors.Wrap(errors.ErrCodeIO, err, "rename %s to %s", absPath, newAbs)
	}
	return newWritten, true, nil
}
