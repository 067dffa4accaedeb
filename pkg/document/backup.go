package document

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/mdimg/mdimg/pkg/errors"
	"github.com/mdimg/mdimg/pkg/hash"
)

// DefaultBackupExt derives the backup file extension from a timestamp,
// e.g. ".20260830_142301.bak".
func DefaultBackupExt(t time.Time) string {
	return "." + t.Format("20060102_150405") + ".bak"
}

// Backup writes a verbatim copy of the document file into dir, named after
// the document with ext appended. An empty dir defaults to the document's
// own directory. A missing backup directory is fatal: it is reported before
// any pass has mutated the document.
func (d *Document) Backup(dir, ext string) (string, error) {
	if dir == "" {
		dir = d.dir
	}

	info, err := d.fs.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.New(errors.ErrCodeBackupDirNotFound, "no such directory %s", dir)
		}
		return "", errors.Wrap(errors.ErrCodeIO, err, "stat %s", dir)
	}
	if !info.IsDir() {
		return "", errors.New(errors.ErrCodeBackupDirNotFound, "%s is not a directory", dir)
	}

	data, err := afero.ReadFile(d.fs, d.path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "read %s", d.path)
	}

	target := filepath.Join(dir, filepath.Base(d.path)+ext)
	if err := afero.WriteFile(d.fs, target, data, d.mode); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "write backup %s", target)
	}
	return target, nil
}

// RemoveBackupIfRedundant deletes the backup when it is byte-identical to
// the current document, comparing full content digests. It reports whether
// the backup was removed. A backup that has already disappeared is not an
// error.
func (d *Document) RemoveBackupIfRedundant(ctx context.Context, h *hash.Hasher, backupPath string) (bool, error) {
	if _, err := d.fs.Stat(backupPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrap(errors.ErrCodeIO, err, "stat backup %s", backupPath)
	}

	backupDigest, okBackup := h.Label(ctx, backupPath, hash.DigestLength)
	docDigest, okDoc := h.Label(ctx, d.path, hash.DigestLength)
	if !okBackup || !okDoc || backupDigest != docDigest {
		return false, nil
	}

	if err := d.fs.Remove(backupPath); err != nil {
		return false, errors.Wrap(errors.ErrCodeIO, err, "remove backup %s", backupPath)
	}
	return true, nil
}
