package pipeline

import (
	"context"
	"encoding/base64"
	"os"

	"github.com/spf13/afero"

	"github.com/mdimg/mdimg/pkg/document"
	"github.com/mdimg/mdimg/pkg/errors"
	"github.com/mdimg/mdimg/pkg/markdown"
)

// appendData is pass 3: base64-encode every mapped image and append its
// data block to the end of the document, in the order the references were
// first seen. An image that vanished between pass 1 and now is reported and
// skipped; the document is simply left without that block.
func (r *Runner) appendData(ctx context.Context, doc *document.Document, sess *Session, opts Options) (appended, skipped int, encoded int64, err error) {
	margin := make([]string, opts.SpaceLines)

	for _, label := range sess.labels.labels() {
		src, _ := sess.labels.get(label)
		if src == nil {
			continue
		}

		data, readErr := afero.ReadFile(r.fs, src.Path)
		if readErr != nil {
			if os.IsNotExist(readErr) {
				r.logger.Warnf("no such file %s", src.Path)
				skipped++
				continue
			}
			return appended, skipped, encoded, errors.Wrap(errors.ErrCodeIO, readErr, "read image %s", src.Path)
		}

		block := markdown.FormatDataBlock(label, src.Ext, base64.StdEncoding.EncodeToString(data))
		doc.Append(append(margin, block)...)
		appended++
		encoded += int64(len(data))
	}

	return appended, skipped, encoded, nil
}
