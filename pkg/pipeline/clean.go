package pipeline

import (
	"context"

	"github.com/mdimg/mdimg/pkg/document"
	"github.com/mdimg/mdimg/pkg/markdown"
)

// clean is pass 2: walk the document again and decide the fate of every
// existing data block.
//
// A block whose label is still referenced is kept verbatim when UseOldData
// is set (and its label is removed from the mapping so pass 3 skips it),
// dropped when fresh source data will replace it, and kept when the label
// has no known source. A block whose label is referenced nowhere is stale:
// dropped unless KeepUselessData asks to preserve it.
func (r *Runner) clean(ctx context.Context, doc *document.Document, sess *Session, opts Options) (dropped, kept int) {
	lines := doc.Lines()
	out := lines[:0]

	for _, line := range lines {
		label, ok := markdown.MatchDataBlock(line)
		if !ok || label == "" {
			out = append(out, line)
			continue
		}

		src, referenced := sess.labels.get(label)
		switch {
		case referenced && opts.UseOldData:
			sess.labels.delete(label)
			out = append(out, line)
			kept++
		case referenced && src != nil:
			dropped++
		case referenced:
			// Referenced but source unknown; the block is the only data.
			out = append(out, line)
			kept++
		case opts.KeepUselessData:
			out = append(out, line)
			kept++
		default:
			dropped++
		}
	}

	doc.SetLines(out)
	return dropped, kept
}
