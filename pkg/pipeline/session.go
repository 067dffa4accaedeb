package pipeline

import (
	"github.com/spf13/afero"

	"github.com/mdimg/mdimg/pkg/hash"
)

// Source is the known origin of a labeled image: the resolved path on disk
// and the file extension (leading dot included).
type Source struct {
	Path string
	Ext  string
}

// Session scopes the mutable state of one document run: the ordered
// label→source mapping built by the rewrite pass and the content-hash memo.
// A fresh Session per document keeps digests and labels from leaking
// between runs, so one Runner can process many documents in sequence.
type Session struct {
	hasher *hash.Hasher
	labels *labelMap
}

// NewSession creates the per-document state.
func NewSession(fs afero.Fs) *Session {
	return &Session{
		hasher: hash.New(fs),
		labels: newLabelMap(),
	}
}

// labelMap is an insertion-ordered label→source mapping. A nil source means
// the label is referenced in the document but has no known image file
// behind it (an embedded reference seen during pass 1).
type labelMap struct {
	order   []string
	entries map[string]*Source
}

func newLabelMap() *labelMap {
	return &labelMap{entries: make(map[string]*Source)}
}

// set records label→src. A label keeps its first-seen position; setting an
// existing label only replaces the value. An embedded reference seen after
// an external one therefore overwrites the source with nil, matching the
// established behavior: the embedded form signals the data already exists.
func (m *labelMap) set(label string, src *Source) {
	if _, ok := m.entries[label]; !ok {
		m.order = append(m.order, label)
	}
	m.entries[label] = src
}

func (m *labelMap) get(label string) (*Source, bool) {
	src, ok := m.entries[label]
	return src, ok
}

func (m *labelMap) delete(label string) {
	if _, ok := m.entries[label]; !ok {
		return
	}
	delete(m.entries, label)
	for i, l := range m.order {
		if l == label {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *labelMap) len() int { return len(m.entries) }

// labels returns the labels in insertion order.
func (m *labelMap) labels() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}
