// Package hash computes truncated content-hash labels for files.
//
// Labels identify an image by its bytes: two files with identical content
// always produce the same label, regardless of their names or locations.
// The full digest is memoized per path so a file referenced several times
// in one document is only read once.
//
// MD5 is used as a content fingerprint, not for security. The label format
// (first 8 hex characters of the MD5 digest) is load-bearing: documents
// already processed by earlier versions of the tool carry these labels,
// and changing the algorithm would orphan every existing data block.
package hash

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"time"

	"github.com/spf13/afero"

	"github.com/mdimg/mdimg/pkg/observability"
)

const (
	// LabelLength is the number of hex characters used for reference labels.
	LabelLength = 8

	// DigestLength is the length of the full hex digest.
	DigestLength = md5.Size * 2

	// chunkSize bounds memory while streaming file contents.
	chunkSize = 1024
)

// Hasher computes content digests with a per-instance memo.
// The memo lives as long as the Hasher; scope one Hasher to one
// document-processing session so digests never go stale across runs.
type Hasher struct {
	fs   afero.Fs
	memo map[string]string // path -> full hex digest
}

// New creates a Hasher reading through the given filesystem.
// A nil fs defaults to the OS filesystem.
func New(fs afero.Fs) *Hasher {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Hasher{fs: fs, memo: make(map[string]string)}
}

// Label returns the first length hex characters of the file's content digest.
// It returns false if the file does not exist or cannot be read.
// A length of DigestLength or more returns the full digest.
func (h *Hasher) Label(ctx context.Context, path string, length int) (string, bool) {
	if length <= 0 {
		return "", false
	}

	digest, ok := h.digest(ctx, path)
	if !ok {
		return "", false
	}
	if length >= len(digest) {
		return digest, true
	}
	return digest[:length], true
}

// digest returns the full hex digest for path, computing and memoizing it
// on first use.
func (h *Hasher) digest(ctx context.Context, path string) (string, bool) {
	if d, ok := h.memo[path]; ok {
		observability.Hash().OnCacheHit(ctx, path)
		return d, true
	}

	f, err := h.fs.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	start := time.Now()
	m := md5.New()
	buf := make([]byte, chunkSize)
	n, err := io.CopyBuffer(m, f, buf)
	if err != nil {
		return "", false
	}

	d := hex.EncodeToString(m.Sum(nil))
	h.memo[path] = d
	observability.Hash().OnHashComputed(ctx, path, n, time.Since(start))
	return d, true
}

// Reset drops all memoized digests.
func (h *Hasher) Reset() {
	h.memo = make(map[string]string)
}
