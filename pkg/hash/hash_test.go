package hash

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/mdimg/mdimg/pkg/observability"
)

func TestLabelMatchesDigest(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := []byte("hello, image bytes")
	if err := afero.WriteFile(fs, "/img.png", content, 0644); err != nil {
		t.Fatal(err)
	}

	sum := md5.Sum(content)
	want := hex.EncodeToString(sum[:])

	h := New(fs)
	got, ok := h.Label(context.Background(), "/img.png", LabelLength)
	if !ok {
		t.Fatal("Label should succeed for an existing file")
	}
	if got != want[:LabelLength] {
		t.Errorf("Label = %q, want %q", got, want[:LabelLength])
	}

	// Full digest when the requested length covers it.
	full, ok := h.Label(context.Background(), "/img.png", DigestLength)
	if !ok || full != want {
		t.Errorf("full Label = %q, want %q", full, want)
	}
}

func TestLabelStableAcrossPaths(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := []byte("same bytes, different names")
	for _, p := range []string{"/a/one.png", "/b/two.png"} {
		if err := afero.WriteFile(fs, p, content, 0644); err != nil {
			t.Fatal(err)
		}
	}

	h := New(fs)
	a, okA := h.Label(context.Background(), "/a/one.png", LabelLength)
	b, okB := h.Label(context.Background(), "/b/two.png", LabelLength)
	if !okA || !okB {
		t.Fatal("both labels should resolve")
	}
	if a != b {
		t.Errorf("labels differ for identical content: %q vs %q", a, b)
	}
}

func TestLabelMissingFile(t *testing.T) {
	h := New(afero.NewMemMapFs())
	if _, ok := h.Label(context.Background(), "/nope.png", LabelLength); ok {
		t.Error("Label should fail for a missing file")
	}
}

func TestLabelInvalidLength(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/img.png", []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	h := New(fs)
	for _, n := range []int{0, -1} {
		if _, ok := h.Label(context.Background(), "/img.png", n); ok {
			t.Errorf("Label with length %d should fail", n)
		}
	}
}

// countingHashHooks records computed-vs-cached digest lookups.
type countingHashHooks struct {
	observability.NoopHashHooks
	mu       sync.Mutex
	computed int
	hits     int
}

func (c *countingHashHooks) OnHashComputed(_ context.Context, _ string, _ int64, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.computed++
}

func (c *countingHashHooks) OnCacheHit(_ context.Context, _ string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits++
}

func TestDigestMemoized(t *testing.T) {
	observability.Reset()
	t.Cleanup(observability.Reset)

	rec := &countingHashHooks{}
	observability.SetHashHooks(rec)

	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/img.png", []byte("payload"), 0644); err != nil {
		t.Fatal(err)
	}

	h := New(fs)
	ctx := context.Background()
	first, _ := h.Label(ctx, "/img.png", LabelLength)
	second, _ := h.Label(ctx, "/img.png", LabelLength)
	if first != second {
		t.Errorf("memoized label differs: %q vs %q", first, second)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.computed != 1 {
		t.Errorf("computed = %d, want 1", rec.computed)
	}
	if rec.hits != 1 {
		t.Errorf("cache hits = %d, want 1", rec.hits)
	}
}

func TestReset(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/img.png", []byte("payload"), 0644); err != nil {
		t.Fatal(err)
	}

	h := New(fs)
	ctx := context.Background()
	before, _ := h.Label(ctx, "/img.png", LabelLength)

	// Rewrite the file; the memo must be dropped for the new bytes to show.
	if err := afero.WriteFile(fs, "/img.png", []byte("different payload"), 0644); err != nil {
		t.Fatal(err)
	}
	stale, _ := h.Label(ctx, "/img.png", LabelLength)
	if stale != before {
		t.Fatalf("expected stale memoized label before Reset")
	}

	h.Reset()
	after, _ := h.Label(ctx, "/img.png", LabelLength)
	if after == before {
		t.Error("Reset should drop memoized digests")
	}
}
