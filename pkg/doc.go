// Package pkg provides the core libraries for the mdimg document tool.
//
// # Overview
//
// mdimg rewrites a Markdown document so that referenced external image
// files are embedded inline as base64-encoded data blocks, or renamed on
// disk to short content-hash filenames. The pkg directory is organized
// around the processing pipeline:
//
//	Markdown document
//	         ↓
//	    [document] package (lines, separator, backup)
//	         ↓
//	    [markdown] package (classify and rewrite references)
//	         ↓
//	    [pipeline] package (rewrite → clean → append passes)
//	         ↓
//	    updated document with [label]:data:image blocks
//
// # Main Packages
//
// [pipeline] - The three-pass processing pipeline. Pass 1 classifies every
// line and rewrites image references (to embedded form, or to hash-named
// paths in rename mode), building an insertion-ordered label→image
// mapping. Pass 2 drops or keeps existing data blocks. Pass 3 appends
// freshly encoded data blocks.
//
// [markdown] - Line classification: embedded references ![alt][label],
// external references ![alt](path), and data blocks [label]:data:image.
//
// [document] - In-memory line representation of a document, separator
// detection (CRLF, LF, CR), and the pre-run backup copy.
//
// [hash] - Truncated content-hash labels with a per-session memo.
//
// [config] - TOML configuration layered under command-line flags.
//
// [errors] - Structured error codes shared by all commands.
//
// [observability] - No-op-by-default hooks for pipeline and hash events.
//
// [buildinfo] - Version information injected at build time.
//
// [pipeline]: https://pkg.go.dev/github.com/mdimg/mdimg/pkg/pipeline
// [markdown]: https://pkg.go.dev/github.com/mdimg/mdimg/pkg/markdown
// [document]: https://pkg.go.dev/github.com/mdimg/mdimg/pkg/document
// [hash]: https://pkg.go.dev/github.com/mdimg/mdimg/pkg/hash
// [config]: https://pkg.go.dev/github.com/mdimg/mdimg/pkg/config
// [errors]: https://pkg.go.dev/github.com/mdimg/mdimg/pkg/errors
// [observability]: https://pkg.go.dev/github.com/mdimg/mdimg/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/mdimg/mdimg/pkg/buildinfo
package pkg
