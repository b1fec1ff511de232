// Package hrc implements the HRC (Human Readable Compressed) container format.
//
// HRC stores a single semi-structured text document (JSON, JSONL or YAML)
// in a compact file that records everything needed to rebuild it: the
// document's format and the compression method used for its payload.
//
// # File Format Overview
//
// An HRC file consists of:
//   - A 5-byte ASCII format tag ("json ", "jsonl", "yaml ")
//   - A 5-byte ASCII compression tag ("zlib ", "lzma ", "brotl", "zstd ", "lz4  ")
//   - The compressed canonical text of the document, up to end of file
//
// Tags are left-justified, space padded and truncated to the slot width.
//
// # Canonical Text
//
// Before compression every document is reduced to a canonical UTF-8 string.
// JSON is compacted, JSONL lines lose trailing whitespace and are joined by
// "\n", and YAML is kept in its original text so it never passes through
// another syntax. On the way back JSON is re-indented with two spaces, JSONL
// lines are newline terminated and YAML is written unchanged.
//
// # Basic Usage
//
// To compress a file next to its source:
//
//	res, err := hrc.CompressFile("data.json", hrc.WithCompression(hrc.CompBrotli))
//	// res.Path == "data.hrc"
//
// To restore it:
//
//	path, err := hrc.DecompressFile("data.hrc")
//	// path == "data.json"
//
// Encode and Decode work on io.Writer and io.Reader for callers that manage
// their own storage.
//
// # Security Considerations
//
// YAML is decoded with gopkg.in/yaml.v3, which never instantiates arbitrary
// types. Decompression is bounded by configurable [Limits] so a crafted
// payload cannot expand without limit.
package hrc
