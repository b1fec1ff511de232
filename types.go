package hrc

import (
	"fmt"
	"strings"
)

// ContainerExt is the file extension of an HRC container.
const ContainerExt = ".hrc"

// Format identifies the structural family of the source document.
type Format uint8

const (
	FormatJSON  Format = 0x1 // a single JSON value (.json)
	FormatJSONL Format = 0x2 // one JSON value per line (.jsonl)
	FormatYAML  Format = 0x3 // a single YAML document (.yaml, .yml)
)

var formatNames = map[Format]string{
	FormatJSON:  "json",
	FormatJSONL: "jsonl",
	FormatYAML:  "yaml",
}

// Formats returns every supported format in tag order.
func Formats() []Format {
	return []Format{FormatJSON, FormatJSONL, FormatYAML}
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(f))
}

// Extension returns the file extension written when a container of this
// format is decompressed. YAML documents always come back as ".yaml".
func (f Format) Extension() string {
	if name, ok := formatNames[f]; ok {
		return "." + name
	}
	return ""
}

func (f Format) valid() bool {
	_, ok := formatNames[f]
	return ok
}

// ParseFormat maps a format name ("json", "jsonl", "yaml" or "yml") to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "jsonl":
		return FormatJSONL, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Compression identifies the byte-level codec used for the payload.
type Compression uint8

const (
	CompZlib   Compression = 0x1 // deflate in a zlib wrapper
	CompLZMA   Compression = 0x2 // LZMA2 in an xz stream
	CompBrotli Compression = 0x3 // Brotli, tagged "brotl"
	CompZstd   Compression = 0x4 // Zstandard frame
	CompLZ4    Compression = 0x5 // LZ4 frame
)

// DefaultCompression is used when no method is selected.
const DefaultCompression = CompZlib

var compressionNames = map[Compression]string{
	CompZlib:   "zlib",
	CompLZMA:   "lzma",
	CompBrotli: "brotli",
	CompZstd:   "zstd",
	CompLZ4:    "lz4",
}

// Compressions returns every supported compression method in tag order.
func Compressions() []Compression {
	return []Compression{CompZlib, CompLZMA, CompBrotli, CompZstd, CompLZ4}
}

func (c Compression) String() string {
	if name, ok := compressionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(c))
}

func (c Compression) valid() bool {
	_, ok := compressionNames[c]
	return ok
}

// ParseCompression maps a method name such as "brotli" to a Compression.
func ParseCompression(name string) (Compression, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for c, cn := range compressionNames {
		if cn == n {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedCompression, name)
}

// Header is the fixed-width prefix of every container.
type Header struct {
	Format      Format
	Compression Compression
}

// Document is a parsed source document.
//
// Value holds the decoded tree for JSON and YAML. Lines holds the raw JSONL
// lines including their terminators. Source is the original text with
// undecodable UTF-8 sequences dropped; when present it takes precedence
// over Value during canonicalization.
type Document struct {
	Format Format
	Value  any
	Lines  []string
	Source []byte
}
