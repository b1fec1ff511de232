package hrc

import (
	"bytes"
	"fmt"
	"io"
)

// Encode writes doc to w as an HRC container.
//
// The document is validated and canonicalized, the canonical text is
// compressed, and the header plus payload are written in a single call.
// Nothing reaches w if any earlier step fails.
//
// By default, Encode uses zlib (CompZlib). Use WriteOption functions to
// customize this behavior:
//   - WithCompression(comp): change the payload codec
//   - WithWriteLimits(l): set custom size limits
//   - WithLogger(l): receive debug records for each stage
func Encode(w io.Writer, doc *Document, opts ...WriteOption) error {
	cfg := newWriteConfig(opts)
	b, err := encodeContainer(doc, cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// encodeContainer builds the complete container in memory.
func encodeContainer(doc *Document, cfg writeConfig) ([]byte, error) {
	if err := validateDocument(doc, cfg.limits); err != nil {
		return nil, err
	}
	if !cfg.compression.valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, cfg.compression)
	}
	canonical, err := Canonicalize(doc)
	if err != nil {
		return nil, err
	}
	payload, err := Compress(canonical, cfg.compression)
	if err != nil {
		return nil, err
	}
	if uint64(len(payload)) > cfg.limits.MaxPayloadSize {
		return nil, fmt.Errorf("%w: payload is %d bytes", ErrLimitExceeded, len(payload))
	}
	cfg.logger.Debug("compressed document",
		"format", doc.Format.String(),
		"compression", cfg.compression.String(),
		"canonical_bytes", len(canonical),
		"payload_bytes", len(payload))

	var buf bytes.Buffer
	buf.Grow(HeaderSize + len(payload))
	if err := writeHeader(&buf, Header{Format: doc.Format, Compression: cfg.compression}); err != nil {
		return nil, err
	}
	buf.Write(payload)
	return buf.Bytes(), nil
}
