package hrc

import (
	"fmt"
	"io"
)

// Decode reads an HRC container from r and returns its header together with
// the reconstructed on-disk text of the original document.
//
// The decoding process:
//  1. Reads and decodes the 10-byte header
//  2. Reads the remaining bytes as the compressed payload
//  3. Decompresses the payload with the method named in the header
//  4. Reconstructs the text for the format named in the header
//
// Decode returns ErrInvalidHeader for a truncated header, ErrUnknownTag for
// tags it does not recognize, ErrDecompression for a corrupt payload,
// ErrMalformedDocument if reconstruction fails and ErrLimitExceeded if a
// size limit (see WithReadLimits) is exceeded.
func Decode(r io.Reader, opts ...ReadOption) (Header, []byte, error) {
	cfg := newReadConfig(opts)
	h, canonical, _, err := decodeCanonical(r, cfg)
	if err != nil {
		return Header{}, nil, err
	}
	text, err := Reconstruct(canonical, h.Format)
	if err != nil {
		return Header{}, nil, err
	}
	return h, text, nil
}

// Info summarizes a container without reconstructing the document.
type Info struct {
	Header        Header
	PayloadSize   int
	CanonicalSize int
}

// Inspect reads the container from r and verifies that its payload
// decompresses.
func Inspect(r io.Reader, opts ...ReadOption) (Info, error) {
	cfg := newReadConfig(opts)
	h, canonical, payloadLen, err := decodeCanonical(r, cfg)
	if err != nil {
		return Info{}, err
	}
	return Info{Header: h, PayloadSize: payloadLen, CanonicalSize: len(canonical)}, nil
}

func decodeCanonical(r io.Reader, cfg readConfig) (Header, []byte, int, error) {
	h, err := readHeader(r)
	if err != nil {
		return Header{}, nil, 0, err
	}
	payload, err := readAll(io.LimitReader(r, int64(cfg.limits.MaxPayloadSize)+1))
	if err != nil {
		return Header{}, nil, 0, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if uint64(len(payload)) > cfg.limits.MaxPayloadSize {
		return Header{}, nil, 0, fmt.Errorf("%w: payload exceeds %d bytes", ErrLimitExceeded, cfg.limits.MaxPayloadSize)
	}
	canonical, err := Decompress(payload, h.Compression, cfg.limits.MaxUncompressed)
	if err != nil {
		return Header{}, nil, 0, err
	}
	cfg.logger.Debug("decompressed container",
		"format", h.Format.String(),
		"compression", h.Compression.String(),
		"payload_bytes", len(payload),
		"canonical_bytes", len(canonical))
	return h, canonical, len(payload), nil
}
