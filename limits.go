package hrc

import "math"

// Limits caps the sizes handled while encoding and decoding. Zero fields
// take the defaults; larger values are clamped to maxLimit.
type Limits struct {
	MaxSourceSize   uint64 // bytes read from a source document
	MaxPayloadSize  uint64 // compressed payload length as stored in file
	MaxUncompressed uint64 // canonical text after decompression
}

// maxLimit is the largest usable limit. Readers ask for limit+1 bytes and
// file reads add HeaderSize, both as int64.
const maxLimit = math.MaxInt64 - HeaderSize - 1

func defaultLimits() Limits {
	return Limits{
		MaxSourceSize:   512 << 20, // 512 MiB
		MaxPayloadSize:  1 << 30,   // 1 GiB stored payload cap
		MaxUncompressed: 1 << 30,   // 1 GiB
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxSourceSize == 0 {
		l.MaxSourceSize = d.MaxSourceSize
	}
	if l.MaxPayloadSize == 0 {
		l.MaxPayloadSize = d.MaxPayloadSize
	}
	if l.MaxUncompressed == 0 {
		l.MaxUncompressed = d.MaxUncompressed
	}
	l.MaxSourceSize = clampLimit(l.MaxSourceSize)
	l.MaxPayloadSize = clampLimit(l.MaxPayloadSize)
	l.MaxUncompressed = clampLimit(l.MaxUncompressed)
	return l
}

func clampLimit(v uint64) uint64 {
	return min(v, maxLimit)
}
