package hrc

import (
	"bytes"
	"fmt"
	"io"
)

// tagWidth is the width of each ASCII header slot. Encode and decode share it.
const tagWidth = 5

// HeaderSize is the number of bytes preceding the compressed payload.
const HeaderSize = 2 * tagWidth

// renderTag left-justifies name in a tagWidth slot, padding with spaces and
// truncating longer names ("brotli" becomes "brotl").
func renderTag(name string) [tagWidth]byte {
	var slot [tagWidth]byte
	for i := range slot {
		slot[i] = ' '
	}
	copy(slot[:], name)
	return slot
}

func trimTag(slot []byte) string {
	return string(bytes.ToLower(bytes.TrimRight(slot, " \x00")))
}

// matchTag finds the name whose slot rendering equals the trimmed slot text.
func matchTag[T comparable](text string, names map[T]string) (T, bool) {
	for v, name := range names {
		r := renderTag(name)
		if trimTag(r[:]) == text {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// EncodeHeader renders h into its fixed-width byte form.
func EncodeHeader(h Header) ([HeaderSize]byte, error) {
	var buf [HeaderSize]byte
	if !h.Format.valid() {
		return buf, fmt.Errorf("%w: format %s", ErrUnknownTag, h.Format)
	}
	if !h.Compression.valid() {
		return buf, fmt.Errorf("%w: compression %s", ErrUnknownTag, h.Compression)
	}
	f := renderTag(h.Format.String())
	c := renderTag(h.Compression.String())
	copy(buf[:tagWidth], f[:])
	copy(buf[tagWidth:], c[:])
	return buf, nil
}

// DecodeHeader parses the first HeaderSize bytes of b.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidHeader, HeaderSize, len(b))
	}
	ft := trimTag(b[:tagWidth])
	ct := trimTag(b[tagWidth:HeaderSize])
	f, ok := matchTag(ft, formatNames)
	if !ok {
		return Header{}, fmt.Errorf("%w: format %q", ErrUnknownTag, ft)
	}
	c, ok := matchTag(ct, compressionNames)
	if !ok {
		return Header{}, fmt.Errorf("%w: compression %q", ErrUnknownTag, ct)
	}
	return Header{Format: f, Compression: c}, nil
}

func readHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Header{}, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
		}
		return Header{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return DecodeHeader(buf[:])
}

func writeHeader(w io.Writer, h Header) error {
	buf, err := EncodeHeader(h)
	if err != nil {
		return err
	}
	_, err = w.Write(buf[:])
	return err
}
