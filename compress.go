package hrc

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

// Function variables for testing injection.
var (
	newZstdWriter = func() (*zstd.Encoder, error) { return zstd.NewWriter(nil, zstd.WithZeroFrames(true)) }
	newZstdReader = func() (*zstd.Decoder, error) { return zstd.NewReader(nil, zstd.WithDecodeBuffersBelow(0)) }
	newXZWriter   = func(w io.Writer) (*xz.Writer, error) { return xz.NewWriter(w) }
	readAll       = io.ReadAll
	zlibClose     = func(w *zlib.Writer) error { return w.Close() }
	xzClose       = func(w *xz.Writer) error { return w.Close() }
	lz4Close      = func(w *lz4.Writer) error { return w.Close() }
	brotliClose   = func(w *brotli.Writer) error { return w.Close() }
	brotliWrite   = func(w *brotli.Writer, p []byte) (int, error) { return w.Write(p) }
)

// xzMagic opens every xz stream. Payloads without it are read as legacy
// .lzma streams.
var xzMagic = []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}

// Compress compresses in with the given method. Every method is
// deterministic: equal input yields equal output.
func Compress(in []byte, comp Compression) ([]byte, error) {
	switch comp {
	case CompZlib:
		return zlibCompress(in)
	case CompLZMA:
		return lzmaCompress(in)
	case CompBrotli:
		return brotliCompress(in)
	case CompZstd:
		return zstdCompress(in)
	case CompLZ4:
		return lz4Compress(in)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, comp)
	}
}

// Decompress reverses Compress. Output longer than maxOut bytes fails with
// ErrLimitExceeded; a zero maxOut applies the default limit. Codec failures
// are reported as ErrDecompression wrapping the underlying error. Every
// method writes at least a frame header, so an empty payload is corrupt.
func Decompress(in []byte, comp Compression, maxOut uint64) ([]byte, error) {
	if maxOut == 0 {
		maxOut = defaultLimits().MaxUncompressed
	}
	maxOut = clampLimit(maxOut)
	if !comp.valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, comp)
	}
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: %s: empty payload", ErrDecompression, comp)
	}
	var out []byte
	var err error
	switch comp {
	case CompZlib:
		out, err = zlibDecompress(in, maxOut)
	case CompLZMA:
		out, err = lzmaDecompress(in, maxOut)
	case CompBrotli:
		out, err = brotliDecompress(in, maxOut)
	case CompZstd:
		out, err = zstdDecompress(in, maxOut)
	case CompLZ4:
		out, err = lz4Decompress(in, maxOut)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, comp)
	}
	if err != nil {
		if errors.Is(err, ErrLimitExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrDecompression, comp, err)
	}
	if out == nil {
		out = []byte{}
	}
	return out, nil
}

// readLimited drains r, failing once more than limit bytes come out.
func readLimited(r io.Reader, limit uint64, codec string) ([]byte, error) {
	b, err := readAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, err
	}
	if uint64(len(b)) > limit {
		return nil, fmt.Errorf("%w: %s expanded beyond %d bytes", ErrLimitExceeded, codec, limit)
	}
	return b, nil
}

// zlibCompress compresses in using deflate inside a zlib wrapper.
func zlibCompress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := zlibCompressTo(&buf, in); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func zlibCompressTo(w io.Writer, in []byte) error {
	zw := zlib.NewWriter(w)
	if _, err := zw.Write(in); err != nil {
		_ = zlibClose(zw)
		return err
	}
	return zlibClose(zw)
}

// zlibDecompress inflates a zlib stream, verifying its Adler-32 trailer.
func zlibDecompress(in []byte, limit uint64) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(in))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return readLimited(r, limit, "zlib")
}

// lzmaCompress writes in as a single xz stream.
func lzmaCompress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := lzmaCompressTo(&buf, in); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func lzmaCompressTo(w io.Writer, in []byte) error {
	xw, err := newXZWriter(w)
	if err != nil {
		return err
	}
	if _, err := xw.Write(in); err != nil {
		_ = xzClose(xw)
		return err
	}
	return xzClose(xw)
}

// lzmaDecompress reads an xz stream, or a legacy .lzma stream when the xz
// magic is absent.
func lzmaDecompress(in []byte, limit uint64) ([]byte, error) {
	if bytes.HasPrefix(in, xzMagic) {
		r, err := xz.NewReader(bytes.NewReader(in))
		if err != nil {
			return nil, err
		}
		return readLimited(r, limit, "xz")
	}
	r, err := lzma.NewReader(bytes.NewReader(in))
	if err != nil {
		return nil, err
	}
	return readLimited(r, limit, "lzma")
}

// brotliCompress compresses in using the Brotli algorithm.
func brotliCompress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := brotliCompressTo(&buf, in); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// brotliCompressTo writes Brotli-compressed data to w.
func brotliCompressTo(w io.Writer, in []byte) error {
	bw := brotli.NewWriter(w)
	if _, err := brotliWrite(bw, in); err != nil {
		_ = brotliClose(bw)
		return err
	}
	return brotliClose(bw)
}

func brotliDecompress(in []byte, limit uint64) ([]byte, error) {
	return readLimited(brotli.NewReader(bytes.NewReader(in)), limit, "brotli")
}

// zstdCompress compresses in using the Zstandard algorithm. Empty input
// still produces a frame so the payload is never zero length.
func zstdCompress(in []byte) ([]byte, error) {
	enc, err := newZstdWriter()
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(in, nil), nil
}

func zstdDecompress(in []byte, limit uint64) ([]byte, error) {
	dec, err := newZstdReader()
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	if err := dec.Reset(bytes.NewReader(in)); err != nil {
		return nil, err
	}
	return readLimited(dec, limit, "zstd")
}

// lz4Compress compresses in as an LZ4 frame.
func lz4Compress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := lz4CompressTo(&buf, in); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func lz4CompressTo(w io.Writer, in []byte) error {
	zw := lz4.NewWriter(w)
	if _, err := zw.Write(in); err != nil {
		_ = lz4Close(zw)
		return err
	}
	return lz4Close(zw)
}

// lz4Decompress reads an LZ4 frame.
func lz4Decompress(in []byte, limit uint64) ([]byte, error) {
	return readLimited(lz4.NewReader(bytes.NewReader(in)), limit, "lz4")
}
