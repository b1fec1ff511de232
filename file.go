package hrc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Function variables for testing injection.
var (
	tempWrite = func(f *os.File, p []byte) (int, error) { return f.Write(p) }
	tempSync  = func(f *os.File) error { return f.Sync() }
)

const outputPerm = 0o644

// CompressResult describes a container written by CompressFile.
type CompressResult struct {
	Path           string
	Format         Format
	Compression    Compression
	OriginalSize   int64
	CompressedSize int64
}

// Saved is the number of bytes the container saves over the source file.
// It is negative when the container is larger.
func (r CompressResult) Saved() int64 {
	return r.OriginalSize - r.CompressedSize
}

// SavedPercent is Saved as a percentage of the source size.
func (r CompressResult) SavedPercent() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return float64(r.Saved()) / float64(r.OriginalSize) * 100
}

// CompressFile compresses the document at path into "<stem>.hrc" next to it,
// where stem is path without its final extension.
//
// The container is built in memory and written through a temporary file
// that is renamed into place, so a failure never leaves a partial output.
func CompressFile(path string, opts ...WriteOption) (CompressResult, error) {
	cfg := newWriteConfig(opts)
	f, err := DetectFormat(path)
	if err != nil {
		return CompressResult{}, err
	}
	data, err := readFileLimited(path, cfg.limits.MaxSourceSize)
	if err != nil {
		return CompressResult{}, err
	}
	doc, err := parseDocument(data, f, cfg)
	if err != nil {
		return CompressResult{}, fmt.Errorf("%s: %w", path, err)
	}
	container, err := encodeContainer(doc, cfg)
	if err != nil {
		return CompressResult{}, fmt.Errorf("%s: %w", path, err)
	}
	out := replaceExt(path, ContainerExt)
	if err := writeFileAtomic(out, container, outputPerm); err != nil {
		return CompressResult{}, err
	}
	res := CompressResult{
		Path:           out,
		Format:         f,
		Compression:    cfg.compression,
		OriginalSize:   int64(len(data)),
		CompressedSize: int64(len(container)),
	}
	cfg.logger.Info("wrote container",
		"path", out,
		"format", f.String(),
		"compression", cfg.compression.String(),
		"original_bytes", res.OriginalSize,
		"compressed_bytes", res.CompressedSize)
	return res, nil
}

// DecompressFile reconstructs the document stored in the container at path
// and writes it to "<stem><ext>", where ext comes from the format recorded
// in the header. It returns the path written.
//
// Like CompressFile, the output is written through a temporary file so a
// failed decompression leaves nothing behind.
func DecompressFile(path string, opts ...ReadOption) (string, error) {
	cfg := newReadConfig(opts)
	data, err := readFileLimited(path, cfg.limits.MaxPayloadSize+HeaderSize)
	if err != nil {
		return "", err
	}
	h, text, err := Decode(bytes.NewReader(data), opts...)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	out := replaceExt(path, h.Format.Extension())
	if err := writeFileAtomic(out, text, outputPerm); err != nil {
		return "", err
	}
	cfg.logger.Info("wrote document",
		"path", out,
		"format", h.Format.String(),
		"compression", h.Compression.String(),
		"bytes", len(text))
	return out, nil
}

// replaceExt swaps the final extension of path for ext.
func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// readFileLimited reads the whole file, refusing files larger than limit.
func readFileLimited(path string, limit uint64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()
	b, err := readAll(io.LimitReader(f, int64(limit)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, path, err)
	}
	if uint64(len(b)) > limit {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", ErrLimitExceeded, path, limit)
	}
	return b, nil
}

// writeFileAtomic writes data to a temporary file in the destination
// directory and renames it over path. The temporary file is removed on
// every failure.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = tempWrite(tmp, data); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, tmp.Name(), err)
	}
	if err = tempSync(tmp); err != nil {
		return fmt.Errorf("%w: sync %s: %w", ErrIO, tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrIO, tmp.Name(), err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}
