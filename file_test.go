package hrc

import (
	"bytes"
	"encoding/json"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, content, 0o644))
	return p
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestCompressFile_JSONScenario(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "example.json", []byte(`{"a":1}`))

	res, err := CompressFile(src)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "example.hrc"), res.Path)
	require.Equal(t, FormatJSON, res.Format)
	require.Equal(t, CompZlib, res.Compression)
	require.EqualValues(t, 7, res.OriginalSize)

	container, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	require.Equal(t, "json zlib ", string(container[:HeaderSize]))
	require.EqualValues(t, len(container), res.CompressedSize)

	require.NoError(t, os.Remove(src))
	out, err := DecompressFile(res.Path)
	require.NoError(t, err)
	require.Equal(t, src, out)

	text, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "{\n  \"a\": 1\n}", string(text))
}

func TestFileRoundTrip_AllFormatsAndMethods(t *testing.T) {
	sources := map[string][]byte{
		"doc.json":  sampleSources[FormatJSON],
		"doc.jsonl": sampleSources[FormatJSONL],
		"doc.yml":   sampleSources[FormatYAML],
	}
	for name, content := range sources {
		for _, comp := range Compressions() {
			t.Run(name+"/"+comp.String(), func(t *testing.T) {
				dir := t.TempDir()
				src := writeSource(t, dir, name, content)

				res, err := CompressFile(src, WithCompression(comp))
				require.NoError(t, err)
				require.Equal(t, filepath.Join(dir, "doc.hrc"), res.Path)

				out, err := DecompressFile(res.Path)
				require.NoError(t, err)
				text, err := os.ReadFile(out)
				require.NoError(t, err)

				switch res.Format {
				case FormatJSON:
					require.Equal(t, filepath.Join(dir, "doc.json"), out)
					requireJSONEqual(t, content, text)
				case FormatJSONL:
					require.Equal(t, filepath.Join(dir, "doc.jsonl"), out)
					require.Equal(t, "{\"x\":1}\n{\"x\":2}\n{\"y\":\"z\"}\n", string(text))
				case FormatYAML:
					require.Equal(t, filepath.Join(dir, "doc.yaml"), out)
					require.Equal(t, content, text)
				}
			})
		}
	}
}

func TestFileRoundTrip_HugeLimits(t *testing.T) {
	dir := t.TempDir()
	content := []byte("a: 1\nb: [x, y]\n")
	src := writeSource(t, dir, "c.yaml", content)
	huge := Limits{MaxSourceSize: math.MaxUint64, MaxPayloadSize: math.MaxUint64, MaxUncompressed: math.MaxUint64}

	res, err := CompressFile(src, WithWriteLimits(huge))
	require.NoError(t, err)
	require.EqualValues(t, len(content), res.OriginalSize)

	require.NoError(t, os.Remove(src))
	out, err := DecompressFile(res.Path, WithReadLimits(huge))
	require.NoError(t, err)
	text, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, content, text)
}

func TestCompressFile_StemReplacesFinalExtension(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "archive.v1.jsonl", []byte("a\n"))
	res, err := CompressFile(src)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "archive.v1.hrc"), res.Path)
}

func TestCompressFile_UnsupportedFormatWritesNothing(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "notes.txt", []byte("hello"))
	_, err := CompressFile(src)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	require.Equal(t, []string{"notes.txt"}, dirEntries(t, dir))
}

func TestCompressFile_MalformedSourceWritesNothing(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "broken.json", []byte(`{"a":`))
	_, err := CompressFile(src)
	require.ErrorIs(t, err, ErrMalformedDocument)
	require.Equal(t, []string{"broken.json"}, dirEntries(t, dir))
}

func TestCompressFile_MissingSource(t *testing.T) {
	_, err := CompressFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, ErrIO)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestCompressFile_WriteFailureLeavesNoFiles(t *testing.T) {
	orig := tempWrite
	tempWrite = func(*os.File, []byte) (int, error) { return 0, io.ErrShortWrite }
	defer func() { tempWrite = orig }()

	dir := t.TempDir()
	src := writeSource(t, dir, "example.json", []byte(`{"a":1}`))
	_, err := CompressFile(src)
	require.ErrorIs(t, err, ErrIO)
	require.ErrorIs(t, err, io.ErrShortWrite)
	require.Equal(t, []string{"example.json"}, dirEntries(t, dir))
}

func TestCompressFile_SyncFailureLeavesNoFiles(t *testing.T) {
	orig := tempSync
	tempSync = func(*os.File) error { return io.ErrClosedPipe }
	defer func() { tempSync = orig }()

	dir := t.TempDir()
	src := writeSource(t, dir, "example.yaml", []byte("a: 1\n"))
	_, err := CompressFile(src)
	require.ErrorIs(t, err, ErrIO)
	require.Equal(t, []string{"example.yaml"}, dirEntries(t, dir))
}

func TestDecompressFile_CorruptContainerWritesNothing(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "example.json", []byte(`{"a":1}`))
	res, err := CompressFile(src)
	require.NoError(t, err)
	require.NoError(t, os.Remove(src))

	b, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	b[len(b)-1] ^= 0xFF
	require.NoError(t, os.WriteFile(res.Path, b, 0o644))

	_, err = DecompressFile(res.Path)
	require.ErrorIs(t, err, ErrDecompression)
	require.Equal(t, []string{"example.hrc"}, dirEntries(t, dir))
}

func TestDecompressFile_Failures(t *testing.T) {
	dir := t.TempDir()
	_, err := DecompressFile(filepath.Join(dir, "missing.hrc"))
	require.ErrorIs(t, err, ErrIO)

	short := writeSource(t, dir, "short.hrc", []byte("json"))
	_, err = DecompressFile(short)
	require.ErrorIs(t, err, ErrInvalidHeader)

	unknown := writeSource(t, dir, "unknown.hrc", []byte("csv  zlib "))
	_, err = DecompressFile(unknown)
	require.ErrorIs(t, err, ErrUnknownTag)
	require.Equal(t, []string{"short.hrc", "unknown.hrc"}, dirEntries(t, dir))
}

func TestCompressResult_Savings(t *testing.T) {
	r := CompressResult{OriginalSize: 200, CompressedSize: 50}
	require.EqualValues(t, 150, r.Saved())
	require.InDelta(t, 75.0, r.SavedPercent(), 1e-9)

	require.Zero(t, CompressResult{}.SavedPercent())
	require.Negative(t, CompressResult{OriginalSize: 5, CompressedSize: 20}.Saved())
}

func TestFileOperations_Logging(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	dir := t.TempDir()
	src := writeSource(t, dir, "example.jsonl", []byte("{\"x\":1}\n"))
	res, err := CompressFile(src, WithLogger(logger), WithCompression(CompZstd))
	require.NoError(t, err)
	_, err = DecompressFile(res.Path, WithReadLogger(logger))
	require.NoError(t, err)

	var messages []string
	dec := json.NewDecoder(&logs)
	for dec.More() {
		var rec map[string]any
		require.NoError(t, dec.Decode(&rec))
		messages = append(messages, rec["msg"].(string))
	}
	require.Equal(t, []string{"compressed document", "wrote container", "decompressed container", "wrote document"}, messages)
}
