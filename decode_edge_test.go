package hrc

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"
	"testing/iotest"
)

func buildContainer(t *testing.T, header string, canonical []byte, comp Compression) []byte {
	t.Helper()
	payload, err := Compress(canonical, comp)
	if err != nil {
		t.Fatal(err)
	}
	return append([]byte(header), payload...)
}

func TestDecode_TruncatedHeader(t *testing.T) {
	for _, in := range []string{"", "json ", "json zlib"} {
		if _, _, err := Decode(bytes.NewReader([]byte(in))); !errors.Is(err, ErrInvalidHeader) {
			t.Fatalf("%q: expected ErrInvalidHeader, got %v", in, err)
		}
	}
}

func TestDecode_UnknownTags(t *testing.T) {
	b := buildContainer(t, "toml zlib ", []byte("a = 1"), CompZlib)
	if _, _, err := Decode(bytes.NewReader(b)); !errors.Is(err, ErrUnknownTag) {
		t.Fatalf("expected ErrUnknownTag, got %v", err)
	}
	b = buildContainer(t, "json gzip ", []byte("{}"), CompZlib)
	if _, _, err := Decode(bytes.NewReader(b)); !errors.Is(err, ErrUnknownTag) {
		t.Fatalf("expected ErrUnknownTag, got %v", err)
	}
}

func TestDecode_CorruptPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, sampleDoc(t, FormatJSON)); err != nil {
		t.Fatal(err)
	}
	b := buf.Bytes()
	b[len(b)-1] ^= 0xFF
	if _, _, err := Decode(bytes.NewReader(b)); !errors.Is(err, ErrDecompression) {
		t.Fatalf("expected ErrDecompression, got %v", err)
	}
}

func TestDecode_MethodMismatch(t *testing.T) {
	// zlib payload labelled as brotli
	b := buildContainer(t, "json brotl", []byte(`{"a":1}`), CompZlib)
	if _, _, err := Decode(bytes.NewReader(b)); err == nil {
		t.Fatal("expected error")
	}
}

func TestDecode_MalformedCanonicalJSON(t *testing.T) {
	b := buildContainer(t, "json zlib ", []byte(`{"a":`), CompZlib)
	if _, _, err := Decode(bytes.NewReader(b)); !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument, got %v", err)
	}
}

func TestDecode_InvalidUTF8Canonical(t *testing.T) {
	b := buildContainer(t, "yaml lzma ", []byte("a: \xff\xfe\n"), CompLZMA)
	if _, _, err := Decode(bytes.NewReader(b)); !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument, got %v", err)
	}
}

func TestDecode_Limits(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, sampleDoc(t, FormatYAML)); err != nil {
		t.Fatal(err)
	}
	b := buf.Bytes()
	if _, _, err := Decode(bytes.NewReader(b), WithReadLimits(Limits{MaxPayloadSize: 1})); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
	if _, _, err := Decode(bytes.NewReader(b), WithReadLimits(Limits{MaxUncompressed: 8})); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
}

func TestDecode_ReaderError(t *testing.T) {
	boom := errors.New("boom")
	r := io.MultiReader(bytes.NewReader([]byte("json zlib ")), iotest.ErrReader(boom))
	_, _, err := Decode(r)
	if !errors.Is(err, ErrIO) || !errors.Is(err, boom) {
		t.Fatalf("expected ErrIO wrapping boom, got %v", err)
	}

	if _, _, err := Decode(iotest.ErrReader(boom)); !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
}

func TestDecode_EmptyDocuments(t *testing.T) {
	// YAML and JSONL documents may be empty.
	for _, f := range []Format{FormatYAML, FormatJSONL} {
		doc, err := ParseDocument(nil, f)
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		if err := Encode(&buf, doc, WithCompression(CompLZ4)); err != nil {
			t.Fatal(err)
		}
		_, text, err := Decode(&buf)
		if err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		if len(text) != 0 {
			t.Fatalf("%s: expected empty text, got %q", f, text)
		}
	}
}

func TestDecode_HeaderOnlyContainer(t *testing.T) {
	for _, comp := range Compressions() {
		var buf bytes.Buffer
		if err := Encode(&buf, sampleDoc(t, FormatYAML), WithCompression(comp)); err != nil {
			t.Fatal(err)
		}
		headerOnly := buf.Bytes()[:HeaderSize]
		if _, _, err := Decode(bytes.NewReader(headerOnly)); !errors.Is(err, ErrDecompression) {
			t.Fatalf("%s: expected ErrDecompression, got %v", comp, err)
		}
		if _, err := Inspect(bytes.NewReader(headerOnly)); !errors.Is(err, ErrDecompression) {
			t.Fatalf("%s: Inspect: expected ErrDecompression, got %v", comp, err)
		}
	}
}

func TestDecode_HugeReadLimits(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, sampleDoc(t, FormatYAML)); err != nil {
		t.Fatal(err)
	}
	huge := Limits{MaxSourceSize: math.MaxUint64, MaxPayloadSize: math.MaxUint64, MaxUncompressed: math.MaxUint64}
	_, text, err := Decode(bytes.NewReader(buf.Bytes()), WithReadLimits(huge))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(sampleSources[FormatYAML], text) {
		t.Fatalf("got %q", text)
	}
}
