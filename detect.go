package hrc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// DetectFormat maps a file name to a Format using its final extension.
func DetectFormat(name string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".json":
		return FormatJSON, nil
	case ".jsonl":
		return FormatJSONL, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ParseDocument parses data as a document of format f.
//
// Undecodable UTF-8 sequences are dropped before parsing. JSON is decoded
// into a tree whose numbers are json.Number values; JSONL is split into raw
// lines that are not decoded individually; YAML is decoded with yaml.v3,
// which never constructs arbitrary types. Parse failures are reported as
// ErrMalformedDocument.
func ParseDocument(data []byte, f Format, opts ...WriteOption) (*Document, error) {
	return parseDocument(data, f, newWriteConfig(opts))
}

// LoadDocument reads, detects and parses the file at path.
func LoadDocument(path string, opts ...WriteOption) (*Document, error) {
	cfg := newWriteConfig(opts)
	f, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := readFileLimited(path, cfg.limits.MaxSourceSize)
	if err != nil {
		return nil, err
	}
	return parseDocument(data, f, cfg)
}

func parseDocument(data []byte, f Format, cfg writeConfig) (*Document, error) {
	text := bytes.ToValidUTF8(data, nil)
	switch f {
	case FormatJSON:
		if cfg.lenientJSON {
			text = jsonc.ToJSON(text)
		}
		v, err := parseJSON(text)
		if err != nil {
			return nil, err
		}
		return &Document{Format: f, Value: v, Source: text}, nil
	case FormatJSONL:
		return &Document{Format: f, Lines: splitLines(string(text)), Source: text}, nil
	case FormatYAML:
		v, err := parseYAML(text)
		if err != nil {
			return nil, err
		}
		return &Document{Format: f, Value: v, Source: text}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
}

func parseJSON(text []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(text))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: json: %v", ErrMalformedDocument, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: json: trailing data after top-level value", ErrMalformedDocument)
	}
	return v, nil
}

// parseYAML decodes exactly one YAML document. An empty stream is a valid
// empty document.
func parseYAML(text []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(text))
	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: yaml: %v", ErrMalformedDocument, err)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, fmt.Errorf("%w: yaml: %v", ErrMalformedDocument, err)
		}
		return nil, fmt.Errorf("%w: yaml: expected a single document", ErrMalformedDocument)
	}
	return v, nil
}

// splitLines splits s the way a line reader would: every line keeps its
// "\n" terminator and there is no empty trailing element.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
