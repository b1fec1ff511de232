package hrc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Canonicalize renders doc as the UTF-8 text that gets compressed.
//
//   - JSON: compact form. Source is compacted in place so key order is kept;
//     without Source, Value is marshalled.
//   - JSONL: every line with trailing whitespace removed, joined by "\n".
//   - YAML: Source unchanged, so the document keeps its own syntax. Without
//     Source, Value is emitted with 2-space indentation.
func Canonicalize(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document is nil", ErrValidation)
	}
	switch doc.Format {
	case FormatJSON:
		return canonicalJSON(doc)
	case FormatJSONL:
		return canonicalJSONL(doc), nil
	case FormatYAML:
		return canonicalYAML(doc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, doc.Format)
	}
}

func canonicalJSON(doc *Document) ([]byte, error) {
	if len(doc.Source) > 0 {
		var buf bytes.Buffer
		if err := json.Compact(&buf, doc.Source); err != nil {
			return nil, fmt.Errorf("%w: json: %v", ErrMalformedDocument, err)
		}
		return buf.Bytes(), nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc.Value); err != nil {
		return nil, fmt.Errorf("%w: json: %v", ErrMalformedDocument, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func canonicalJSONL(doc *Document) []byte {
	lines := doc.Lines
	if lines == nil {
		lines = splitLines(string(doc.Source))
	}
	trimmed := make([]string, len(lines))
	for i, line := range lines {
		trimmed[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return []byte(strings.Join(trimmed, "\n"))
}

func canonicalYAML(doc *Document) ([]byte, error) {
	if len(doc.Source) > 0 || doc.Value == nil {
		return doc.Source, nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc.Value); err != nil {
		return nil, fmt.Errorf("%w: yaml: %v", ErrMalformedDocument, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("%w: yaml: %v", ErrMalformedDocument, err)
	}
	return buf.Bytes(), nil
}

// Reconstruct turns canonical text back into the on-disk representation of
// format f.
//
//   - JSON: re-indented with two spaces. This is a normalization; the
//     result is semantically equal to the source, not byte identical.
//   - JSONL: every line written followed by "\n".
//   - YAML: unchanged.
func Reconstruct(canonical []byte, f Format) ([]byte, error) {
	if !utf8.Valid(canonical) {
		return nil, fmt.Errorf("%w: canonical text is not valid UTF-8", ErrMalformedDocument)
	}
	switch f {
	case FormatJSON:
		if !json.Valid(canonical) {
			return nil, fmt.Errorf("%w: json: canonical text does not parse", ErrMalformedDocument)
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, canonical, "", "  "); err != nil {
			return nil, fmt.Errorf("%w: json: %v", ErrMalformedDocument, err)
		}
		return buf.Bytes(), nil
	case FormatJSONL:
		if len(canonical) == 0 {
			return []byte{}, nil
		}
		var b strings.Builder
		b.Grow(len(canonical) + 1)
		for _, line := range strings.Split(string(canonical), "\n") {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		return []byte(b.String()), nil
	case FormatYAML:
		return canonical, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
}
