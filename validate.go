package hrc

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

func validateDocument(doc *Document, limits Limits) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrValidation)
	}
	if !doc.Format.valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, doc.Format)
	}
	if uint64(len(doc.Source)) > limits.MaxSourceSize {
		return fmt.Errorf("%w: source is %d bytes", ErrLimitExceeded, len(doc.Source))
	}
	if !utf8.Valid(doc.Source) {
		return fmt.Errorf("%w: source is not valid UTF-8", ErrValidation)
	}
	if doc.Format == FormatJSONL {
		for i, line := range doc.Lines {
			if err := validateLine(line); err != nil {
				return fmt.Errorf("%w: line %d: %v", ErrValidation, i+1, err)
			}
		}
	}
	return nil
}

// validateLine rejects lines that would not survive a split on "\n".
func validateLine(line string) error {
	if !utf8.ValidString(line) {
		return fmt.Errorf("not valid UTF-8")
	}
	if i := strings.IndexByte(line, '\n'); i >= 0 && i != len(line)-1 {
		return fmt.Errorf("embedded newline at offset %d", i)
	}
	return nil
}
