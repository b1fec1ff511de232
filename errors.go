package hrc

import "errors"

var (
	ErrUnsupportedFormat      = errors.New("hrc: unsupported file format")
	ErrUnknownTag             = errors.New("hrc: unknown header tag")
	ErrUnsupportedCompression = errors.New("hrc: unsupported compression method")
	ErrMalformedDocument      = errors.New("hrc: malformed document")
	ErrDecompression          = errors.New("hrc: decompression failed")
	ErrIO                     = errors.New("hrc: i/o error")
	ErrInvalidHeader          = errors.New("hrc: invalid container header")
	ErrLimitExceeded          = errors.New("hrc: limit exceeded")
	ErrValidation             = errors.New("hrc: validation failed")
)
