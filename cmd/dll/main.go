// Package main provides C-compatible exports for the hrc library, used by
// desktop front-ends that pick a file and a method.
// Build with: go build -buildmode=c-shared -o hrc.dll
package main

/*
#include <stdlib.h>
#include <stdint.h>

// Result structure for operations that return data
typedef struct {
    char* data;
    int   data_len;
    char* error;
} HrcResult;
*/
import "C"

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"unsafe"

	"github.com/logicossoftware/go-hrc"
	"github.com/logicossoftware/go-hrc/internal/version"
)

func main() {}

// HrcVersion returns the library version string.
// Call HrcFreeString on the result.
//
//export HrcVersion
func HrcVersion() *C.char {
	return C.CString(version.GetFullVersion())
}

// HrcFreeResult frees memory allocated by other Hrc functions.
// Must be called to avoid memory leaks.
//
//export HrcFreeResult
func HrcFreeResult(result C.HrcResult) {
	if result.data != nil {
		C.free(unsafe.Pointer(result.data))
	}
	if result.error != nil {
		C.free(unsafe.Pointer(result.error))
	}
}

// HrcFreeString frees a C string allocated by Go.
//
//export HrcFreeString
func HrcFreeString(s *C.char) {
	if s != nil {
		C.free(unsafe.Pointer(s))
	}
}

func makeResult(data []byte) C.HrcResult {
	var result C.HrcResult
	if len(data) > 0 {
		result.data = (*C.char)(C.CBytes(data))
		result.data_len = C.int(len(data))
	}
	return result
}

func makeError(err error) C.HrcResult {
	var result C.HrcResult
	result.error = C.CString(err.Error())
	return result
}

func makeJSON(v any) C.HrcResult {
	b, err := json.Marshal(v)
	if err != nil {
		return makeError(err)
	}
	return makeResult(b)
}

// HrcCompressFile compresses the JSON, JSONL or YAML file at path into
// "<stem>.hrc" next to it.
// Parameters:
//   - path: source file path
//   - method: compression method name ("zlib", "lzma", "brotli", "zstd",
//     "lz4"); NULL or "" selects zlib
//
// Returns HrcResult with a JSON summary ({"path", "format", "compression",
// "originalSize", "compressedSize", "saved", "savedPercent"}) or error.
// Call HrcFreeResult when done.
//
//export HrcCompressFile
func HrcCompressFile(path *C.char, method *C.char) C.HrcResult {
	comp := hrc.DefaultCompression
	if method != nil {
		if name := C.GoString(method); name != "" {
			var err error
			if comp, err = hrc.ParseCompression(name); err != nil {
				return makeError(err)
			}
		}
	}

	res, err := hrc.CompressFile(C.GoString(path), hrc.WithCompression(comp))
	if err != nil {
		return makeError(err)
	}
	return makeJSON(map[string]any{
		"path":           res.Path,
		"format":         res.Format.String(),
		"compression":    res.Compression.String(),
		"originalSize":   res.OriginalSize,
		"compressedSize": res.CompressedSize,
		"saved":          res.Saved(),
		"savedPercent":   res.SavedPercent(),
	})
}

// HrcDecompressFile restores the document stored in the container at path.
// Returns HrcResult whose data is the path written, or error.
// Call HrcFreeResult when done.
//
//export HrcDecompressFile
func HrcDecompressFile(path *C.char) C.HrcResult {
	out, err := hrc.DecompressFile(C.GoString(path))
	if err != nil {
		return makeError(err)
	}
	return makeResult([]byte(out))
}

// HrcInspect verifies the container at path and returns a JSON summary
// ({"format", "compression", "payloadSize", "canonicalSize"}).
// Call HrcFreeResult when done.
//
//export HrcInspect
func HrcInspect(path *C.char) C.HrcResult {
	f, err := os.Open(C.GoString(path))
	if err != nil {
		return makeError(fmt.Errorf("%w: %w", hrc.ErrIO, err))
	}
	defer f.Close()

	info, err := hrc.Inspect(f)
	if err != nil {
		return makeError(err)
	}
	return makeJSON(map[string]any{
		"format":        info.Header.Format.String(),
		"compression":   info.Header.Compression.String(),
		"payloadSize":   info.PayloadSize,
		"canonicalSize": info.CanonicalSize,
	})
}

// HrcEncode builds a container in memory.
// Parameters:
//   - data: pointer to the document text
//   - dataLen: length of the data
//   - format: format name ("json", "jsonl", "yaml")
//   - method: compression method name; NULL or "" selects zlib
//
// Returns HrcResult with the container bytes or error.
// Call HrcFreeResult when done.
//
//export HrcEncode
func HrcEncode(data *C.char, dataLen C.int, format *C.char, method *C.char) C.HrcResult {
	f, err := hrc.ParseFormat(C.GoString(format))
	if err != nil {
		return makeError(err)
	}
	comp := hrc.DefaultCompression
	if method != nil {
		if name := C.GoString(method); name != "" {
			if comp, err = hrc.ParseCompression(name); err != nil {
				return makeError(err)
			}
		}
	}

	doc, err := hrc.ParseDocument(C.GoBytes(unsafe.Pointer(data), dataLen), f)
	if err != nil {
		return makeError(err)
	}
	var buf bytes.Buffer
	if err := hrc.Encode(&buf, doc, hrc.WithCompression(comp)); err != nil {
		return makeError(err)
	}
	return makeResult(buf.Bytes())
}

// HrcDecode reconstructs the document text held in an in-memory container.
// Returns HrcResult with the text or error. Call HrcFreeResult when done.
//
//export HrcDecode
func HrcDecode(data *C.char, dataLen C.int) C.HrcResult {
	_, text, err := hrc.Decode(bytes.NewReader(C.GoBytes(unsafe.Pointer(data), dataLen)))
	if err != nil {
		return makeError(err)
	}
	return makeResult(text)
}
