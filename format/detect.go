// Package format provides file format detection for the linea pipeline.
package format

import (
	"io"
	"path/filepath"
	"strings"
)

// Format represents a recognized input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// JSON indicates a JSON document, such as a previously written
	// outline file.
	JSON
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case JSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case JSON:
		return ".json"
	default:
		return ""
	}
}

// Detect determines file format from the filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".json":
		return JSON
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading bytes to determine format.
// This is more reliable than extension-based detection: a mislabeled
// file is reported as what it actually is.
// Returns Unknown if the format cannot be determined from the bytes.
func DetectFromMagic(data []byte) Format {
	// Skip leading whitespace; JSON and some PDFs tolerate it
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	data = data[start:]

	if len(data) >= 4 && data[0] == '%' && data[1] == 'P' && data[2] == 'D' && data[3] == 'F' {
		return PDF
	}

	if len(data) >= 1 && (data[0] == '{' || data[0] == '[') {
		return JSON
	}

	return Unknown
}

// DetectFromReader inspects content to determine format.
func DetectFromReader(r io.ReaderAt) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}
