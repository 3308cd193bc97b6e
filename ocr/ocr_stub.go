//go:build !ocr

// Package ocr recovers text from page scans of image-only PDFs. The
// batch driver uses it to read a title line when a document yields no
// extractable text.
//
// This is the stub implementation used when the "ocr" build tag is
// not set; every operation returns ErrNotEnabled and the batch driver
// degrades to the identifier-derived title. To enable recognition,
// rebuild with the tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import "errors"

// ErrNotEnabled is returned when OCR functions are called but OCR
// support was not compiled in. Rebuild with -tags ocr to enable it.
var ErrNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Client is a stub OCR client that returns ErrNotEnabled for all
// operations.
type Client struct{}

// New returns ErrNotEnabled.
func New() (*Client, error) {
	return nil, ErrNotEnabled
}

// Close is a no-op for the stub client. Safe on a nil client.
func (c *Client) Close() error {
	return nil
}

// RecognizeImage returns ErrNotEnabled.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	return "", ErrNotEnabled
}

// SetLanguage returns ErrNotEnabled.
func (c *Client) SetLanguage(lang string) error {
	return ErrNotEnabled
}
