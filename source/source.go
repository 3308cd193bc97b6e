// Package source discovers PDF documents for batch processing.
//
// A Source yields documents over a channel so traversal stays lazy:
// a filesystem walk, an S3 bucket listing, or a web crawl produces
// items as it finds them, and the consumer decides how many workers
// drain the channel. All sources honor context cancellation.
package source

import (
	"context"

	"github.com/bmatcuk/doublestar/v4"
)

// Item is one discovered document: its path relative to the source
// root, the bytes of the file, and where it came from.
type Item struct {
	// Path is the document's path relative to the source root. Output
	// file names derive from it.
	Path string

	// SourceURL is the absolute location of the document, when the
	// source has one (S3 object URL, crawled page URL).
	SourceURL string

	// Content is the raw bytes of the document.
	Content []byte

	// Metadata carries source-specific details (sizes, timestamps,
	// bucket keys). Informational only.
	Metadata map[string]any
}

// Source yields documents from some location.
type Source interface {
	// Type identifies the source kind ("filesystem", "s3", "web").
	Type() string

	// Traverse walks the source and yields items until exhaustion or
	// cancellation. Both channels close when traversal ends; at most
	// one error is sent.
	Traverse(ctx context.Context) (<-chan Item, <-chan error)
}

// matchesAnyPattern reports whether path matches any of the glob
// patterns. Invalid patterns never match; they are caught by
// configuration validation before a source is built.
func matchesAnyPattern(path string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// ValidatePatterns checks that every glob pattern is well-formed.
func ValidatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return &PatternError{Pattern: pattern}
		}
	}
	return nil
}

// PatternError reports a malformed glob pattern.
type PatternError struct {
	Pattern string
}

func (e *PatternError) Error() string {
	return "invalid glob pattern " + e.Pattern
}
