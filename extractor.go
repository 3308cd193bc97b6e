package linea

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tsawler/linea/layout"
	"github.com/tsawler/linea/model"
	"github.com/tsawler/linea/reader"
)

// Extractor provides a fluent interface for extracting the heading
// outline of one PDF. Each configuration method returns a new
// Extractor instance, making chains safe to fork and reuse.
type Extractor struct {
	// Source
	filename string
	data     []byte

	// Document lifecycle
	doc       *reader.Document
	ownsDoc   bool // true if we opened the document and should close it
	docOpened bool

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of
// options. Each chain method returns a new instance, so a half-built
// chain can branch without the branches interfering.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:  e.filename,
		data:      e.data,
		doc:       e.doc,
		ownsDoc:   e.ownsDoc,
		docOpened: e.docOpened,
		options:   e.options.clone(),
		err:       e.err,
	}
}

// TitlePolicy selects where the title may come from: the first page
// only (the default) or anywhere in the document.
func (e *Extractor) TitlePolicy(policy layout.TitlePolicy) *Extractor {
	next := e.clone()
	next.options.assembler.TitlePolicy = policy
	return next
}

// MinHeadingLength sets the minimum character count for a heading.
func (e *Extractor) MinHeadingLength(n int) *Extractor {
	next := e.clone()
	next.options.classifier.MinHeadingLength = n
	return next
}

// MaxHeadingLength sets the maximum character count for a heading.
func (e *Extractor) MaxHeadingLength(n int) *Extractor {
	next := e.clone()
	next.options.classifier.MaxHeadingLength = n
	return next
}

// FontSizeWindow sets the plausibility bounds for font sizes. Sizes
// outside [min, max] never participate in the hierarchy ranking.
func (e *Extractor) FontSizeWindow(min, max float64) *Extractor {
	next := e.clone()
	next.options.hierarchy.MinFontSize = min
	next.options.hierarchy.MaxFontSize = max
	return next
}

// ExcludePatterns replaces the default non-heading patterns with the
// given regular expressions. An invalid pattern fails the chain; the
// error surfaces at the terminal operation.
func (e *Extractor) ExcludePatterns(patterns ...string) *Extractor {
	next := e.clone()
	compiled, err := layout.CompilePatterns(patterns)
	if err != nil {
		next.err = err
		return next
	}
	next.options.classifier.ExcludePatterns = compiled
	return next
}

// MaxSymbolRatio sets the highest tolerated share of non-alphanumeric
// characters in a heading.
func (e *Extractor) MaxSymbolRatio(ratio float64) *Extractor {
	next := e.clone()
	next.options.classifier.MaxSymbolRatio = ratio
	return next
}

// HeadingShape enables or disables the casing/terminal-punctuation
// plausibility rule. It is on by default.
func (e *Extractor) HeadingShape(require bool) *Extractor {
	next := e.clone()
	next.options.classifier.RequireHeadingShape = require
	return next
}

// RowConfig replaces the row assembly thresholds used when extracting
// runs from the document.
func (e *Extractor) RowConfig(config reader.RowConfig) *Extractor {
	next := e.clone()
	next.options.rows = config
	next.options.rowsSet = true
	return next
}

// open ensures the underlying document is available. It is called by
// terminal operations; configuration methods never touch the file.
func (e *Extractor) open() error {
	if e.err != nil {
		return e.err
	}
	if e.docOpened {
		return nil
	}

	var doc *reader.Document
	var err error
	if e.data != nil {
		doc, err = reader.FromBytes(e.data)
	} else {
		doc, err = reader.Open(e.filename)
	}
	if err != nil {
		e.err = fmt.Errorf("%s: %w", e.filename, err)
		return e.err
	}

	if e.options.rowsSet {
		doc = doc.WithRowConfig(e.options.rows)
	}
	e.doc = doc
	e.ownsDoc = true
	e.docOpened = true
	return nil
}

// Close releases the underlying document if this Extractor opened it.
// Safe to call multiple times and on extractors that never opened.
func (e *Extractor) Close() error {
	if e == nil || !e.ownsDoc || e.doc == nil {
		return nil
	}
	doc := e.doc
	e.doc = nil
	return doc.Close()
}

// PageCount opens the document if needed and returns its page count.
func (e *Extractor) PageCount() (int, error) {
	if err := e.open(); err != nil {
		return 0, err
	}
	return e.doc.PageCount(), nil
}

// Runs is a terminal operation returning the document's raw text runs
// in extraction order, before normalization. The document is closed
// afterward if this Extractor opened it.
func (e *Extractor) Runs() ([]model.TextRun, error) {
	if err := e.open(); err != nil {
		return nil, err
	}
	defer e.Close()

	runs, err := e.doc.Runs()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.filename, err)
	}
	return runs, nil
}

// Profile is a terminal operation returning the document's font
// hierarchy: its distinct sizes ranked into title, heading, and body
// levels.
func (e *Extractor) Profile() (*model.FontProfile, error) {
	if err := e.open(); err != nil {
		return nil, err
	}
	defer e.Close()

	runs, err := e.doc.Runs()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.filename, err)
	}
	return e.pipeline().Profile(runs), nil
}

// Outline is a terminal operation running the full pipeline: extract
// runs, normalize, rank font sizes, classify, assemble. A readable
// document with no extractable text yields a sparse outline with the
// identifier-derived title, not an error.
func (e *Extractor) Outline() (model.Outline, error) {
	if err := e.open(); err != nil {
		return model.Outline{}, err
	}
	defer e.Close()

	runs, err := e.doc.Runs()
	if err != nil {
		return model.Outline{}, fmt.Errorf("%s: %w", e.filename, err)
	}
	return e.pipeline().Outline(e.filename, runs), nil
}

// Title is a terminal operation returning just the resolved document
// title.
func (e *Extractor) Title() (string, error) {
	outline, err := e.Outline()
	if err != nil {
		return "", err
	}
	return outline.Title, nil
}

// JSON is a terminal operation returning the outline serialized in
// the output schema: two-space indent, non-ASCII preserved.
func (e *Extractor) JSON() ([]byte, error) {
	outline, err := e.Outline()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(outline); err != nil {
		return nil, fmt.Errorf("encode outline: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *Extractor) pipeline() *Pipeline {
	return NewPipeline(e.options.hierarchy, e.options.classifier, e.options.assembler)
}
