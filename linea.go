// Package linea infers a document's heading structure (title, H1-H3
// headings with page numbers) from a PDF's rendered text geometry.
//
// Basic usage:
//
//	outline, err := linea.Open("document.pdf").Outline()
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(outline.Title)
//
// With options:
//
//	outline, err := linea.Open("report.pdf").
//	    TitlePolicy(layout.TitleAnyPage).
//	    MaxHeadingLength(120).
//	    Outline()
//
// For advanced use cases, the lower-level reader, text, and layout
// packages are also available.
package linea

import (
	"github.com/tsawler/linea/layout"
	"github.com/tsawler/linea/model"
	"github.com/tsawler/linea/reader"
	"github.com/tsawler/linea/text"
)

// Open prepares a PDF file for outline extraction and returns an
// Extractor for fluent configuration. The file is not touched until a
// terminal operation runs. The returned Extractor must be closed when
// done, either explicitly via Close() or implicitly when calling a
// terminal operation like Outline().
//
// Example:
//
//	outline, err := linea.Open("document.pdf").Outline()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes prepares a PDF held in memory for outline extraction.
// The identifier provides the fallback title for documents with no
// detectable title run; a file name works well.
func FromBytes(identifier string, data []byte) *Extractor {
	return &Extractor{
		filename: identifier,
		data:     data,
		options:  defaultOptions(),
	}
}

// FromDocument creates an Extractor from an already-opened
// reader.Document. This is useful when you need more control over the
// document lifecycle. The caller remains responsible for closing the
// document.
//
// Example:
//
//	doc, err := reader.Open("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer doc.Close()
//	outline, err := linea.FromDocument("document.pdf", doc).Outline()
func FromDocument(identifier string, doc *reader.Document) *Extractor {
	return &Extractor{
		filename:  identifier,
		doc:       doc,
		docOpened: true,
		options:   defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	outline := linea.Must(linea.Open("document.pdf").Outline())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// Pipeline bundles the classification stages behind one call so every
// caller, the facade and the batch driver alike, classifies runs the
// same way. The zero value is not usable; construct with NewPipeline.
type Pipeline struct {
	normalizer *text.Normalizer
	analyzer   *layout.FontHierarchyAnalyzer
	classifier *layout.HeadingClassifier
	assembler  *layout.OutlineAssembler
}

// NewPipeline assembles the classification stages from their
// configurations.
func NewPipeline(hierarchy layout.HierarchyConfig, classifier layout.ClassifierConfig, assembler layout.AssemblerConfig) *Pipeline {
	return &Pipeline{
		normalizer: text.NewNormalizer(),
		analyzer:   layout.NewFontHierarchyAnalyzerWithConfig(hierarchy),
		classifier: layout.NewHeadingClassifierWithConfig(classifier),
		assembler:  layout.NewOutlineAssemblerWithConfig(assembler),
	}
}

// DefaultPipeline assembles the stages with their default
// configurations.
func DefaultPipeline() *Pipeline {
	return NewPipeline(
		layout.DefaultHierarchyConfig(),
		layout.DefaultClassifierConfig(),
		layout.DefaultAssemblerConfig(),
	)
}

// Outline runs the full classification over raw extracted runs:
// normalize, rank font sizes, classify each run, assemble. Candidates
// are classified in extraction order, so the assembler's stable sort
// preserves that order across equal positions. The identifier provides
// the fallback title. A document with no usable runs yields a valid
// sparse outline, never an error.
func (p *Pipeline) Outline(identifier string, runs []model.TextRun) model.Outline {
	normalized := p.normalizer.NormalizeRuns(runs)
	profile := p.analyzer.Analyze(normalized)
	candidates := p.classifier.ClassifyRuns(normalized, profile)
	return p.assembler.Assemble(identifier, candidates)
}

// Profile runs the normalization and global font analysis passes only.
func (p *Pipeline) Profile(runs []model.TextRun) *model.FontProfile {
	return p.analyzer.Analyze(p.normalizer.NormalizeRuns(runs))
}
