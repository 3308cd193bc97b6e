package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/linea"
	"github.com/tsawler/linea/format"
	"github.com/tsawler/linea/model"
	"github.com/tsawler/linea/ocr"
	"github.com/tsawler/linea/reader"
	"github.com/tsawler/linea/source"
)

// Result records the outcome of one document.
type Result struct {
	// Path is the document's path relative to the source root.
	Path string

	// OutputPath is where the outline was written. Empty on failure.
	OutputPath string

	// HeadingCount is the number of outline entries produced.
	HeadingCount int

	// Duration is how long the document took end to end.
	Duration time.Duration

	// Err is the failure, nil on success.
	Err error
}

// Succeeded reports whether the document produced an output file.
func (r Result) Succeeded() bool {
	return r.Err == nil
}

// Summary aggregates the results of one batch run.
type Summary struct {
	Results   []Result
	Total     int
	Succeeded int
	Failed    int
	Duration  time.Duration
}

// Runner processes every document a source yields through the
// classification pipeline, with per-document failure isolation and a
// per-document wall-clock budget.
type Runner struct {
	config   Config
	pipeline *linea.Pipeline
	logger   *zap.Logger
	src      source.Source
}

// NewRunner builds a runner from a validated configuration. The
// default source is a filesystem walk over the configured input
// directory; override it with WithSource.
func NewRunner(config Config, logger *zap.Logger) (*Runner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	classifierConfig, err := config.ClassifierConfig()
	if err != nil {
		return nil, err
	}
	pipeline := linea.NewPipeline(config.HierarchyConfig(), classifierConfig, config.AssemblerConfig())

	fsConfig := source.DefaultFilesystemConfig(config.Input)
	if len(config.IncludePatterns) > 0 {
		fsConfig.IncludePatterns = config.IncludePatterns
	}
	if len(config.ExcludePatterns) > 0 {
		fsConfig.ExcludePatterns = append(fsConfig.ExcludePatterns, config.ExcludePatterns...)
	}
	src, err := source.NewFilesystemSource(fsConfig)
	if err != nil {
		return nil, err
	}

	return &Runner{
		config:   config,
		pipeline: pipeline,
		logger:   logger,
		src:      src,
	}, nil
}

// WithSource replaces the document source, e.g. with an S3 bucket or
// a web crawl.
func (r *Runner) WithSource(src source.Source) *Runner {
	r.src = src
	return r
}

// Run processes every document the source yields and returns the
// batch summary. Documents fail independently: a corrupt file is
// recorded and the batch continues. Run returns an error only when
// traversal itself fails or the context is cancelled.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	start := time.Now()

	items, srcErrs := r.src.Traverse(ctx)
	results := make(chan Result)

	var wg sync.WaitGroup
	for i := 0; i < r.config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range items {
				results <- r.processItem(ctx, item)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var summary Summary
	for result := range results {
		summary.Results = append(summary.Results, result)
		summary.Total++
		if result.Succeeded() {
			summary.Succeeded++
			r.logger.Info("processed document",
				zap.String("path", result.Path),
				zap.String("output", result.OutputPath),
				zap.Int("headings", result.HeadingCount),
				zap.Duration("duration", result.Duration),
			)
		} else {
			summary.Failed++
			r.logger.Error("document failed",
				zap.String("path", result.Path),
				zap.Duration("duration", result.Duration),
				zap.Error(result.Err),
			)
		}
	}
	summary.Duration = time.Since(start)

	r.logger.Info("batch complete",
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("total", summary.Total),
		zap.Duration("duration", summary.Duration),
	)

	if err := <-srcErrs; err != nil {
		return summary, fmt.Errorf("traversing %s source: %w", r.src.Type(), err)
	}
	return summary, ctx.Err()
}

// processItem runs one document through the pipeline under the
// per-document budget and writes its outline. Nothing is written when
// extraction fails.
func (r *Runner) processItem(ctx context.Context, item source.Item) Result {
	start := time.Now()
	result := Result{Path: item.Path}

	docCtx, cancel := context.WithTimeout(ctx, r.config.DocTimeout)
	defer cancel()

	outline, err := r.extractWithBudget(docCtx, item)
	if err != nil {
		result.Err = fmt.Errorf("%s: %w", item.Path, err)
		result.Duration = time.Since(start)
		return result
	}

	outputPath := OutputPath(r.config.Output, item.Path)
	if err := WriteOutline(outputPath, outline); err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	result.OutputPath = outputPath
	result.HeadingCount = len(outline.Headings)
	result.Duration = time.Since(start)
	return result
}

// extractWithBudget runs extraction in its own goroutine so an
// oversized document can be abandoned when its budget expires. The
// abandoned goroutine finishes on its own and its result is
// discarded.
func (r *Runner) extractWithBudget(ctx context.Context, item source.Item) (model.Outline, error) {
	type extracted struct {
		outline model.Outline
		err     error
	}
	done := make(chan extracted, 1)

	go func() {
		outline, err := r.extract(ctx, item)
		done <- extracted{outline, err}
	}()

	select {
	case e := <-done:
		return e.outline, e.err
	case <-ctx.Done():
		return model.Outline{}, ctx.Err()
	}
}

// extract opens the document, pulls its runs page by page, and
// classifies them. A readable document with no text yields a sparse
// outline, with a title recovered by OCR when page scans are
// available.
func (r *Runner) extract(ctx context.Context, item source.Item) (model.Outline, error) {
	if detected := format.DetectFromMagic(item.Content); detected != format.PDF {
		return model.Outline{}, fmt.Errorf("%w (detected %s)", reader.ErrNotPDF, detected)
	}

	doc, err := reader.FromBytes(item.Content)
	if err != nil {
		return model.Outline{}, err
	}
	defer doc.Close()

	var runs []model.TextRun
	for pageNum := 1; pageNum <= doc.PageCount(); pageNum++ {
		if err := ctx.Err(); err != nil {
			return model.Outline{}, err
		}
		pageRuns, err := doc.PageRuns(pageNum)
		if err != nil {
			return model.Outline{}, err
		}
		runs = append(runs, pageRuns...)
	}

	outline := r.pipeline.Outline(item.Path, runs)

	if len(runs) == 0 && r.config.OCRImageDir != "" {
		if title := r.recoverTitleOCR(item.Path); title != "" {
			outline.Title = title
		}
	}
	return outline, nil
}

// recoverTitleOCR looks for a first-page scan of the document in the
// OCR image directory and reads a title line from it. Any failure,
// including OCR support not being compiled in, degrades to the
// identifier-derived title.
func (r *Runner) recoverTitleOCR(docPath string) string {
	imagePath := findPageScan(r.config.OCRImageDir, docPath)
	if imagePath == "" {
		return ""
	}

	client, err := ocr.New()
	if err != nil {
		if errors.Is(err, ocr.ErrNotEnabled) {
			r.logger.Warn("page scan found but OCR support is not compiled in",
				zap.String("path", docPath),
				zap.String("scan", imagePath),
			)
		} else {
			r.logger.Warn("OCR unavailable", zap.String("path", docPath), zap.Error(err))
		}
		return ""
	}
	defer client.Close()

	data, err := os.ReadFile(imagePath)
	if err != nil {
		r.logger.Warn("reading page scan failed", zap.String("scan", imagePath), zap.Error(err))
		return ""
	}

	switch strings.ToLower(filepath.Ext(imagePath)) {
	case ".tif", ".tiff", ".bmp":
		converted, err := ocr.DecodeToPNG(data)
		if err != nil {
			r.logger.Warn("decoding page scan failed", zap.String("scan", imagePath), zap.Error(err))
			return ""
		}
		data = converted
	}

	text, err := client.RecognizeImage(data)
	if err != nil {
		r.logger.Warn("OCR failed", zap.String("scan", imagePath), zap.Error(err))
		return ""
	}

	title := firstLine(text)
	if title != "" {
		r.logger.Info("title recovered by OCR",
			zap.String("path", docPath),
			zap.String("title", title),
		)
	}
	return title
}

// findPageScan locates a sidecar image named <stem>-page1.<ext> in
// the scan directory.
func findPageScan(scanDir, docPath string) string {
	base := filepath.Base(docPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp"} {
		candidate := filepath.Join(scanDir, stem+"-page1"+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// firstLine returns the first non-blank line of OCR output.
func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
