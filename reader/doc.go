// Package reader opens PDF files and yields their text as positioned runs.
//
// This package adapts the ledongthuc/pdf parser into the run model the
// rest of the pipeline consumes: character fragments are grouped into
// visual rows, ordered for reading, and merged into runs of uniform
// font face and size.
//
// # Opening Documents
//
// Use [Open] for files on disk, [FromBytes] for PDFs held in memory,
// or [NewDocument] for any io.ReaderAt:
//
//	doc, err := reader.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer doc.Close()
//
// Inputs without the %PDF magic number fail with [ErrNotPDF] before
// any parsing happens.
//
// # Run Extraction
//
// Runs come out page by page, 1-based:
//
//	for pageNum := 1; pageNum <= doc.PageCount(); pageNum++ {
//	    runs, err := doc.PageRuns(pageNum)
//	    ...
//	}
//
// Or all at once with [Document.Runs]. Each [model.TextRun] carries
// the merged text, font size, bold/italic flags derived from the font
// name, its page number, and its position. Y is top-down page space:
// ascending (page, Y) is reading order.
//
// # Row Assembly
//
// Characters land in the same row when their Y coordinates fall
// within [RowConfig.RowTolerance]. Rows read left to right unless
// their characters vote for a right-to-left script. Word boundaries
// and run splits come from horizontal gap analysis; see [RowConfig]
// for the thresholds.
//
// # Malformed Files
//
// The underlying parser panics on some corrupt inputs. Document-level
// and page-level entry points convert those panics into errors, so a
// bad file fails its own extraction and nothing else.
package reader
