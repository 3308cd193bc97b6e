package reader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/linea/model"
)

// ErrNotPDF reports an input whose header carries no PDF magic number.
var ErrNotPDF = errors.New("not a PDF file")

// ErrClosed reports an operation on a closed document.
var ErrClosed = errors.New("document is closed")

var pdfMagic = []byte("%PDF-")

// letterHeight is the fallback page height in points when a page
// declares no usable MediaBox (US Letter, 11in at 72dpi).
const letterHeight = 792.0

// Document is an open PDF exposed as a source of positioned text runs.
// Pages are extracted one at a time; nothing is read ahead of the page
// being asked for.
type Document struct {
	reader *pdf.Reader
	file   *os.File
	rows   *rowAssembler
}

// Open opens the PDF file at path.
func Open(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	doc, err := NewDocument(file, info.Size())
	if err != nil {
		file.Close()
		return nil, err
	}
	doc.file = file
	return doc, nil
}

// FromBytes opens a PDF held in memory.
func FromBytes(data []byte) (*Document, error) {
	return NewDocument(bytes.NewReader(data), int64(len(data)))
}

// NewDocument opens a PDF from any io.ReaderAt. The underlying parser
// panics on some malformed files; those panics surface here as errors.
func NewDocument(r io.ReaderAt, size int64) (doc *Document, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			doc = nil
			err = fmt.Errorf("malformed PDF: %v", rec)
		}
	}()

	header := make([]byte, len(pdfMagic))
	if _, rerr := r.ReadAt(header, 0); rerr != nil || !bytes.Equal(header, pdfMagic) {
		return nil, ErrNotPDF
	}

	inner, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("read PDF: %w", err)
	}

	return &Document{
		reader: inner,
		rows:   newRowAssembler(DefaultRowConfig()),
	}, nil
}

// WithRowConfig returns the document reconfigured for row assembly.
func (d *Document) WithRowConfig(config RowConfig) *Document {
	if d == nil {
		return nil
	}
	d.rows = newRowAssembler(config)
	return d
}

// Close releases the document. Closing a nil or already closed
// document is a no-op.
func (d *Document) Close() error {
	if d == nil {
		return nil
	}
	d.reader = nil
	if d.file != nil {
		file := d.file
		d.file = nil
		return file.Close()
	}
	return nil
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	if d == nil || d.reader == nil {
		return 0
	}
	return d.reader.NumPage()
}

// PageRuns extracts the text runs of one page, in reading order.
// pageNum is 1-based. A page with no text content yields no runs and
// no error; a page whose content stream cannot be parsed is an error.
func (d *Document) PageRuns(pageNum int) (runs []model.TextRun, err error) {
	if d == nil || d.reader == nil {
		return nil, ErrClosed
	}
	if pageNum < 1 || pageNum > d.reader.NumPage() {
		return nil, fmt.Errorf("page %d out of range [1, %d]", pageNum, d.reader.NumPage())
	}

	defer func() {
		if rec := recover(); rec != nil {
			runs = nil
			err = fmt.Errorf("page %d: malformed content: %v", pageNum, rec)
		}
	}()

	page := d.reader.Page(pageNum)
	if page.V.IsNull() {
		return nil, nil
	}

	content := page.Content()
	return d.rows.Assemble(content.Text, pageNum, pageHeight(page)), nil
}

// Runs extracts the text runs of every page, in page order. A failure
// on any page fails the whole document.
func (d *Document) Runs() ([]model.TextRun, error) {
	if d == nil || d.reader == nil {
		return nil, ErrClosed
	}

	var all []model.TextRun
	for pageNum := 1; pageNum <= d.reader.NumPage(); pageNum++ {
		runs, err := d.PageRuns(pageNum)
		if err != nil {
			return nil, err
		}
		all = append(all, runs...)
	}
	return all, nil
}

// Info holds the fields of the document information dictionary.
// All fields are optional and empty when absent.
type Info struct {
	Title    string
	Author   string
	Subject  string
	Creator  string
	Producer string
}

// Info reads the document information dictionary. It never fails:
// documents without one yield the zero value.
func (d *Document) Info() Info {
	var info Info
	if d == nil || d.reader == nil {
		return info
	}

	trailer := d.reader.Trailer()
	if trailer.IsNull() {
		return info
	}
	dict := trailer.Key("Info")
	if dict.IsNull() {
		return info
	}

	info.Title = dict.Key("Title").Text()
	info.Author = dict.Key("Author").Text()
	info.Subject = dict.Key("Subject").Text()
	info.Creator = dict.Key("Creator").Text()
	info.Producer = dict.Key("Producer").Text()
	return info
}

// pageHeight resolves the page height from the MediaBox, walking up
// the page tree for inherited boxes, with a US Letter fallback.
func pageHeight(page pdf.Page) float64 {
	for v := page.V; !v.IsNull(); v = v.Key("Parent") {
		box := v.Key("MediaBox")
		if box.Kind() == pdf.Array && box.Len() >= 4 {
			if h := box.Index(3).Float64() - box.Index(1).Float64(); h > 0 {
				return h
			}
		}
	}
	return letterHeight
}
