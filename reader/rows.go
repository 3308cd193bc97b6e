package reader

import (
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/linea/model"
	"github.com/tsawler/linea/text"
)

// RowConfig holds configuration for assembling positioned characters
// into rows and runs.
type RowConfig struct {
	// RowTolerance is the vertical distance in points within which
	// characters belong to the same row. Default: 3.0
	RowTolerance float64

	// WordSpaceMultiplier is the fraction of the font size a
	// horizontal gap must exceed to become a word boundary.
	// Default: 0.3
	WordSpaceMultiplier float64

	// SizeTolerance is the font size difference in points beyond
	// which adjacent characters belong to separate runs.
	// Default: 0.1
	SizeTolerance float64

	// RunGapMultiplier is the multiple of the font size a horizontal
	// gap must exceed to split a row into separate runs, as between
	// columns or a heading and a page number. Default: 3.0
	RunGapMultiplier float64
}

// DefaultRowConfig returns sensible default configuration
func DefaultRowConfig() RowConfig {
	return RowConfig{
		RowTolerance:        3.0,
		WordSpaceMultiplier: 0.3,
		SizeTolerance:       0.1,
		RunGapMultiplier:    3.0,
	}
}

// rowAssembler turns the character-level fragments a content stream
// yields into row-ordered text runs. A run is a maximal stretch of
// characters on one row sharing a font face and size.
type rowAssembler struct {
	config RowConfig
}

func newRowAssembler(config RowConfig) *rowAssembler {
	return &rowAssembler{config: config}
}

// Assemble converts one page's characters into ordered text runs.
// Rows come out top to bottom; runs within a row follow the row's
// reading direction. Y coordinates flip from PDF bottom-origin space
// to top-down page space, so ascending (page, Y) is reading order.
func (ra *rowAssembler) Assemble(chars []pdf.Text, pageNum int, pageHeight float64) []model.TextRun {
	visible := filterChars(chars)
	if len(visible) == 0 {
		return nil
	}

	var runs []model.TextRun
	for _, row := range ra.groupIntoRows(visible) {
		dir := rowDirection(row)
		orderForReading(row, dir)
		for _, span := range ra.splitRuns(row, dir) {
			run := ra.buildRun(span, dir, pageNum, pageHeight)
			if run.Text != "" {
				runs = append(runs, run)
			}
		}
	}
	return runs
}

// filterChars drops fragments with no visible text.
func filterChars(chars []pdf.Text) []pdf.Text {
	visible := make([]pdf.Text, 0, len(chars))
	for _, c := range chars {
		if strings.TrimSpace(c.S) != "" {
			visible = append(visible, c)
		}
	}
	return visible
}

// groupIntoRows buckets characters by Y coordinate within the row
// tolerance and returns the buckets top-of-page first. Y is still in
// PDF bottom-origin space here, so a higher Y is higher on the page.
func (ra *rowAssembler) groupIntoRows(chars []pdf.Text) [][]pdf.Text {
	type rowBucket struct {
		yMin, yMax float64
		chars      []pdf.Text
	}

	var buckets []rowBucket
	for _, c := range chars {
		found := false
		for i := range buckets {
			if c.Y >= buckets[i].yMin-ra.config.RowTolerance && c.Y <= buckets[i].yMax+ra.config.RowTolerance {
				buckets[i].chars = append(buckets[i].chars, c)
				if c.Y < buckets[i].yMin {
					buckets[i].yMin = c.Y
				}
				if c.Y > buckets[i].yMax {
					buckets[i].yMax = c.Y
				}
				found = true
				break
			}
		}
		if !found {
			buckets = append(buckets, rowBucket{yMin: c.Y, yMax: c.Y, chars: []pdf.Text{c}})
		}
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].yMax > buckets[j].yMax
	})

	rows := make([][]pdf.Text, len(buckets))
	for i, bucket := range buckets {
		rows[i] = bucket.chars
	}
	return rows
}

// rowDirection returns the dominant direction of a row by majority
// vote over its fragments. Ties and all-neutral rows read LTR.
func rowDirection(row []pdf.Text) text.Direction {
	ltrCount := 0
	rtlCount := 0
	for _, c := range row {
		switch text.DetectDirection(c.S) {
		case text.LTR:
			ltrCount++
		case text.RTL:
			rtlCount++
		}
	}
	if rtlCount > ltrCount {
		return text.RTL
	}
	return text.LTR
}

// orderForReading sorts a row into reading order: ascending X for LTR
// rows, descending X for RTL rows.
func orderForReading(row []pdf.Text, dir text.Direction) {
	sort.SliceStable(row, func(i, j int) bool {
		if dir == text.RTL {
			return row[i].X > row[j].X
		}
		return row[i].X < row[j].X
	})
}

// gap returns the horizontal distance between two characters adjacent
// in reading order.
func gap(prev, next pdf.Text, dir text.Direction) float64 {
	if dir == text.RTL {
		return prev.X - (next.X + next.W)
	}
	return next.X - (prev.X + prev.W)
}

// splitRuns cuts an ordered row into runs wherever the font face or
// size changes, or a column-sized gap appears.
func (ra *rowAssembler) splitRuns(row []pdf.Text, dir text.Direction) [][]pdf.Text {
	if len(row) == 0 {
		return nil
	}

	var spans [][]pdf.Text
	current := []pdf.Text{row[0]}
	for _, c := range row[1:] {
		prev := current[len(current)-1]
		if c.Font != prev.Font ||
			math.Abs(c.FontSize-prev.FontSize) > ra.config.SizeTolerance ||
			gap(prev, c, dir) > ra.runGapLimit(prev.FontSize) {
			spans = append(spans, current)
			current = []pdf.Text{c}
			continue
		}
		current = append(current, c)
	}
	return append(spans, current)
}

// buildRun merges one run's characters into a TextRun, inserting a
// space wherever the gap between neighbors exceeds the word
// threshold. The run's position is its leftmost X and topmost Y.
func (ra *rowAssembler) buildRun(span []pdf.Text, dir text.Direction, pageNum int, pageHeight float64) model.TextRun {
	var b strings.Builder
	minX := span[0].X
	maxY := span[0].Y

	for i, c := range span {
		if i > 0 && gap(span[i-1], c, dir) > ra.wordGapLimit(c.FontSize) {
			b.WriteByte(' ')
		}
		b.WriteString(c.S)
		if c.X < minX {
			minX = c.X
		}
		if c.Y > maxY {
			maxY = c.Y
		}
	}

	return model.TextRun{
		Text:     strings.TrimSpace(b.String()),
		FontSize: span[0].FontSize,
		Bold:     fontIsBold(span[0].Font),
		Italic:   fontIsItalic(span[0].Font),
		Page:     pageNum,
		X:        minX,
		Y:        pageHeight - maxY,
	}
}

func (ra *rowAssembler) wordGapLimit(fontSize float64) float64 {
	if fontSize <= 0 {
		return 3.0
	}
	return ra.config.WordSpaceMultiplier * fontSize
}

func (ra *rowAssembler) runGapLimit(fontSize float64) float64 {
	if fontSize <= 0 {
		return 30.0
	}
	return ra.config.RunGapMultiplier * fontSize
}

// fontIsBold reports whether a font name declares a bold face.
func fontIsBold(fontName string) bool {
	name := strings.ToLower(fontName)
	return strings.Contains(name, "bold") ||
		strings.Contains(name, "black") ||
		strings.Contains(name, "heavy")
}

// fontIsItalic reports whether a font name declares an italic face.
func fontIsItalic(fontName string) bool {
	name := strings.ToLower(fontName)
	return strings.Contains(name, "italic") ||
		strings.Contains(name, "oblique")
}
