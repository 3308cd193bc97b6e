package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/linea/model"
)

// Normalizer cleans raw extracted text so downstream analysis sees one
// canonical form. It folds compatibility codepoints with Unicode NFKC,
// expands the ligatures and digraphs NFKC leaves alone, straightens
// typographic punctuation, strips zero-width and control characters,
// and collapses runs of whitespace to single spaces.
//
// Normalize is pure and idempotent: normalizing already-normalized
// text returns it unchanged.
type Normalizer struct {
	ligatures     map[rune]string
	substitutions map[rune]rune
}

// NewNormalizer creates a normalizer with the standard substitution tables.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		ligatures: map[rune]string{
			0xFB00: "ff",  // ﬀ
			0xFB01: "fi",  // ﬁ
			0xFB02: "fl",  // ﬂ
			0xFB03: "ffi", // ﬃ
			0xFB04: "ffl", // ﬄ
			0xFB05: "st",  // ﬅ (long s + t)
			0xFB06: "st",  // ﬆ
			0x0132: "IJ",  // Ĳ
			0x0133: "ij",  // ĳ
			0x0152: "OE",  // Œ
			0x0153: "oe",  // œ
			0x00C6: "AE",  // Æ
			0x00E6: "ae",  // æ
		},
		substitutions: map[rune]rune{
			0x2018: '\'', // left single quote
			0x2019: '\'', // right single quote
			0x201C: '"',  // left double quote
			0x201D: '"',  // right double quote
			0x2013: '-',  // en dash
			0x2014: '-',  // em dash
			0x2015: '-',  // horizontal bar
			0x2212: '-',  // minus sign
			0x2022: '*',  // bullet
			0x2023: '>',  // triangular bullet
			0x2043: '-',  // hyphen bullet
			0x00B7: '.',  // middle dot
		},
	}
}

// Normalize returns the canonical form of text. The result has no
// leading or trailing whitespace, no internal runs of more than one
// space, and no control or zero-width characters. An input that
// carries no visible text normalizes to the empty string.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	folded := norm.NFKC.String(text)

	var b strings.Builder
	b.Grow(len(folded))
	prevSpace := true
	for _, r := range folded {
		if expansion, ok := n.ligatures[r]; ok {
			b.WriteString(expansion)
			prevSpace = false
			continue
		}
		if sub, ok := n.substitutions[r]; ok {
			r = sub
		}
		switch {
		case isZeroWidth(r):
			continue
		case unicode.IsSpace(r):
			if !prevSpace {
				b.WriteByte(' ')
				prevSpace = true
			}
		case unicode.IsControl(r):
			continue
		default:
			b.WriteRune(r)
			prevSpace = false
		}
	}

	return strings.TrimSpace(b.String())
}

// NormalizeRuns normalizes the text of every run, in place of the
// originals, and drops runs whose text normalizes to nothing. Font
// size, style, and position are untouched.
func (n *Normalizer) NormalizeRuns(runs []model.TextRun) []model.TextRun {
	out := make([]model.TextRun, 0, len(runs))
	for _, run := range runs {
		run.Text = n.Normalize(run.Text)
		if run.Text == "" {
			continue
		}
		out = append(out, run)
	}
	return out
}

// isZeroWidth reports whether r is an invisible formatting character:
// soft hyphen, combining grapheme joiner, zero-width spaces and
// joiners, directional marks, word joiner, or byte order mark.
func isZeroWidth(r rune) bool {
	switch {
	case r == 0x00AD || r == 0x034F || r == 0xFEFF:
		return true
	case r >= 0x200B && r <= 0x200F:
		return true
	case r >= 0x2060 && r <= 0x2064:
		return true
	}
	return false
}
