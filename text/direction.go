package text

import (
	"unicode"
)

// Direction represents the writing direction of text.
// It is used to order runs on a physical row into reading order.
type Direction int

const (
	// LTR (Left-to-Right) for Latin, Cyrillic, CJK and most other scripts.
	LTR Direction = iota
	// RTL (Right-to-Left) for Arabic, Hebrew, Syriac, Thaana and N'Ko.
	RTL
	// Neutral for numbers, punctuation, whitespace and symbols.
	Neutral
)

// String returns a string representation of the direction ("LTR", "RTL", or "Neutral").
func (d Direction) String() string {
	switch d {
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	case Neutral:
		return "Neutral"
	default:
		return "Unknown"
	}
}

// rtlScripts are the right-to-left scripts recognized by CharDirection.
// The script tables include the Arabic and Hebrew presentation form
// blocks, so shaped text from PDF fonts is covered.
var rtlScripts = []*unicode.RangeTable{
	unicode.Arabic,
	unicode.Hebrew,
	unicode.Syriac,
	unicode.Thaana,
	unicode.Nko,
}

// CharDirection returns the inherent direction of a single Unicode
// character. Digits, punctuation, whitespace, and symbols are Neutral;
// runes in an RTL script return RTL; everything else, including CJK
// and unknown scripts, returns LTR.
func CharDirection(r rune) Direction {
	if unicode.IsDigit(r) || unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
		return Neutral
	}
	for _, script := range rtlScripts {
		if unicode.Is(script, r) {
			return RTL
		}
	}
	return LTR
}

// DetectDirection analyzes a string and returns its dominant text
// direction by majority vote over its strong directional characters.
// Text with no strong directional characters, such as bare numbers or
// punctuation, is Neutral.
func DetectDirection(text string) Direction {
	if text == "" {
		return Neutral
	}

	ltrCount := 0
	rtlCount := 0

	for _, r := range text {
		switch CharDirection(r) {
		case LTR:
			ltrCount++
		case RTL:
			rtlCount++
		}
	}

	if ltrCount == 0 && rtlCount == 0 {
		return Neutral
	}

	if rtlCount > ltrCount {
		return RTL
	}
	return LTR
}
