package model

import (
	"math"
	"sort"
)

// FontProfile ranks the distinct font sizes of one document into
// hierarchy levels. It is built once per document by the analyzer and
// read-only afterward.
type FontProfile struct {
	sizes  []float64 // distinct, strictly descending
	levels map[float64]Level
}

// NewFontProfile builds a profile from the given font sizes and their
// level assignments. Sizes are deduplicated and ordered strictly
// descending; non-finite and non-positive sizes are discarded.
func NewFontProfile(levels map[float64]Level) *FontProfile {
	p := &FontProfile{
		levels: make(map[float64]Level, len(levels)),
	}
	for size, level := range levels {
		if !validSize(size) {
			continue
		}
		p.levels[size] = level
		p.sizes = append(p.sizes, size)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(p.sizes)))
	return p
}

func validSize(size float64) bool {
	return !math.IsNaN(size) && !math.IsInf(size, 0) && size > 0
}

// Sizes returns the distinct font sizes in strictly descending order.
// The returned slice is a copy.
func (p *FontProfile) Sizes() []float64 {
	if p == nil || len(p.sizes) == 0 {
		return nil
	}
	out := make([]float64, len(p.sizes))
	copy(out, p.sizes)
	return out
}

// LevelFor returns the hierarchy level for a font size. The lookup is
// total: sizes absent from the profile, including zero, negative and
// NaN values, resolve to LevelBody.
func (p *FontProfile) LevelFor(size float64) Level {
	if p == nil || !validSize(size) {
		return LevelBody
	}
	if level, ok := p.levels[size]; ok {
		return level
	}
	return LevelBody
}

// SizeFor returns the font size assigned to a level, if any.
func (p *FontProfile) SizeFor(level Level) (float64, bool) {
	if p == nil {
		return 0, false
	}
	for size, l := range p.levels {
		if l == level {
			return size, true
		}
	}
	return 0, false
}

// Len returns the number of distinct ranked sizes.
func (p *FontProfile) Len() int {
	if p == nil {
		return 0
	}
	return len(p.sizes)
}

// IsEmpty reports whether the profile ranks no sizes at all, as happens
// for documents with no extractable text.
func (p *FontProfile) IsEmpty() bool {
	return p.Len() == 0
}
