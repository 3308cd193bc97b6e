package layout

import (
	"math"
	"sort"

	"github.com/tsawler/linea/model"
)

// HierarchyConfig holds configuration for font hierarchy analysis
type HierarchyConfig struct {
	// MinFontSize is the smallest font size considered meaningful.
	// Runs below it are treated as noise and excluded from ranking.
	// Default: 8
	MinFontSize float64

	// MaxFontSize is the largest font size considered meaningful.
	// Default: 72
	MaxFontSize float64
}

// DefaultHierarchyConfig returns sensible default configuration
func DefaultHierarchyConfig() HierarchyConfig {
	return HierarchyConfig{
		MinFontSize: 8,
		MaxFontSize: 72,
	}
}

// FontHierarchyAnalyzer ranks the distinct font sizes of a document
// into title, heading and body levels. The analysis is global: it
// needs every run of the document before any single run can be
// classified.
type FontHierarchyAnalyzer struct {
	config HierarchyConfig
}

// NewFontHierarchyAnalyzer creates an analyzer with default configuration
func NewFontHierarchyAnalyzer() *FontHierarchyAnalyzer {
	return &FontHierarchyAnalyzer{config: DefaultHierarchyConfig()}
}

// NewFontHierarchyAnalyzerWithConfig creates an analyzer with custom configuration
func NewFontHierarchyAnalyzerWithConfig(config HierarchyConfig) *FontHierarchyAnalyzer {
	return &FontHierarchyAnalyzer{config: config}
}

// Analyze builds a FontProfile from the document's runs. The largest
// size becomes the title size, the next three become H1 through H3,
// and every remaining size maps to body text. Documents with fewer
// than four sizes produce a correspondingly shorter hierarchy, and
// documents with no usable runs produce an empty profile.
func (a *FontHierarchyAnalyzer) Analyze(runs []model.TextRun) *model.FontProfile {
	seen := make(map[float64]bool)
	for _, run := range runs {
		if !a.usableSize(run.FontSize) {
			continue
		}
		seen[run.FontSize] = true
	}

	sizes := make([]float64, 0, len(seen))
	for size := range seen {
		sizes = append(sizes, size)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))

	levels := make(map[float64]model.Level, len(sizes))
	for rank, size := range sizes {
		levels[size] = model.LevelForRank(rank)
	}
	return model.NewFontProfile(levels)
}

// usableSize reports whether a font size can participate in ranking.
// NaN, non-positive and out-of-window sizes are excluded; runs with
// such sizes later resolve to body text through the profile's total
// lookup.
func (a *FontHierarchyAnalyzer) usableSize(size float64) bool {
	if math.IsNaN(size) || math.IsInf(size, 0) || size <= 0 {
		return false
	}
	return size >= a.config.MinFontSize && size <= a.config.MaxFontSize
}
