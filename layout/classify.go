package layout

import (
	"regexp"

	"github.com/tsawler/linea/model"
)

// ClassifierConfig holds configuration for heading classification
type ClassifierConfig struct {
	// MinHeadingLength is the minimum character count for a heading.
	// Default: 3
	MinHeadingLength int

	// MaxHeadingLength is the maximum character count for a heading.
	// Default: 200
	MaxHeadingLength int

	// ExcludePatterns reject text that is never a heading regardless
	// of font size. Any match rejects the run.
	ExcludePatterns []*regexp.Regexp

	// MaxSymbolRatio is the highest tolerated share of punctuation and
	// other non-alphanumeric characters. Default: 0.5
	MaxSymbolRatio float64

	// RequireHeadingShape when true demands heading-like casing or a
	// terminal punctuation mark. Default: true
	RequireHeadingShape bool
}

// DefaultClassifierConfig returns sensible default configuration
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		MinHeadingLength:    3,
		MaxHeadingLength:    200,
		ExcludePatterns:     DefaultExcludePatterns(),
		MaxSymbolRatio:      0.5,
		RequireHeadingShape: true,
	}
}

// HeadingClassifier decides, one run at a time, whether a text run is
// a heading candidate. It holds no per-document state; all document
// context arrives through the FontProfile.
type HeadingClassifier struct {
	config ClassifierConfig
	rules  []Rule
}

// NewHeadingClassifier creates a classifier with default configuration
func NewHeadingClassifier() *HeadingClassifier {
	return NewHeadingClassifierWithConfig(DefaultClassifierConfig())
}

// NewHeadingClassifierWithConfig creates a classifier with custom configuration
func NewHeadingClassifierWithConfig(config ClassifierConfig) *HeadingClassifier {
	return &HeadingClassifier{
		config: config,
		rules:  buildRules(config),
	}
}

// Rules returns the classifier's rule chain in evaluation order.
func (c *HeadingClassifier) Rules() []Rule {
	if c == nil {
		return nil
	}
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Classify inspects a single normalized run and returns its heading
// candidate. The boolean reports acceptance; rejection is the normal
// outcome for body text and never an error. Runs whose size maps to
// body text, including sizes the profile has never seen, are rejected
// before any text rule runs.
func (c *HeadingClassifier) Classify(run model.TextRun, profile *model.FontProfile) (model.HeadingCandidate, bool) {
	level := profile.LevelFor(run.FontSize)
	if !level.IsHeading() {
		return model.HeadingCandidate{}, false
	}
	if run.Text == "" || run.Page < 1 {
		return model.HeadingCandidate{}, false
	}
	for _, rule := range c.rules {
		if !rule.Allow(run.Text) {
			return model.HeadingCandidate{}, false
		}
	}
	return model.HeadingCandidate{
		Level: level,
		Text:  run.Text,
		Page:  run.Page,
		Y:     run.Y,
	}, true
}

// ClassifyRuns classifies every run in order and returns the accepted
// candidates, preserving extraction order.
func (c *HeadingClassifier) ClassifyRuns(runs []model.TextRun, profile *model.FontProfile) []model.HeadingCandidate {
	var candidates []model.HeadingCandidate
	for _, run := range runs {
		if candidate, ok := c.Classify(run, profile); ok {
			candidates = append(candidates, candidate)
		}
	}
	return candidates
}
