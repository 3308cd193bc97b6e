package layout

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule is a single accept or reject predicate over normalized run
// text. Rules are evaluated in order and short-circuit on the first
// rejection.
type Rule struct {
	// Name identifies the rule in logs and tests
	Name string

	// Allow reports whether the text may still be a heading
	Allow func(text string) bool
}

// DefaultExcludePatterns returns the patterns that reject text which
// is never a heading: page markers, bare numbers, version numbers,
// figure and table captions, URLs, email addresses, and runs of
// digits and punctuation. Caption references match anywhere in the
// text, so cross-references like "See Figure 2" are rejected too.
func DefaultExcludePatterns() []*regexp.Regexp {
	return []*regexp.Regexp{
		regexp.MustCompile(`(?i)^page \d+$`),
		regexp.MustCompile(`^\d+$`),
		regexp.MustCompile(`^\d+\.\d+$`),
		regexp.MustCompile(`(?i)\bfigure \d+`),
		regexp.MustCompile(`(?i)\btable \d+`),
		regexp.MustCompile(`(?i)^www\.`),
		regexp.MustCompile(`(?i)^https?://`),
		regexp.MustCompile(`^\w+@\w+`),
		regexp.MustCompile(`^[\d\s.\-()]+$`),
	}
}

// CompilePatterns compiles a list of exclusion pattern strings. An
// invalid pattern fails the whole list; configuration mistakes here
// would silently corrupt every document's classification.
func CompilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// buildRules assembles the rule chain for a configuration.
func buildRules(config ClassifierConfig) []Rule {
	rules := []Rule{
		{Name: "length", Allow: func(s string) bool {
			n := utf8.RuneCountInString(s)
			return n >= config.MinHeadingLength && n <= config.MaxHeadingLength
		}},
		{Name: "exclude-patterns", Allow: func(s string) bool {
			return !matchesAnyPattern(s, config.ExcludePatterns)
		}},
		{Name: "symbol-ratio", Allow: func(s string) bool {
			return symbolRatio(s) <= config.MaxSymbolRatio
		}},
	}
	if config.RequireHeadingShape {
		rules = append(rules, Rule{Name: "heading-shape", Allow: hasHeadingShape})
	}
	return rules
}

// matchesAnyPattern reports whether any of the patterns matches the text.
func matchesAnyPattern(s string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// symbolRatio returns the share of characters that are neither
// letters, digits nor whitespace.
func symbolRatio(s string) float64 {
	total := 0
	symbols := 0
	for _, r := range s {
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			continue
		}
		symbols++
	}
	if total == 0 {
		return 0
	}
	return float64(symbols) / float64(total)
}

// hasHeadingShape accepts text that ends with sentence punctuation or
// is uppercase or title-cased throughout. Body sentences in regular
// casing fail all three checks.
func hasHeadingShape(s string) bool {
	for _, ending := range []string{".", ":", "?", "!"} {
		if strings.HasSuffix(s, ending) {
			return true
		}
	}
	return isUpperText(s) || isTitleText(s)
}

// isUpperText reports whether the text has at least one cased
// character and no lowercase or titlecase ones.
func isUpperText(s string) bool {
	hasCased := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r) || unicode.IsTitle(r):
			return false
		case unicode.IsUpper(r):
			hasCased = true
		}
	}
	return hasCased
}

// isTitleText reports whether the text is title-cased: uppercase
// letters only at the start of a word, lowercase letters only after
// a cased character, and at least one cased character overall.
func isTitleText(s string) bool {
	prevCased := false
	hasCased := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			prevCased = true
			hasCased = true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			hasCased = true
		default:
			prevCased = false
		}
	}
	return hasCased
}
