package layout

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/tsawler/linea/model"
)

// TitlePolicy selects where the assembler looks for the document title.
type TitlePolicy int

const (
	// TitleFirstPage takes the first Title-level candidate on page 1.
	TitleFirstPage TitlePolicy = iota

	// TitleAnyPage takes the first Title-level candidate anywhere in
	// the document.
	TitleAnyPage
)

// String returns a string representation of the policy
func (p TitlePolicy) String() string {
	switch p {
	case TitleAnyPage:
		return "any-page"
	default:
		return "first-page"
	}
}

// AssemblerConfig holds configuration for outline assembly
type AssemblerConfig struct {
	// TitlePolicy controls where the title may come from.
	// Default: TitleFirstPage
	TitlePolicy TitlePolicy

	// FallbackTitle is used when neither the candidates nor the
	// document identifier yield a usable title. Default: "Untitled"
	FallbackTitle string
}

// DefaultAssemblerConfig returns sensible default configuration
func DefaultAssemblerConfig() AssemblerConfig {
	return AssemblerConfig{
		TitlePolicy:   TitleFirstPage,
		FallbackTitle: "Untitled",
	}
}

// OutlineAssembler turns classified heading candidates into the final
// document outline. Assembly is a pure transformation with no I/O.
type OutlineAssembler struct {
	config AssemblerConfig
}

// NewOutlineAssembler creates an assembler with default configuration
func NewOutlineAssembler() *OutlineAssembler {
	return &OutlineAssembler{config: DefaultAssemblerConfig()}
}

// NewOutlineAssemblerWithConfig creates an assembler with custom configuration
func NewOutlineAssemblerWithConfig(config AssemblerConfig) *OutlineAssembler {
	return &OutlineAssembler{config: config}
}

// Assemble builds the outline for one document. Candidates must be in
// extraction order. The identifier, typically the file name, provides
// the fallback title when no Title-level candidate qualifies.
// Title-level candidates never appear in the returned outline, and
// the heading list is ordered by page, then by vertical position.
func (a *OutlineAssembler) Assemble(identifier string, candidates []model.HeadingCandidate) model.Outline {
	title, ok := a.pickTitle(candidates)
	if !ok {
		title = a.fallbackTitle(identifier)
	}

	headings := make([]model.HeadingCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Level == model.LevelTitle {
			continue
		}
		headings = append(headings, c)
	}

	sort.SliceStable(headings, func(i, j int) bool {
		if headings[i].Page != headings[j].Page {
			return headings[i].Page < headings[j].Page
		}
		return headings[i].Y < headings[j].Y
	})

	return model.Outline{
		Title:    title,
		Headings: dedupeConsecutive(headings),
	}
}

// pickTitle scans candidates in extraction order for the first
// Title-level entry the title policy allows.
func (a *OutlineAssembler) pickTitle(candidates []model.HeadingCandidate) (string, bool) {
	for _, c := range candidates {
		if c.Level != model.LevelTitle {
			continue
		}
		if a.config.TitlePolicy == TitleFirstPage && c.Page != 1 {
			continue
		}
		return c.Text, true
	}
	return "", false
}

// fallbackTitle derives a title from the document identifier: the base
// name without its extension. The result is never empty.
func (a *OutlineAssembler) fallbackTitle(identifier string) string {
	base := filepath.Base(identifier)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.TrimSpace(stem)
	if stem != "" && stem != "." && stem != string(filepath.Separator) {
		return stem
	}
	if a.config.FallbackTitle != "" {
		return a.config.FallbackTitle
	}
	return "Untitled"
}

// dedupeConsecutive collapses adjacent entries that agree on text,
// page and level, keeping the first occurrence. Identical headings
// further apart are preserved.
func dedupeConsecutive(headings []model.HeadingCandidate) []model.HeadingCandidate {
	out := make([]model.HeadingCandidate, 0, len(headings))
	for _, h := range headings {
		if n := len(out); n > 0 &&
			out[n-1].Text == h.Text &&
			out[n-1].Page == h.Page &&
			out[n-1].Level == h.Level {
			continue
		}
		out = append(out, h)
	}
	return out
}
