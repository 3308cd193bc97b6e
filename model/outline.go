package model

import "fmt"

// HeadingCandidate is a run provisionally classified as a title or
// heading. Y is carried for ordering inside the assembler and is not
// part of the serialized form.
type HeadingCandidate struct {
	Level Level   `json:"level"`
	Text  string  `json:"text"`
	Page  int     `json:"page"`
	Y     float64 `json:"-"`
}

// Outline is the final title plus ordered heading list for one
// document. Title-level candidates never appear in Headings.
type Outline struct {
	Title    string             `json:"title"`
	Headings []HeadingCandidate `json:"outline"`
}

// Validate checks the outline against the output contract: a non-empty
// title, only H1-H3 entries, non-empty heading text, and 1-based page
// numbers. It returns the first violation found.
func (o *Outline) Validate() error {
	if o == nil {
		return fmt.Errorf("outline is nil")
	}
	if o.Title == "" {
		return fmt.Errorf("title is empty")
	}
	for i, h := range o.Headings {
		if !h.Level.IsOutlineLevel() {
			return fmt.Errorf("outline[%d]: invalid level %s", i, h.Level)
		}
		if h.Text == "" {
			return fmt.Errorf("outline[%d]: empty text", i)
		}
		if h.Page < 1 {
			return fmt.Errorf("outline[%d]: page %d is not positive", i, h.Page)
		}
	}
	return nil
}

// HeadingCount returns the number of headings at the given level.
func (o *Outline) HeadingCount(level Level) int {
	if o == nil {
		return 0
	}
	n := 0
	for _, h := range o.Headings {
		if h.Level == level {
			n++
		}
	}
	return n
}
