package model

import (
	"encoding/json"
	"fmt"
)

// Level represents where a run sits in the document hierarchy
type Level int

const (
	// LevelBody marks body text, never a heading.
	LevelBody Level = iota
	// LevelH3 is the third heading level.
	LevelH3
	// LevelH2 is the second heading level.
	LevelH2
	// LevelH1 is the first heading level.
	LevelH1
	// LevelTitle marks the document title candidate.
	LevelTitle
)

// String returns the level name as it appears in output.
func (l Level) String() string {
	switch l {
	case LevelTitle:
		return "Title"
	case LevelH1:
		return "H1"
	case LevelH2:
		return "H2"
	case LevelH3:
		return "H3"
	default:
		return "Body"
	}
}

// IsHeading reports whether the level is a heading or title level.
func (l Level) IsHeading() bool {
	return l != LevelBody
}

// IsOutlineLevel reports whether entries of this level belong in an
// outline. Title and Body entries never do.
func (l Level) IsOutlineLevel() bool {
	return l == LevelH1 || l == LevelH2 || l == LevelH3
}

// MarshalJSON encodes the level by name ("H1", "H2", ...).
func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a level name back to its value.
func (l *Level) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "Title":
		*l = LevelTitle
	case "H1":
		*l = LevelH1
	case "H2":
		*l = LevelH2
	case "H3":
		*l = LevelH3
	case "Body":
		*l = LevelBody
	default:
		return fmt.Errorf("unknown level %q", name)
	}
	return nil
}

// LevelForRank maps a font size rank (0 = largest) to its hierarchy
// level: rank 0 is the title size, ranks 1-3 are H1-H3, everything
// below is body text.
func LevelForRank(rank int) Level {
	switch rank {
	case 0:
		return LevelTitle
	case 1:
		return LevelH1
	case 2:
		return LevelH2
	case 3:
		return LevelH3
	default:
		return LevelBody
	}
}

// TextRun is a contiguous span of text sharing one font size and style
// at one position, as emitted by PDF decoding. Runs are immutable once
// created.
type TextRun struct {
	Text     string
	FontSize float64
	Bold     bool
	Italic   bool
	Page     int // 1-indexed
	X        float64
	Y        float64 // top-down: smaller Y is higher on the page
}
