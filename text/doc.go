// Package text normalizes raw extracted text before layout analysis.
//
// Text pulled out of PDF content streams arrives with typographic
// codepoints (ligatures, smart quotes, dashes), invisible formatting
// characters, and irregular whitespace. This package reduces every
// run to one canonical form so the classification stages compare like
// with like.
//
// # Normalization
//
// The [Normalizer] type applies the full cleaning pipeline:
//
//	n := text.NewNormalizer()
//	clean := n.Normalize("  ﬁnal “report”  ")
//	// clean == `final "report"`
//
// Normalization is pure and idempotent. It performs, in order:
//
//   - Unicode NFKC folding (fullwidth forms, presentation ligatures)
//   - expansion of ligatures and digraphs NFKC leaves alone (Æ, Œ)
//   - straightening of quotes, dashes, bullets, and the ellipsis
//   - removal of zero-width and control characters
//   - collapse of whitespace runs to single spaces, then trim
//
// [Normalizer.NormalizeRuns] applies the same pipeline across a slice
// of runs and drops those whose text normalizes to nothing.
//
// # Text Direction
//
// The package supports bidirectional text with the [Direction] type:
//
//   - LTR - left-to-right (Latin, CJK, etc.)
//   - RTL - right-to-left (Arabic, Hebrew, etc.)
//   - Neutral - direction-neutral characters (numbers, punctuation)
//
// The [DetectDirection] function analyzes text to determine its
// direction; row assembly uses it to put runs into reading order.
package text
