// Package model defines the data types shared across the extraction
// pipeline.
//
// The types follow the flow of one document: the reader produces
// [TextRun] values, the analyzer ranks their font sizes into a
// [FontProfile], the classifier turns accepted runs into
// [HeadingCandidate] values, and the assembler collects them into the
// final [Outline]. All values are created and discarded within the
// processing of a single document; nothing is shared across documents.
//
// [Level] orders the hierarchy from body text up to the document
// title and carries the names used in serialized output ("H1", "H2",
// "H3"). [Outline.Validate] checks a finished outline against the
// output contract.
package model
