// Package layout classifies text runs into a document outline.
//
// Classification is a heuristic built on font-size ranking and text
// pattern rules, deliberately tolerant of imprecision: it aims for a
// useful outline, not ground truth. Three stages cooperate:
//
// [FontHierarchyAnalyzer] makes the single global pass, ranking the
// document's distinct font sizes into title, heading, and body
// levels.
//
// [HeadingClassifier] then judges runs one at a time against the
// profile and an ordered rule chain: length bounds, exclusion
// patterns (page markers, captions, URLs), a symbol-ratio check, and
// optionally the heading-shape rule demanding heading-like casing or
// terminal punctuation. Rejection is the normal outcome for body
// text, never an error.
//
// [OutlineAssembler] finally resolves the title under the configured
// [TitlePolicy], orders the surviving candidates into reading order,
// and collapses consecutive duplicates.
//
// Every stage takes an immutable config struct at construction and
// holds no per-document state, so one instance may serve any number
// of documents, concurrently.
package layout
