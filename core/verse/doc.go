// Package verse implements verse-key algebra and range merging.
//
// A Key is a surah:verse address. ParseKey and Key.String round-trip for
// every valid key. A Range is an inclusive verse run that never crosses a
// surah boundary; SplitRangeBySurah turns an arbitrary key pair into one
// or two such ranges and MergeOverlapping folds a collection into its
// canonical form, where no two ranges of one surah overlap or touch.
//
// Parsing is syntactic only. Table checks live in Key.Validate, which
// fails with errors.ErrOutOfRange or errors.ErrVerseNotFound.
package verse
