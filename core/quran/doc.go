// Package quran provides the static addressing tables of the Madani Mushaf
// and the lookups over them.
//
// Four coordinate systems overlap in the printed text:
//
//   - surah/verse: 114 surahs with a fixed verse count each (6236 verses)
//   - page: 604 pages, each an ordered list of PageSegments
//   - line: the physical line on a page (carried by word data, see package layout)
//   - juz: 30 reading sections, each mapping surahs to verse intervals
//
// The tables are built once at process start from compact start tables
// (the first verse of every page and juz) and never change afterwards, so
// every query is safe for concurrent use.
//
// # Errors
//
// Lookups outside the closed id intervals fail with errors.ErrOutOfRange.
// PageNumber fails with errors.ErrVerseNotFound when no page covers the
// verse. JuzNumber is the exception: it returns the JuzNotFound sentinel.
//
// # Example
//
//	page, err := quran.PageNumber(2, 255) // 42
//	juz := quran.JuzNumber(2, 255)        // 3
//	meta, err := quran.Surah(18)          // Al-Kahf, 110 verses
package quran
