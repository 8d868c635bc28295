package quran

import (
	"github.com/FocuswithJustin/werd/core/errors"
)

// SurahCount returns the number of surahs in the index.
func (ix *Index) SurahCount() int { return len(ix.surahs) }

// PageCount returns the number of pages in the index.
func (ix *Index) PageCount() int { return len(ix.pages) }

// JuzCount returns the number of juz in the index.
func (ix *Index) JuzCount() int { return len(ix.juz) }

// Surah returns the metadata of a surah.
func (ix *Index) Surah(id int) (SurahMeta, error) {
	if id < 1 || id > len(ix.surahs) {
		return SurahMeta{}, errors.NewOutOfRange("surah", id, 1, len(ix.surahs))
	}
	return ix.surahs[id-1], nil
}

// Surahs returns all surahs in canonical order.
func (ix *Index) Surahs() []SurahMeta {
	out := make([]SurahMeta, len(ix.surahs))
	copy(out, ix.surahs)
	return out
}

// VersesCount returns the number of verses in a surah.
func (ix *Index) VersesCount(surahID int) (int, error) {
	meta, err := ix.Surah(surahID)
	if err != nil {
		return 0, err
	}
	return meta.VersesCount, nil
}

// PageSegments returns the verse segments printed on a page.
func (ix *Index) PageSegments(page int) ([]PageSegment, error) {
	if page < 1 || page > len(ix.pages) {
		return nil, errors.NewOutOfRange("page", page, 1, len(ix.pages))
	}
	segs := ix.pages[page-1]
	out := make([]PageSegment, len(segs))
	copy(out, segs)
	return out, nil
}

// JuzVerseIntervals returns the verse interval each surah contributes to a juz.
func (ix *Index) JuzVerseIntervals(juz int) (map[int]VerseInterval, error) {
	if juz < 1 || juz > len(ix.juz) {
		return nil, errors.NewOutOfRange("juz", juz, 1, len(ix.juz))
	}
	src := ix.juz[juz-1].Verses
	out := make(map[int]VerseInterval, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out, nil
}

// PageNumber returns the first page whose segments contain the verse.
// It scans every page in order.
func (ix *Index) PageNumber(surahID, verse int) (int, error) {
	if surahID < 1 || surahID > len(ix.surahs) {
		return 0, errors.NewOutOfRange("surah", surahID, 1, len(ix.surahs))
	}
	for i, segs := range ix.pages {
		for _, seg := range segs {
			if seg.Contains(surahID, verse) {
				return i + 1, nil
			}
		}
	}
	return 0, errors.NewVerseNotFound(surahID, verse, "page")
}

// JuzNumber returns the juz containing the verse, or JuzNotFound when no
// juz entry covers it. Unlike the other lookups it does not fail.
func (ix *Index) JuzNumber(surahID, verse int) int {
	for _, entry := range ix.juz {
		if interval, ok := entry.Verses[surahID]; ok && interval.Contains(verse) {
			return entry.ID
		}
	}
	return JuzNotFound
}

// SurahPages returns the ordered pages that print any part of a surah.
func (ix *Index) SurahPages(surahID int) ([]int, error) {
	if surahID < 1 || surahID > len(ix.surahs) {
		return nil, errors.NewOutOfRange("surah", surahID, 1, len(ix.surahs))
	}
	var pages []int
	for i, segs := range ix.pages {
		for _, seg := range segs {
			if seg.SurahID == surahID {
				pages = append(pages, i+1)
				break
			}
		}
	}
	return pages, nil
}

// SurahCountByPage returns how many surahs appear on a page.
func (ix *Index) SurahCountByPage(page int) (int, error) {
	segs, err := ix.PageSegments(page)
	if err != nil {
		return 0, err
	}
	return len(segs), nil
}

// VerseCountByPage returns how many verses are printed on a page.
func (ix *Index) VerseCountByPage(page int) (int, error) {
	segs, err := ix.PageSegments(page)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, seg := range segs {
		n += seg.Len()
	}
	return n, nil
}

// IsSajdahVerse reports whether the verse carries a prostration mark.
func (ix *Index) IsSajdahVerse(surahID, verse int) bool {
	return ix.sajdah[[2]int{surahID, verse}]
}

// Package-level lookups over the canonical index.

// Surah returns the metadata of a surah.
func Surah(id int) (SurahMeta, error) { return std.Surah(id) }

// Surahs returns all 114 surahs in canonical order.
func Surahs() []SurahMeta { return std.Surahs() }

// VersesCount returns the number of verses in a surah.
func VersesCount(surahID int) (int, error) { return std.VersesCount(surahID) }

// PageSegments returns the verse segments printed on a page.
func PageSegments(page int) ([]PageSegment, error) { return std.PageSegments(page) }

// JuzVerseIntervals returns the verse interval each surah contributes to a juz.
func JuzVerseIntervals(juz int) (map[int]VerseInterval, error) { return std.JuzVerseIntervals(juz) }

// PageNumber returns the page a verse is printed on.
func PageNumber(surahID, verse int) (int, error) { return std.PageNumber(surahID, verse) }

// JuzNumber returns the juz of a verse, or JuzNotFound.
func JuzNumber(surahID, verse int) int { return std.JuzNumber(surahID, verse) }

// SurahPages returns the ordered pages that print any part of a surah.
func SurahPages(surahID int) ([]int, error) { return std.SurahPages(surahID) }

// SurahCountByPage returns how many surahs appear on a page.
func SurahCountByPage(page int) (int, error) { return std.SurahCountByPage(page) }

// VerseCountByPage returns how many verses are printed on a page.
func VerseCountByPage(page int) (int, error) { return std.VerseCountByPage(page) }

// IsSajdahVerse reports whether the verse carries a prostration mark.
func IsSajdahVerse(surahID, verse int) bool { return std.IsSajdahVerse(surahID, verse) }
