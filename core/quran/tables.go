package quran

import (
	"fmt"

	"github.com/FocuswithJustin/werd/core/errors"
)

// Canonical totals of the Madani Mushaf.
const (
	TotalPages        = 604
	TotalSurahs       = 114
	TotalJuz          = 30
	TotalVerses       = 6236
	TotalMakkiSurahs  = 89
	TotalMadaniSurahs = 25
)

// JuzNotFound is returned by JuzNumber when no juz entry covers a verse.
const JuzNotFound = -1

// Place is the place of revelation of a surah.
type Place string

// Revelation places.
const (
	Makkah  Place = "Makkah"
	Madinah Place = "Madinah"
)

// SurahMeta is the static metadata of one surah.
type SurahMeta struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	ArabicName      string `json:"arabic_name"`
	EnglishName     string `json:"english_name"`
	VersesCount     int    `json:"verses_count"`
	RevelationPlace Place  `json:"revelation_place"`
}

// PageSegment is a contiguous run of verses of one surah printed on a page.
type PageSegment struct {
	SurahID    int `json:"surah_id"`
	StartVerse int `json:"start_verse"`
	EndVerse   int `json:"end_verse"`
}

// Contains reports whether the segment covers the given verse.
func (s PageSegment) Contains(surahID, verse int) bool {
	return s.SurahID == surahID && verse >= s.StartVerse && verse <= s.EndVerse
}

// Len returns the number of verses in the segment.
func (s PageSegment) Len() int {
	return s.EndVerse - s.StartVerse + 1
}

// VerseInterval is an inclusive verse interval inside one surah.
type VerseInterval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether verse lies inside the interval.
func (v VerseInterval) Contains(verse int) bool {
	return verse >= v.Start && verse <= v.End
}

// JuzEntry maps every surah touched by a juz to the verses it contributes.
type JuzEntry struct {
	ID     int                   `json:"id"`
	Verses map[int]VerseInterval `json:"verses"`
}

// Index holds the addressing tables. It is immutable once built.
type Index struct {
	surahs []SurahMeta
	pages  [][]PageSegment
	juz    []JuzEntry
	sajdah map[[2]int]bool
}

// NewIndex builds an Index from a surah list and the page and juz start
// tables. Each start is {surah, verse}; starts must be strictly increasing
// and point at existing verses. Pages run until the next page's start,
// the last one until the end of the final surah. Juz are derived the same
// way, so a juz table that starts after 1:1 leaves the leading surahs
// without a juz.
func NewIndex(surahs []SurahMeta, pageStarts, juzStarts [][2]int) (*Index, error) {
	for i, s := range surahs {
		if s.ID != i+1 {
			return nil, errors.NewValidation("surahs", fmt.Sprintf("surah at position %d has id %d", i+1, s.ID))
		}
		if s.VersesCount < 1 {
			return nil, errors.NewValidation("surahs", fmt.Sprintf("surah %d has no verses", s.ID))
		}
	}
	if len(pageStarts) == 0 || pageStarts[0] != [2]int{1, 1} {
		return nil, errors.NewValidation("pageStarts", "first page must start at 1:1")
	}

	ix := &Index{surahs: surahs, sajdah: make(map[[2]int]bool)}

	pageRuns, err := ix.runs("pageStarts", pageStarts)
	if err != nil {
		return nil, err
	}
	ix.pages = pageRuns

	juzRuns, err := ix.runs("juzStarts", juzStarts)
	if err != nil {
		return nil, err
	}
	ix.juz = make([]JuzEntry, len(juzRuns))
	for i, segs := range juzRuns {
		entry := JuzEntry{ID: i + 1, Verses: make(map[int]VerseInterval, len(segs))}
		for _, seg := range segs {
			entry.Verses[seg.SurahID] = VerseInterval{Start: seg.StartVerse, End: seg.EndVerse}
		}
		ix.juz[i] = entry
	}

	return ix, nil
}

// runs cuts the verse stream into consecutive runs starting at each entry
// of starts, splitting every run at surah boundaries.
func (ix *Index) runs(field string, starts [][2]int) ([][]PageSegment, error) {
	end := [2]int{len(ix.surahs) + 1, 1}
	for i, s := range starts {
		if s[0] < 1 || s[0] > len(ix.surahs) || s[1] < 1 || s[1] > ix.surahs[s[0]-1].VersesCount {
			return nil, errors.NewValidation(field, fmt.Sprintf("entry %d points at missing verse %d:%d", i+1, s[0], s[1]))
		}
		if i > 0 && !before(starts[i-1], s) {
			return nil, errors.NewValidation(field, fmt.Sprintf("entry %d (%d:%d) is not after entry %d", i+1, s[0], s[1], i))
		}
	}

	out := make([][]PageSegment, len(starts))
	for i, s := range starts {
		next := end
		if i+1 < len(starts) {
			next = starts[i+1]
		}
		var segs []PageSegment
		surah, verse := s[0], s[1]
		for before([2]int{surah, verse}, next) {
			if surah < next[0] {
				segs = append(segs, PageSegment{SurahID: surah, StartVerse: verse, EndVerse: ix.surahs[surah-1].VersesCount})
				surah, verse = surah+1, 1
				continue
			}
			segs = append(segs, PageSegment{SurahID: surah, StartVerse: verse, EndVerse: next[1] - 1})
			break
		}
		out[i] = segs
	}
	return out, nil
}

func before(a, b [2]int) bool {
	return a[0] < b[0] || (a[0] == b[0] && a[1] < b[1])
}

// std is the canonical index, built once at process start.
var std = mustCanonicalIndex()

func mustCanonicalIndex() *Index {
	ix, err := NewIndex(surahTable, pageStarts, juzStarts)
	if err != nil {
		panic(fmt.Sprintf("quran: canonical tables are inconsistent: %v", err))
	}
	for _, v := range sajdahVerses {
		ix.sajdah[v] = true
	}
	return ix
}

// Default returns the canonical Madani Mushaf index.
func Default() *Index {
	return std
}
