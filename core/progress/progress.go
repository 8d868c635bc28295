// Package progress summarizes memorized verse ranges.
//
// It converts between the selection's verse.Range values and the
// per-chapter wire format used by the memorization backend, and computes
// the per-surah and overall progress shown on the summary screen.
package progress

import (
	"fmt"
	"math"
	"slices"

	"github.com/FocuswithJustin/werd/core/errors"
	"github.com/FocuswithJustin/werd/core/layout"
	"github.com/FocuswithJustin/werd/core/quran"
	"github.com/FocuswithJustin/werd/core/verse"
)

// ServerRange is one memorized run as the backend stores it.
type ServerRange struct {
	StartVerse int `json:"startVerse"`
	EndVerse   int `json:"endVerse"`
	WordsCount int `json:"wordsCount"`
}

// ServerData maps chapter numbers to their memorized runs.
type ServerData map[int][]ServerRange

// Stats counts the verses and words of a range.
type Stats struct {
	VerseCount int `json:"verse_count"`
	WordCount  int `json:"word_count"`
}

// RangeSummary describes one memorized range for display.
type RangeSummary struct {
	ID         string `json:"id"`
	Surah      int    `json:"surah"`
	StartVerse int    `json:"start_verse"`
	EndVerse   int    `json:"end_verse"`
	StartText  string `json:"start_text,omitempty"`
	EndText    string `json:"end_text,omitempty"`
	Stats
}

// SurahProgress is the memorization state of one surah.
type SurahProgress struct {
	Number          int            `json:"number"`
	NameArabic      string         `json:"name_arabic"`
	NameEnglish     string         `json:"name_english"`
	Place           quran.Place    `json:"place"`
	TotalVerses     int            `json:"total_verses"`
	MemorizedVerses int            `json:"memorized_verses"`
	Ranges          []RangeSummary `json:"ranges"`
}

// Complete reports whether every verse of the surah is memorized.
func (p SurahProgress) Complete() bool {
	return p.MemorizedVerses == p.TotalVerses
}

// Summary is the overall memorization progress.
type Summary struct {
	OverallProgress      int             `json:"overall_progress"`
	TotalMemorizedVerses int             `json:"total_memorized_verses"`
	TotalVerses          int             `json:"total_verses"`
	CompletedSurahs      int             `json:"completed_surahs"`
	InProgressSurahs     int             `json:"in_progress_surahs"`
	Surahs               []SurahProgress `json:"surahs"`
}

// RangeStats counts the verses of r and the words of those verses found in
// verses. Verses missing from the slice contribute no words.
func RangeStats(r verse.Range, verses []layout.Verse) Stats {
	byKey := make(map[verse.Key]int, len(verses))
	for _, v := range verses {
		byKey[v.Key] = len(v.Words)
	}
	return statsFor(r, byKey)
}

// WordCounts indexes the word count of each verse.
func WordCounts(verses []layout.Verse) map[verse.Key]int {
	out := make(map[verse.Key]int, len(verses))
	for _, v := range verses {
		out[v.Key] = len(v.Words)
	}
	return out
}

func statsFor(r verse.Range, wordCounts map[verse.Key]int) Stats {
	st := Stats{VerseCount: r.VerseCount()}
	for _, k := range r.Keys() {
		st.WordCount += wordCounts[k]
	}
	return st
}

// Describe builds the display summary of r. Start and end texts come from
// the matching verses when present, otherwise "{arabic surah name} - {verse}".
func Describe(r verse.Range, verses []layout.Verse) RangeSummary {
	byKey := make(map[verse.Key]layout.Verse, len(verses))
	for _, v := range verses {
		byKey[v.Key] = v
	}
	text := func(k verse.Key) string {
		if v, ok := byKey[k]; ok {
			if t := layout.VerseText(v.Words); t != "" {
				return t
			}
		}
		name := ""
		if meta, err := quran.Surah(k.Surah); err == nil {
			name = meta.ArabicName
		}
		return fmt.Sprintf("%s - %d", name, k.Verse)
	}

	return RangeSummary{
		ID:         r.ID,
		Surah:      r.Surah,
		StartVerse: r.Start.Verse,
		EndVerse:   r.End.Verse,
		StartText:  text(r.Start),
		EndText:    text(r.End),
		Stats:      RangeStats(r, verses),
	}
}

// Summarize computes progress over ranges. Ranges are merged first so
// overlapping input is not counted twice. wordCounts may be nil.
func Summarize(ranges []verse.Range, wordCounts map[verse.Key]int) (Summary, error) {
	merged := verse.MergeOverlapping(ranges)

	sum := Summary{TotalVerses: quran.TotalVerses}
	var cur *SurahProgress
	for _, r := range merged {
		if err := r.Start.Validate(); err != nil {
			return Summary{}, err
		}
		if err := r.End.Validate(); err != nil {
			return Summary{}, err
		}
		if cur == nil || cur.Number != r.Surah {
			meta, err := quran.Surah(r.Surah)
			if err != nil {
				return Summary{}, err
			}
			sum.Surahs = append(sum.Surahs, SurahProgress{
				Number:      meta.ID,
				NameArabic:  meta.ArabicName,
				NameEnglish: meta.Name,
				Place:       meta.RevelationPlace,
				TotalVerses: meta.VersesCount,
			})
			cur = &sum.Surahs[len(sum.Surahs)-1]
		}
		cur.MemorizedVerses += r.VerseCount()
		cur.Ranges = append(cur.Ranges, RangeSummary{
			ID:         r.ID,
			Surah:      r.Surah,
			StartVerse: r.Start.Verse,
			EndVerse:   r.End.Verse,
			Stats:      statsFor(r, wordCounts),
		})
	}

	for _, sp := range sum.Surahs {
		sum.TotalMemorizedVerses += sp.MemorizedVerses
		if sp.Complete() {
			sum.CompletedSurahs++
		} else if sp.MemorizedVerses > 0 {
			sum.InProgressSurahs++
		}
	}
	sum.OverallProgress = int(math.Round(float64(sum.TotalMemorizedVerses) / float64(sum.TotalVerses) * 100))
	return sum, nil
}

// FromServerData converts backend runs into merged ranges. Ranges get no
// ids; Selection.Restore assigns them.
func FromServerData(data ServerData) ([]verse.Range, error) {
	chapters := make([]int, 0, len(data))
	for ch := range data {
		chapters = append(chapters, ch)
	}
	slices.Sort(chapters)

	var ranges []verse.Range
	for _, ch := range chapters {
		for i, sr := range data[ch] {
			start := verse.NewKey(ch, sr.StartVerse)
			end := verse.NewKey(ch, sr.EndVerse)
			for _, k := range []verse.Key{start, end} {
				if err := k.Validate(); err != nil {
					return nil, errors.Wrapf(err, "chapter %d range %d", ch, i)
				}
			}
			r, err := verse.NewRange("", start, end)
			if err != nil {
				return nil, err
			}
			ranges = append(ranges, r)
		}
	}
	return verse.MergeOverlapping(ranges), nil
}

// ToServerData converts ranges into the backend format. wordCounts may be
// nil, in which case every WordsCount is 0.
func ToServerData(ranges []verse.Range, wordCounts map[verse.Key]int) ServerData {
	out := make(ServerData)
	for _, r := range verse.MergeOverlapping(ranges) {
		out[r.Surah] = append(out[r.Surah], ServerRange{
			StartVerse: r.Start.Verse,
			EndVerse:   r.End.Verse,
			WordsCount: statsFor(r, wordCounts).WordCount,
		})
	}
	return out
}
