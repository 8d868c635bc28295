package verse

import (
	"cmp"
	"slices"
)

// MergeOverlapping canonicalizes a range collection.
//
// Ranges are sorted by surah and lowest verse, then swept left to right.
// Two ranges of the same surah merge when they overlap or touch (the next
// one starts at most one verse after the current one ends). A merged range
// spans the min and max verses, keeps the lexicographically larger ID and
// keeps the StartSurah of whichever input had one.
//
// The result never holds two ranges of one surah that overlap or touch.
// The input slice is not modified. MergeOverlapping is idempotent.
func MergeOverlapping(ranges []Range) []Range {
	if len(ranges) == 0 {
		return nil
	}

	sorted := make([]Range, len(ranges))
	for i, r := range ranges {
		sorted[i] = normalize(r)
	}
	slices.SortStableFunc(sorted, func(a, b Range) int {
		if c := cmp.Compare(a.Surah, b.Surah); c != 0 {
			return c
		}
		return cmp.Compare(a.Start.Verse, b.Start.Verse)
	})

	out := make([]Range, 0, len(sorted))
	cur := sorted[0]
	for _, next := range sorted[1:] {
		if next.Surah == cur.Surah && next.Start.Verse <= cur.End.Verse+1 {
			if next.End.Verse > cur.End.Verse {
				cur.End = next.End
			}
			if next.ID > cur.ID {
				cur.ID = next.ID
			}
			if cur.StartSurah == 0 {
				cur.StartSurah = next.StartSurah
			}
			continue
		}
		out = append(out, cur)
		cur = next
	}
	return append(out, cur)
}

// normalize puts the lower verse first and derives Surah from Start.
func normalize(r Range) Range {
	lo, hi := minMax(r.Start.Verse, r.End.Verse)
	r.Start = Key{Surah: r.Start.Surah, Verse: lo}
	r.End = Key{Surah: r.Start.Surah, Verse: hi}
	r.Surah = r.Start.Surah
	return r
}
