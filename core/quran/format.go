package quran

import (
	"fmt"
	"strconv"
	"strings"
)

// VerseEndMark is the Arabic end-of-ayah sign.
const VerseEndMark = '۝'

// Basmala is the opening formula printed before most surahs.
const Basmala = "بِسْمِ ٱللَّهِ ٱلرَّحْمَٰنِ ٱلرَّحِيمِ"

// Sajdah is the word printed next to a prostration verse.
const Sajdah = "سَجْدَةٌ"

var arabicIndicDigits = [10]rune{'٠', '١', '٢', '٣', '٤', '٥', '٦', '٧', '٨', '٩'}

// PageFontName returns the QCF v2 font family used to render a page.
func PageFontName(page int) string {
	return fmt.Sprintf("QCF2%03d", page)
}

// VerseEndSymbol returns the end-of-ayah sign followed by the verse number,
// in Arabic-Indic digits unless arabicNumerals is false.
func VerseEndSymbol(verse int, arabicNumerals bool) string {
	digits := strconv.Itoa(verse)
	if !arabicNumerals {
		return string(VerseEndMark) + digits
	}
	var sb strings.Builder
	sb.WriteRune(VerseEndMark)
	for _, d := range digits {
		if d < '0' || d > '9' {
			sb.WriteRune(d)
			continue
		}
		sb.WriteRune(arabicIndicDigits[d-'0'])
	}
	return sb.String()
}

// JuzURL returns the quran.com link of a juz.
func JuzURL(juz int) string {
	return fmt.Sprintf("https://quran.com/juz/%d", juz)
}

// SurahURL returns the quran.com link of a surah.
func SurahURL(surahID int) string {
	return fmt.Sprintf("https://quran.com/%d", surahID)
}

// VerseURL returns the quran.com link of a verse.
func VerseURL(surahID, verse int) string {
	return fmt.Sprintf("https://quran.com/%d/%d", surahID, verse)
}
