// Package layout groups page content into the physical lines of the Mushaf.
//
// Words arrive from the content provider already carrying their page and
// line numbers. The grouper only redistributes them; it never computes a
// line break of its own and trusts the provider's numbering.
package layout

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/werd/core/errors"
	"github.com/FocuswithJustin/werd/core/verse"
)

// CharType classifies a glyph in the word stream.
type CharType string

// Char types used by the Mushaf word data.
const (
	CharWord      CharType = "word"
	CharEnd       CharType = "end"
	CharPause     CharType = "pause"
	CharSajdah    CharType = "sajdah"
	CharRubElHizb CharType = "rub-el-hizb"
)

// ParseCharType validates a char type name.
func ParseCharType(s string) (CharType, error) {
	switch ct := CharType(s); ct {
	case CharWord, CharEnd, CharPause, CharSajdah, CharRubElHizb:
		return ct, nil
	}
	return "", errors.NewValidation("char_type_name", fmt.Sprintf("unknown char type %q", s))
}

// Word is one glyph positioned on a page line.
type Word struct {
	ID          int       `json:"id"`
	Position    int       `json:"position"`
	PageNumber  int       `json:"page_number"`
	LineNumber  int       `json:"line_number"`
	CharType    CharType  `json:"char_type"`
	Text        string    `json:"text,omitempty"`
	TextUthmani string    `json:"text_uthmani,omitempty"`
	TextIndopak string    `json:"text_indopak,omitempty"`
	CodeV1      string    `json:"code_v1,omitempty"`
	CodeV2      string    `json:"code_v2,omitempty"`
	Key         verse.Key `json:"verse_key"`
}

// IsVerseEnd reports whether the word is an end-of-ayah marker.
func (w Word) IsVerseEnd() bool {
	return w.CharType == CharEnd
}

// Verse is one verse of page content with its words in position order.
type Verse struct {
	ID         int       `json:"id"`
	Key        verse.Key `json:"verse_key"`
	PageNumber int       `json:"page_number"`
	JuzNumber  int       `json:"juz_number,omitempty"`
	HizbNumber int       `json:"hizb_number,omitempty"`
	Words      []Word    `json:"words"`
}

// LineBucket holds the words printed on one physical line.
type LineBucket struct {
	PageNumber int    `json:"page_number"`
	LineNumber int    `json:"line_number"`
	Words      []Word `json:"words"`
}

// Key returns the line identifier "Page{p}-Line{l}".
func (b LineBucket) Key() string {
	return lineKey(b.PageNumber, b.LineNumber)
}

func lineKey(page, line int) string {
	return fmt.Sprintf("Page%d-Line%d", page, line)
}

// GroupLines flattens the words of verses, in verse order and then word
// order, and buckets them by (page, line). Buckets appear in the order
// their first word was seen; they are not sorted.
func GroupLines(verses []Verse) []LineBucket {
	type lineID struct{ page, line int }
	index := make(map[lineID]int)
	var buckets []LineBucket

	for _, v := range verses {
		for _, w := range v.Words {
			id := lineID{w.PageNumber, w.LineNumber}
			i, ok := index[id]
			if !ok {
				i = len(buckets)
				index[id] = i
				buckets = append(buckets, LineBucket{PageNumber: w.PageNumber, LineNumber: w.LineNumber})
			}
			buckets[i].Words = append(buckets[i].Words, w)
		}
	}
	return buckets
}

// PageGroup holds the verses that start on one page.
type PageGroup struct {
	PageNumber int     `json:"page_number"`
	Verses     []Verse `json:"verses"`
}

// GroupPages buckets verses by their page number in first-seen order.
func GroupPages(verses []Verse) []PageGroup {
	index := make(map[int]int)
	var groups []PageGroup
	for _, v := range verses {
		i, ok := index[v.PageNumber]
		if !ok {
			i = len(groups)
			index[v.PageNumber] = i
			groups = append(groups, PageGroup{PageNumber: v.PageNumber})
		}
		groups[i].Verses = append(groups[i].Verses, v)
	}
	return groups
}

// VerseText joins the display text of words with single spaces. Each word
// contributes its QCF v1 code, else its Uthmani text, else its plain text;
// words with none of them are skipped.
func VerseText(words []Word) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		switch {
		case w.CodeV1 != "":
			parts = append(parts, w.CodeV1)
		case w.TextUthmani != "":
			parts = append(parts, w.TextUthmani)
		case w.Text != "":
			parts = append(parts, w.Text)
		}
	}
	return strings.Join(parts, " ")
}
