// Package content loads the word-level page data the line grouper consumes.
//
// Pages come from a Provider. The payload shape follows the public Quran
// API (verses with nested words, snake_case fields); DecodeVerses validates
// it and converts it to layout.Verse values.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/FocuswithJustin/werd/core/errors"
	"github.com/FocuswithJustin/werd/core/layout"
	"github.com/FocuswithJustin/werd/core/verse"
)

// Provider supplies the verses printed on a Mushaf page, words included.
type Provider interface {
	Page(ctx context.Context, page int) ([]layout.Verse, error)
}

// Word is a word as it appears in the API payload.
type Word struct {
	ID           int    `json:"id"`
	Position     int    `json:"position"`
	PageNumber   int    `json:"page_number"`
	LineNumber   int    `json:"line_number"`
	CharTypeName string `json:"char_type_name"`
	Text         string `json:"text,omitempty"`
	TextUthmani  string `json:"text_uthmani,omitempty"`
	TextIndopak  string `json:"text_indopak,omitempty"`
	CodeV1       string `json:"code_v1,omitempty"`
	CodeV2       string `json:"code_v2,omitempty"`
	VerseKey     string `json:"verse_key,omitempty"`
}

// Verse is a verse as it appears in the API payload.
type Verse struct {
	ID         int    `json:"id"`
	VerseKey   string `json:"verse_key"`
	PageNumber int    `json:"page_number"`
	JuzNumber  int    `json:"juz_number,omitempty"`
	HizbNumber int    `json:"hizb_number,omitempty"`
	Words      []Word `json:"words"`
}

// PageResponse is the body of a verses-by-page response.
type PageResponse struct {
	Verses []Verse `json:"verses"`
}

// DecodeVerses reads a PageResponse from r and converts it.
func DecodeVerses(r io.Reader) ([]layout.Verse, error) {
	var resp PageResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, errors.NewParse("JSON", "", err.Error())
	}
	return Convert(resp.Verses)
}

// Convert validates payload verses and converts them to layout values.
// Words without a verse_key inherit their verse's key, and words without a
// page_number inherit their verse's page.
func Convert(in []Verse) ([]layout.Verse, error) {
	out := make([]layout.Verse, 0, len(in))
	for i, v := range in {
		lv, err := convertVerse(v)
		if err != nil {
			return nil, errors.Wrapf(err, "verse %d", i)
		}
		out = append(out, lv)
	}
	return out, nil
}

func convertVerse(v Verse) (layout.Verse, error) {
	key, err := verse.ParseKey(v.VerseKey)
	if err != nil {
		return layout.Verse{}, err
	}
	if err := key.Validate(); err != nil {
		return layout.Verse{}, err
	}
	if v.PageNumber < 1 {
		return layout.Verse{}, errors.NewValidation("page_number", fmt.Sprintf("%s has page %d", key, v.PageNumber))
	}

	lv := layout.Verse{
		ID:         v.ID,
		Key:        key,
		PageNumber: v.PageNumber,
		JuzNumber:  v.JuzNumber,
		HizbNumber: v.HizbNumber,
		Words:      make([]layout.Word, 0, len(v.Words)),
	}
	for j, w := range v.Words {
		lw, err := convertWord(w, key, v.PageNumber)
		if err != nil {
			return layout.Verse{}, errors.Wrapf(err, "%s word %d", key, j)
		}
		lv.Words = append(lv.Words, lw)
	}
	return lv, nil
}

func convertWord(w Word, parent verse.Key, page int) (layout.Word, error) {
	ct, err := layout.ParseCharType(w.CharTypeName)
	if err != nil {
		return layout.Word{}, err
	}
	key := parent
	if w.VerseKey != "" {
		if key, err = verse.ParseKey(w.VerseKey); err != nil {
			return layout.Word{}, err
		}
	}
	if w.PageNumber == 0 {
		w.PageNumber = page
	}
	if w.PageNumber < 1 {
		return layout.Word{}, errors.NewValidation("page_number", fmt.Sprintf("word on page %d", w.PageNumber))
	}
	if w.LineNumber < 1 {
		return layout.Word{}, errors.NewValidation("line_number", fmt.Sprintf("word on line %d", w.LineNumber))
	}
	return layout.Word{
		ID:          w.ID,
		Position:    w.Position,
		PageNumber:  w.PageNumber,
		LineNumber:  w.LineNumber,
		CharType:    ct,
		Text:        w.Text,
		TextUthmani: w.TextUthmani,
		TextIndopak: w.TextIndopak,
		CodeV1:      w.CodeV1,
		CodeV2:      w.CodeV2,
		Key:         key,
	}, nil
}
