package content

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/werd/core/errors"
	"github.com/FocuswithJustin/werd/core/layout"
	"github.com/FocuswithJustin/werd/core/quran"
	"github.com/FocuswithJustin/werd/internal/logging"
	"github.com/FocuswithJustin/werd/internal/validation"
)

// XML page layout:
//
//	<page number="1">
//	  <verse id="1" key="1:1" juz="1" hizb="1">
//	    <word id="1" position="1" line="2" type="word" key="1:1" page="1">
//	      <text>...</text><uthmani>...</uthmani><indopak>...</indopak>
//	      <code_v1>...</code_v1><code_v2>...</code_v2>
//	    </word>
//	  </verse>
//	</page>
//
// Word key and page attributes are optional. The verse page defaults to the
// page element's number.
var (
	xpathPageNumber = xpath.MustCompile("number(/page/@number)")
	xpathVerses     = xpath.MustCompile("/page/verse")
	xpathWords      = xpath.MustCompile("word")
)

// DirProvider reads page-NNN.json or page-NNN.xml files from a directory.
// JSON wins when both exist.
type DirProvider struct {
	dir string
}

// NewDirProvider returns a provider rooted at dir, which must exist.
func NewDirProvider(dir string) (*DirProvider, error) {
	if err := validation.ValidatePath(dir); err != nil {
		return nil, errors.NewValidation("content_dir", err.Error())
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.NewIO("stat", dir, err)
	}
	if !info.IsDir() {
		return nil, errors.NewValidation("content_dir", dir+" is not a directory")
	}
	return &DirProvider{dir: dir}, nil
}

// Page loads the verses of page.
func (p *DirProvider) Page(ctx context.Context, page int) ([]layout.Verse, error) {
	if _, err := quran.PageSegments(page); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	verses, err := p.load(page)
	if err != nil {
		logging.ContentError("dir", page, err, "dir", p.dir)
		return nil, err
	}
	return verses, nil
}

func (p *DirProvider) load(page int) ([]layout.Verse, error) {
	for _, ext := range []string{".json", ".xml"} {
		name, err := validation.SanitizePath(p.dir, fmt.Sprintf("page-%03d%s", page, ext))
		if err != nil {
			return nil, err
		}
		path := filepath.Join(p.dir, name)
		f, err := os.Open(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, errors.NewIO("open", path, err)
		}
		defer f.Close()

		if ext == ".json" {
			r, err := validation.ExpectFileType(f, validation.FileTypeJSON)
			if err != nil {
				return nil, errors.Wrap(err, path)
			}
			verses, err := DecodeVerses(r)
			return verses, errors.Wrap(err, path)
		}
		r, err := validation.ExpectFileType(f, validation.FileTypeXML)
		if err != nil {
			return nil, errors.Wrap(err, path)
		}
		verses, err := DecodeXMLPage(r)
		return verses, errors.Wrap(err, path)
	}
	return nil, errors.NewNotFound("page file", strconv.Itoa(page))
}

// DecodeXMLPage parses an XML page document and converts it like
// DecodeVerses.
func DecodeXMLPage(r io.Reader) ([]layout.Verse, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.NewParse("XML", "", err.Error())
	}

	pageNumber := 0
	if n, ok := xpathPageNumber.Evaluate(xmlquery.CreateXPathNavigator(doc)).(float64); ok && !math.IsNaN(n) {
		pageNumber = int(n)
	}

	var verses []Verse
	for _, vn := range xmlquery.QuerySelectorAll(doc, xpathVerses) {
		v := Verse{
			VerseKey:   vn.SelectAttr("key"),
			PageNumber: pageNumber,
		}
		var err error
		if v.ID, err = intAttr(vn, "id"); err != nil {
			return nil, err
		}
		if v.JuzNumber, err = intAttr(vn, "juz"); err != nil {
			return nil, err
		}
		if v.HizbNumber, err = intAttr(vn, "hizb"); err != nil {
			return nil, err
		}
		if vn.SelectAttr("page") != "" {
			if v.PageNumber, err = intAttr(vn, "page"); err != nil {
				return nil, err
			}
		}

		for _, wn := range xmlquery.QuerySelectorAll(vn, xpathWords) {
			w := Word{
				CharTypeName: wn.SelectAttr("type"),
				VerseKey:     wn.SelectAttr("key"),
				Text:         childText(wn, "text"),
				TextUthmani:  childText(wn, "uthmani"),
				TextIndopak:  childText(wn, "indopak"),
				CodeV1:       childText(wn, "code_v1"),
				CodeV2:       childText(wn, "code_v2"),
			}
			if w.ID, err = intAttr(wn, "id"); err != nil {
				return nil, err
			}
			if w.Position, err = intAttr(wn, "position"); err != nil {
				return nil, err
			}
			if w.LineNumber, err = intAttr(wn, "line"); err != nil {
				return nil, err
			}
			if w.PageNumber, err = intAttr(wn, "page"); err != nil {
				return nil, err
			}
			v.Words = append(v.Words, w)
		}
		verses = append(verses, v)
	}
	return Convert(verses)
}

// intAttr returns 0 for a missing attribute.
func intAttr(n *xmlquery.Node, name string) (int, error) {
	s := n.SelectAttr(name)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.NewParse("XML", "", fmt.Sprintf("<%s %s=%q>: not a number", n.Data, name, s))
	}
	return v, nil
}

func childText(n *xmlquery.Node, name string) string {
	if c := n.SelectElement(name); c != nil {
		return c.InnerText()
	}
	return ""
}
