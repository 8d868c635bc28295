package quran

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/derekparker/trie"
)

// nameTrie indexes normalized transliterated and English surah names.
// Each terminal node carries the []int of surah ids sharing that key.
var nameTrie = buildNameTrie(surahTable)

func buildNameTrie(surahs []SurahMeta) *trie.Trie {
	keys := make(map[string][]int)
	for _, s := range surahs {
		for _, key := range nameKeys(s) {
			ids := keys[key]
			if len(ids) > 0 && ids[len(ids)-1] == s.ID {
				continue
			}
			keys[key] = append(ids, s.ID)
		}
	}

	t := trie.New()
	for key, ids := range keys {
		t.Add(key, ids)
	}
	return t
}

// nameKeys returns the lookup keys of a surah: its transliterated and
// English names, each with and without a leading article.
func nameKeys(s SurahMeta) []string {
	var keys []string
	for _, name := range []string{s.Name, s.EnglishName} {
		if k := normalizeName(name); k != "" {
			keys = append(keys, k)
		}
		if bare := stripArticle(name); bare != name {
			if k := normalizeName(bare); k != "" {
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// stripArticle removes "Al-", "An-", "Ash-" style prefixes and a leading "The ".
func stripArticle(name string) string {
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, "the ") {
		return name[4:]
	}
	if i := strings.IndexByte(name, '-'); i > 0 && i <= 3 && lower[0] == 'a' {
		return name[i+1:]
	}
	return name
}

func normalizeName(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// FindSurahs resolves a jump-to-chapter query. An empty query returns every
// surah; digits match surah numbers containing them; Arabic text matches
// Arabic names by substring; anything else is a prefix match over the
// transliterated and English names, with or without the article.
func FindSurahs(query string) []SurahMeta {
	q := strings.TrimSpace(query)
	if q == "" {
		return Surahs()
	}

	if isDigits(q) {
		var out []SurahMeta
		for _, s := range surahTable {
			if strings.Contains(strconv.Itoa(s.ID), q) {
				out = append(out, s)
			}
		}
		return out
	}

	if !isASCII(q) {
		var out []SurahMeta
		for _, s := range surahTable {
			if strings.Contains(s.ArabicName, q) {
				out = append(out, s)
			}
		}
		return out
	}

	key := normalizeName(q)
	if key == "" {
		return nil
	}
	seen := make(map[int]bool)
	for _, match := range nameTrie.PrefixSearch(key) {
		node, ok := nameTrie.Find(match)
		if !ok {
			continue
		}
		ids, _ := node.Meta().([]int)
		for _, id := range ids {
			seen[id] = true
		}
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]SurahMeta, len(ids))
	for i, id := range ids {
		out[i] = surahTable[id-1]
	}
	return out
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isASCII(s string) bool {
	for _, r := range s {
		if r >= unicode.MaxASCII {
			return false
		}
	}
	return true
}
