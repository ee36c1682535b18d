package article

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Sentence is one sentence of a text and the Arabic words in it.
type Sentence struct {
	Text  string
	Words []string
}

// Split cuts text into sentences and keeps those with Arabic words.
func Split(text string) []Sentence {
	var out []Sentence
	for _, s := range SplitSentences(text) {
		words := Words(s)
		if len(words) == 0 {
			continue
		}
		out = append(out, Sentence{Text: s, Words: words})
	}
	return out
}

// SplitSentences splits on Latin and Arabic sentence punctuation and on
// newlines. Empty sentences are dropped.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}
	for _, r := range text {
		if r == '\n' {
			flush()
			continue
		}
		current.WriteRune(r)
		switch r {
		// ؟ (061F), ۔ (06D4), ؛ (061B)
		case '.', '!', '?', '؟', '۔', '؛':
			flush()
		}
	}
	flush()
	return sentences
}

func isArabicLetter(r rune) bool {
	return unicode.Is(unicode.Arabic, r) && unicode.IsLetter(r)
}

// Words returns the runs of Arabic letters in s. Combining marks and
// tatweel continue a word but never start one. Digits, punctuation and
// Latin text separate words.
func Words(s string) []string {
	var words []string
	start := -1
	for i, r := range s {
		if isArabicLetter(r) || (start >= 0 && (unicode.Is(unicode.Mn, r) || r == 'ـ')) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			words = append(words, s[start:i])
			start = -1
		}
	}
	if start >= 0 {
		words = append(words, s[start:])
	}
	return words
}

// tashkeel are the harakat, tanween, shaddah, sukun and the superscript alef.
var tashkeel = runes.In(&unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x064B, Hi: 0x0652, Stride: 1},
		{Lo: 0x0670, Hi: 0x0670, Stride: 1},
	},
})

// StripTashkeel removes vowel marks and tatweel from s.
func StripTashkeel(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(tashkeel), runes.Remove(runes.Predicate(func(r rune) bool { return r == 'ـ' })), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
