package segment

import (
	"unicode"

	"github.com/japaniel/alifba/pkg/catalog"
)

// visualIndex maps every rune of shaped text to its position once each line
// is reversed by clusters of a base rune and its trailing marks.
func visualIndex(runes []rune) []int {
	idx := make([]int, len(runes))
	for start := 0; start <= len(runes); {
		end := start
		for end < len(runes) && runes[end] != '\n' {
			end++
		}
		var heads []int
		for i := start; i < end; i++ {
			if i == start || !unicode.Is(unicode.Mn, runes[i]) {
				heads = append(heads, i)
			}
		}
		pos := start
		for c := len(heads) - 1; c >= 0; c-- {
			stop := end
			if c+1 < len(heads) {
				stop = heads[c+1]
			}
			for i := heads[c]; i < stop; i++ {
				idx[i] = pos
				pos++
			}
		}
		if end < len(runes) {
			idx[end] = end
		}
		start = end + 1
	}
	return idx
}

// ToVisual reverses shaped text for left-to-right renderers and moves the
// occurrences along. Occurrences keep reading order; their spans point into
// the visual string.
func ToVisual(shaped string, occ []Occurrence) (string, []Occurrence) {
	runes := []rune(shaped)
	idx := visualIndex(runes)
	out := make([]rune, len(runes))
	for i, r := range runes {
		out[idx[i]] = r
	}

	moved := make([]Occurrence, len(occ))
	for k, o := range occ {
		moved[k] = o
		if o.From < 0 || o.To >= len(idx) || o.From > o.To {
			continue
		}
		from, to := idx[o.From], idx[o.From]
		for i := o.From + 1; i <= o.To; i++ {
			from, to = min(from, idx[i]), max(to, idx[i])
		}
		moved[k].From, moved[k].To = from, to
	}
	return string(out), moved
}

// SplitWordVisual is SplitWord for renderers that lay text out left to
// right: it returns the visual string and the word's occurrences mapped
// onto it.
func (s *Segmenter) SplitWordVisual(w *catalog.Word, opts Options) (string, []Occurrence) {
	shaped := s.shaper.Shape(w.Arabic)
	return ToVisual(shaped, s.Segment(shaped, opts))
}

// WordWithMissingLetterVisual is WordWithMissingLetter in visual order. o
// comes from SplitWord or FindLetter.
func (s *Segmenter) WordWithMissingLetterVisual(w *catalog.Word, o Occurrence, placeholder string) string {
	visual, moved := ToVisual(s.shaper.Shape(w.Arabic), []Occurrence{o})
	return ReplaceSpan(visual, moved[0], placeholder)
}
