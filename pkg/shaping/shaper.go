// Package shaping turns logical Arabic text into presentation forms using
// the glyph codepoints stored in the letter catalog.
package shaping

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/japaniel/alifba/pkg/catalog"
)

type tokenKind int

const (
	tokOther tokenKind = iota
	tokLetter
	tokTatweel
	tokMark
)

type token struct {
	kind   tokenKind
	r      rune
	letter *catalog.Letter
	// ligature tokens cannot join the following letter
	ligature bool
}

// Shaper chooses a presentation form for every catalog letter from its
// neighbours, and replaces lam followed by a letter with the lam variation
// record pairing them. Output stays in logical order. A Shaper is
// read-only after New and safe for concurrent use.
type Shaper struct {
	letters   map[rune]*catalog.Letter
	marks     map[rune]bool
	ligatures map[string]*catalog.Letter
	lamID     string
}

type Option func(*Shaper)

// WithLamID sets the id of the letter that forms ligatures.
func WithLamID(id string) Option {
	return func(s *Shaper) { s.lamID = id }
}

func New(cat *catalog.Catalog, opts ...Option) *Shaper {
	s := &Shaper{
		letters:   make(map[rune]*catalog.Letter),
		marks:     make(map[rune]bool),
		ligatures: make(map[string]*catalog.Letter),
		lamID:     "lam",
	}
	for _, o := range opts {
		o(s)
	}

	for _, l := range cat.Letters() {
		r, ok := catalog.HexToRune(l.IsolatedUnicode)
		if !ok {
			continue
		}
		switch l.Kind {
		case catalog.KindSymbol:
			if l.Type == catalog.TypeDiacriticSymbol || unicode.Is(unicode.Mn, r) {
				s.marks[r] = true
			}
		case catalog.KindLetter:
			s.letters[r] = l
		case catalog.KindLetterVariation:
			if l.BaseLetter == s.lamID {
				s.ligatures[l.Symbol] = l
				continue
			}
			if _, taken := s.letters[r]; !taken {
				s.letters[r] = l
			}
		}
	}
	return s
}

func joinsNext(t token) bool {
	switch t.kind {
	case tokTatweel:
		return true
	case tokLetter:
		return !t.ligature && (t.letter.InitialUnicode != "" || t.letter.MedialUnicode != "")
	}
	return false
}

func joinsPrev(t token) bool {
	switch t.kind {
	case tokTatweel:
		return true
	case tokLetter:
		return t.letter.FinalUnicode != "" || t.letter.MedialUnicode != ""
	}
	return false
}

func (s *Shaper) tokenize(text string) []token {
	var toks []token
	for _, r := range text {
		switch {
		case r == catalog.Tatweel:
			toks = append(toks, token{kind: tokTatweel, r: r})
		case s.marks[r] || unicode.Is(unicode.Mn, r):
			toks = append(toks, token{kind: tokMark, r: r})
		case s.letters[r] != nil:
			toks = append(toks, token{kind: tokLetter, r: r, letter: s.letters[r]})
		default:
			toks = append(toks, token{kind: tokOther, r: r})
		}
	}
	return s.ligate(toks)
}

// ligate folds lam and the next letter into one token when a variation
// pairs them. Marks between the two move after the ligature.
func (s *Shaper) ligate(toks []token) []token {
	out := make([]token, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.kind != tokLetter || t.letter.ID != s.lamID {
			out = append(out, t)
			continue
		}
		j := i + 1
		for j < len(toks) && toks[j].kind == tokMark {
			j++
		}
		if j >= len(toks) || toks[j].kind != tokLetter {
			out = append(out, t)
			continue
		}
		lig, ok := s.ligatures[toks[j].letter.ID]
		if !ok {
			out = append(out, t)
			continue
		}
		out = append(out, token{kind: tokLetter, r: t.r, letter: lig, ligature: true})
		out = append(out, toks[i+1:j]...)
		i = j
	}
	return out
}

func neighbour(toks []token, i, step int) (token, bool) {
	for j := i + step; j >= 0 && j < len(toks); j += step {
		if toks[j].kind != tokMark {
			return toks[j], true
		}
	}
	return token{}, false
}

// formOf picks the form of toks[i] from its nearest non-mark neighbours.
func (s *Shaper) formOf(toks []token, i int) catalog.Form {
	t := toks[i]
	prev, hasPrev := neighbour(toks, i, -1)
	next, hasNext := neighbour(toks, i, 1)
	fromPrev := hasPrev && joinsNext(prev) && joinsPrev(t)
	toNext := hasNext && joinsPrev(next) && joinsNext(t)
	switch {
	case fromPrev && toNext:
		return catalog.FormMedial
	case fromPrev:
		return catalog.FormFinal
	case toNext:
		return catalog.FormInitial
	}
	return catalog.FormIsolated
}

// Shape normalizes text to NFC and rewrites every catalog letter into the
// presentation form its position calls for. Unknown characters are kept.
func (s *Shaper) Shape(text string) string {
	toks := s.tokenize(norm.NFC.String(text))
	var b strings.Builder
	b.Grow(len(text))
	for i, t := range toks {
		if t.kind != tokLetter {
			b.WriteRune(t.r)
			continue
		}
		form := s.formOf(toks, i)
		if r, ok := catalog.HexToRune(t.letter.Unicode(form, true)); ok {
			b.WriteRune(r)
		} else {
			b.WriteRune(t.r)
		}
	}
	return b.String()
}

// Visual shapes text and reverses every line for left-to-right renderers.
// Marks stay after the glyph they belong to.
func (s *Shaper) Visual(text string) string {
	return Reverse(s.Shape(text))
}

// Reverse reverses each line of text by clusters of a base character and
// its following combining marks, keeping the line order.
func Reverse(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = reverseLine(line)
	}
	return strings.Join(lines, "\n")
}

func reverseLine(line string) string {
	var clusters [][]rune
	for _, r := range line {
		if unicode.Is(unicode.Mn, r) && len(clusters) > 0 {
			last := len(clusters) - 1
			clusters[last] = append(clusters[last], r)
			continue
		}
		clusters = append(clusters, []rune{r})
	}
	var b strings.Builder
	b.Grow(len(line))
	for i := len(clusters) - 1; i >= 0; i-- {
		b.WriteString(string(clusters[i]))
	}
	return b.String()
}
