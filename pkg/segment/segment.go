// Package segment splits shaped Arabic text into catalog letter occurrences.
package segment

import (
	"strings"

	"github.com/japaniel/alifba/pkg/catalog"
	"github.com/japaniel/alifba/pkg/logger"
	"github.com/japaniel/alifba/pkg/lookup"
)

const (
	questionMark = '؟'
	// DefaultLamID is the catalog id of the letter whose variations are ligatures.
	DefaultLamID = "lam"
)

// Occurrence is one letter found in a shaped string. From and To are
// inclusive rune indexes into that string.
type Occurrence struct {
	Letter catalog.LetterRef
	From   int
	To     int
}

// Options selects how combined glyphs are reported.
type Options struct {
	// SeparateDiacritics reports a diacritic combo as its base letter plus
	// its symbol instead of merging them.
	SeparateDiacritics bool
	// SeparateVariations reports a lam ligature as lam plus its second part.
	SeparateVariations bool
}

// Shaper turns logical Arabic text into the presentation-form string the
// segmenter reads.
type Shaper interface {
	Shape(text string) string
}

type identityShaper struct{}

func (identityShaper) Shape(text string) string { return text }

type Option func(*Segmenter)

// WithLamID overrides the id of the letter whose variations are split by
// SeparateVariations.
func WithLamID(id string) Option {
	return func(s *Segmenter) { s.lamID = id }
}

// WithCollapseSymbols makes the given diacritic symbols fold into the
// previous occurrence unchanged instead of looking up a combo.
func WithCollapseSymbols(ids ...string) Option {
	return func(s *Segmenter) {
		for _, id := range ids {
			s.collapse[id] = struct{}{}
		}
	}
}

// WithShaper sets the shaper used by the word and phrase helpers.
func WithShaper(sh Shaper) Option {
	return func(s *Segmenter) { s.shaper = sh }
}

func WithLogger(l *logger.Logger) Option {
	return func(s *Segmenter) { s.log = logger.OrNop(l) }
}

// Segmenter is safe for concurrent use once constructed.
type Segmenter struct {
	cat      *catalog.Catalog
	resolver *lookup.Resolver
	shaper   Shaper
	log      *logger.Logger
	lamID    string
	collapse map[string]struct{}
}

func New(cat *catalog.Catalog, resolver *lookup.Resolver, opts ...Option) *Segmenter {
	s := &Segmenter{
		cat:      cat,
		resolver: resolver,
		shaper:   identityShaper{},
		log:      logger.NewNop(),
		lamID:    DefaultLamID,
		collapse: make(map[string]struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Segment walks shaped text left to right and returns the letters it holds.
// Malformed content never fails: unknown characters and impossible
// diacritics are logged and skipped.
func (s *Segmenter) Segment(shaped string, opts Options) []Occurrence {
	var out []Occurrence

	idx := 0
	for _, c := range shaped {
		switch c {
		case ' ', questionMark:
			idx++
			continue
		case catalog.Tatweel:
			for t := len(out) - 1; t >= 0 && out[t].To == idx-1; t-- {
				out[t].To++
			}
			idx++
			continue
		}

		ref, ok := s.resolver.ResolveRune(c)
		if !ok {
			s.log.Warn("cannot parse letter", "char", string(c), "hex", catalog.RuneToHex(c), "text", shaped)
			idx++
			continue
		}

		l := ref.Letter()
		switch {
		case l.Kind == catalog.KindDiacriticCombo && opts.SeparateDiacritics:
			out = s.appendSplitCombo(out, l, ref.ForcedForm(), idx)

		case l.Kind == catalog.KindSymbol && l.Type == catalog.TypeDiacriticSymbol && !opts.SeparateDiacritics:
			out = s.mergeDiacritic(out, l, shaped)

		case l.Kind == catalog.KindLetterVariation && opts.SeparateVariations && l.BaseLetter == s.lamID:
			out = s.appendPart(out, l.BaseLetter, ref.ForcedForm(), idx)
			second, found := s.cat.Letter(l.Symbol)
			if !found {
				s.log.Error("missing variation symbol", "letter", l.ID, "symbol", l.Symbol)
				break
			}
			if second.Kind == catalog.KindDiacriticCombo && opts.SeparateDiacritics {
				out = s.appendSplitCombo(out, second, ref.ForcedForm(), idx)
			} else {
				out = append(out, Occurrence{Letter: catalog.RefWithForm(second, ref.ForcedForm()), From: idx, To: idx})
			}

		default:
			out = append(out, Occurrence{Letter: ref, From: idx, To: idx})
		}
		idx++
	}
	return out
}

func (s *Segmenter) appendSplitCombo(out []Occurrence, combo *catalog.Letter, form catalog.Form, idx int) []Occurrence {
	out = s.appendPart(out, combo.BaseLetter, form, idx)
	return s.appendPart(out, combo.Symbol, form, idx)
}

func (s *Segmenter) appendPart(out []Occurrence, id string, form catalog.Form, idx int) []Occurrence {
	l, ok := s.cat.Letter(id)
	if !ok {
		s.log.Error("missing letter reference", "letter", id)
		return out
	}
	return append(out, Occurrence{Letter: catalog.RefWithForm(l, form), From: idx, To: idx})
}

func (s *Segmenter) mergeDiacritic(out []Occurrence, symbol *catalog.Letter, shaped string) []Occurrence {
	if len(out) == 0 {
		s.log.Error("diacritic without a letter, diacritic removed", "symbol", symbol.ID, "text", shaped)
		return out
	}
	last := &out[len(out)-1]
	base := last.Letter.Letter()

	var merged *catalog.Letter
	if _, ok := s.collapse[symbol.ID]; ok {
		merged = base
	} else if combo, ok := s.resolver.Combo(symbol.ID, base.ID); ok {
		merged = combo
	}
	if merged == nil {
		s.log.Error("cannot find a single character, diacritic removed",
			"base", base.ID, "symbol", symbol.ID, "text", shaped)
		return out
	}
	last.Letter = catalog.RefWithForm(merged, last.Letter.ForcedForm())
	last.To++
	return out
}

// Shape runs the configured shaper.
func (s *Segmenter) Shape(text string) string {
	return s.shaper.Shape(text)
}

// SplitWord shapes and segments a word, keeping lam ligatures whole unless
// separateVariations is set.
func (s *Segmenter) SplitWord(w *catalog.Word, opts Options) []Occurrence {
	return s.Segment(s.shaper.Shape(w.Arabic), opts)
}

// SplitPhrase shapes and segments a phrase.
func (s *Segmenter) SplitPhrase(p *catalog.Phrase, opts Options) []Occurrence {
	return s.Segment(s.shaper.Shape(p.Arabic), opts)
}

// FindLetter returns the occurrences of letter in the word. Ligatures are
// split unless the letter looked for is itself a variation. With sameForm
// the occurrence form must match the letter's form too.
func (s *Segmenter) FindLetter(w *catalog.Word, letter catalog.LetterRef, sameForm bool) []Occurrence {
	opts := Options{SeparateVariations: letter.Letter().Kind != catalog.KindLetterVariation}
	var found []Occurrence
	for _, o := range s.SplitWord(w, opts) {
		if o.Letter.ID() != letter.ID() {
			continue
		}
		if sameForm && o.Letter.Form() != letter.Form() {
			continue
		}
		found = append(found, o)
	}
	return found
}

// WordWithMissingLetter returns the shaped word with the occurrence's span
// replaced by placeholder.
func (s *Segmenter) WordWithMissingLetter(w *catalog.Word, o Occurrence, placeholder string) string {
	return ReplaceSpan(s.shaper.Shape(w.Arabic), o, placeholder)
}

// ReplaceSpan replaces the runes covered by o with placeholder.
func ReplaceSpan(shaped string, o Occurrence, placeholder string) string {
	runes := []rune(shaped)
	if o.From < 0 || o.From > len(runes) {
		return shaped
	}
	end := o.To + 1
	if end > len(runes) {
		end = len(runes)
	}
	if end < o.From {
		end = o.From
	}
	return string(runes[:o.From]) + placeholder + string(runes[end:])
}

// Unicodes lists the hex codepoints of text, for debugging content.
func Unicodes(text string) string {
	parts := make([]string, 0, len(text))
	for _, c := range text {
		parts = append(parts, catalog.RuneToHex(c))
	}
	return strings.Join(parts, ", ")
}

// IDs returns the letter ids of occurrences in order.
func IDs(occ []Occurrence) []string {
	ids := make([]string, len(occ))
	for i, o := range occ {
		ids[i] = o.Letter.ID()
	}
	return ids
}
