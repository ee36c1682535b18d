package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/japaniel/alifba/pkg/catalog"
	"github.com/japaniel/alifba/pkg/catalog/catalogtest"
	"github.com/japaniel/alifba/pkg/logger"
	"github.com/japaniel/alifba/pkg/lookup"
)

func newSegmenter(t *testing.T, cat *catalog.Catalog, opts ...Option) (*Segmenter, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	opts = append([]Option{WithLogger(logger.FromCore(core))}, opts...)
	return New(cat, lookup.NewResolver(cat), opts...), logs
}

type span struct {
	id       string
	from, to int
}

func spans(occ []Occurrence) []span {
	out := make([]span, len(occ))
	for i, o := range occ {
		out[i] = span{o.Letter.ID(), o.From, o.To}
	}
	return out
}

func TestIsolatedBaseLetters(t *testing.T) {
	s, _ := newSegmenter(t, catalogtest.Catalog())
	occ := s.Segment("بتمج", Options{})
	require.Len(t, occ, 4)
	for i, o := range occ {
		assert.Equal(t, i, o.From)
		assert.Equal(t, i, o.To)
		assert.Equal(t, catalog.KindLetter, o.Letter.Letter().Kind)
		assert.Equal(t, catalog.FormIsolated, o.Letter.Form())
	}
}

func TestTatweelExtendsPrevious(t *testing.T) {
	s, _ := newSegmenter(t, catalogtest.Catalog())
	assert.Equal(t, []span{{"beh", 0, 1}}, spans(s.Segment("بـ", Options{})))
	assert.Equal(t, []span{{"beh", 0, 2}}, spans(s.Segment("بــ", Options{})))

	// a gap stops the extension
	assert.Equal(t, []span{{"beh", 0, 0}}, spans(s.Segment("ب ـ", Options{})))
	assert.Empty(t, s.Segment("ـ", Options{}))
}

func TestDiacriticMerge(t *testing.T) {
	s, logs := newSegmenter(t, catalogtest.Catalog())

	occ := s.Segment("اَ", Options{})
	require.Len(t, occ, 1)
	assert.Equal(t, "alef_fathah", occ[0].Letter.ID())
	assert.Equal(t, 0, occ[0].From)
	assert.Equal(t, 1, occ[0].To)
	assert.Zero(t, logs.FilterLevelExact(zap.ErrorLevel).Len())

	// the combo keeps the form the base was shaped in
	occ = s.Segment("ﺑَﺎ", Options{})
	assert.Equal(t, []span{{"beh_fathah", 0, 1}, {"alef", 2, 2}}, spans(occ))
	assert.Equal(t, catalog.FormInitial, occ[0].Letter.Form())
}

func TestDiacriticWithoutCombo(t *testing.T) {
	s, logs := newSegmenter(t, catalogtest.Catalog())

	occ := s.Segment("بّ", Options{})
	assert.Equal(t, []span{{"beh", 0, 0}}, spans(occ))
	errs := logs.FilterLevelExact(zap.ErrorLevel).All()
	require.Len(t, errs, 1)
	assert.Equal(t, "beh", errs[0].ContextMap()["base"])
	assert.Equal(t, "shaddah", errs[0].ContextMap()["symbol"])
}

func TestCollapseSymbols(t *testing.T) {
	s, logs := newSegmenter(t, catalogtest.Catalog(), WithCollapseSymbols("shaddah"))

	assert.Equal(t, []span{{"beh", 0, 1}}, spans(s.Segment("بّ", Options{})))
	// collapse skips the lookup even where a combo exists
	assert.Equal(t, []span{{"teh", 0, 1}}, spans(s.Segment("تّ", Options{})))
	assert.Zero(t, logs.FilterLevelExact(zap.ErrorLevel).Len())
}

func TestLeadingDiacriticDropped(t *testing.T) {
	s, logs := newSegmenter(t, catalogtest.Catalog())
	assert.Equal(t, []span{{"beh", 1, 1}}, spans(s.Segment("َب", Options{})))
	assert.Equal(t, 1, logs.FilterLevelExact(zap.ErrorLevel).Len())
}

func TestSeparateDiacriticsKeepsSymbols(t *testing.T) {
	s, _ := newSegmenter(t, catalogtest.Catalog())
	occ := s.Segment("اَ", Options{SeparateDiacritics: true})
	assert.Equal(t, []span{{"alef", 0, 0}, {"fathah", 1, 1}}, spans(occ))
}

func TestSkipsSpacesAndQuestionMark(t *testing.T) {
	s, _ := newSegmenter(t, catalogtest.Catalog())
	occ := s.Segment("ب ت؟م", Options{})
	assert.Equal(t, []span{{"beh", 0, 0}, {"teh", 2, 2}, {"meem", 4, 4}}, spans(occ))
}

func TestUnknownCharacterSkipped(t *testing.T) {
	s, logs := newSegmenter(t, catalogtest.Catalog())
	occ := s.Segment("صب", Options{})
	assert.Equal(t, []span{{"beh", 1, 1}}, spans(occ))
	require.Equal(t, 1, logs.FilterMessage("cannot parse letter").Len())
}

func TestLamAlefLigature(t *testing.T) {
	s, _ := newSegmenter(t, catalogtest.Catalog())

	assert.Equal(t, []span{{"lam_alef", 0, 0}}, spans(s.Segment("ﻻ", Options{})))

	occ := s.Segment("ﻼ", Options{SeparateVariations: true})
	assert.Equal(t, []span{{"lam", 0, 0}, {"alef", 0, 0}}, spans(occ))
	assert.Equal(t, catalog.FormFinal, occ[0].Letter.Form())
	assert.Equal(t, catalog.FormFinal, occ[1].Letter.Form())

	// other variations are never split
	assert.Equal(t, []span{{"alef_hamza", 0, 0}}, spans(s.Segment("أ", Options{SeparateVariations: true})))
}

// dedicatedGlyphs has combos with their own codepoints, so they resolve directly.
func dedicatedGlyphs() *catalog.Catalog {
	return catalog.MustNew(catalog.Content{Letters: []catalog.Letter{
		{ID: "lam", Kind: catalog.KindLetter, IsolatedUnicode: "0644"},
		{ID: "alef", Kind: catalog.KindLetter, IsolatedUnicode: "0627"},
		{ID: "fathah", Kind: catalog.KindSymbol, Type: catalog.TypeDiacriticSymbol, IsolatedUnicode: "064E"},
		{ID: "alef_fathah", Kind: catalog.KindDiacriticCombo, BaseLetter: "alef", Symbol: "fathah", IsolatedUnicode: "F100"},
		{ID: "lam_alef_fathah", Kind: catalog.KindLetterVariation, BaseLetter: "lam", Symbol: "alef_fathah", IsolatedUnicode: "F101"},
	}})
}

func TestSplitComboAndNestedVariation(t *testing.T) {
	s, _ := newSegmenter(t, dedicatedGlyphs())

	assert.Equal(t, []span{{"alef_fathah", 0, 0}}, spans(s.Segment("\uF100", Options{})))
	assert.Equal(t, []span{{"alef", 0, 0}, {"fathah", 0, 0}},
		spans(s.Segment("\uF100", Options{SeparateDiacritics: true})))

	assert.Equal(t, []span{{"lam", 0, 0}, {"alef_fathah", 0, 0}},
		spans(s.Segment("\uF101", Options{SeparateVariations: true})))
	assert.Equal(t, []span{{"lam", 0, 0}, {"alef", 0, 0}, {"fathah", 0, 0}},
		spans(s.Segment("\uF101", Options{SeparateVariations: true, SeparateDiacritics: true})))

	// tatweel stretches every part sharing the split span
	assert.Equal(t, []span{{"alef", 0, 1}, {"fathah", 0, 1}},
		spans(s.Segment("\uF100ـ", Options{SeparateDiacritics: true})))
}

func TestCustomLamID(t *testing.T) {
	s, _ := newSegmenter(t, dedicatedGlyphs(), WithLamID("alef"))
	assert.Equal(t, []span{{"lam_alef_fathah", 0, 0}},
		spans(s.Segment("\uF101", Options{SeparateVariations: true})))
}

func TestSegmentIsRepeatable(t *testing.T) {
	cat := catalogtest.Catalog()
	text := "ﺑَﺎـ بّﻻ"

	cold, _ := newSegmenter(t, cat)
	first := cold.Segment(text, Options{SeparateVariations: true})
	second := cold.Segment(text, Options{SeparateVariations: true})
	fresh, _ := newSegmenter(t, cat)
	third := fresh.Segment(text, Options{SeparateVariations: true})

	assert.Equal(t, first, second)
	assert.Equal(t, spans(first), spans(third))
}

func TestFindLetterAndMissingLetter(t *testing.T) {
	cat := catalogtest.Catalog()
	s, _ := newSegmenter(t, cat)
	w := &catalog.Word{ID: "bab", Arabic: "ﺑﺎب"}
	beh, _ := cat.Letter("beh")

	all := s.FindLetter(w, catalog.Ref(beh), false)
	assert.Equal(t, []span{{"beh", 0, 0}, {"beh", 2, 2}}, spans(all))

	initial := s.FindLetter(w, catalog.RefWithForm(beh, catalog.FormInitial), true)
	assert.Equal(t, []span{{"beh", 0, 0}}, spans(initial))

	assert.Equal(t, "_ﺎب", s.WordWithMissingLetter(w, initial[0], "_"))
	assert.Equal(t, "ﺑﺎ_", s.WordWithMissingLetter(w, all[1], "_"))
}

func TestFindLetterLigature(t *testing.T) {
	cat := catalogtest.Catalog()
	s, _ := newSegmenter(t, cat)
	w := &catalog.Word{ID: "la", Arabic: "ﻻ"}
	lam, _ := cat.Letter("lam")
	lamAlef, _ := cat.Letter("lam_alef")

	assert.Len(t, s.FindLetter(w, catalog.Ref(lam), false), 1)
	assert.Len(t, s.FindLetter(w, catalog.Ref(lamAlef), false), 1)
}

func TestUnicodes(t *testing.T) {
	assert.Equal(t, "0628, 0020, 064E", Unicodes("ب َ"))
}

func TestReplaceSpanClamps(t *testing.T) {
	assert.Equal(t, "ب_", ReplaceSpan("بت", Occurrence{From: 1, To: 5}, "_"))
	assert.Equal(t, "ab", ReplaceSpan("ab", Occurrence{From: 7, To: 7}, "_"))
}

func TestVisualOrder(t *testing.T) {
	cat := catalogtest.Catalog()
	s, _ := newSegmenter(t, cat)
	// initial beh with fathah, final alef, isolated beh
	w := &catalog.Word{ID: "baab", Arabic: "ﺑَﺎب"}

	logical := s.SplitWord(w, Options{})
	require.Equal(t, []span{{"beh_fathah", 0, 1}, {"alef", 2, 2}, {"beh", 3, 3}}, spans(logical))

	visual, occ := s.SplitWordVisual(w, Options{})
	assert.Equal(t, "بﺎﺑَ", visual)
	assert.Equal(t, []span{{"beh_fathah", 2, 3}, {"alef", 1, 1}, {"beh", 0, 0}}, spans(occ))

	assert.Equal(t, "ب_ﺑَ", s.WordWithMissingLetterVisual(w, logical[1], "_"))
	assert.Equal(t, "بﺎ__", s.WordWithMissingLetterVisual(w, logical[0], "__"))
}

func TestToVisualKeepsLines(t *testing.T) {
	text, occ := ToVisual("ab\ncd", []Occurrence{{From: 3, To: 3}})
	assert.Equal(t, "ba\ndc", text)
	assert.Equal(t, 4, occ[0].From)
}
