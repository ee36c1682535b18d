package vocabulary

import (
	"github.com/japaniel/alifba/pkg/catalog"
)

func (ix *Index) wordHas(w *catalog.Word, pred func(*catalog.Letter) bool) bool {
	for _, r := range ix.LettersInWord(w) {
		if pred(r.Letter()) {
			return true
		}
	}
	return false
}

func isCombo(l *catalog.Letter) bool     { return l.IsOfKindCategory(catalog.CategoryDiacriticCombo) }
func isVariation(l *catalog.Letter) bool { return l.IsOfKindCategory(catalog.CategoryLetterVariation) }
func isDiphthong(l *catalog.Letter) bool { return l.Kind == catalog.KindDiphthong }

func (ix *Index) checkWord(f WordFilters, w *catalog.Word) bool {
	switch {
	case f.ExcludeArticles && w.Article != catalog.ArticleNone:
		return false
	case f.RequireDrawings && !w.HasDrawing():
		return false
	case f.ExcludeColorWords && w.Category == catalog.CategoryColor:
		return false
	case f.ExcludePluralDual && !w.IsSingular():
		return false
	case f.ExcludeDiacritics && ix.wordHas(w, isCombo):
		return false
	case f.ExcludeLetterVariations && ix.wordHas(w, isVariation):
		return false
	case f.RequireDiacritics && !ix.wordHas(w, isCombo):
		return false
	case f.ExcludeDiphthongs && ix.wordHas(w, isDiphthong):
		return false
	}
	return true
}

// LettersNotInWords returns catalog letters of the category that appear in
// none of the words.
func (ix *Index) LettersNotInWords(c catalog.KindCategory, s catalog.Strictness, words ...*catalog.Word) []catalog.LetterRef {
	inWords := catalog.NewLetterSet(s)
	for _, w := range words {
		inWords.AddAll(ix.LettersInWord(w))
	}
	return ix.findLetters(func(l *catalog.Letter) bool {
		return l.IsOfKindCategory(c) && !inWords.Contains(catalog.Ref(l))
	})
}

// LettersNotInWord returns catalog letters of the category missing from w.
func (ix *Index) LettersNotInWord(w *catalog.Word, c catalog.KindCategory, s catalog.Strictness) []catalog.LetterRef {
	return ix.LettersNotInWords(c, s, w)
}

// CommonLettersInWords returns the letters every word contains, in order of
// first appearance.
func (ix *Index) CommonLettersInWords(s catalog.Strictness, words ...*catalog.Word) []catalog.LetterRef {
	if len(words) == 0 {
		return nil
	}
	counts := make(map[string]int)
	seen := catalog.NewLetterSet(s)
	for _, w := range words {
		distinct := catalog.NewLetterSet(s, ix.LettersInWord(w)...)
		for _, r := range distinct.Items() {
			counts[catalog.Key(r, s)]++
			seen.Add(r)
		}
	}
	var common []catalog.LetterRef
	for _, r := range seen.Items() {
		if counts[catalog.Key(r, s)] == len(words) {
			common = append(common, r)
		}
	}
	return common
}

// NotCommonLettersInWords returns every letter form passing f that is not
// common to all the words.
func (ix *Index) NotCommonLettersInWords(f LetterFilters, s catalog.Strictness, words ...*catalog.Word) []catalog.LetterRef {
	set := catalog.NewLetterSet(s, ix.AllLettersAndForms(f)...)
	for _, r := range ix.CommonLettersInWords(s, words...) {
		set.Remove(r)
	}
	return set.Items()
}

// WordContainsLetter reports whether w contains l under s.
func (ix *Index) WordContainsLetter(w *catalog.Word, l catalog.LetterRef, s catalog.Strictness) bool {
	return catalog.ContainsLetter(ix.LettersInWord(w), l, s)
}

// WordContainsLetterTimes counts the occurrences of l in w under s.
func (ix *Index) WordContainsLetterTimes(w *catalog.Word, l catalog.LetterRef, s catalog.Strictness) int {
	n := 0
	for _, r := range ix.LettersInWord(w) {
		if catalog.SameLetter(r, l, s) {
			n++
		}
	}
	return n
}

func (ix *Index) WordContainsAnyLetter(w *catalog.Word, letters []catalog.LetterRef, s catalog.Strictness) bool {
	in := catalog.NewLetterSet(s, ix.LettersInWord(w)...)
	for _, l := range letters {
		if in.Contains(l) {
			return true
		}
	}
	return false
}

// WordHasAllLettersInCommonWith reports whether every letter of w appears
// in at least one of words.
func (ix *Index) WordHasAllLettersInCommonWith(w *catalog.Word, words []*catalog.Word, s catalog.Strictness) bool {
	for _, l := range ix.LettersInWord(w) {
		if !ix.IsLetterContainedInAnyWord(l, words, s) {
			return false
		}
	}
	return true
}

func (ix *Index) IsLetterContainedInAnyWord(l catalog.LetterRef, words []*catalog.Word, s catalog.Strictness) bool {
	for _, w := range words {
		if ix.WordContainsLetter(w, l, s) {
			return true
		}
	}
	return false
}

// AllWords returns the words passing f.
func (ix *Index) AllWords(f WordFilters) []*catalog.Word {
	return ix.cat.FindWords(func(w *catalog.Word) bool { return ix.checkWord(f, w) })
}

// WordsNotIn returns the words passing f, minus the taboo ones.
func (ix *Index) WordsNotIn(f WordFilters, taboo ...*catalog.Word) []*catalog.Word {
	skip := make(map[string]struct{}, len(taboo))
	for _, w := range taboo {
		skip[w.ID] = struct{}{}
	}
	return ix.cat.FindWords(func(w *catalog.Word) bool {
		_, tabooed := skip[w.ID]
		return !tabooed && ix.checkWord(f, w)
	})
}

// WordsByCategory returns words of the category; an empty category means all.
func (ix *Index) WordsByCategory(category string, f WordFilters) []*catalog.Word {
	if category == "" {
		return ix.AllWords(f)
	}
	return ix.cat.FindWords(func(w *catalog.Word) bool { return w.Category == category && ix.checkWord(f, w) })
}

func (ix *Index) WordsByArticle(a catalog.WordArticle, f WordFilters) []*catalog.Word {
	return ix.cat.FindWords(func(w *catalog.Word) bool { return w.Article == a && ix.checkWord(f, w) })
}

func (ix *Index) WordsByForm(form catalog.WordForm, f WordFilters) []*catalog.Word {
	return ix.cat.FindWords(func(w *catalog.Word) bool { return w.Form == form && ix.checkWord(f, w) })
}

func (ix *Index) WordsByKind(kind string, f WordFilters) []*catalog.Word {
	return ix.cat.FindWords(func(w *catalog.Word) bool { return w.Kind == kind && ix.checkWord(f, w) })
}

func (ix *Index) WordsWithLetter(f WordFilters, l catalog.LetterRef, s catalog.Strictness) []*catalog.Word {
	return ix.wordsByLetters(f, []catalog.LetterRef{l}, nil, s)
}

// WordsWithLetters returns words containing all the given letters.
func (ix *Index) WordsWithLetters(f WordFilters, s catalog.Strictness, letters ...catalog.LetterRef) []*catalog.Word {
	return ix.wordsByLetters(f, letters, nil, s)
}

func (ix *Index) WordsWithoutLetter(f WordFilters, l catalog.LetterRef, s catalog.Strictness) []*catalog.Word {
	return ix.wordsByLetters(f, nil, []catalog.LetterRef{l}, s)
}

// WordsWithoutLetters returns words containing none of the given letters.
func (ix *Index) WordsWithoutLetters(f WordFilters, s catalog.Strictness, letters ...catalog.LetterRef) []*catalog.Word {
	return ix.wordsByLetters(f, nil, letters, s)
}

func (ix *Index) wordsByLetters(f WordFilters, ok, taboo []catalog.LetterRef, s catalog.Strictness) []*catalog.Word {
	tabooSet := catalog.NewLetterSet(s, taboo...)
	return ix.cat.FindWords(func(w *catalog.Word) bool {
		if !ix.checkWord(f, w) {
			return false
		}
		letters := ix.LettersInWord(w)
		if tabooSet.Len() > 0 {
			for _, l := range letters {
				if tabooSet.Contains(l) {
					return false
				}
			}
		}
		for _, want := range ok {
			if !catalog.ContainsLetter(letters, want, s) {
				return false
			}
		}
		return true
	})
}
