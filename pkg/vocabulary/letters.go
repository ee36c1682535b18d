package vocabulary

import (
	"math/rand/v2"

	"github.com/japaniel/alifba/pkg/catalog"
)

func (ix *Index) checkLetter(f LetterFilters, l *catalog.Letter) bool {
	if f.RequireDiacritics && !l.IsOfKindCategory(catalog.CategoryDiacriticCombo) {
		return false
	}
	if !ix.FilterByDiacritics(f.ExcludeDiacritics, l) {
		return false
	}
	if !FilterByLetterVariations(f.ExcludeLetterVariations, l) {
		return false
	}
	if !FilterByDiphthongs(f.ExcludeDiphthongs, l) {
		return false
	}
	return !l.IsOfKindCategory(catalog.CategorySymbol)
}

// FilterByDiacritics reports whether l survives the diacritic exclusion.
func (ix *Index) FilterByDiacritics(ex ExcludeDiacritics, l *catalog.Letter) bool {
	if !l.IsOfKindCategory(catalog.CategoryDiacriticCombo) {
		return true
	}
	switch ex {
	case DiacriticsExcluded:
		return false
	case DiacriticsAllButMain:
		sym, ok := ix.SymbolOf(l.ID)
		return !ok || sym.Tag == TagMainDiacritic
	}
	return true
}

// FilterByLetterVariations reports whether l survives the variation exclusion.
func FilterByLetterVariations(ex ExcludeLetterVariations, l *catalog.Letter) bool {
	if !l.IsOfKindCategory(catalog.CategoryLetterVariation) {
		return true
	}
	switch ex {
	case VariationsExcluded:
		return false
	case VariationsAllButAlefHamza:
		return l.Tag == TagAlefHamzaVariation
	}
	return true
}

func FilterByDiphthongs(exclude bool, l *catalog.Letter) bool {
	return !(exclude && l.Kind == catalog.KindDiphthong)
}

func (ix *Index) findLetters(pred func(*catalog.Letter) bool) []catalog.LetterRef {
	return refs(ix.cat.FindLetters(pred))
}

// AllLetters returns the letters passing f, in their default form.
func (ix *Index) AllLetters(f LetterFilters) []catalog.LetterRef {
	return ix.findLetters(func(l *catalog.Letter) bool { return ix.checkLetter(f, l) })
}

// AllBaseLetters returns letters without combos, variations or diphthongs.
func (ix *Index) AllBaseLetters() []catalog.LetterRef {
	return ix.AllLetters(BaseLettersOnly)
}

// AllLettersAndForms returns one reference per available form of every
// letter passing f.
func (ix *Index) AllLettersAndForms(f LetterFilters) []catalog.LetterRef {
	return LettersWithForms(ix.AllLetters(f))
}

// LettersNotIn returns every letter form passing f that is not equal to any
// taboo letter under s.
func (ix *Index) LettersNotIn(s catalog.Strictness, f LetterFilters, taboo ...catalog.LetterRef) []catalog.LetterRef {
	set := catalog.NewLetterSet(s, taboo...)
	var out []catalog.LetterRef
	for _, r := range ix.AllLettersAndForms(f) {
		if !set.Contains(r) {
			out = append(out, r)
		}
	}
	return out
}

// LettersByKind ignores filters.
func (ix *Index) LettersByKind(k catalog.LetterKind) []catalog.LetterRef {
	return ix.findLetters(func(l *catalog.Letter) bool { return l.Kind == k })
}

func (ix *Index) LettersBySunMoon(sm catalog.SunMoon, f LetterFilters) []catalog.LetterRef {
	return ix.findLetters(func(l *catalog.Letter) bool { return l.SunMoon == sm && ix.checkLetter(f, l) })
}

// ConsonantLetters returns consonants and powerful letters passing f.
func (ix *Index) ConsonantLetters(f LetterFilters) []catalog.LetterRef {
	return ix.findLetters(func(l *catalog.Letter) bool {
		return (l.Type == catalog.TypeConsonant || l.Type == catalog.TypePowerful) && ix.checkLetter(f, l)
	})
}

// VowelLetters returns long vowels passing f.
func (ix *Index) VowelLetters(f LetterFilters) []catalog.LetterRef {
	return ix.LettersByType(catalog.TypeLongVowel, f)
}

func (ix *Index) LettersByType(t catalog.LetterType, f LetterFilters) []catalog.LetterRef {
	return ix.findLetters(func(l *catalog.Letter) bool { return l.Type == t && ix.checkLetter(f, l) })
}

// BaseOf returns the base letter of a combo or variation.
func (ix *Index) BaseOf(id string) (*catalog.Letter, bool) {
	l, ok := ix.cat.Letter(id)
	if !ok || l.BaseLetter == "" {
		return nil, false
	}
	return ix.cat.Letter(l.BaseLetter)
}

// SymbolOf returns the symbol of a combo or variation.
func (ix *Index) SymbolOf(id string) (*catalog.Letter, bool) {
	l, ok := ix.cat.Letter(id)
	if !ok || l.Symbol == "" {
		return nil, false
	}
	return ix.cat.Letter(l.Symbol)
}

// LettersWithBase returns every record built on the given base letter.
func (ix *Index) LettersWithBase(id string) []catalog.LetterRef {
	return ix.findLetters(func(l *catalog.Letter) bool { return l.BaseLetter == id })
}

// LettersWithForms expands every letter into its available forms.
func LettersWithForms(letters []catalog.LetterRef) []catalog.LetterRef {
	var out []catalog.LetterRef
	for _, r := range letters {
		out = append(out, FormsOf(r.Letter())...)
	}
	return out
}

// FormsOf returns one reference per available form of l.
func FormsOf(l *catalog.Letter) []catalog.LetterRef {
	forms := l.AvailableForms()
	out := make([]catalog.LetterRef, len(forms))
	for i, f := range forms {
		out[i] = catalog.RefWithForm(l, f)
	}
	return out
}

// LetterAlterations builds the pool of alterations of the given base
// letters: the records built on each base that pass f, plus the base
// itself, optionally expanded into forms. When f.DifferentBaseLetters is
// false a single base is drawn from bases with rng.
func (ix *Index) LetterAlterations(rng *rand.Rand, bases []catalog.LetterRef, f LetterAlterationFilters) []catalog.LetterRef {
	if len(bases) == 0 {
		return nil
	}
	if !f.DifferentBaseLetters {
		bases = []catalog.LetterRef{bases[rng.IntN(len(bases))]}
	}

	var pool []catalog.LetterRef
	for _, b := range bases {
		var candidates []catalog.LetterRef
		for _, alt := range ix.LettersWithBase(b.ID()) {
			l := alt.Letter()
			if !ix.FilterByDiacritics(f.ExcludeDiacritics, l) ||
				!FilterByLetterVariations(f.ExcludeLetterVariations, l) ||
				!FilterByDiphthongs(f.ExcludeDiphthongs, l) {
				continue
			}
			candidates = append(candidates, alt)
		}
		candidates = append(candidates, catalog.Ref(b.Letter()))

		if !f.IncludeForms {
			pool = append(pool, candidates...)
			continue
		}
		for _, c := range candidates {
			forms := FormsOf(c.Letter())
			if len(forms) == 0 {
				continue
			}
			if f.OneFormPerLetter {
				pool = append(pool, forms[rng.IntN(len(forms))])
				continue
			}
			for _, form := range forms {
				if f.VisuallyDifferentForms && catalog.ContainsLetter(pool, form, catalog.WithVisualForm) {
					continue
				}
				pool = append(pool, form)
			}
		}
	}
	return pool
}
