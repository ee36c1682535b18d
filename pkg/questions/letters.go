package questions

import (
	"fmt"

	"github.com/japaniel/alifba/pkg/catalog"
	"github.com/japaniel/alifba/pkg/selection"
	"github.com/japaniel/alifba/pkg/vocabulary"
)

// Word ids used as the answers of LettersByType.
const (
	ConsonantWordID = "consonant"
	VowelWordID     = "vowel"
)

func buildEach(name string, n int, next func() (QuestionPack, error)) ([]QuestionPack, error) {
	packs := make([]QuestionPack, 0, n)
	for i := 0; i < n; i++ {
		p, err := next()
		if err != nil {
			return nil, fmt.Errorf("%s pack %d: %w", name, i, err)
		}
		packs = append(packs, p)
	}
	return packs, nil
}

// RandomLetters asks for random letters.
//
// Question: the first correct letter when firstCorrectIsQuestion is set.
// Correct: random letters. Wrong: letters in any form other than the
// correct ones.
type RandomLetters struct {
	env                    Env
	nCorrect, nWrong       int
	firstCorrectIsQuestion bool
	params                 *Parameters

	history      selection.History
	wrongHistory selection.History
}

func NewRandomLetters(env Env, nCorrect, nWrong int, firstCorrectIsQuestion bool, p *Parameters) *RandomLetters {
	params := env.ownParams(p)
	params.LetterFilters.ExcludeDiphthongs = true
	return &RandomLetters{
		env:                    env,
		nCorrect:               nCorrect,
		nWrong:                 nWrong,
		firstCorrectIsQuestion: firstCorrectIsQuestion,
		params:                 params,
	}
}

func (b *RandomLetters) Parameters() *Parameters { return b.params }

func (b *RandomLetters) BuildPacks(n int) ([]QuestionPack, error) {
	b.history.Clear()
	b.wrongHistory.Clear()
	return buildEach("random letters", n, b.pack)
}

func (b *RandomLetters) pack() (QuestionPack, error) {
	ix, lf := b.env.Index, b.params.LetterFilters

	correct, err := selection.Select(b.env.Engine,
		func() []catalog.LetterRef { return ix.AllLetters(lf) },
		b.params.correct(b.nCorrect, &b.history))
	if err != nil {
		return QuestionPack{}, fmt.Errorf("correct letters: %w", err)
	}
	wrong, err := selection.Select(b.env.Engine,
		func() []catalog.LetterRef { return ix.LettersNotIn(catalog.LetterOnly, lf, correct...) },
		b.params.wrong(b.nWrong, &b.wrongHistory))
	if err != nil {
		return QuestionPack{}, fmt.Errorf("wrong letters: %w", err)
	}

	var q catalog.Data
	if b.firstCorrectIsQuestion && len(correct) > 0 {
		q = correct[0]
	}
	pack := NewPack(q, Items(correct), Items(wrong))
	b.env.report(pack)
	return pack, nil
}

// RandomLetterAlterations asks to tell apart alterations of letters: their
// forms, their diacritic combos, or both.
//
// Question: the first correct alteration. Correct: alterations drawn from
// the pool. Wrong: the rest of the pool.
type RandomLetterAlterations struct {
	env              Env
	nCorrect, nWrong int
	filters          vocabulary.LetterAlterationFilters
	avoidSameSound   bool
	params           *Parameters

	history selection.History
}

// NewRandomLetterAlterations always starts from base letters; the
// alteration filters decide what is built on them. When avoidSameSound is
// set, wrong answers never share a phoneme with a correct one.
func NewRandomLetterAlterations(env Env, nCorrect, nWrong int, filters vocabulary.LetterAlterationFilters, avoidSameSound bool, p *Parameters) *RandomLetterAlterations {
	params := env.ownParams(p)
	params.LetterFilters.ExcludeDiacritics = vocabulary.DiacriticsExcluded
	params.LetterFilters.ExcludeLetterVariations = vocabulary.VariationsExcluded
	params.LetterFilters.ExcludeDiphthongs = true
	return &RandomLetterAlterations{
		env:            env,
		nCorrect:       nCorrect,
		nWrong:         nWrong,
		filters:        filters,
		avoidSameSound: avoidSameSound,
		params:         params,
	}
}

func (b *RandomLetterAlterations) Parameters() *Parameters { return b.params }

func (b *RandomLetterAlterations) BuildPacks(n int) ([]QuestionPack, error) {
	b.history.Clear()
	return buildEach("letter alterations", n, b.pack)
}

func (b *RandomLetterAlterations) pack() (QuestionPack, error) {
	ix, lf, e := b.env.Index, b.params.LetterFilters, b.env.Engine

	nBase := 1
	if b.filters.DifferentBaseLetters {
		nBase = b.nCorrect + b.nWrong
	}
	bases, err := selection.Select(e,
		func() []catalog.LetterRef { return ix.AllLetters(lf) },
		b.params.correct(nBase, &b.history))
	if err != nil {
		return QuestionPack{}, fmt.Errorf("base letters: %w", err)
	}
	bases = catalog.NewLetterSet(catalog.LetterOnly, bases...).Items()

	pool := ix.LetterAlterations(e.Rand(), bases, b.filters)
	correct, err := selection.Select(e,
		func() []catalog.LetterRef { return pool },
		selection.Params{Severity: b.params.CorrectSeverity, Count: b.nCorrect})
	if err != nil {
		return QuestionPack{}, fmt.Errorf("correct alterations: %w", err)
	}

	rest := without(pool, correct, catalog.WithActualForm)
	if b.avoidSameSound {
		rest = withoutSameSound(rest, correct)
	}
	wrong, err := selection.Select(e,
		func() []catalog.LetterRef { return rest },
		selection.Params{Severity: selection.AllowShortfall, Count: b.nWrong})
	if err != nil {
		return QuestionPack{}, fmt.Errorf("wrong alterations: %w", err)
	}

	var q catalog.Data
	if len(correct) > 0 {
		q = correct[0]
	}
	pack := NewPack(q, Items(correct), Items(wrong))
	b.env.report(pack)
	return pack, nil
}

func withoutSameSound(letters, correct []catalog.LetterRef) []catalog.LetterRef {
	sounds := make(map[string]struct{}, len(correct))
	for _, c := range correct {
		sounds[c.Letter().PhonemeSound] = struct{}{}
	}
	var out []catalog.LetterRef
	for _, l := range letters {
		if _, same := sounds[l.Letter().PhonemeSound]; !same {
			out = append(out, l)
		}
	}
	return out
}

// LettersByType asks whether a letter is a consonant or a vowel.
//
// Question: a letter. Correct: the word naming its type. Wrong: the word
// naming the other type. Half of the packs are consonants, half vowels,
// shuffled together.
type LettersByType struct {
	env    Env
	params *Parameters
}

func NewLettersByType(env Env, p *Parameters) *LettersByType {
	params := env.ownParams(p)
	params.LetterFilters.ExcludeDiphthongs = true
	return &LettersByType{env: env, params: params}
}

func (b *LettersByType) Parameters() *Parameters { return b.params }

func (b *LettersByType) BuildPacks(n int) ([]QuestionPack, error) {
	ix, lf, e := b.env.Index, b.params.LetterFilters, b.env.Engine

	consonant, ok := ix.Catalog().Word(ConsonantWordID)
	if !ok {
		return nil, fmt.Errorf("%w: word %q", ErrMissingContent, ConsonantWordID)
	}
	vowel, ok := ix.Catalog().Word(VowelWordID)
	if !ok {
		return nil, fmt.Errorf("%w: word %q", ErrMissingContent, VowelWordID)
	}

	perType := n / 2
	params := selection.Params{Severity: b.params.CorrectSeverity, Count: perType, UseJourney: b.params.UseJourneyForCorrect}
	consonants, err := selection.Select(e, func() []catalog.LetterRef { return ix.ConsonantLetters(lf) }, params)
	if err != nil {
		return nil, fmt.Errorf("consonants: %w", err)
	}
	vowels, err := selection.Select(e, func() []catalog.LetterRef { return ix.VowelLetters(lf) }, params)
	if err != nil {
		return nil, fmt.Errorf("vowels: %w", err)
	}

	packs := make([]QuestionPack, 0, len(consonants)+len(vowels))
	for _, l := range consonants {
		packs = append(packs, NewPack(l, []catalog.Data{consonant}, []catalog.Data{vowel}))
	}
	for _, l := range vowels {
		packs = append(packs, NewPack(l, []catalog.Data{vowel}, []catalog.Data{consonant}))
	}
	selection.Shuffle(e, packs)
	for _, p := range packs {
		b.env.report(p)
	}
	return packs, nil
}
