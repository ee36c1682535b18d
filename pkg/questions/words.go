package questions

import (
	"fmt"

	"github.com/japaniel/alifba/pkg/catalog"
	"github.com/japaniel/alifba/pkg/selection"
)

// wordLetters returns the distinct letters of w that pass the allowed set,
// in their default form.
func wordLetters(env Env, w *catalog.Word, allowed *catalog.LetterSet) []catalog.LetterRef {
	set := catalog.NewLetterSet(catalog.LetterOnly)
	for _, r := range env.Index.LettersInWord(w) {
		if allowed.Contains(r) {
			set.Add(catalog.Ref(r.Letter()))
		}
	}
	return set.Items()
}

// LettersInWord asks to find the letters of a word.
//
// Question: a word. Correct: letters of the word. Wrong: letters not in the
// word. Each round picks a new word and yields packsPerRound packs for it.
type LettersInWord struct {
	env                   Env
	packsPerRound         int
	nCorrect, nWrong      int
	useAllCorrectLetters  bool
	params                *Parameters
	history, wrongHistory selection.History
}

func NewLettersInWord(env Env, packsPerRound, nCorrect, nWrong int, useAllCorrectLetters bool, p *Parameters) *LettersInWord {
	params := env.ownParams(p)
	params.LetterFilters.ExcludeDiphthongs = true
	if packsPerRound < 1 {
		packsPerRound = 1
	}
	return &LettersInWord{
		env:                  env,
		packsPerRound:        packsPerRound,
		nCorrect:             nCorrect,
		nWrong:               nWrong,
		useAllCorrectLetters: useAllCorrectLetters,
		params:               params,
	}
}

func (b *LettersInWord) Parameters() *Parameters { return b.params }

func (b *LettersInWord) BuildPacks(n int) ([]QuestionPack, error) {
	b.history.Clear()
	b.wrongHistory.Clear()

	ix, e := b.env.Index, b.env.Engine
	allLetters := ix.AllLetters(b.params.LetterFilters)
	allowed := catalog.NewLetterSet(catalog.LetterOnly, allLetters...)
	need := b.nCorrect
	if b.useAllCorrectLetters || need < 1 {
		need = 1
	}

	packs := make([]QuestionPack, 0, n)
	for round := 0; len(packs) < n; round++ {
		words, err := selection.Select(e, func() []*catalog.Word {
			var eligible []*catalog.Word
			for _, w := range ix.AllWords(b.params.WordFilters) {
				if len(wordLetters(b.env, w, allowed)) >= need {
					eligible = append(eligible, w)
				}
			}
			return eligible
		}, b.params.correct(1, &b.history))
		if err != nil {
			return nil, fmt.Errorf("letters in word round %d: word: %w", round, err)
		}
		word, err := first(words, "word")
		if err != nil {
			return nil, fmt.Errorf("letters in word round %d: %w", round, err)
		}
		letters := wordLetters(b.env, word, allowed)

		for k := 0; k < b.packsPerRound && len(packs) < n; k++ {
			correct := letters
			if !b.useAllCorrectLetters {
				correct, err = selection.Select(e,
					func() []catalog.LetterRef { return letters },
					selection.Params{Severity: b.params.CorrectSeverity, Count: b.nCorrect})
				if err != nil {
					return nil, fmt.Errorf("letters in word round %d: correct letters: %w", round, err)
				}
			}
			wrong, err := selection.Select(e,
				func() []catalog.LetterRef { return without(allLetters, letters, catalog.LetterOnly) },
				b.params.wrong(b.nWrong, &b.wrongHistory))
			if err != nil {
				return nil, fmt.Errorf("letters in word round %d: wrong letters: %w", round, err)
			}
			pack := NewPack(word, Items(correct), Items(wrong))
			b.env.report(pack)
			packs = append(packs, pack)
		}
	}
	return packs, nil
}

// CommonLettersInWords shows a few words and asks for the letters they all
// contain.
//
// Questions: nWords words. Correct: up to maxCommon letters common to all of
// them. Wrong: letters found in none of them.
type CommonLettersInWords struct {
	env                   Env
	minCommon, maxCommon  int
	nWords, nWrong        int
	params                *Parameters
	history, wrongHistory selection.History
}

func NewCommonLettersInWords(env Env, minCommon, maxCommon, nWords, nWrong int, p *Parameters) *CommonLettersInWords {
	params := env.ownParams(p)
	params.LetterFilters.ExcludeDiphthongs = true
	if minCommon < 1 {
		minCommon = 1
	}
	if maxCommon < minCommon {
		maxCommon = minCommon
	}
	return &CommonLettersInWords{
		env:       env,
		minCommon: minCommon,
		maxCommon: maxCommon,
		nWords:    nWords,
		nWrong:    nWrong,
		params:    params,
	}
}

func (b *CommonLettersInWords) Parameters() *Parameters { return b.params }

func (b *CommonLettersInWords) BuildPacks(n int) ([]QuestionPack, error) {
	b.history.Clear()
	b.wrongHistory.Clear()
	return buildEach("common letters", n, b.pack)
}

func (b *CommonLettersInWords) pack() (QuestionPack, error) {
	ix, e, wf := b.env.Index, b.env.Engine, b.params.WordFilters
	allLetters := ix.AllLetters(b.params.LetterFilters)
	allowed := catalog.NewLetterSet(catalog.LetterOnly, allLetters...)

	anchor, err := selection.Select(e, func() []catalog.LetterRef {
		var shared []catalog.LetterRef
		for _, l := range allLetters {
			if len(ix.WordsWithLetter(wf, l, catalog.LetterOnly)) >= b.nWords {
				shared = append(shared, l)
			}
		}
		return shared
	}, b.params.correct(1, &b.history))
	if err != nil {
		return QuestionPack{}, fmt.Errorf("shared letter: %w", err)
	}
	shared, err := first(anchor, "shared letter")
	if err != nil {
		return QuestionPack{}, err
	}

	words, err := selection.Select(e,
		func() []*catalog.Word { return ix.WordsWithLetter(wf, shared, catalog.LetterOnly) },
		selection.Params{Severity: selection.Strict, Count: b.nWords, UseJourney: b.params.UseJourneyForCorrect})
	if err != nil {
		return QuestionPack{}, fmt.Errorf("words: %w", err)
	}

	var common []catalog.LetterRef
	for _, l := range ix.CommonLettersInWords(catalog.LetterOnly, words...) {
		if allowed.Contains(l) {
			common = append(common, catalog.Ref(l.Letter()))
		}
	}
	if len(common) < b.minCommon {
		return QuestionPack{}, fmt.Errorf("%w: %d common letters, want %d", selection.ErrNotEnoughData, len(common), b.minCommon)
	}
	correct, err := selection.Select(e,
		func() []catalog.LetterRef { return common },
		selection.Params{Severity: selection.AllowShortfall, Count: b.maxCommon})
	if err != nil {
		return QuestionPack{}, fmt.Errorf("common letters: %w", err)
	}

	var inWords []catalog.LetterRef
	for _, w := range words {
		inWords = append(inWords, ix.LettersInWord(w)...)
	}
	wrong, err := selection.Select(e,
		func() []catalog.LetterRef { return without(allLetters, inWords, catalog.LetterOnly) },
		b.params.wrong(b.nWrong, &b.wrongHistory))
	if err != nil {
		return QuestionPack{}, fmt.Errorf("wrong letters: %w", err)
	}

	pack := NewMultiPack(Items(words), Items(correct), Items(wrong))
	b.env.report(pack)
	return pack, nil
}

// WordsWithLetter asks to find the words containing a letter.
//
// Question: a letter. Correct: words containing it. Wrong: words without
// it. Each round picks a new letter and yields packsPerRound packs for it.
type WordsWithLetter struct {
	env              Env
	packsPerRound    int
	nCorrect, nWrong int
	params           *Parameters

	letterHistory selection.History
	wordHistory   selection.History
	wrongHistory  selection.History
}

func NewWordsWithLetter(env Env, packsPerRound, nCorrect, nWrong int, p *Parameters) *WordsWithLetter {
	params := env.ownParams(p)
	params.LetterFilters.ExcludeDiphthongs = true
	if packsPerRound < 1 {
		packsPerRound = 1
	}
	return &WordsWithLetter{env: env, packsPerRound: packsPerRound, nCorrect: nCorrect, nWrong: nWrong, params: params}
}

func (b *WordsWithLetter) Parameters() *Parameters { return b.params }

func (b *WordsWithLetter) BuildPacks(n int) ([]QuestionPack, error) {
	b.letterHistory.Clear()
	b.wordHistory.Clear()
	b.wrongHistory.Clear()

	ix, e, wf := b.env.Index, b.env.Engine, b.params.WordFilters
	packs := make([]QuestionPack, 0, n)
	for round := 0; len(packs) < n; round++ {
		letters, err := selection.Select(e, func() []catalog.LetterRef {
			var usable []catalog.LetterRef
			for _, l := range ix.AllLetters(b.params.LetterFilters) {
				if len(ix.WordsWithLetter(wf, l, catalog.LetterOnly)) >= max(b.nCorrect, 1) &&
					len(ix.WordsWithoutLetter(wf, l, catalog.LetterOnly)) >= b.nWrong {
					usable = append(usable, l)
				}
			}
			return usable
		}, b.params.correct(1, &b.letterHistory))
		if err != nil {
			return nil, fmt.Errorf("words with letter round %d: letter: %w", round, err)
		}
		letter, err := first(letters, "letter")
		if err != nil {
			return nil, fmt.Errorf("words with letter round %d: %w", round, err)
		}

		for k := 0; k < b.packsPerRound && len(packs) < n; k++ {
			correct, err := selection.Select(e,
				func() []*catalog.Word { return ix.WordsWithLetter(wf, letter, catalog.LetterOnly) },
				b.params.correct(b.nCorrect, &b.wordHistory))
			if err != nil {
				return nil, fmt.Errorf("words with letter round %d: correct words: %w", round, err)
			}
			wrong, err := selection.Select(e,
				func() []*catalog.Word { return ix.WordsWithoutLetter(wf, letter, catalog.LetterOnly) },
				b.params.wrong(b.nWrong, &b.wrongHistory))
			if err != nil {
				return nil, fmt.Errorf("words with letter round %d: wrong words: %w", round, err)
			}
			pack := NewPack(letter, Items(correct), Items(wrong))
			b.env.report(pack)
			packs = append(packs, pack)
		}
	}
	return packs, nil
}

// RandomWords asks for random words.
//
// Question: the first correct word when firstCorrectIsQuestion is set.
// Correct: random words. Wrong: other words.
type RandomWords struct {
	env                    Env
	nCorrect, nWrong       int
	firstCorrectIsQuestion bool
	params                 *Parameters
	history, wrongHistory  selection.History
}

func NewRandomWords(env Env, nCorrect, nWrong int, firstCorrectIsQuestion bool, p *Parameters) *RandomWords {
	return &RandomWords{
		env:                    env,
		nCorrect:               nCorrect,
		nWrong:                 nWrong,
		firstCorrectIsQuestion: firstCorrectIsQuestion,
		params:                 env.ownParams(p),
	}
}

func (b *RandomWords) Parameters() *Parameters { return b.params }

func (b *RandomWords) BuildPacks(n int) ([]QuestionPack, error) {
	b.history.Clear()
	b.wrongHistory.Clear()
	return buildEach("random words", n, b.pack)
}

func (b *RandomWords) pack() (QuestionPack, error) {
	ix, wf := b.env.Index, b.params.WordFilters

	correct, err := selection.Select(b.env.Engine,
		func() []*catalog.Word { return ix.AllWords(wf) },
		b.params.correct(b.nCorrect, &b.history))
	if err != nil {
		return QuestionPack{}, fmt.Errorf("correct words: %w", err)
	}
	wrong, err := selection.Select(b.env.Engine,
		func() []*catalog.Word { return ix.WordsNotIn(wf, correct...) },
		b.params.wrong(b.nWrong, &b.wrongHistory))
	if err != nil {
		return QuestionPack{}, fmt.Errorf("wrong words: %w", err)
	}

	var q catalog.Data
	if b.firstCorrectIsQuestion && len(correct) > 0 {
		q = correct[0]
	}
	pack := NewPack(q, Items(correct), Items(wrong))
	b.env.report(pack)
	return pack, nil
}
