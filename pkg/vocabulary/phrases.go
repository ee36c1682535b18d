package vocabulary

import (
	"github.com/japaniel/alifba/pkg/catalog"
)

// WordsInPhrase returns the phrase words passing f, in phrase order.
func (ix *Index) WordsInPhrase(p *catalog.Phrase, f WordFilters) []*catalog.Word {
	return ix.wordsByIDs(p.Words, f)
}

// AnswersToPhrase returns the answer words passing f, in authored order.
func (ix *Index) AnswersToPhrase(p *catalog.Phrase, f WordFilters) []*catalog.Word {
	return ix.wordsByIDs(p.Answers, f)
}

func (ix *Index) wordsByIDs(ids []string, f WordFilters) []*catalog.Word {
	var out []*catalog.Word
	for _, id := range ids {
		w, ok := ix.cat.Word(id)
		if !ok {
			ix.log.Warn("phrase references unknown word", "word", id)
			continue
		}
		if ix.checkWord(f, w) {
			out = append(out, w)
		}
	}
	return out
}

func (ix *Index) checkPhrase(wf WordFilters, pf PhraseFilters, p *catalog.Phrase) bool {
	nWords := len(ix.WordsInPhrase(p, wf))
	nAnswers := len(ix.AnswersToPhrase(p, wf))
	switch {
	case pf.RequireWords && nWords == 0:
		return false
	case pf.RequireAtLeastTwoWords && nWords <= 1:
		return false
	case pf.RequireAnswersOrWords && nAnswers == 0 && nWords == 0:
		return false
	}
	return true
}

func (ix *Index) AllPhrases(wf WordFilters, pf PhraseFilters) []*catalog.Phrase {
	return ix.cat.FindPhrases(func(p *catalog.Phrase) bool { return ix.checkPhrase(wf, pf, p) })
}

func (ix *Index) PhrasesByCategory(category string, wf WordFilters, pf PhraseFilters) []*catalog.Phrase {
	return ix.cat.FindPhrases(func(p *catalog.Phrase) bool {
		return p.Category == category && ix.checkPhrase(wf, pf, p)
	})
}

func (ix *Index) PhrasesNotIn(wf WordFilters, pf PhraseFilters, taboo ...*catalog.Phrase) []*catalog.Phrase {
	skip := make(map[string]struct{}, len(taboo))
	for _, p := range taboo {
		skip[p.ID] = struct{}{}
	}
	return ix.cat.FindPhrases(func(p *catalog.Phrase) bool {
		_, tabooed := skip[p.ID]
		return !tabooed && ix.checkPhrase(wf, pf, p)
	})
}

// LinkedPhraseOf follows the phrase link, e.g. from a question to its answer.
func (ix *Index) LinkedPhraseOf(p *catalog.Phrase) (*catalog.Phrase, bool) {
	if p.Linked == "" {
		return nil, false
	}
	return ix.cat.Phrase(p.Linked)
}

// PhrasesWithWords returns phrases listing every one of the word ids.
func (ix *Index) PhrasesWithWords(wordIDs ...string) []*catalog.Phrase {
	return ix.cat.FindPhrases(func(p *catalog.Phrase) bool {
		have := make(map[string]struct{}, len(p.Words))
		for _, id := range p.Words {
			have[id] = struct{}{}
		}
		for _, id := range wordIDs {
			if _, ok := have[id]; !ok {
				return false
			}
		}
		return true
	})
}
