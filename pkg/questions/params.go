package questions

import (
	"github.com/japaniel/alifba/pkg/selection"
	"github.com/japaniel/alifba/pkg/vocabulary"
)

// Parameters tune a builder. Builders may force some filters on their own
// copy.
type Parameters struct {
	LetterFilters vocabulary.LetterFilters `yaml:"letter_filters"`
	WordFilters   vocabulary.WordFilters   `yaml:"word_filters"`
	PhraseFilters vocabulary.PhraseFilters `yaml:"phrase_filters"`

	CorrectSeverity selection.Severity      `yaml:"-"`
	WrongSeverity   selection.Severity      `yaml:"-"`
	CorrectHistory  selection.HistoryPolicy `yaml:"-"`
	WrongHistory    selection.HistoryPolicy `yaml:"-"`

	UseJourneyForCorrect  bool `yaml:"use_journey_for_correct"`
	UseJourneyForWrong    bool `yaml:"use_journey_for_wrong"`
	SortPacksByDifficulty bool `yaml:"sort_packs_by_difficulty"`
}

func DefaultParameters() Parameters {
	return Parameters{
		CorrectSeverity:       selection.MayRepeatIfNotEnough,
		WrongSeverity:         selection.MayRepeatIfNotEnough,
		CorrectHistory:        selection.RepeatWhenFull,
		WrongHistory:          selection.NoFilter,
		UseJourneyForCorrect:  true,
		UseJourneyForWrong:    true,
		SortPacksByDifficulty: true,
	}
}

// ownParams copies p, or the environment defaults when p is nil.
func (e Env) ownParams(p *Parameters) *Parameters {
	own := e.defaults()
	if p != nil {
		own = *p
	}
	return &own
}

func (p *Parameters) correct(count int, h *selection.History) selection.Params {
	return selection.Params{
		Severity:    p.CorrectSeverity,
		Count:       count,
		UseJourney:  p.UseJourneyForCorrect,
		History:     p.CorrectHistory,
		HistoryList: h,
	}
}

func (p *Parameters) wrong(count int, h *selection.History) selection.Params {
	return selection.Params{
		Severity:    p.WrongSeverity,
		Count:       count,
		UseJourney:  p.UseJourneyForWrong,
		History:     p.WrongHistory,
		HistoryList: h,
	}
}
