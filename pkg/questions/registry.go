package questions

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/japaniel/alifba/pkg/vocabulary"
)

var (
	ErrUnknownMiniGame   = errors.New("questions: unknown minigame")
	ErrDuplicateMiniGame = errors.New("questions: minigame already registered")
)

// MiniGame describes how a minigame builds its question packs.
type MiniGame struct {
	Code  string
	Packs int
	New   func(env Env) Builder
}

// Registry maps minigame codes to their builder setup.
type Registry struct {
	mu    sync.RWMutex
	games map[string]MiniGame
}

func NewRegistry() *Registry {
	return &Registry{games: make(map[string]MiniGame)}
}

func (r *Registry) Register(g MiniGame) error {
	if g.Code == "" || g.New == nil {
		return fmt.Errorf("questions: invalid minigame %q", g.Code)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[g.Code]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateMiniGame, g.Code)
	}
	r.games[g.Code] = g
	return nil
}

// MustRegister is Register for startup code.
func (r *Registry) MustRegister(g MiniGame) {
	if err := r.Register(g); err != nil {
		panic(err)
	}
}

func (r *Registry) Lookup(code string) (MiniGame, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.games[code]
	if !ok {
		return MiniGame{}, fmt.Errorf("%w: %s", ErrUnknownMiniGame, code)
	}
	return g, nil
}

// Codes returns the registered codes sorted.
func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]string, 0, len(r.games))
	for c := range r.games {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// DefaultRegistry registers the bundled minigames.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(MiniGame{Code: "ColorTickle", Packs: 10, New: func(env Env) Builder {
		p := env.defaults()
		p.LetterFilters.ExcludeDiacritics = vocabulary.DiacriticsExcluded
		p.LetterFilters.ExcludeLetterVariations = vocabulary.VariationsAllButAlefHamza
		p.LetterFilters.ExcludeDiphthongs = true
		p.WordFilters.ExcludeDiacritics = true
		return NewRandomLetters(env, 1, 0, false, &p)
	}})

	r.MustRegister(MiniGame{Code: "Tobogan_letters", Packs: 10, New: func(env Env) Builder {
		p := env.defaults()
		p.WordFilters.ExcludeLetterVariations = true
		p.WordFilters.ExcludeDiphthongs = true
		return NewLettersInWord(env, 1, 1, 5, false, &p)
	}})

	r.MustRegister(MiniGame{Code: "Egg_letters", Packs: 10, New: func(env Env) Builder {
		p := env.defaults()
		p.LetterFilters.ExcludeDiacritics = vocabulary.DiacriticsExcluded
		return NewRandomLetters(env, 1, 5, true, &p)
	}})

	r.MustRegister(MiniGame{Code: "Maze", Packs: 10, New: func(env Env) Builder {
		p := env.defaults()
		p.LetterFilters = vocabulary.BaseLettersOnly
		return NewRandomLetters(env, 1, 0, false, &p)
	}})

	r.MustRegister(MiniGame{Code: "DancingDots", Packs: 10, New: func(env Env) Builder {
		return NewRandomLetterAlterations(env, 1, 3, vocabulary.PhonemesOfSingleLetter, false, nil)
	}})

	r.MustRegister(MiniGame{Code: "FastCrowd_letterform", Packs: 10, New: func(env Env) Builder {
		return NewRandomLetterAlterations(env, 1, 3, vocabulary.FormsOfSingleLetter, false, nil)
	}})

	r.MustRegister(MiniGame{Code: "Assessment_VowelOrConsonant", Packs: 10, New: func(env Env) Builder {
		return NewLettersByType(env, nil)
	}})

	r.MustRegister(MiniGame{Code: "Assessment_WordsWithLetter", Packs: 6, New: func(env Env) Builder {
		p := env.defaults()
		p.WordFilters.RequireDrawings = true
		return NewWordsWithLetter(env, 2, 1, 2, &p)
	}})

	r.MustRegister(MiniGame{Code: "Assessment_MatchLettersToWord", Packs: 6, New: func(env Env) Builder {
		return NewCommonLettersInWords(env, 1, 2, 2, 3, nil)
	}})

	r.MustRegister(MiniGame{Code: "ReadingGame", Packs: 10, New: func(env Env) Builder {
		p := env.defaults()
		p.WordFilters.RequireDrawings = true
		return NewRandomWords(env, 1, 3, true, &p)
	}})

	return r
}
