package questions

import (
	"errors"
	"fmt"

	"github.com/japaniel/alifba/pkg/catalog"
	"github.com/japaniel/alifba/pkg/logger"
	"github.com/japaniel/alifba/pkg/selection"
	"github.com/japaniel/alifba/pkg/vocabulary"
)

// ErrMissingContent is returned when a builder needs a catalog record that
// is not there, such as the category words of LettersByType.
var ErrMissingContent = errors.New("questions: missing content")

// Builder produces question packs for one minigame session.
type Builder interface {
	BuildPacks(n int) ([]QuestionPack, error)
	Parameters() *Parameters
}

// Env is what builders draw from. Engine carries the random source and the
// journey gate of the session. Defaults replaces DefaultParameters for
// builders created without parameters.
type Env struct {
	Index    *vocabulary.Index
	Engine   *selection.Engine
	Log      *logger.Logger
	Defaults *Parameters
}

func (e Env) defaults() Parameters {
	if e.Defaults != nil {
		return *e.Defaults
	}
	return DefaultParameters()
}

func (e Env) log() *logger.Logger { return logger.OrNop(e.Log) }

func (e Env) report(p QuestionPack) {
	l := e.log()
	if l.DebugEnabled() {
		l.Debug("question pack result", "pack", p.Report())
	}
}

func without(letters []catalog.LetterRef, taboo []catalog.LetterRef, s catalog.Strictness) []catalog.LetterRef {
	set := catalog.NewLetterSet(s, taboo...)
	var out []catalog.LetterRef
	for _, l := range letters {
		if !set.Contains(l) {
			out = append(out, l)
		}
	}
	return out
}

// first returns the single item a round is built around. Selections that
// allow a shortfall may come back empty.
func first[T any](items []T, what string) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, fmt.Errorf("%w: no %s available", selection.ErrNotEnoughData, what)
	}
	return items[0], nil
}
