// Package selection draws constrained random subsets from candidate pools
// for question builders.
package selection

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/japaniel/alifba/pkg/catalog"
	"github.com/japaniel/alifba/pkg/logger"
)

// ErrNotEnoughData is returned when a pool cannot satisfy a selection.
var ErrNotEnoughData = errors.New("selection: not enough data")

// Severity decides what happens when the pool is smaller than requested.
type Severity int

const (
	// Strict fails.
	Strict Severity = iota
	// MayRepeatIfNotEnough fills the shortfall with repeated picks.
	MayRepeatIfNotEnough
	// AllowShortfall returns fewer items than requested.
	AllowShortfall
)

var severityNames = []string{"strict", "may_repeat_if_not_enough", "allow_shortfall"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

func ParseSeverity(v string) (Severity, error) {
	for i, n := range severityNames {
		if strings.EqualFold(v, n) {
			return Severity(i), nil
		}
	}
	return 0, fmt.Errorf("selection: unknown severity %q", v)
}

// HistoryPolicy decides how the shared history restricts the pool.
type HistoryPolicy int

const (
	NoFilter HistoryPolicy = iota
	// RepeatWhenFull prefers items not yet chosen and starts over once too
	// few remain.
	RepeatWhenFull
)

func (h HistoryPolicy) String() string {
	switch h {
	case NoFilter:
		return "no_filter"
	case RepeatWhenFull:
		return "repeat_when_full"
	}
	return fmt.Sprintf("HistoryPolicy(%d)", int(h))
}

func ParseHistoryPolicy(v string) (HistoryPolicy, error) {
	switch strings.ToLower(v) {
	case "no_filter", "":
		return NoFilter, nil
	case "repeat_when_full":
		return RepeatWhenFull, nil
	}
	return 0, fmt.Errorf("selection: unknown history policy %q", v)
}

// Params describe one selection.
type Params struct {
	Severity    Severity
	Count       int
	UseJourney  bool
	History     HistoryPolicy
	HistoryList *History
}

// Gate reports whether an item is unlocked at the player's progress.
type Gate interface {
	Unlocked(d catalog.Data) bool
}

// GateFunc adapts a function to Gate.
type GateFunc func(d catalog.Data) bool

func (f GateFunc) Unlocked(d catalog.Data) bool { return f(d) }

// Engine performs selections. It is not safe for concurrent use because the
// random source is not; give each session its own Engine.
type Engine struct {
	rng  *rand.Rand
	gate Gate
	log  *logger.Logger
}

type Option func(*Engine)

// WithRand sets the random source, typically a seeded one in tests.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithGate sets the journey gate used when Params.UseJourney is set.
func WithGate(g Gate) Option {
	return func(e *Engine) { e.gate = g }
}

func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) { e.log = l }
}

func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, o := range opts {
		o(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	e.log = logger.OrNop(e.log)
	return e
}

// Rand exposes the engine's random source to callers that shuffle or draw
// alongside a selection.
func (e *Engine) Rand() *rand.Rand { return e.rng }

// Select draws p.Count items from the pool. The pool is evaluated once, then
// restricted by the journey gate and the history, and finally sampled
// according to the severity. Chosen ids are appended to p.HistoryList.
func Select[T catalog.Data](e *Engine, pool func() []T, p Params) ([]T, error) {
	if p.Count <= 0 {
		return nil, nil
	}
	candidates := pool()

	if p.UseJourney && e.gate != nil {
		gated := filter(candidates, func(d T) bool { return e.gate.Unlocked(d) })
		if len(gated) < p.Count && p.Severity != AllowShortfall {
			e.log.Debug("journey pool too small, using every item",
				"unlocked", len(gated), "all", len(candidates), "count", p.Count)
		} else {
			candidates = gated
		}
	}

	if p.History == RepeatWhenFull && p.HistoryList != nil {
		fresh := filter(candidates, func(d T) bool { return !p.HistoryList.Contains(d.DataID()) })
		if len(fresh) < p.Count {
			e.log.Debug("history full, starting over", "fresh", len(fresh), "count", p.Count)
			p.HistoryList.Clear()
		} else {
			candidates = fresh
		}
	}

	chosen, err := sample(e.rng, candidates, p.Count, p.Severity)
	if err != nil {
		return nil, err
	}
	if p.HistoryList != nil {
		for _, d := range chosen {
			p.HistoryList.Add(d.DataID())
		}
	}
	return chosen, nil
}

func sample[T any](rng *rand.Rand, pool []T, count int, sev Severity) ([]T, error) {
	n := len(pool)
	if n < count {
		switch {
		case sev == Strict:
			return nil, fmt.Errorf("%w: want %d, have %d", ErrNotEnoughData, count, n)
		case sev == MayRepeatIfNotEnough && n == 0:
			return nil, fmt.Errorf("%w: empty pool", ErrNotEnoughData)
		}
	}

	shuffled := make([]T, n)
	copy(shuffled, pool)
	rng.Shuffle(n, func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	if n >= count {
		return shuffled[:count], nil
	}
	if sev == AllowShortfall {
		return shuffled, nil
	}
	out := shuffled
	for len(out) < count {
		out = append(out, pool[rng.IntN(n)])
	}
	return out, nil
}

func filter[T any](in []T, keep func(T) bool) []T {
	var out []T
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// Shuffle permutes items in place with the engine's random source.
func Shuffle[T any](e *Engine, items []T) {
	e.rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
}

// Pick returns one random item; ok is false for an empty slice.
func Pick[T any](e *Engine, items []T) (v T, ok bool) {
	if len(items) == 0 {
		return v, false
	}
	return items[e.rng.IntN(len(items))], true
}
