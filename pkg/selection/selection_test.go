package selection

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/japaniel/alifba/pkg/catalog"
)

type item string

func (i item) DataID() string               { return string(i) }
func (i item) IntrinsicDifficulty() float64 { return 0 }

func items(n int) []item {
	out := make([]item, n)
	for i := range out {
		out[i] = item(fmt.Sprintf("i%d", i))
	}
	return out
}

func pool(it []item) func() []item { return func() []item { return it } }

func seeded(seed uint64, opts ...Option) *Engine {
	return New(append([]Option{WithRand(rand.New(rand.NewPCG(seed, seed+1)))}, opts...)...)
}

func distinct(t *testing.T, got []item) {
	t.Helper()
	seen := map[item]bool{}
	for _, v := range got {
		require.False(t, seen[v], "duplicate %s in %v", v, got)
		seen[v] = true
	}
}

func TestSelectStrictFailsWhenShort(t *testing.T) {
	for seed := uint64(0); seed < 10; seed++ {
		_, err := Select(seeded(seed), pool(items(3)), Params{Severity: Strict, Count: 4})
		require.ErrorIs(t, err, ErrNotEnoughData)
	}
}

func TestSelectMayRepeatFillsCount(t *testing.T) {
	for seed := uint64(0); seed < 10; seed++ {
		got, err := Select(seeded(seed), pool(items(2)), Params{Severity: MayRepeatIfNotEnough, Count: 5})
		require.NoError(t, err)
		assert.Len(t, got, 5)
		// every pool item is used before any repeat
		assert.ElementsMatch(t, items(2), got[:2])
	}

	_, err := Select(seeded(1), pool(nil), Params{Severity: MayRepeatIfNotEnough, Count: 1})
	assert.ErrorIs(t, err, ErrNotEnoughData)
}

func TestSelectAllowShortfall(t *testing.T) {
	got, err := Select(seeded(2), pool(items(3)), Params{Severity: AllowShortfall, Count: 5})
	require.NoError(t, err)
	assert.Len(t, got, 3)
	distinct(t, got)

	got, err = Select(seeded(2), pool(nil), Params{Severity: AllowShortfall, Count: 5})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSelectDistinctWhenPoolIsLargeEnough(t *testing.T) {
	for _, sev := range []Severity{Strict, MayRepeatIfNotEnough, AllowShortfall} {
		got, err := Select(seeded(3), pool(items(10)), Params{Severity: sev, Count: 4})
		require.NoError(t, err)
		assert.Len(t, got, 4)
		distinct(t, got)
	}
}

func TestSelectZeroCount(t *testing.T) {
	calls := 0
	got, err := Select(seeded(4), func() []item { calls++; return items(3) }, Params{Count: 0})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, calls, "pool is not evaluated")
}

func TestSelectJourneyGate(t *testing.T) {
	unlocked := GateFunc(func(d catalog.Data) bool { return d.DataID() == "i0" || d.DataID() == "i1" })
	e := seeded(5, WithGate(unlocked))

	got, err := Select(e, pool(items(6)), Params{Severity: Strict, Count: 2, UseJourney: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []item{"i0", "i1"}, got)

	// too few unlocked items widens to the whole pool
	got, err = Select(e, pool(items(6)), Params{Severity: Strict, Count: 4, UseJourney: true})
	require.NoError(t, err)
	assert.Len(t, got, 4)

	// shortfall keeps the gate
	got, err = Select(e, pool(items(6)), Params{Severity: AllowShortfall, Count: 4, UseJourney: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []item{"i0", "i1"}, got)

	// gate ignored unless asked for
	got, err = Select(e, pool(items(6)), Params{Severity: Strict, Count: 6})
	require.NoError(t, err)
	assert.Len(t, got, 6)
}

func TestSelectHistoryRepeatWhenFull(t *testing.T) {
	e := seeded(6)
	h := NewHistory()
	p := Params{Severity: Strict, Count: 2, History: RepeatWhenFull, HistoryList: h}

	first, err := Select(e, pool(items(4)), p)
	require.NoError(t, err)
	second, err := Select(e, pool(items(4)), p)
	require.NoError(t, err)
	assert.ElementsMatch(t, items(4), append(first, second...), "no repeats until every item is used")
	assert.Equal(t, 4, h.Len())

	third, err := Select(e, pool(items(4)), p)
	require.NoError(t, err)
	assert.Len(t, third, 2)
	assert.Equal(t, 2, h.Len(), "history restarted")
}

func TestSelectNoFilterStillRecords(t *testing.T) {
	h := NewHistory()
	got, err := Select(seeded(7), pool(items(3)), Params{Severity: Strict, Count: 3, HistoryList: h})
	require.NoError(t, err)
	for _, v := range got {
		assert.True(t, h.Contains(v.DataID()))
	}

	// ignored by NoFilter
	again, err := Select(seeded(7), pool(items(3)), Params{Severity: Strict, Count: 3, HistoryList: h})
	require.NoError(t, err)
	assert.Len(t, again, 3)
}

func TestHistory(t *testing.T) {
	var h History
	assert.False(t, h.Contains("a"))
	h.Add("a")
	h.Add("b")
	h.Add("a")
	assert.Equal(t, []string{"a", "b"}, h.IDs())
	h.Clear()
	assert.Zero(t, h.Len())
	assert.False(t, h.Contains("a"))
}

func TestParseEnums(t *testing.T) {
	for _, s := range []Severity{Strict, MayRepeatIfNotEnough, AllowShortfall} {
		got, err := ParseSeverity(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseSeverity("lenient")
	assert.Error(t, err)

	hp, err := ParseHistoryPolicy("repeat_when_full")
	require.NoError(t, err)
	assert.Equal(t, RepeatWhenFull, hp)
	hp, err = ParseHistoryPolicy("")
	require.NoError(t, err)
	assert.Equal(t, NoFilter, hp)
}

func TestPickAndShuffle(t *testing.T) {
	e := seeded(8)
	_, ok := Pick[item](e, nil)
	assert.False(t, ok)
	v, ok := Pick(e, items(3))
	require.True(t, ok)
	assert.Contains(t, items(3), v)

	s := items(5)
	Shuffle(e, s)
	assert.ElementsMatch(t, items(5), s)
}
