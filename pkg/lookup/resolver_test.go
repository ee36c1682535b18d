package lookup

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/japaniel/alifba/pkg/catalog"
	"github.com/japaniel/alifba/pkg/catalog/catalogtest"
)

func TestBaseLetterWinsCollision(t *testing.T) {
	r := NewResolver(catalogtest.Catalog())

	ref, ok := r.Resolve("0627")
	require.True(t, ok)
	assert.Equal(t, "alef", ref.ID())
	assert.Equal(t, catalog.FormIsolated, ref.Form())

	ref, ok = r.Resolve("FE92")
	require.True(t, ok)
	assert.Equal(t, "beh", ref.ID())
	assert.Equal(t, catalog.FormMedial, ref.Form())
}

func TestFirstNonBaseWriterWins(t *testing.T) {
	content := catalog.Content{Letters: []catalog.Letter{
		{ID: "lam", Kind: catalog.KindLetter, IsolatedUnicode: "0644"},
		{ID: "alef", Kind: catalog.KindLetter, IsolatedUnicode: "0627"},
		{ID: "madda", Kind: catalog.KindSymbol, IsolatedUnicode: "0653"},
		{ID: "lam_alef", Kind: catalog.KindLetterVariation, BaseLetter: "lam", Symbol: "alef", IsolatedUnicode: "FEFB"},
		{ID: "lam_alef_madda", Kind: catalog.KindLetterVariation, BaseLetter: "lam", Symbol: "madda", IsolatedUnicode: "FEFB"},
	}}
	r := NewResolver(catalog.MustNew(content))

	ref, ok := r.Resolve("FEFB")
	require.True(t, ok)
	assert.Equal(t, "lam_alef", ref.ID())
}

func TestCombosOnlyFromDiacriticCombos(t *testing.T) {
	r := NewResolver(catalogtest.Catalog())

	l, ok := r.Combo("fathah", "alef")
	require.True(t, ok)
	assert.Equal(t, "alef_fathah", l.ID)

	_, ok = r.Combo("alef", "lam")
	assert.False(t, ok, "variations are not combos")

	_, ok = r.Combo("shaddah", "beh")
	assert.False(t, ok)
}

func TestUnknownCodepoint(t *testing.T) {
	r := NewResolver(catalogtest.Catalog())
	_, ok := r.ResolveRune('ص')
	assert.False(t, ok)
}

func TestConcurrentFirstUse(t *testing.T) {
	r := NewResolver(catalogtest.Catalog())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := r.ResolveRune('ب')
			assert.True(t, ok)
		}()
	}
	wg.Wait()
	assert.Positive(t, r.Len())
}
