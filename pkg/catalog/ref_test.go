package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/japaniel/alifba/pkg/catalog"
	"github.com/japaniel/alifba/pkg/catalog/catalogtest"
)

func TestSameLetterReflexive(t *testing.T) {
	cat := catalogtest.Catalog()
	for _, l := range cat.Letters() {
		for _, f := range append([]catalog.Form{catalog.FormNone}, catalog.AllForms...) {
			r := catalog.RefWithForm(l, f)
			for _, s := range []catalog.Strictness{catalog.LetterOnly, catalog.WithVisualForm, catalog.WithActualForm} {
				assert.True(t, catalog.SameLetter(r, r, s), "%s %s", r, s)
			}
		}
	}
}

func TestSameLetterStrictness(t *testing.T) {
	cat := catalogtest.Catalog()
	beh, _ := cat.Letter("beh")
	alef, _ := cat.Letter("alef")

	initial := catalog.RefWithForm(beh, catalog.FormInitial)
	final := catalog.RefWithForm(beh, catalog.FormFinal)
	plain := catalog.Ref(beh)
	isolated := catalog.RefWithForm(beh, catalog.FormIsolated)

	assert.True(t, catalog.SameLetter(initial, final, catalog.LetterOnly))
	assert.False(t, catalog.SameLetter(initial, final, catalog.WithActualForm))
	assert.False(t, catalog.SameLetter(initial, final, catalog.WithVisualForm))
	assert.True(t, catalog.SameLetter(plain, isolated, catalog.WithActualForm))
	assert.False(t, catalog.SameLetter(catalog.Ref(alef), plain, catalog.LetterOnly))
}

func TestSameLetterVisualForm(t *testing.T) {
	// dal has no initial or medial glyph: those forms render empty and look alike
	dal := catalogtest.Dal
	a := catalog.RefWithForm(&dal, catalog.FormInitial)
	b := catalog.RefWithForm(&dal, catalog.FormMedial)
	assert.True(t, catalog.SameLetter(a, b, catalog.WithVisualForm))
	assert.False(t, catalog.SameLetter(a, b, catalog.WithActualForm))
}

func TestLetterSet(t *testing.T) {
	cat := catalogtest.Catalog()
	beh, _ := cat.Letter("beh")
	teh, _ := cat.Letter("teh")

	set := catalog.NewLetterSet(catalog.LetterOnly,
		catalog.RefWithForm(beh, catalog.FormInitial),
		catalog.RefWithForm(beh, catalog.FormFinal),
		catalog.Ref(teh),
	)
	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains(catalog.Ref(beh)))

	assert.True(t, set.Remove(catalog.Ref(beh)))
	assert.False(t, set.Remove(catalog.Ref(beh)))
	assert.Equal(t, []string{"teh"}, ids(set.Items()))

	strict := catalog.NewLetterSet(catalog.WithActualForm,
		catalog.RefWithForm(beh, catalog.FormInitial),
		catalog.RefWithForm(beh, catalog.FormFinal),
		catalog.Ref(teh),
	)
	assert.Equal(t, 3, strict.Len())
	assert.True(t, strict.Remove(catalog.RefWithForm(beh, catalog.FormInitial)))
	assert.True(t, strict.Contains(catalog.RefWithForm(beh, catalog.FormFinal)))
	assert.True(t, strict.Contains(catalog.RefWithForm(teh, catalog.FormIsolated)))
}

func ids(refs []catalog.LetterRef) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.ID()
	}
	return out
}
