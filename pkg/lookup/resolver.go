// Package lookup resolves shaped codepoints back to catalog letters.
package lookup

import (
	"sync"

	"github.com/japaniel/alifba/pkg/catalog"
)

type comboKey struct {
	symbol string
	base   string
}

// Resolver maps codepoints to (letter, form) pairs and (symbol, base) pairs
// to diacritic combos. Both tables are built on first use and never change;
// a Resolver is safe for concurrent use.
type Resolver struct {
	cat *catalog.Catalog

	once   sync.Once
	forms  map[string]catalog.LetterRef
	combos map[comboKey]*catalog.Letter
}

func NewResolver(cat *catalog.Catalog) *Resolver {
	return &Resolver{cat: cat}
}

func (r *Resolver) build() {
	r.forms = make(map[string]catalog.LetterRef)
	r.combos = make(map[comboKey]*catalog.Letter)

	for _, l := range r.cat.Letters() {
		for _, f := range l.AvailableForms() {
			hex := l.Unicode(f, false)
			if l.Kind == catalog.KindLetter {
				// base letters win over combos sharing their glyph
				r.forms[hex] = catalog.RefWithForm(l, f)
				continue
			}
			if _, taken := r.forms[hex]; !taken {
				r.forms[hex] = catalog.RefWithForm(l, f)
			}
		}
		if l.Kind == catalog.KindDiacriticCombo {
			r.combos[comboKey{symbol: l.Symbol, base: l.BaseLetter}] = l
		}
	}
}

// Resolve returns the letter and form a hex codepoint stands for.
func (r *Resolver) Resolve(hex string) (catalog.LetterRef, bool) {
	r.once.Do(r.build)
	ref, ok := r.forms[hex]
	return ref, ok
}

// ResolveRune is Resolve for a single character.
func (r *Resolver) ResolveRune(c rune) (catalog.LetterRef, bool) {
	return r.Resolve(catalog.RuneToHex(c))
}

// Combo returns the diacritic combo of base carrying symbol.
func (r *Resolver) Combo(symbolID, baseID string) (*catalog.Letter, bool) {
	r.once.Do(r.build)
	l, ok := r.combos[comboKey{symbol: symbolID, base: baseID}]
	return l, ok
}

// Len reports how many codepoints are mapped.
func (r *Resolver) Len() int {
	r.once.Do(r.build)
	return len(r.forms)
}
