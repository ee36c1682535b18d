// Package vocabulary answers letter, word and phrase queries over a catalog,
// including the letters each word segments into.
package vocabulary

import (
	"sync"

	"github.com/japaniel/alifba/pkg/catalog"
	"github.com/japaniel/alifba/pkg/logger"
	"github.com/japaniel/alifba/pkg/segment"
)

// Index is the query surface used by question builders. The per-word
// letter cache is filled on first access and never invalidated; an Index is
// safe for concurrent use.
type Index struct {
	cat *catalog.Catalog
	seg *segment.Segmenter
	log *logger.Logger

	mu          sync.RWMutex
	wordLetters map[string][]catalog.LetterRef
}

func New(cat *catalog.Catalog, seg *segment.Segmenter, log *logger.Logger) *Index {
	return &Index{
		cat:         cat,
		seg:         seg,
		log:         logger.OrNop(log),
		wordLetters: make(map[string][]catalog.LetterRef),
	}
}

func (ix *Index) Catalog() *catalog.Catalog     { return ix.cat }
func (ix *Index) Segmenter() *segment.Segmenter { return ix.seg }

// LettersInWord returns the letters of w in order, each in the form it takes
// in the word. Ligatures stay whole.
func (ix *Index) LettersInWord(w *catalog.Word) []catalog.LetterRef {
	ix.mu.RLock()
	letters, ok := ix.wordLetters[w.ID]
	ix.mu.RUnlock()
	if ok {
		return letters
	}

	occ := ix.seg.SplitWord(w, segment.Options{})
	letters = make([]catalog.LetterRef, len(occ))
	for i, o := range occ {
		letters[i] = o.Letter
	}

	ix.mu.Lock()
	// another reader may have filled it meanwhile; both results are equal
	if cached, ok := ix.wordLetters[w.ID]; ok {
		letters = cached
	} else {
		ix.wordLetters[w.ID] = letters
	}
	ix.mu.Unlock()
	return letters
}

// Warm fills the letter cache for every word.
func (ix *Index) Warm() {
	for _, w := range ix.cat.Words() {
		ix.LettersInWord(w)
	}
}

func refs(letters []*catalog.Letter) []catalog.LetterRef {
	out := make([]catalog.LetterRef, len(letters))
	for i, l := range letters {
		out[i] = catalog.Ref(l)
	}
	return out
}
