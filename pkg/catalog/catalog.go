package catalog

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

var (
	ErrDuplicateID      = errors.New("duplicate id")
	ErrMissingReference = errors.New("missing reference")
	ErrBadCodepoint     = errors.New("bad codepoint")
)

// Content is the raw content handed to New, as loaded by a content loader.
type Content struct {
	Letters []Letter `json:"letters"`
	Words   []Word   `json:"words"`
	Phrases []Phrase `json:"phrases"`
}

// Catalog is the immutable table of letters, words and phrases. It is built
// once and then shared read-only by every consumer.
type Catalog struct {
	letters []*Letter
	words   []*Word
	phrases []*Phrase

	letterByID map[string]*Letter
	wordByID   map[string]*Word
	phraseByID map[string]*Phrase
}

// New validates content and builds a catalog. Every problem found is
// reported; the catalog is only returned when content is consistent.
func New(c Content) (*Catalog, error) {
	cat := &Catalog{
		letterByID: make(map[string]*Letter, len(c.Letters)),
		wordByID:   make(map[string]*Word, len(c.Words)),
		phraseByID: make(map[string]*Phrase, len(c.Phrases)),
	}
	var err error

	for i := range c.Letters {
		l := c.Letters[i]
		if _, dup := cat.letterByID[l.ID]; dup || l.ID == "" {
			err = multierr.Append(err, fmt.Errorf("letter %q: %w", l.ID, ErrDuplicateID))
			continue
		}
		cat.letters = append(cat.letters, &l)
		cat.letterByID[l.ID] = &l
	}
	for _, l := range cat.letters {
		err = multierr.Append(err, cat.checkLetter(l))
	}

	for i := range c.Words {
		w := c.Words[i]
		if _, dup := cat.wordByID[w.ID]; dup || w.ID == "" {
			err = multierr.Append(err, fmt.Errorf("word %q: %w", w.ID, ErrDuplicateID))
			continue
		}
		cat.words = append(cat.words, &w)
		cat.wordByID[w.ID] = &w
	}

	for i := range c.Phrases {
		p := c.Phrases[i]
		if _, dup := cat.phraseByID[p.ID]; dup || p.ID == "" {
			err = multierr.Append(err, fmt.Errorf("phrase %q: %w", p.ID, ErrDuplicateID))
			continue
		}
		cat.phrases = append(cat.phrases, &p)
		cat.phraseByID[p.ID] = &p
	}
	for _, p := range cat.phrases {
		if p.Linked != "" && cat.phraseByID[p.Linked] == nil {
			err = multierr.Append(err, fmt.Errorf("phrase %q linked %q: %w", p.ID, p.Linked, ErrMissingReference))
		}
	}

	if err != nil {
		return nil, err
	}
	return cat, nil
}

// MustNew is New for fixtures and startup code.
func MustNew(c Content) *Catalog {
	cat, err := New(c)
	if err != nil {
		panic(err)
	}
	return cat
}

func (c *Catalog) checkLetter(l *Letter) error {
	var err error
	needsRefs := l.Kind == KindDiacriticCombo || l.Kind == KindLetterVariation
	if l.BaseLetter != "" || needsRefs {
		if c.letterByID[l.BaseLetter] == nil {
			err = multierr.Append(err, fmt.Errorf("letter %q base %q: %w", l.ID, l.BaseLetter, ErrMissingReference))
		}
	}
	if l.Symbol != "" || needsRefs {
		if c.letterByID[l.Symbol] == nil {
			err = multierr.Append(err, fmt.Errorf("letter %q symbol %q: %w", l.ID, l.Symbol, ErrMissingReference))
		}
	}
	for _, hex := range []string{l.IsolatedUnicode, l.InitialUnicode, l.MedialUnicode, l.FinalUnicode, l.SymbolUnicode} {
		if hex == "" {
			continue
		}
		if _, ok := HexToRune(hex); !ok {
			err = multierr.Append(err, fmt.Errorf("letter %q codepoint %q: %w", l.ID, hex, ErrBadCodepoint))
		}
	}
	return err
}

// Letter looks a letter up by id.
func (c *Catalog) Letter(id string) (*Letter, bool) {
	l, ok := c.letterByID[id]
	return l, ok
}

func (c *Catalog) Word(id string) (*Word, bool) {
	w, ok := c.wordByID[id]
	return w, ok
}

func (c *Catalog) Phrase(id string) (*Phrase, bool) {
	p, ok := c.phraseByID[id]
	return p, ok
}

// Letters returns every letter in content order. The slice is shared and
// must not be modified.
func (c *Catalog) Letters() []*Letter { return c.letters }
func (c *Catalog) Words() []*Word     { return c.words }
func (c *Catalog) Phrases() []*Phrase { return c.phrases }

// FindLetters returns the letters matching pred, in content order.
func (c *Catalog) FindLetters(pred func(*Letter) bool) []*Letter {
	var out []*Letter
	for _, l := range c.letters {
		if pred(l) {
			out = append(out, l)
		}
	}
	return out
}

func (c *Catalog) FindWords(pred func(*Word) bool) []*Word {
	var out []*Word
	for _, w := range c.words {
		if pred(w) {
			out = append(out, w)
		}
	}
	return out
}

func (c *Catalog) FindPhrases(pred func(*Phrase) bool) []*Phrase {
	var out []*Phrase
	for _, p := range c.phrases {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

// Content returns a copy of the catalog content, suitable for persisting.
func (c *Catalog) Content() Content {
	var out Content
	for _, l := range c.letters {
		out.Letters = append(out.Letters, *l)
	}
	for _, w := range c.words {
		out.Words = append(out.Words, *w)
	}
	for _, p := range c.phrases {
		out.Phrases = append(out.Phrases, *p)
	}
	return out
}
