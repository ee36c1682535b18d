package catalog

// LetterRef is a catalog letter seen in one presentation form. It replaces
// mutable "forced form" clones: the catalog record is shared and never
// changes, the form travels alongside it.
type LetterRef struct {
	letter *Letter
	form   Form
}

// Ref wraps a letter in its default form.
func Ref(l *Letter) LetterRef { return LetterRef{letter: l} }

// RefWithForm wraps a letter in an explicit form.
func RefWithForm(l *Letter, f Form) LetterRef { return LetterRef{letter: l, form: f} }

func (r LetterRef) Letter() *Letter { return r.letter }
func (r LetterRef) IsZero() bool    { return r.letter == nil }

// ForcedForm is the form given at construction, FormNone for the default.
func (r LetterRef) ForcedForm() Form { return r.form }

// Form is the effective form. The default renders as Isolated.
func (r LetterRef) Form() Form {
	if r.form == FormNone {
		return FormIsolated
	}
	return r.form
}

// WithForm returns a copy of r in another form.
func (r LetterRef) WithForm(f Form) LetterRef { return LetterRef{letter: r.letter, form: f} }

func (r LetterRef) ID() string {
	if r.letter == nil {
		return ""
	}
	return r.letter.ID
}

func (r LetterRef) DataID() string { return r.ID() }

func (r LetterRef) IntrinsicDifficulty() float64 {
	if r.letter == nil {
		return 0
	}
	return r.letter.Complexity
}

// DisplayString renders the letter in its effective form.
func (r LetterRef) DisplayString() string {
	if r.letter == nil {
		return ""
	}
	return r.letter.DisplayString(r.Form())
}

func (r LetterRef) String() string {
	if r.letter == nil {
		return "<nil>"
	}
	if r.form == FormNone {
		return r.letter.ID
	}
	return r.letter.ID + "@" + r.form.String()
}

// SameLetter compares two references under the given strictness.
func SameLetter(a, b LetterRef, s Strictness) bool {
	return Key(a, s) == Key(b, s)
}

// Key returns a map key for r such that two references share a key exactly
// when SameLetter reports them equal under s.
func Key(r LetterRef, s Strictness) string {
	switch s {
	case WithActualForm:
		return r.ID() + "#" + r.Form().String()
	case WithVisualForm:
		return r.ID() + "#" + r.DisplayString()
	default:
		return r.ID()
	}
}

// LetterSet is an insertion-ordered set of letter references whose
// membership is decided by a strictness level.
type LetterSet struct {
	strictness Strictness
	index      map[string]int
	items      []LetterRef
}

func NewLetterSet(s Strictness, refs ...LetterRef) *LetterSet {
	set := &LetterSet{strictness: s, index: make(map[string]int, len(refs))}
	set.AddAll(refs)
	return set
}

// Add inserts r and reports whether it was not already present.
func (s *LetterSet) Add(r LetterRef) bool {
	k := Key(r, s.strictness)
	if _, ok := s.index[k]; ok {
		return false
	}
	s.index[k] = len(s.items)
	s.items = append(s.items, r)
	return true
}

func (s *LetterSet) AddAll(refs []LetterRef) {
	for _, r := range refs {
		s.Add(r)
	}
}

func (s *LetterSet) Contains(r LetterRef) bool {
	_, ok := s.index[Key(r, s.strictness)]
	return ok
}

// Remove deletes r, keeping the order of the remaining items.
func (s *LetterSet) Remove(r LetterRef) bool {
	k := Key(r, s.strictness)
	i, ok := s.index[k]
	if !ok {
		return false
	}
	delete(s.index, k)
	s.items = append(s.items[:i], s.items[i+1:]...)
	for j := i; j < len(s.items); j++ {
		s.index[Key(s.items[j], s.strictness)] = j
	}
	return true
}

func (s *LetterSet) Len() int { return len(s.items) }

// Items returns the members in insertion order.
func (s *LetterSet) Items() []LetterRef {
	out := make([]LetterRef, len(s.items))
	copy(out, s.items)
	return out
}

// ContainsLetter reports whether any of refs equals r under s.
func ContainsLetter(refs []LetterRef, r LetterRef, s Strictness) bool {
	k := Key(r, s)
	for _, x := range refs {
		if Key(x, s) == k {
			return true
		}
	}
	return false
}
