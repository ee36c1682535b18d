package catalog

import (
	"strconv"
	"strings"
)

// Tatweel is the Arabic elongation character.
const Tatweel = 'ـ'

// Data is implemented by every vocabulary record that can be selected or
// carried by a question pack.
type Data interface {
	DataID() string
	IntrinsicDifficulty() float64
}

// Letter is a catalog letter record: a base letter, a variation, a symbol,
// a diacritic combo or a diphthong. Records are never mutated after the
// catalog is built.
type Letter struct {
	ID         string     `json:"id"`
	Active     bool       `json:"active"`
	InBook     bool       `json:"in_book"`
	Number     int        `json:"number"`
	Title      string     `json:"title"`
	Kind       LetterKind `json:"kind"`
	BaseLetter string     `json:"base_letter"`
	Symbol     string     `json:"symbol"`
	Type       LetterType `json:"type"`
	Tag        string     `json:"tag"`
	Notes      string     `json:"notes"`
	SunMoon    SunMoon    `json:"sun_moon"`

	Sound        string `json:"sound"`
	NameSound    string `json:"name_sound"`
	PhonemeSound string `json:"phoneme_sound"`
	SoundZone    string `json:"sound_zone"`

	// Hex codepoints (e.g. "0627") for each presentation form.
	IsolatedUnicode string `json:"isolated_unicode"`
	InitialUnicode  string `json:"initial_unicode"`
	MedialUnicode   string `json:"medial_unicode"`
	FinalUnicode    string `json:"final_unicode"`
	SymbolUnicode   string `json:"symbol_unicode"`

	// Non-empty markers ask for a tatweel around the glyph when displayed alone.
	InitialFix string `json:"initial_fix"`
	MedialFix  string `json:"medial_fix"`
	FinalFix   string `json:"final_fix"`

	Complexity float64 `json:"complexity"`
}

func (l *Letter) DataID() string               { return l.ID }
func (l *Letter) IntrinsicDifficulty() float64 { return l.Complexity }

func (l *Letter) String() string {
	return "(" + l.DisplayString(FormIsolated) + ") " + l.ID
}

// IsOfKindCategory reports whether the letter belongs to the given category.
func (l *Letter) IsOfKindCategory(c KindCategory) bool {
	switch c {
	case CategoryBase:
		return l.Kind == KindLetter
	case CategoryLetterVariation:
		return l.Kind == KindLetterVariation
	case CategorySymbol:
		return l.Kind == KindSymbol
	case CategoryDiacriticCombo:
		return l.Kind == KindDiacriticCombo
	case CategoryReal:
		return l.Kind == KindLetter || l.Kind == KindDiacriticCombo
	case CategoryBaseAndVariations:
		return l.Kind == KindLetter || l.Kind == KindLetterVariation
	}
	return false
}

// Unicode returns the hex codepoint of the given form. Missing initial,
// medial and final codepoints fall back to the isolated one when fallback
// is set. Symbols only have an isolated codepoint.
func (l *Letter) Unicode(form Form, fallback bool) string {
	if l.Kind == KindSymbol {
		return l.IsolatedUnicode
	}
	pick := func(v string) string {
		if v != "" {
			return v
		}
		if fallback {
			return l.IsolatedUnicode
		}
		return ""
	}
	switch form {
	case FormInitial:
		return pick(l.InitialUnicode)
	case FormMedial:
		return pick(l.MedialUnicode)
	case FormFinal:
		return pick(l.FinalUnicode)
	default:
		return l.IsolatedUnicode
	}
}

// AvailableForms lists the forms that have their own codepoint.
func (l *Letter) AvailableForms() []Form {
	var forms []Form
	if l.IsolatedUnicode != "" {
		forms = append(forms, FormIsolated)
	}
	if l.InitialUnicode != "" {
		forms = append(forms, FormInitial)
	}
	if l.MedialUnicode != "" {
		forms = append(forms, FormMedial)
	}
	if l.FinalUnicode != "" {
		forms = append(forms, FormFinal)
	}
	return forms
}

// HasForm reports whether the letter has its own codepoint for the form.
func (l *Letter) HasForm(form Form) bool {
	return l.Unicode(form, false) != ""
}

// DisplayString renders the letter alone in the given form, the way a
// letter card shows it. Two forms whose display strings are equal look the
// same to a player.
func (l *Letter) DisplayString(form Form) string {
	if form == FormNone {
		form = FormIsolated
	}
	r, ok := HexToRune(l.Unicode(form, false))
	if !ok {
		return ""
	}

	var b strings.Builder
	// diacritic symbols are shown on a tatweel so their position is visible
	if l.Type == TypeDiacriticSymbol {
		b.WriteRune(Tatweel)
	}
	b.WriteRune(r)
	if sym, ok := HexToRune(l.SymbolUnicode); ok {
		b.WriteRune(sym)
	}
	out := b.String()

	if (form == FormFinal && l.FinalFix != "") || (form == FormMedial && l.MedialFix != "") {
		out = string(Tatweel) + out
	}
	if (form == FormInitial && l.InitialFix != "") || (form == FormMedial && l.InitialFix != "") {
		out += string(Tatweel)
	}
	return out
}

// HexToRune parses a hex codepoint such as "0627".
func HexToRune(hex string) (rune, bool) {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

// RuneToHex formats a rune as an upper-case, zero-padded hex codepoint.
func RuneToHex(r rune) string {
	s := strings.ToUpper(strconv.FormatUint(uint64(r), 16))
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}
