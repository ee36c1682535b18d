package catalog

import (
	"fmt"
	"strings"
)

// LetterKind classifies a catalog letter record.
type LetterKind int

const (
	KindLetter LetterKind = iota
	KindLetterVariation
	KindSymbol
	KindDiacriticCombo
	KindDiphthong
)

var letterKindNames = []string{"Letter", "LetterVariation", "Symbol", "DiacriticCombo", "Diphthong"}

func (k LetterKind) String() string {
	if int(k) < 0 || int(k) >= len(letterKindNames) {
		return fmt.Sprintf("LetterKind(%d)", int(k))
	}
	return letterKindNames[k]
}

func (k LetterKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *LetterKind) UnmarshalText(b []byte) error {
	v, err := parseEnum(letterKindNames, string(b))
	if err != nil {
		return fmt.Errorf("letter kind: %w", err)
	}
	*k = LetterKind(v)
	return nil
}

// LetterType is the phonetic category of a letter.
type LetterType int

const (
	TypeOther LetterType = iota
	TypeConsonant
	TypeLongVowel
	TypePowerful
	TypeDiacriticSymbol
)

var letterTypeNames = []string{"Other", "Consonant", "LongVowel", "Powerful", "DiacriticSymbol"}

func (t LetterType) String() string {
	if int(t) < 0 || int(t) >= len(letterTypeNames) {
		return fmt.Sprintf("LetterType(%d)", int(t))
	}
	return letterTypeNames[t]
}

func (t LetterType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *LetterType) UnmarshalText(b []byte) error {
	if strings.TrimSpace(string(b)) == "" {
		*t = TypeOther
		return nil
	}
	v, err := parseEnum(letterTypeNames, string(b))
	if err != nil {
		return fmt.Errorf("letter type: %w", err)
	}
	*t = LetterType(v)
	return nil
}

// SunMoon is the sun/moon letter classification used with the definite article.
type SunMoon int

const (
	SunMoonNone SunMoon = iota
	Sun
	Moon
)

var sunMoonNames = []string{"None", "Sun", "Moon"}

func (s SunMoon) String() string {
	if int(s) < 0 || int(s) >= len(sunMoonNames) {
		return fmt.Sprintf("SunMoon(%d)", int(s))
	}
	return sunMoonNames[s]
}

func (s SunMoon) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *SunMoon) UnmarshalText(b []byte) error {
	if strings.TrimSpace(string(b)) == "" {
		*s = SunMoonNone
		return nil
	}
	v, err := parseEnum(sunMoonNames, string(b))
	if err != nil {
		return fmt.Errorf("sun/moon: %w", err)
	}
	*s = SunMoon(v)
	return nil
}

// Form is a presentation form. Values are bit flags so a set of forms fits in one value.
type Form uint8

const (
	FormNone     Form = 0
	FormIsolated Form = 1
	FormInitial  Form = 2
	FormMedial   Form = 4
	FormFinal    Form = 8
)

// AllForms lists the presentation forms in catalog order.
var AllForms = []Form{FormIsolated, FormInitial, FormMedial, FormFinal}

func (f Form) String() string {
	switch f {
	case FormNone:
		return "None"
	case FormIsolated:
		return "Isolated"
	case FormInitial:
		return "Initial"
	case FormMedial:
		return "Medial"
	case FormFinal:
		return "Final"
	}
	var parts []string
	for _, single := range AllForms {
		if f&single != 0 {
			parts = append(parts, single.String())
		}
	}
	return strings.Join(parts, "|")
}

// ParseForm parses a single form name, case-insensitively.
func ParseForm(s string) (Form, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return FormNone, nil
	case "isolated":
		return FormIsolated, nil
	case "initial":
		return FormInitial, nil
	case "medial":
		return FormMedial, nil
	case "final":
		return FormFinal, nil
	}
	return FormNone, fmt.Errorf("unknown letter form %q", s)
}

// Strictness controls how two letter references are compared.
type Strictness int

const (
	// LetterOnly compares identity, regardless of form.
	LetterOnly Strictness = iota
	// WithVisualForm compares identity and rendered appearance of the form.
	WithVisualForm
	// WithActualForm compares identity and the exact form.
	WithActualForm
)

func (s Strictness) String() string {
	switch s {
	case LetterOnly:
		return "LetterOnly"
	case WithVisualForm:
		return "WithVisualForm"
	case WithActualForm:
		return "WithActualForm"
	}
	return fmt.Sprintf("Strictness(%d)", int(s))
}

// KindCategory groups letter kinds for queries.
type KindCategory int

const (
	// CategoryReal is base letters plus diacritic combos.
	CategoryReal KindCategory = iota
	CategoryDiacriticCombo
	CategoryBase
	CategoryLetterVariation
	CategorySymbol
	CategoryBaseAndVariations
)

func parseEnum(names []string, s string) (int, error) {
	s = strings.TrimSpace(s)
	for i, n := range names {
		if strings.EqualFold(n, s) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown value %q", s)
}
