package vocabulary

// ExcludeDiacritics chooses which diacritic combos a letter query drops.
type ExcludeDiacritics int

const (
	DiacriticsKept ExcludeDiacritics = iota
	DiacriticsExcluded
	// DiacriticsAllButMain keeps combos whose symbol is tagged MainDiacritic.
	DiacriticsAllButMain
)

// ExcludeLetterVariations chooses which letter variations a letter query drops.
type ExcludeLetterVariations int

const (
	VariationsKept ExcludeLetterVariations = iota
	VariationsExcluded
	// VariationsAllButAlefHamza keeps variations tagged AlefHamzaVariation.
	VariationsAllButAlefHamza
)

const (
	TagMainDiacritic      = "MainDiacritic"
	TagAlefHamzaVariation = "AlefHamzaVariation"
)

// LetterFilters restrict letter queries. Symbols are always excluded.
type LetterFilters struct {
	ExcludeDiacritics       ExcludeDiacritics       `yaml:"exclude_diacritics"`
	ExcludeLetterVariations ExcludeLetterVariations `yaml:"exclude_letter_variations"`
	ExcludeDiphthongs       bool                    `yaml:"exclude_diphthongs"`
	RequireDiacritics       bool                    `yaml:"require_diacritics"`
}

// BaseLettersOnly drops every combo, variation and diphthong.
var BaseLettersOnly = LetterFilters{
	ExcludeDiacritics:       DiacriticsExcluded,
	ExcludeLetterVariations: VariationsExcluded,
	ExcludeDiphthongs:       true,
}

// WordFilters restrict word queries. The diacritic, variation and diphthong
// checks look at the letters the word segments into.
type WordFilters struct {
	ExcludeArticles         bool `yaml:"exclude_articles"`
	RequireDrawings         bool `yaml:"require_drawings"`
	ExcludeColorWords       bool `yaml:"exclude_color_words"`
	ExcludePluralDual       bool `yaml:"exclude_plural_dual"`
	ExcludeDiacritics       bool `yaml:"exclude_diacritics"`
	ExcludeLetterVariations bool `yaml:"exclude_letter_variations"`
	RequireDiacritics       bool `yaml:"require_diacritics"`
	ExcludeDiphthongs       bool `yaml:"exclude_diphthongs"`
}

type PhraseFilters struct {
	RequireWords           bool `yaml:"require_words"`
	RequireAtLeastTwoWords bool `yaml:"require_at_least_two_words"`
	RequireAnswersOrWords  bool `yaml:"require_answers_or_words"`
}

// LetterAlterationFilters drive LetterAlterations.
type LetterAlterationFilters struct {
	DifferentBaseLetters    bool                    `yaml:"different_base_letters"`
	IncludeForms            bool                    `yaml:"include_forms"`
	OneFormPerLetter        bool                    `yaml:"one_form_per_letter"`
	VisuallyDifferentForms  bool                    `yaml:"visually_different_forms"`
	ExcludeDiacritics       ExcludeDiacritics       `yaml:"exclude_diacritics"`
	ExcludeLetterVariations ExcludeLetterVariations `yaml:"exclude_letter_variations"`
	ExcludeDiphthongs       bool                    `yaml:"exclude_diphthongs"`
}

// Alteration presets.
var (
	FormsOfSingleLetter = LetterAlterationFilters{
		IncludeForms: true, VisuallyDifferentForms: true,
		ExcludeDiacritics: DiacriticsExcluded, ExcludeLetterVariations: VariationsExcluded, ExcludeDiphthongs: true,
	}
	FormsOfMultipleLetters = LetterAlterationFilters{
		DifferentBaseLetters: true, IncludeForms: true, VisuallyDifferentForms: true,
		ExcludeDiacritics: DiacriticsExcluded, ExcludeLetterVariations: VariationsExcluded, ExcludeDiphthongs: true,
	}
	MultipleLetters = LetterAlterationFilters{
		DifferentBaseLetters: true,
		ExcludeDiacritics:    DiacriticsExcluded, ExcludeLetterVariations: VariationsExcluded, ExcludeDiphthongs: true,
	}
	PhonemesOfSingleLetter = LetterAlterationFilters{
		ExcludeDiacritics: DiacriticsAllButMain, ExcludeLetterVariations: VariationsExcluded, ExcludeDiphthongs: true,
	}
	PhonemesOfMultipleLetters = LetterAlterationFilters{
		DifferentBaseLetters: true,
		ExcludeDiacritics:    DiacriticsAllButMain, ExcludeLetterVariations: VariationsExcluded, ExcludeDiphthongs: true,
	}
	FormsAndPhonemesOfMultipleLetters = LetterAlterationFilters{
		DifferentBaseLetters: true, IncludeForms: true, OneFormPerLetter: true,
		ExcludeDiacritics: DiacriticsAllButMain, ExcludeLetterVariations: VariationsExcluded, ExcludeDiphthongs: true,
	}
)

// AlterationPreset looks a preset up by name, for configuration files.
func AlterationPreset(name string) (LetterAlterationFilters, bool) {
	switch name {
	case "forms_of_single_letter":
		return FormsOfSingleLetter, true
	case "forms_of_multiple_letters":
		return FormsOfMultipleLetters, true
	case "multiple_letters":
		return MultipleLetters, true
	case "phonemes_of_single_letter":
		return PhonemesOfSingleLetter, true
	case "phonemes_of_multiple_letters":
		return PhonemesOfMultipleLetters, true
	case "forms_and_phonemes_of_multiple_letters":
		return FormsAndPhonemesOfMultipleLetters, true
	}
	return LetterAlterationFilters{}, false
}
