// Package catalogtest provides a small but realistic Arabic catalog for tests.
package catalogtest

import "github.com/japaniel/alifba/pkg/catalog"

func base(id string, t catalog.LetterType, sm catalog.SunMoon, iso, ini, med, fin, phoneme string, cx float64) catalog.Letter {
	return catalog.Letter{
		ID: id, Active: true, InBook: true, Kind: catalog.KindLetter, Type: t, SunMoon: sm,
		IsolatedUnicode: iso, InitialUnicode: ini, MedialUnicode: med, FinalUnicode: fin,
		PhonemeSound: phoneme, NameSound: id, Complexity: cx,
	}
}

func symbol(id, hex, tag string) catalog.Letter {
	return catalog.Letter{
		ID: id, Active: true, Kind: catalog.KindSymbol, Type: catalog.TypeDiacriticSymbol,
		IsolatedUnicode: hex, Tag: tag, Complexity: 0.1,
	}
}

func combo(b catalog.Letter, s catalog.Letter, cx float64) catalog.Letter {
	return catalog.Letter{
		ID: b.ID + "_" + s.ID, Active: true, Kind: catalog.KindDiacriticCombo, Type: b.Type,
		BaseLetter: b.ID, Symbol: s.ID, SunMoon: b.SunMoon,
		IsolatedUnicode: b.IsolatedUnicode, InitialUnicode: b.InitialUnicode,
		MedialUnicode: b.MedialUnicode, FinalUnicode: b.FinalUnicode,
		SymbolUnicode: s.IsolatedUnicode, PhonemeSound: b.PhonemeSound + "_" + s.ID, Complexity: cx,
	}
}

var (
	Alef  = base("alef", catalog.TypeLongVowel, catalog.Moon, "0627", "", "", "FE8E", "aa", 0.1)
	Beh   = base("beh", catalog.TypeConsonant, catalog.Moon, "0628", "FE91", "FE92", "FE90", "b", 0.2)
	Teh   = base("teh", catalog.TypeConsonant, catalog.Sun, "062A", "FE97", "FE98", "FE96", "t", 0.3)
	Theh  = base("theh", catalog.TypeConsonant, catalog.Sun, "062B", "FE9B", "FE9C", "FE9A", "th", 0.5)
	Jeem  = base("jeem", catalog.TypeConsonant, catalog.Moon, "062C", "FE9F", "FEA0", "FE9E", "j", 0.4)
	Hah   = base("hah", catalog.TypeConsonant, catalog.Moon, "062D", "FEA3", "FEA4", "FEA2", "h", 0.6)
	Dal   = base("dal", catalog.TypeConsonant, catalog.Sun, "062F", "", "", "FEAA", "d", 0.3)
	Reh   = base("reh", catalog.TypeConsonant, catalog.Sun, "0631", "", "", "FEAE", "r", 0.3)
	Lam   = base("lam", catalog.TypeConsonant, catalog.Sun, "0644", "FEDF", "FEE0", "FEDE", "l", 0.2)
	Meem  = base("meem", catalog.TypeConsonant, catalog.Moon, "0645", "FEE3", "FEE4", "FEE2", "m", 0.2)
	Waw   = base("waw", catalog.TypeLongVowel, catalog.Moon, "0648", "", "", "FEEE", "uu", 0.2)
	Yeh   = base("yeh", catalog.TypeLongVowel, catalog.Moon, "064A", "FEF3", "FEF4", "FEF2", "ii", 0.2)
	Hamza = base("hamza", catalog.TypePowerful, catalog.Moon, "0621", "", "", "", "q", 0.7)

	Fathah  = symbol("fathah", "064E", "MainDiacritic")
	Dammah  = symbol("dammah", "064F", "MainDiacritic")
	Kasrah  = symbol("kasrah", "0650", "MainDiacritic")
	Shaddah = symbol("shaddah", "0651", "")

	AlefFathah = combo(Alef, Fathah, 0.3)
	BehFathah  = combo(Beh, Fathah, 0.4)
	BehKasrah  = combo(Beh, Kasrah, 0.4)
	BehDammah  = combo(Beh, Dammah, 0.4)
	LamFathah  = combo(Lam, Fathah, 0.4)
	MeemFathah = combo(Meem, Fathah, 0.4)
	TehShaddah = combo(Teh, Shaddah, 0.8)

	LamAlef = catalog.Letter{
		ID: "lam_alef", Active: true, Kind: catalog.KindLetterVariation, Type: catalog.TypeConsonant,
		BaseLetter: "lam", Symbol: "alef", SunMoon: catalog.Sun,
		IsolatedUnicode: "FEFB", FinalUnicode: "FEFC", PhonemeSound: "laa", Complexity: 0.6,
	}
	AlefHamza = catalog.Letter{
		ID: "alef_hamza", Active: true, Kind: catalog.KindLetterVariation, Type: catalog.TypeLongVowel,
		BaseLetter: "alef", Symbol: "hamza", Tag: "AlefHamzaVariation", SunMoon: catalog.Moon,
		IsolatedUnicode: "0623", FinalUnicode: "FE84", PhonemeSound: "a", Complexity: 0.5,
	}
	Aw = catalog.Letter{
		ID: "aw", Active: true, Kind: catalog.KindDiphthong, Type: catalog.TypeOther,
		BaseLetter: "waw", Symbol: "fathah", IsolatedUnicode: "0648", FinalUnicode: "FEEE",
		PhonemeSound: "aw", Complexity: 0.9,
	}
)

// Letters returns the fixture letters in content order.
func Letters() []catalog.Letter {
	return []catalog.Letter{
		Alef, Beh, Teh, Theh, Jeem, Hah, Dal, Reh, Lam, Meem, Waw, Yeh, Hamza,
		Fathah, Dammah, Kasrah, Shaddah,
		AlefFathah, BehFathah, BehKasrah, BehDammah, LamFathah, MeemFathah, TehShaddah,
		LamAlef, AlefHamza, Aw,
	}
}

func word(id, arabic, category string, form catalog.WordForm, drawing string, cx float64) catalog.Word {
	return catalog.Word{
		ID: id, Active: true, Kind: "Noun", Category: category, Form: form,
		Arabic: arabic, ArabicNoShaddah: arabic, Drawing: drawing, Complexity: cx,
	}
}

// Words returns the fixture words. Arabic text is in logical order.
func Words() []catalog.Word {
	alBab := word("al_bab", "الباب", "Home", catalog.WordSingular, "E001", 0.5)
	alBab.Article = catalog.ArticleDeterminative
	return []catalog.Word{
		word("bab", "باب", "Home", catalog.WordSingular, "E001", 0.3),
		word("bait", "بيت", "Home", catalog.WordSingular, "E002", 0.3),
		word("buyut", "بيوت", "Home", catalog.WordPlural, "E002", 0.6),
		word("walad", "ولد", "Family", catalog.WordSingular, "E003", 0.4),
		word("jamal", "جمل", "Animals", catalog.WordSingular, "E004", 0.4),
		word("la", "لا", "Expressions", catalog.WordSingular, "", 0.2),
		word("ahmar", "أحمر", catalog.CategoryColor, catalog.WordSingular, "E005", 0.7),
		word("baab_tashkeel", "بَاب", "Home", catalog.WordSingular, "E001", 0.4),
		alBab,
		word("consonant", "صامت", "LetterType", catalog.WordSingular, "", 0),
		word("vowel", "صائت", "LetterType", catalog.WordSingular, "", 0),
	}
}

// Phrases returns the fixture phrases.
func Phrases() []catalog.Phrase {
	return []catalog.Phrase{
		{ID: "p_home", Active: true, Arabic: "باب بيت", English: "door house", Category: "Home",
			Words: []string{"bait", "bab"}, Linked: "p_answer", Complexity: 0.5},
		{ID: "p_answer", Active: true, Arabic: "جمل", English: "camel", Category: "Animals",
			Words: []string{"jamal"}, Answers: []string{"jamal"}, Complexity: 0.3},
		{ID: "p_family", Active: true, Arabic: "ولد", English: "boy", Category: "Family",
			Words: []string{"walad"}, Complexity: 0.3},
		{ID: "p_empty", Active: true, Arabic: "", English: "", Category: "Misc", Complexity: 0.1},
	}
}

// Content returns letters, words and phrases together.
func Content() catalog.Content {
	return catalog.Content{Letters: Letters(), Words: Words(), Phrases: Phrases()}
}

// Catalog builds the fixture catalog.
func Catalog() *catalog.Catalog {
	return catalog.MustNew(Content())
}
