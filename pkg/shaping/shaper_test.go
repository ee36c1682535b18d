package shaping

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/japaniel/alifba/pkg/catalog/catalogtest"
)

func TestShapeWords(t *testing.T) {
	s := New(catalogtest.Catalog())

	cases := []struct {
		name, in, want string
	}{
		{"bab", "باب", "\uFE91\uFE8E\u0628"},
		{"jamal", "جمل", "\uFE9F\uFEE4\uFEDE"},
		{"walad", "ولد", "\u0648\uFEDF\uFEAA"},
		{"buyut", "بيوت", "\uFE91\uFEF4\uFEEE\u062A"},
		{"al_bab", "الباب", "\u0627\uFEDF\uFE92\uFE8E\u0628"},
		{"ahmar", "أحمر", "\u0623\uFEA3\uFEE4\uFEAE"},
		{"marks are transparent", "بَاب", "\uFE91\u064E\uFE8E\u0628"},
		{"tatweel joins", "بـ", "\uFE91\u0640"},
		{"space breaks", "ب ب", "\u0628\u0020\u0628"},
		{"unknown kept", "صب", "\u0635\u0628"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, s.Shape(tc.in))
		})
	}
}

func TestLamAlefLigature(t *testing.T) {
	s := New(catalogtest.Catalog())
	assert.Equal(t, "\uFEFB", s.Shape("لا"))
	assert.Equal(t, "\uFE91\uFEFC", s.Shape("بلا"))
	// marks between lam and alef follow the ligature
	assert.Equal(t, "\uFEFB\u064E", s.Shape("لَا"))
	// lam before a letter without a ligature shapes normally
	assert.Equal(t, "\uFEDF\uFE90", s.Shape("لب"))
}

func TestNormalizesComposedHamza(t *testing.T) {
	s := New(catalogtest.Catalog())
	// alef + combining hamza above composes to U+0623 under NFC
	assert.Equal(t, "\u0623", s.Shape("\u0627\u0654"))
}

func TestVisualReversesClusters(t *testing.T) {
	s := New(catalogtest.Catalog())
	assert.Equal(t, "\u0628\uFE8E\uFE91\u064E", s.Visual("بَاب"))
	assert.Equal(t, "\uFE90\uFE91"+"\n"+"\u062A", s.Visual("بب\nت"))
}
