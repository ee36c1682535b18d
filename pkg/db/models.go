package db

import "time"

// Source is an analyzed text, usually a web article.
type Source struct {
	ID         int64
	ExternalID string
	SourceType string
	Title      string
	Author     string
	Website    string
	URL        string
	// LastProcessed is the index of the last sentence whose counts were
	// committed, or -1.
	LastProcessed int
	AddedAt       time.Time
}

// LetterCount is how often a letter was seen in a source, per form.
type LetterCount struct {
	LetterID string
	Form     string
	Count    int
}

// SourceWord is an Arabic word seen in a source. CatalogWordID is set when
// the word matches a catalog word.
type SourceWord struct {
	Word          string
	CatalogWordID string
	Count         int
	FirstSentence string
}
