package db

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// Ensure single connection to avoid separate in-memory DBs per connection.
	db.SetMaxOpenConns(1)
	if err := InitDB(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestCreateOrGetSource(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	id1, err := CreateOrGetSource(db, "website_article", "", "", "example.com", "https://example.com/a")
	if err != nil {
		t.Fatalf("create source: %v", err)
	}
	id2, err := CreateOrGetSource(db, "website_article", "", "", "example.com", "https://example.com/a")
	if err != nil {
		t.Fatalf("get source: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("expected same source id, got %d and %d", id1, id2)
	}

	src, err := GetSource(db, id1)
	if err != nil {
		t.Fatalf("get source: %v", err)
	}
	if _, err := uuid.Parse(src.ExternalID); err != nil {
		t.Fatalf("external id %q is not a uuid: %v", src.ExternalID, err)
	}
	if src.LastProcessed != -1 {
		t.Fatalf("expected no progress, got %d", src.LastProcessed)
	}
	if src.URL != "https://example.com/a" || src.Website != "example.com" {
		t.Fatalf("unexpected source %+v", src)
	}

	if _, err := CreateOrGetSource(db, " ", "", "", "", ""); err == nil {
		t.Fatalf("expected error for empty source type")
	}
}

func TestSourcesWithoutURL(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	a, err := CreateOrGetSource(db, "file", "first", "", "", "")
	if err != nil {
		t.Fatalf("create source: %v", err)
	}
	b, err := CreateOrGetSource(db, "file", "second", "", "", "")
	if err != nil {
		t.Fatalf("create source: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct sources, both got id %d", a)
	}
	list, err := ListSources(db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != b {
		t.Fatalf("expected newest source first, got %+v", list)
	}
}

func TestLetterCounts(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	sID, err := CreateOrGetSource(db, "website_article", "", "", "example.com", "https://example.com/b")
	if err != nil {
		t.Fatalf("create source: %v", err)
	}
	steps := []struct {
		letter, form string
		n            int
	}{
		{"beh", "Initial", 2},
		{"beh", "Initial", 3},
		{"beh", "Final", 1},
		{"alef", "Final", 4},
	}
	for _, s := range steps {
		if err := AddLetterCount(db, sID, s.letter, s.form, s.n); err != nil {
			t.Fatalf("add count: %v", err)
		}
	}

	counts, err := GetLetterCounts(db, sID)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	want := []LetterCount{
		{"beh", "Initial", 5},
		{"alef", "Final", 4},
		{"beh", "Final", 1},
	}
	if len(counts) != len(want) {
		t.Fatalf("expected %d counts, got %+v", len(want), counts)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("count %d: expected %+v, got %+v", i, want[i], counts[i])
		}
	}

	if err := AddLetterCount(db, sID, "beh", "Initial", 0); err == nil {
		t.Fatalf("expected error for zero count")
	}
	if err := AddLetterCount(db, 0, "beh", "Initial", 1); err == nil {
		t.Fatalf("expected error for missing source")
	}
}

func TestSourceWords(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	sID, err := CreateOrGetSource(db, "website_article", "", "", "", "https://example.com/w")
	if err != nil {
		t.Fatalf("create source: %v", err)
	}
	if err := AddSourceWord(db, sID, "باب", "", "first sentence", 1); err != nil {
		t.Fatalf("add word: %v", err)
	}
	if err := AddSourceWord(db, sID, "باب", "bab", "second sentence", 2); err != nil {
		t.Fatalf("add word: %v", err)
	}
	words, err := GetSourceWords(db, sID)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(words) != 1 {
		t.Fatalf("expected 1 word, got %d", len(words))
	}
	w := words[0]
	if w.Count != 3 || w.CatalogWordID != "bab" || w.FirstSentence != "first sentence" {
		t.Fatalf("unexpected word %+v", w)
	}
}

func TestProgressAndReset(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	sID, err := CreateOrGetSource(db, "website_article", "t", "", "", "https://example.com/p")
	if err != nil {
		t.Fatalf("create source: %v", err)
	}
	if err := UpdateSourceProgress(db, sID, 7); err != nil {
		t.Fatalf("update progress: %v", err)
	}
	if err := AddLetterCount(db, sID, "beh", "Isolated", 1); err != nil {
		t.Fatalf("add count: %v", err)
	}
	last, err := GetSourceProgress(db, sID)
	if err != nil || last != 7 {
		t.Fatalf("expected progress 7, got %d (%v)", last, err)
	}

	if err := ResetSource(db, sID); err != nil {
		t.Fatalf("reset: %v", err)
	}
	last, err = GetSourceProgress(db, sID)
	if err != nil || last != -1 {
		t.Fatalf("expected progress -1 after reset, got %d (%v)", last, err)
	}
	counts, err := GetLetterCounts(db, sID)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(counts) != 0 {
		t.Fatalf("expected counts cleared, got %+v", counts)
	}

	if _, err := GetSourceProgress(db, 999); err == nil {
		t.Fatalf("expected error for unknown source")
	}
}

func TestCreateOrGetSourceConcurrency(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	const n = 8
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		go func() {
			id, err := CreateOrGetSource(db, "website_article", "Title", "Author", "example.com", "https://example.com/c")
			if err != nil {
				t.Errorf("create or get source: %v", err)
				ids <- 0
				return
			}
			ids <- id
		}()
	}
	var first int64
	for i := 0; i < n; i++ {
		id := <-ids
		if id == 0 {
			t.Fatalf("error in goroutine")
		}
		if i == 0 {
			first = id
		}
		if id != first {
			t.Fatalf("expected same id, got %d and %d", first, id)
		}
	}
	var cnt int
	err := db.QueryRow(`SELECT COUNT(*) FROM sources WHERE url = ?`, "https://example.com/c").Scan(&cnt)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if cnt != 1 {
		t.Fatalf("expected 1 source row, got %d", cnt)
	}
}
