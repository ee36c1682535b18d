package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// isUniqueConstraintErr returns true when the error indicates a unique/constraint violation
func isUniqueConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "unique") || strings.Contains(s, "constraint failed")
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// CreateOrGetSource returns existing source id or inserts a new source and returns its id.
// New sources get a random external id that stays stable across databases.
func CreateOrGetSource(db DBExecutor, sourceType, title, author, website, url string) (int64, error) {
	trimmedSourceType := strings.TrimSpace(sourceType)
	if trimmedSourceType == "" {
		return 0, fmt.Errorf("sourceType must be non-empty")
	}

	const maxRetries = 3

	var id int64
	for attempt := 0; attempt < maxRetries; attempt++ {
		err := db.QueryRow(
			`SELECT id FROM sources WHERE IFNULL(url, '') = ? AND IFNULL(title, '') = ? AND IFNULL(author, '') = ?`,
			url, title, author,
		).Scan(&id)
		if err == nil {
			return id, nil
		}
		if err != sql.ErrNoRows {
			return 0, err
		}

		res, err := db.Exec(
			`INSERT INTO sources (external_id, source_type, title, author, website, url) VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), trimmedSourceType, title, author, website, nullableString(url),
		)
		if err != nil {
			// another writer inserted the same source; select it again
			if isUniqueConstraintErr(err) {
				continue
			}
			return 0, err
		}
		return res.LastInsertId()
	}

	return 0, fmt.Errorf("could not create or get source after %d retries", maxRetries)
}

// GetSource loads a source by id.
func GetSource(db DBExecutor, id int64) (*Source, error) {
	var s Source
	var title, author, website, url sql.NullString
	var added sql.NullTime
	err := db.QueryRow(
		`SELECT id, external_id, source_type, title, author, website, url, last_processed_sentence, added_at
		 FROM sources WHERE id = ?`, id,
	).Scan(&s.ID, &s.ExternalID, &s.SourceType, &title, &author, &website, &url, &s.LastProcessed, &added)
	if err != nil {
		return nil, fmt.Errorf("get source %d: %w", id, err)
	}
	s.Title, s.Author, s.Website, s.URL = title.String, author.String, website.String, url.String
	if added.Valid {
		s.AddedAt = added.Time
	}
	return &s, nil
}

// ListSources returns every source, newest first.
func ListSources(db DBExecutor) ([]Source, error) {
	rows, err := db.Query(`SELECT id FROM sources ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	out := make([]Source, 0, len(ids))
	for _, id := range ids {
		s, err := GetSource(db, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, nil
}

// AddLetterCount adds n occurrences of the letter in the given form to the
// source totals.
func AddLetterCount(db DBExecutor, sourceID int64, letterID, form string, n int) error {
	if sourceID <= 0 {
		return fmt.Errorf("sourceID must be positive")
	}
	if strings.TrimSpace(letterID) == "" {
		return fmt.Errorf("letterID must be non-empty")
	}
	if n < 1 {
		return fmt.Errorf("count must be positive, got %d", n)
	}
	_, err := db.Exec(
		`INSERT INTO letter_counts (source_id, letter_id, form, occurrence_count)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(source_id, letter_id, form)
		 DO UPDATE SET occurrence_count = letter_counts.occurrence_count + excluded.occurrence_count`,
		sourceID, letterID, form, n,
	)
	if err != nil {
		return fmt.Errorf("upsert letter count: %w", err)
	}
	return nil
}

// AddSourceWord adds n occurrences of word to the source. The first
// sentence the word was seen in is kept.
func AddSourceWord(db DBExecutor, sourceID int64, word, catalogWordID, sentence string, n int) error {
	trimmed := strings.TrimSpace(word)
	if trimmed == "" {
		return fmt.Errorf("word must be non-empty")
	}
	if n < 1 {
		return fmt.Errorf("count must be positive, got %d", n)
	}
	_, err := db.Exec(
		`INSERT INTO source_words (source_id, word, catalog_word_id, occurrence_count, first_sentence)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(source_id, word)
		 DO UPDATE SET
		   occurrence_count = source_words.occurrence_count + excluded.occurrence_count,
		   catalog_word_id = COALESCE(source_words.catalog_word_id, excluded.catalog_word_id)`,
		sourceID, trimmed, nullableString(catalogWordID), n, nullableString(strings.TrimSpace(sentence)),
	)
	if err != nil {
		return fmt.Errorf("upsert source word: %w", err)
	}
	return nil
}

// GetLetterCounts returns the letter totals of a source, most frequent first.
func GetLetterCounts(db DBExecutor, sourceID int64) ([]LetterCount, error) {
	rows, err := db.Query(
		`SELECT letter_id, form, occurrence_count FROM letter_counts
		 WHERE source_id = ? ORDER BY occurrence_count DESC, letter_id, form`, sourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LetterCount
	for rows.Next() {
		var c LetterCount
		if err := rows.Scan(&c.LetterID, &c.Form, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetSourceWords returns the words seen in a source, most frequent first.
func GetSourceWords(db DBExecutor, sourceID int64) ([]SourceWord, error) {
	rows, err := db.Query(
		`SELECT word, catalog_word_id, occurrence_count, first_sentence FROM source_words
		 WHERE source_id = ? ORDER BY occurrence_count DESC, word`, sourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SourceWord
	for rows.Next() {
		var w SourceWord
		var catalogID, sentence sql.NullString
		if err := rows.Scan(&w.Word, &catalogID, &w.Count, &sentence); err != nil {
			return nil, err
		}
		w.CatalogWordID = catalogID.String
		w.FirstSentence = sentence.String
		out = append(out, w)
	}
	return out, rows.Err()
}

// GetSourceProgress returns the index of the last processed sentence for a source.
// Returns -1 if no progress is recorded.
func GetSourceProgress(db DBExecutor, sourceID int64) (int, error) {
	var last int
	err := db.QueryRow(`SELECT last_processed_sentence FROM sources WHERE id = ?`, sourceID).Scan(&last)
	if err != nil {
		return -1, err
	}
	return last, nil
}

// UpdateSourceProgress updates the last processed sentence index for a source.
func UpdateSourceProgress(db DBExecutor, sourceID int64, lastIndex int) error {
	_, err := db.Exec(`UPDATE sources SET last_processed_sentence = ? WHERE id = ?`, lastIndex, sourceID)
	return err
}

// ResetSource drops the analysis results of a source so it can be processed
// again from the start.
func ResetSource(db DBExecutor, sourceID int64) error {
	for _, q := range []string{
		`DELETE FROM letter_counts WHERE source_id = ?`,
		`DELETE FROM source_words WHERE source_id = ?`,
		`UPDATE sources SET last_processed_sentence = -1 WHERE id = ?`,
	} {
		if _, err := db.Exec(q, sourceID); err != nil {
			return fmt.Errorf("reset source %d: %w", sourceID, err)
		}
	}
	return nil
}
