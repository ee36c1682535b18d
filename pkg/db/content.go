package db

import (
	"encoding/json"
	"fmt"

	"github.com/japaniel/alifba/pkg/catalog"
	"github.com/japaniel/alifba/pkg/journey"
)

// SaveLetter inserts or replaces a letter. pos keeps content order.
func SaveLetter(db DBExecutor, l *catalog.Letter, pos int) error {
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode letter %s: %w", l.ID, err)
	}
	_, err = db.Exec(
		`INSERT INTO letters (id, kind, base_letter, symbol, letter_type, sun_moon, isolated_unicode, data, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   kind = excluded.kind, base_letter = excluded.base_letter, symbol = excluded.symbol,
		   letter_type = excluded.letter_type, sun_moon = excluded.sun_moon,
		   isolated_unicode = excluded.isolated_unicode, data = excluded.data, position = excluded.position`,
		l.ID, l.Kind.String(), nullableString(l.BaseLetter), nullableString(l.Symbol),
		l.Type.String(), l.SunMoon.String(), nullableString(l.IsolatedUnicode), string(data), pos,
	)
	if err != nil {
		return fmt.Errorf("upsert letter %s: %w", l.ID, err)
	}
	return nil
}

func SaveWord(db DBExecutor, w *catalog.Word, pos int) error {
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encode word %s: %w", w.ID, err)
	}
	_, err = db.Exec(
		`INSERT INTO words (id, arabic, category, drawing, data, position)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   arabic = excluded.arabic, category = excluded.category, drawing = excluded.drawing,
		   data = excluded.data, position = excluded.position`,
		w.ID, w.Arabic, nullableString(w.Category), nullableString(w.Drawing), string(data), pos,
	)
	if err != nil {
		return fmt.Errorf("upsert word %s: %w", w.ID, err)
	}
	return nil
}

func SavePhrase(db DBExecutor, p *catalog.Phrase, pos int) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode phrase %s: %w", p.ID, err)
	}
	_, err = db.Exec(
		`INSERT INTO phrases (id, arabic, category, linked, data, position)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   arabic = excluded.arabic, category = excluded.category, linked = excluded.linked,
		   data = excluded.data, position = excluded.position`,
		p.ID, nullableString(p.Arabic), nullableString(p.Category), nullableString(p.Linked), string(data), pos,
	)
	if err != nil {
		return fmt.Errorf("upsert phrase %s: %w", p.ID, err)
	}
	return nil
}

func SavePlaySession(db DBExecutor, s *journey.PlaySession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode play session %s: %w", s.Position, err)
	}
	_, err = db.Exec(
		`INSERT INTO play_sessions (position, stage, learning_block, play_session, session_type, data)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(position) DO UPDATE SET session_type = excluded.session_type, data = excluded.data`,
		s.Position.String(), s.Position.Stage, s.Position.LearningBlock, s.Position.PlaySession,
		nullableString(s.Type), string(data),
	)
	if err != nil {
		return fmt.Errorf("upsert play session %s: %w", s.Position, err)
	}
	return nil
}

// LoadContent reads every stored letter, word and phrase back in content
// order.
func LoadContent(db DBExecutor) (catalog.Content, error) {
	var c catalog.Content
	err := scanData(db, `SELECT data FROM letters ORDER BY position, id`, func(b []byte) error {
		var l catalog.Letter
		if err := json.Unmarshal(b, &l); err != nil {
			return err
		}
		c.Letters = append(c.Letters, l)
		return nil
	})
	if err != nil {
		return c, fmt.Errorf("load letters: %w", err)
	}
	err = scanData(db, `SELECT data FROM words ORDER BY position, id`, func(b []byte) error {
		var w catalog.Word
		if err := json.Unmarshal(b, &w); err != nil {
			return err
		}
		c.Words = append(c.Words, w)
		return nil
	})
	if err != nil {
		return c, fmt.Errorf("load words: %w", err)
	}
	err = scanData(db, `SELECT data FROM phrases ORDER BY position, id`, func(b []byte) error {
		var p catalog.Phrase
		if err := json.Unmarshal(b, &p); err != nil {
			return err
		}
		c.Phrases = append(c.Phrases, p)
		return nil
	})
	if err != nil {
		return c, fmt.Errorf("load phrases: %w", err)
	}
	return c, nil
}

// LoadPlaySessions returns the stored sessions in journey order.
func LoadPlaySessions(db DBExecutor) ([]journey.PlaySession, error) {
	var out []journey.PlaySession
	err := scanData(db, `SELECT data FROM play_sessions ORDER BY stage, learning_block, play_session`, func(b []byte) error {
		var s journey.PlaySession
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		out = append(out, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load play sessions: %w", err)
	}
	return out, nil
}

func scanData(db DBExecutor, query string, fn func([]byte) error) error {
	rows, err := db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return err
		}
		if err := fn([]byte(data)); err != nil {
			return err
		}
	}
	return rows.Err()
}
