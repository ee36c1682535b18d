package content

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/japaniel/alifba/pkg/db"
	"github.com/japaniel/alifba/pkg/logger"
)

// Stats counts what an import wrote.
type Stats struct {
	Letters      int
	Words        int
	Phrases      int
	PlaySessions int
}

func (s Stats) String() string {
	return fmt.Sprintf("%d letters, %d words, %d phrases, %d play sessions", s.Letters, s.Words, s.Phrases, s.PlaySessions)
}

// Importer writes content packs into the database.
type Importer struct {
	conn *sql.DB
	log  *logger.Logger
}

func NewImporter(conn *sql.DB, log *logger.Logger) *Importer {
	return &Importer{conn: conn, log: logger.OrNop(log)}
}

// Import validates the pack and stores it in one transaction. Records
// already stored under the same id are replaced.
func (im *Importer) Import(ctx context.Context, p *Pack) (Stats, error) {
	var st Stats
	if _, err := p.Catalog(); err != nil {
		return st, fmt.Errorf("invalid content: %w", err)
	}
	if _, err := p.Journey(); err != nil {
		return st, fmt.Errorf("invalid journey: %w", err)
	}

	tx, err := im.conn.BeginTx(ctx, nil)
	if err != nil {
		return st, fmt.Errorf("begin import: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // ignored if committed
	}()

	for i := range p.Letters {
		if err := db.SaveLetter(tx, &p.Letters[i], i); err != nil {
			return Stats{}, err
		}
		st.Letters++
	}
	for i := range p.Words {
		if err := db.SaveWord(tx, &p.Words[i], i); err != nil {
			return Stats{}, err
		}
		st.Words++
	}
	for i := range p.Phrases {
		if err := db.SavePhrase(tx, &p.Phrases[i], i); err != nil {
			return Stats{}, err
		}
		st.Phrases++
	}
	for i := range p.PlaySessions {
		if err := db.SavePlaySession(tx, &p.PlaySessions[i]); err != nil {
			return Stats{}, err
		}
		st.PlaySessions++
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit import: %w", err)
	}
	im.log.Info("content imported", "letters", st.Letters, "words", st.Words, "phrases", st.Phrases, "play_sessions", st.PlaySessions)
	return st, nil
}

// FromDB reads the stored content back as a pack.
func FromDB(conn db.DBExecutor) (*Pack, error) {
	c, err := db.LoadContent(conn)
	if err != nil {
		return nil, err
	}
	sessions, err := db.LoadPlaySessions(conn)
	if err != nil {
		return nil, err
	}
	p := &Pack{Letters: c.Letters, Words: c.Words, Phrases: c.Phrases, PlaySessions: sessions}
	if p.Empty() {
		return nil, ErrEmptyPack
	}
	return p, nil
}
