// Package content loads content packs: the letters, words, phrases and play
// sessions the catalog and journey are built from.
package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/japaniel/alifba/pkg/catalog"
	"github.com/japaniel/alifba/pkg/journey"
)

// ErrEmptyPack is returned when a file holds no content at all.
var ErrEmptyPack = errors.New("content: empty pack")

// Pack is a whole content pack as stored on disk.
type Pack struct {
	Letters      []catalog.Letter      `json:"letters"`
	Words        []catalog.Word        `json:"words"`
	Phrases      []catalog.Phrase      `json:"phrases"`
	PlaySessions []journey.PlaySession `json:"play_sessions"`
}

func (p *Pack) Empty() bool {
	return len(p.Letters) == 0 && len(p.Words) == 0 && len(p.Phrases) == 0 && len(p.PlaySessions) == 0
}

// Catalog validates the pack content and builds a catalog.
func (p *Pack) Catalog() (*catalog.Catalog, error) {
	return catalog.New(catalog.Content{Letters: p.Letters, Words: p.Words, Phrases: p.Phrases})
}

// Journey orders the play sessions.
func (p *Pack) Journey() (*journey.Journey, error) {
	return journey.New(p.PlaySessions)
}

// Per-table file names used by LoadDir.
const (
	LettersFile      = "letters.json"
	WordsFile        = "words.json"
	PhrasesFile      = "phrases.json"
	PlaySessionsFile = "play_sessions.json"
)

// Load reads a content pack from path. A directory is read with LoadDir;
// a file is read with LoadFile.
func Load(path string) (*Pack, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if st.IsDir() {
		return LoadDir(path)
	}
	return LoadFile(path)
}

// LoadFile reads a pack file. The file is either a pack object
// {"letters": [...], "words": [...], ...} or a bare array of letters.
func LoadFile(path string) (*Pack, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pack Pack
	dec := json.NewDecoder(f)
	if err := dec.Decode(&pack); err == nil && !pack.Empty() {
		return &pack, nil
	}

	// Reset and try as array [...]
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	var letters []catalog.Letter
	if err := json.NewDecoder(f).Decode(&letters); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if len(letters) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyPack)
	}
	return &Pack{Letters: letters}, nil
}

// LoadDir reads one array file per table. Missing files are empty tables;
// the letters file is required.
func LoadDir(dir string) (*Pack, error) {
	var pack Pack
	tables := []struct {
		name     string
		dst      interface{}
		required bool
	}{
		{LettersFile, &pack.Letters, true},
		{WordsFile, &pack.Words, false},
		{PhrasesFile, &pack.Phrases, false},
		{PlaySessionsFile, &pack.PlaySessions, false},
	}
	for _, t := range tables {
		b, err := os.ReadFile(filepath.Join(dir, t.name))
		if err != nil {
			if os.IsNotExist(err) && !t.required {
				continue
			}
			return nil, err
		}
		if err := json.Unmarshal(b, t.dst); err != nil {
			return nil, fmt.Errorf("decode %s: %w", t.name, err)
		}
	}
	if pack.Empty() {
		return nil, fmt.Errorf("%s: %w", dir, ErrEmptyPack)
	}
	return &pack, nil
}

// Write stores the pack as a single JSON file.
func Write(path string, p *Pack) error {
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
