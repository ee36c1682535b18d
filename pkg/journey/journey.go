// Package journey models the learning path: play sessions ordered by
// position, and the content each one unlocks.
package journey

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/japaniel/alifba/pkg/catalog"
	"github.com/japaniel/alifba/pkg/selection"
)

var (
	ErrBadPosition       = errors.New("journey: bad position")
	ErrDuplicatePosition = errors.New("journey: duplicate position")
	ErrUnknownContent    = errors.New("journey: unknown content")
)

// Position is a point in the journey, written stage.learningBlock.playSession.
type Position struct {
	Stage         int
	LearningBlock int
	PlaySession   int
}

func ParsePosition(s string) (Position, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Position{}, fmt.Errorf("%w: %q", ErrBadPosition, s)
	}
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return Position{}, fmt.Errorf("%w: %q", ErrBadPosition, s)
		}
		n[i] = v
	}
	return Position{Stage: n[0], LearningBlock: n[1], PlaySession: n[2]}, nil
}

func (p Position) String() string {
	return fmt.Sprintf("%d.%d.%d", p.Stage, p.LearningBlock, p.PlaySession)
}

// Compare returns -1, 0 or 1 as p is before, equal to or after o.
func (p Position) Compare(o Position) int {
	switch {
	case p.Stage != o.Stage:
		return sign(p.Stage - o.Stage)
	case p.LearningBlock != o.LearningBlock:
		return sign(p.LearningBlock - o.LearningBlock)
	}
	return sign(p.PlaySession - o.PlaySession)
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func (p Position) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Position) UnmarshalText(b []byte) error {
	v, err := ParsePosition(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// PlaySession lists what a session introduces. The *Previous lists name
// content revised from earlier sessions.
type PlaySession struct {
	Position        Position       `json:"id"`
	Type            string         `json:"type"`
	Letters         []string       `json:"letters"`
	Words           []string       `json:"words"`
	WordsPrevious   []string       `json:"words_previous"`
	Phrases         []string       `json:"phrases"`
	PhrasesPrevious []string       `json:"phrases_previous"`
	Minigames       map[string]int `json:"minigames"`
	Rounds          int            `json:"rounds"`
}

// IsAssessment reports whether the session is an assessment rather than a
// minigame session.
func (s *PlaySession) IsAssessment() bool { return s.Type == "Assessment" }

func (s *PlaySession) contentIDs() []string {
	var ids []string
	for _, list := range [][]string{s.Letters, s.Words, s.WordsPrevious, s.Phrases, s.PhrasesPrevious} {
		ids = append(ids, list...)
	}
	return ids
}

// Journey is the ordered list of play sessions.
type Journey struct {
	sessions []PlaySession
}

// New sorts the sessions by position and rejects duplicates.
func New(sessions []PlaySession) (*Journey, error) {
	sorted := make([]PlaySession, len(sessions))
	copy(sorted, sessions)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position.Compare(sorted[j].Position) < 0 })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Position == sorted[i-1].Position {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePosition, sorted[i].Position)
		}
	}
	return &Journey{sessions: sorted}, nil
}

func (j *Journey) Sessions() []PlaySession { return j.sessions }

func (j *Journey) Session(p Position) (*PlaySession, bool) {
	i := sort.Search(len(j.sessions), func(i int) bool { return j.sessions[i].Position.Compare(p) >= 0 })
	if i < len(j.sessions) && j.sessions[i].Position == p {
		return &j.sessions[i], true
	}
	return nil, false
}

// Unlocked returns the ids of all content introduced up to and including p.
func (j *Journey) Unlocked(p Position) map[string]struct{} {
	ids := make(map[string]struct{})
	for i := range j.sessions {
		if j.sessions[i].Position.Compare(p) > 0 {
			break
		}
		for _, id := range j.sessions[i].contentIDs() {
			ids[id] = struct{}{}
		}
	}
	return ids
}

// Gate builds a selection gate unlocking content up to p. Letter variants
// in a specific form are matched by letter id.
func (j *Journey) Gate(p Position) selection.Gate {
	ids := j.Unlocked(p)
	return selection.GateFunc(func(d catalog.Data) bool {
		_, ok := ids[d.DataID()]
		return ok
	})
}

// Validate reports every session entry that names content missing from cat.
func (j *Journey) Validate(cat *catalog.Catalog) error {
	var err error
	for _, s := range j.sessions {
		for _, id := range s.Letters {
			if _, ok := cat.Letter(id); !ok {
				err = multierr.Append(err, fmt.Errorf("session %s letter %q: %w", s.Position, id, ErrUnknownContent))
			}
		}
		for _, id := range append(append([]string{}, s.Words...), s.WordsPrevious...) {
			if _, ok := cat.Word(id); !ok {
				err = multierr.Append(err, fmt.Errorf("session %s word %q: %w", s.Position, id, ErrUnknownContent))
			}
		}
		for _, id := range append(append([]string{}, s.Phrases...), s.PhrasesPrevious...) {
			if _, ok := cat.Phrase(id); !ok {
				err = multierr.Append(err, fmt.Errorf("session %s phrase %q: %w", s.Position, id, ErrUnknownContent))
			}
		}
	}
	return err
}
