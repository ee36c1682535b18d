package journey

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/japaniel/alifba/pkg/catalog"
	"github.com/japaniel/alifba/pkg/catalog/catalogtest"
)

func pos(t *testing.T, s string) Position {
	t.Helper()
	p, err := ParsePosition(s)
	require.NoError(t, err)
	return p
}

func TestParsePosition(t *testing.T) {
	p := pos(t, "2.10.3")
	assert.Equal(t, Position{Stage: 2, LearningBlock: 10, PlaySession: 3}, p)
	assert.Equal(t, "2.10.3", p.String())

	for _, bad := range []string{"", "1.2", "1.2.x", "1.-2.3", "1.2.3.4"} {
		_, err := ParsePosition(bad)
		assert.ErrorIs(t, err, ErrBadPosition, bad)
	}
}

func TestPositionCompare(t *testing.T) {
	assert.Equal(t, -1, pos(t, "1.2.3").Compare(pos(t, "1.10.1")))
	assert.Equal(t, 1, pos(t, "2.1.1").Compare(pos(t, "1.9.9")))
	assert.Equal(t, 0, pos(t, "1.1.1").Compare(pos(t, "1.1.1")))
	assert.Equal(t, -1, pos(t, "1.1.1").Compare(pos(t, "1.1.2")))
}

func sessions() []PlaySession {
	return []PlaySession{
		{Position: Position{1, 1, 2}, Letters: []string{"teh"}, Words: []string{"bait"}, Phrases: []string{"p_home"}},
		{Position: Position{1, 1, 1}, Letters: []string{"alef", "beh"}, Words: []string{"bab"}},
		{Position: Position{1, 2, 1}, Type: "Assessment", WordsPrevious: []string{"bab"}, Letters: []string{"jeem"}},
	}
}

func TestJourneyOrderingAndGate(t *testing.T) {
	j, err := New(sessions())
	require.NoError(t, err)
	assert.Equal(t, "1.1.1", j.Sessions()[0].Position.String())

	s, ok := j.Session(Position{1, 2, 1})
	require.True(t, ok)
	assert.True(t, s.IsAssessment())
	_, ok = j.Session(Position{3, 1, 1})
	assert.False(t, ok)

	g := j.Gate(Position{1, 1, 2})
	beh, _ := catalogtest.Catalog().Letter("beh")
	jeem, _ := catalogtest.Catalog().Letter("jeem")
	assert.True(t, g.Unlocked(catalog.RefWithForm(beh, catalog.FormFinal)))
	assert.False(t, g.Unlocked(catalog.Ref(jeem)))
	assert.True(t, g.Unlocked(&catalog.Word{ID: "bait"}))
	assert.True(t, g.Unlocked(&catalog.Phrase{ID: "p_home"}))

	assert.Len(t, j.Unlocked(Position{9, 9, 9}), 7)
	assert.Empty(t, j.Unlocked(Position{0, 0, 0}))
}

func TestJourneyDuplicatePosition(t *testing.T) {
	_, err := New(append(sessions(), PlaySession{Position: Position{1, 1, 1}}))
	assert.ErrorIs(t, err, ErrDuplicatePosition)
}

func TestJourneyValidate(t *testing.T) {
	cat := catalogtest.Catalog()
	j, err := New(sessions())
	require.NoError(t, err)
	require.NoError(t, j.Validate(cat))

	bad, err := New([]PlaySession{{
		Position: Position{1, 1, 1},
		Letters:  []string{"zain"},
		Words:    []string{"nope"},
		Phrases:  []string{"p_nope"},
	}})
	require.NoError(t, err)
	err = bad.Validate(cat)
	assert.ErrorIs(t, err, ErrUnknownContent)
	assert.Len(t, multierr.Errors(err), 3)
}

func TestPlaySessionJSON(t *testing.T) {
	var s PlaySession
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1.2.3","letters":["alef"],"minigames":{"Tobogan":2}}`), &s))
	assert.Equal(t, Position{1, 2, 3}, s.Position)
	assert.Equal(t, 2, s.Minigames["Tobogan"])

	assert.Error(t, json.Unmarshal([]byte(`{"id":"x"}`), &s))
}
