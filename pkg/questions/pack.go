// Package questions builds question packs for minigames: a question, the
// correct answers and the wrong answers, drawn from the vocabulary.
package questions

import (
	"fmt"
	"strings"

	"github.com/japaniel/alifba/pkg/catalog"
)

// QuestionPack is one question of a minigame round. It never changes after
// construction.
type QuestionPack struct {
	questions []catalog.Data
	correct   []catalog.Data
	wrong     []catalog.Data
}

// NewPack builds a pack with a single question; q may be nil.
func NewPack(q catalog.Data, correct, wrong []catalog.Data) QuestionPack {
	var qs []catalog.Data
	if q != nil {
		qs = []catalog.Data{q}
	}
	return NewMultiPack(qs, correct, wrong)
}

// NewMultiPack builds a pack whose question is a group of items, such as the
// words sharing a letter.
func NewMultiPack(questions, correct, wrong []catalog.Data) QuestionPack {
	return QuestionPack{
		questions: clone(questions),
		correct:   clone(correct),
		wrong:     clone(wrong),
	}
}

func clone(in []catalog.Data) []catalog.Data {
	if len(in) == 0 {
		return nil
	}
	out := make([]catalog.Data, len(in))
	copy(out, in)
	return out
}

// Question returns the first question item, or nil.
func (p QuestionPack) Question() catalog.Data {
	if len(p.questions) == 0 {
		return nil
	}
	return p.questions[0]
}

func (p QuestionPack) Questions() []catalog.Data { return clone(p.questions) }
func (p QuestionPack) Correct() []catalog.Data   { return clone(p.correct) }
func (p QuestionPack) Wrong() []catalog.Data     { return clone(p.wrong) }

// Difficulty averages the intrinsic difficulty of the questions and the
// correct answers.
func (p QuestionPack) Difficulty() float64 {
	items := append(clone(p.questions), p.correct...)
	if len(items) == 0 {
		return 0
	}
	var sum float64
	for _, d := range items {
		sum += d.IntrinsicDifficulty()
	}
	return sum / float64(len(items))
}

// Report renders the pack for the debug log.
func (p QuestionPack) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "question: %s", join(p.questions))
	fmt.Fprintf(&b, "; correct(%d): %s", len(p.correct), join(p.correct))
	fmt.Fprintf(&b, "; wrong(%d): %s", len(p.wrong), join(p.wrong))
	return b.String()
}

func join(items []catalog.Data) string {
	if len(items) == 0 {
		return "-"
	}
	parts := make([]string, len(items))
	for i, d := range items {
		parts[i] = d.DataID()
		if s, ok := d.(fmt.Stringer); ok {
			parts[i] = s.String()
		}
	}
	return strings.Join(parts, " ")
}

// Items widens a typed slice to pack items.
func Items[T catalog.Data](in []T) []catalog.Data {
	out := make([]catalog.Data, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
