package domain

import (
	"fmt"
	"strings"
)

// Question is a single prompt with its one accepted answer.
type Question struct {
	Prompt string `json:"prompt" yaml:"prompt" validate:"required"`
	Answer string `json:"answer" yaml:"answer" validate:"required"`
}

// Bank is an immutable, ordered collection of questions.
type Bank struct {
	id        string
	questions []Question
}

// NewBank validates and copies questions into a Bank.
func NewBank(id string, questions []Question) (Bank, error) {
	if len(questions) == 0 {
		return Bank{}, fmt.Errorf("bank %q has no questions: %w", id, ErrInvalidConfiguration)
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Prompt) == "" {
			return Bank{}, fmt.Errorf("bank %q question %d has a blank prompt: %w", id, i, ErrInvalidConfiguration)
		}
		// Blank input is ignored, so an empty answer could never be scored.
		if q.Answer == "" {
			return Bank{}, fmt.Errorf("bank %q question %d has no answer: %w", id, i, ErrInvalidConfiguration)
		}
	}
	cp := make([]Question, len(questions))
	copy(cp, questions)
	return Bank{id: id, questions: cp}, nil
}

func (b Bank) ID() string { return b.id }

func (b Bank) Len() int { return len(b.questions) }

// At returns the question at index i. It panics on out-of-range indexes like a slice would.
func (b Bank) At(i int) Question { return b.questions[i] }

// Questions returns a copy of the bank contents.
func (b Bank) Questions() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Outcome is the result of submitting an answer.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeCorrect
	OutcomeIncorrect
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeIncorrect:
		return "incorrect"
	default:
		return "ignored"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Score is the running tally of a session. Total is always >= Correct.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Message renders the score the way the session-end notification shows it.
func (s Score) Message() string {
	return fmt.Sprintf("%d correct answers out of %d", s.Correct, s.Total)
}

// AnswerResult summarizes a submission for transports.
type AnswerResult struct {
	Outcome Outcome `json:"outcome"`
	Score   Score   `json:"score"`
	Prompt  string  `json:"prompt"`
}
