package app

import (
	"fmt"
	"math/rand"
	"time"

	"clap-quiz/internal/domain"
)

// Session is one run of the quiz: the active question plus the running score.
// A Session is owned by a single caller and is not safe for concurrent use.
type Session struct {
	id   string
	bank domain.Bank
	rnd  *rand.Rand

	started bool
	current int
	correct int
	total   int
}

// SessionOption customizes a Session at construction.
type SessionOption func(*Session)

// WithRand sets the random source used to pick questions.
func WithRand(rnd *rand.Rand) SessionOption {
	return func(s *Session) { s.rnd = rnd }
}

// NewSession creates an idle session over bank. An empty bank is rejected.
func NewSession(id string, bank domain.Bank, opts ...SessionOption) (*Session, error) {
	if bank.Len() == 0 {
		return nil, fmt.Errorf("session %q: empty question bank: %w", id, domain.ErrInvalidConfiguration)
	}
	s := &Session{
		id:   id,
		bank: bank,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s, nil
}

func (s *Session) ID() string { return s.id }

func (s *Session) BankID() string { return s.bank.ID() }

// Start picks a random question and returns its prompt.
func (s *Session) Start() string {
	s.started = true
	s.next()
	return s.bank.At(s.current).Prompt
}

// CurrentPrompt returns the prompt of the active question.
func (s *Session) CurrentPrompt() (string, error) {
	if !s.started {
		return "", domain.ErrSessionNotStarted
	}
	return s.bank.At(s.current).Prompt, nil
}

// SubmitAnswer scores text against the active question. Blank input is ignored;
// otherwise a new question is drawn, possibly the same one again.
func (s *Session) SubmitAnswer(text string) (domain.Outcome, error) {
	if !s.started {
		return domain.OutcomeIgnored, domain.ErrSessionNotStarted
	}
	if text == "" {
		return domain.OutcomeIgnored, nil
	}

	s.total++
	outcome := domain.OutcomeIncorrect
	// Exact match: no trimming or case folding.
	if text == s.bank.At(s.current).Answer {
		s.correct++
		outcome = domain.OutcomeCorrect
	}
	s.next()
	return outcome, nil
}

// Score returns the running tally.
func (s *Session) Score() domain.Score {
	return domain.Score{Correct: s.correct, Total: s.total}
}

func (s *Session) next() {
	s.current = s.rnd.Intn(s.bank.Len())
}
