package app

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"clap-quiz/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SessionRepository abstracts how live quiz sessions are held (in-memory, Redis, etc).
type SessionRepository interface {
	Create(sessionID string, session *Session) error
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// BankRepository loads question banks (from cache/backing store).
type BankRepository interface {
	GetBank(ctx context.Context, bankID string) (domain.Bank, error)
}

// ScoreReporter receives the final score when a session ends.
type ScoreReporter interface {
	Report(ctx context.Context, sessionID string, score domain.Score) error
}

// ReporterFunc adapts a plain function to ScoreReporter.
type ReporterFunc func(ctx context.Context, sessionID string, score domain.Score) error

func (f ReporterFunc) Report(ctx context.Context, sessionID string, score domain.Score) error {
	return f(ctx, sessionID, score)
}

// QuizService hosts quiz sessions for the transports.
// Calls are serialized so each Session keeps a single owner.
type QuizService struct {
	sessions SessionRepository
	banks    BankRepository
	reporter ScoreReporter
	log      zerolog.Logger

	mu   sync.Mutex
	seed *rand.Rand
}

func NewQuizService(store SessionRepository, banks BankRepository, reporter ScoreReporter, log zerolog.Logger) *QuizService {
	return &QuizService{
		sessions: store,
		banks:    banks,
		reporter: reporter,
		log:      log.With().Str("component", "quiz_service").Logger(),
		seed:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// StartNew starts a session under a generated ID.
func (s *QuizService) StartNew(ctx context.Context, bankID string) (string, string, error) {
	sessionID := uuid.NewString()
	prompt, err := s.Start(ctx, sessionID, bankID)
	if err != nil {
		return "", "", err
	}
	return sessionID, prompt, nil
}

// Start creates a session over the given bank and returns its first prompt.
func (s *QuizService) Start(ctx context.Context, sessionID, bankID string) (string, error) {
	if bankID == "" {
		bankID = domain.DefaultBankID
	}
	bank, err := s.banks.GetBank(ctx, bankID)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := NewSession(sessionID, bank, WithRand(rand.New(rand.NewSource(s.seed.Int63()))))
	if err != nil {
		return "", err
	}
	if err := s.sessions.Create(sessionID, session); err != nil {
		return "", err
	}
	prompt := session.Start()
	s.log.Debug().Str("session_id", sessionID).Str("bank_id", bankID).Msg("session started")
	return prompt, nil
}

// CurrentPrompt returns the prompt currently shown in a session.
func (s *QuizService) CurrentPrompt(_ context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	return session.CurrentPrompt()
}

// SubmitAnswer scores an answer and returns the outcome, score and next prompt.
func (s *QuizService) SubmitAnswer(_ context.Context, sessionID, text string) (domain.AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.AnswerResult{}, domain.ErrSessionNotFound
	}
	outcome, err := session.SubmitAnswer(text)
	if err != nil {
		return domain.AnswerResult{}, err
	}
	prompt, err := session.CurrentPrompt()
	if err != nil {
		return domain.AnswerResult{}, err
	}
	return domain.AnswerResult{
		Outcome: outcome,
		Score:   session.Score(),
		Prompt:  prompt,
	}, nil
}

// Score returns the running score of a session.
func (s *QuizService) Score(_ context.Context, sessionID string) (domain.Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.Score{}, domain.ErrSessionNotFound
	}
	return session.Score(), nil
}

// End drops a session and hands its final score to the reporter.
// The session is removed even if reporting fails.
func (s *QuizService) End(ctx context.Context, sessionID string) (domain.Score, error) {
	s.mu.Lock()
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		s.mu.Unlock()
		return domain.Score{}, domain.ErrSessionNotFound
	}
	score := session.Score()
	s.sessions.Delete(sessionID)
	s.mu.Unlock()

	if s.reporter == nil {
		return score, nil
	}
	if err := s.reporter.Report(ctx, sessionID, score); err != nil {
		s.log.Error().Err(err).Str("session_id", sessionID).Msg("score report failed")
		return score, fmt.Errorf("report score: %w", err)
	}
	return score, nil
}
