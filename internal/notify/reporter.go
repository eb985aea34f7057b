package notify

import (
	"context"
	"errors"

	"clap-quiz/internal/app"
	"clap-quiz/internal/domain"
	"github.com/rs/zerolog"
)

// LogReporter writes the final score message to the log.
type LogReporter struct {
	log zerolog.Logger
}

func NewLogReporter(log zerolog.Logger) *LogReporter {
	return &LogReporter{log: log.With().Str("component", "score_reporter").Logger()}
}

func (r *LogReporter) Report(_ context.Context, sessionID string, score domain.Score) error {
	r.log.Info().
		Str("session_id", sessionID).
		Int("correct", score.Correct).
		Int("total", score.Total).
		Msg(score.Message())
	return nil
}

// Multi fans a report out to every reporter and joins their errors.
type Multi []app.ScoreReporter

func (m Multi) Report(ctx context.Context, sessionID string, score domain.Score) error {
	var errs []error
	for _, r := range m {
		if err := r.Report(ctx, sessionID, score); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
