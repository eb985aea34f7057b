package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clap-quiz/internal/domain"
	"github.com/redis/go-redis/v9"
)

// ScoreReportsQueue is the list final scores are pushed onto.
const ScoreReportsQueue = "quiz:score_reports"

// ErrQueueEmpty is returned by Pop when no report arrived before the timeout.
var ErrQueueEmpty = errors.New("score report queue empty")

// ScoreReport is the payload handed to the notification side.
type ScoreReport struct {
	SessionID  string    `json:"session_id"`
	Correct    int       `json:"correct"`
	Total      int       `json:"total"`
	Message    string    `json:"message"`
	ReportedAt time.Time `json:"reported_at"`
}

// ScoreQueue hands final scores to whatever delivers notifications, via a Redis list.
type ScoreQueue struct {
	client *redis.Client
	now    func() time.Time
}

func NewScoreQueue(client *redis.Client) *ScoreQueue {
	return &ScoreQueue{client: client, now: time.Now}
}

// Report implements app.ScoreReporter.
func (q *ScoreQueue) Report(ctx context.Context, sessionID string, score domain.Score) error {
	raw, err := json.Marshal(ScoreReport{
		SessionID:  sessionID,
		Correct:    score.Correct,
		Total:      score.Total,
		Message:    score.Message(),
		ReportedAt: q.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal score report: %w", err)
	}
	if err := q.client.RPush(ctx, ScoreReportsQueue, raw).Err(); err != nil {
		return fmt.Errorf("push score report: %w", err)
	}
	return nil
}

// Pop blocks up to timeout for the oldest queued report.
func (q *ScoreQueue) Pop(ctx context.Context, timeout time.Duration) (ScoreReport, error) {
	item, err := q.client.BLPop(ctx, timeout, ScoreReportsQueue).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ScoreReport{}, ErrQueueEmpty
		}
		return ScoreReport{}, err
	}
	if len(item) < 2 {
		return ScoreReport{}, ErrQueueEmpty
	}
	var report ScoreReport
	if err := json.Unmarshal([]byte(item[1]), &report); err != nil {
		return ScoreReport{}, fmt.Errorf("invalid score report payload: %w", err)
	}
	return report, nil
}
