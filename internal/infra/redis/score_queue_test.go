package redis

import (
	"context"
	"testing"
	"time"

	"clap-quiz/internal/domain"
	miniredis "github.com/alicebob/miniredis/v2"
)

func TestScoreQueueRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	queue := NewScoreQueue(newClient(mr))
	fixed := time.Date(2024, 11, 22, 10, 0, 0, 0, time.UTC)
	queue.now = func() time.Time { return fixed }

	ctx := context.Background()
	if err := queue.Report(ctx, "s1", domain.Score{Correct: 4, Total: 6}); err != nil {
		t.Fatalf("report: %v", err)
	}
	if err := queue.Report(ctx, "s2", domain.Score{Correct: 0, Total: 0}); err != nil {
		t.Fatalf("report: %v", err)
	}

	first, err := queue.Pop(ctx, time.Second)
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if first.SessionID != "s1" || first.Message != "4 correct answers out of 6" {
		t.Fatalf("unexpected first report %+v", first)
	}
	if !first.ReportedAt.Equal(fixed) {
		t.Fatalf("unexpected timestamp %v", first.ReportedAt)
	}

	second, err := queue.Pop(ctx, time.Second)
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if second.SessionID != "s2" || second.Message != "0 correct answers out of 0" {
		t.Fatalf("unexpected second report %+v", second)
	}
}
