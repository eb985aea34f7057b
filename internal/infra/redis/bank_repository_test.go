package redis

import (
	"context"
	"testing"
	"time"

	"clap-quiz/internal/domain"
	"clap-quiz/internal/infra/memory"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestBankRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{BankLoader: memory.NewStaticBankLoader(domain.DefaultBank())}
	repo := NewBankRepository(client, loader, time.Minute)

	bank, err := repo.GetBank(context.Background(), domain.DefaultBankID)
	if err != nil {
		t.Fatalf("get bank: %v", err)
	}
	if bank.Len() != 7 {
		t.Fatalf("expected 7 questions, got %d", bank.Len())
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("quiz:bank:capitals") {
		t.Fatalf("expected bank cached in redis")
	}

	// Second call should hit cache, loader not incremented.
	cached, err := repo.GetBank(context.Background(), domain.DefaultBankID)
	if err != nil {
		t.Fatalf("get cached bank: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if cached.At(0) != bank.At(0) || cached.Len() != bank.Len() {
		t.Fatalf("cached bank differs from loaded bank")
	}
}

func TestBankRepositoryReloadsAfterTTL(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{BankLoader: memory.NewStaticBankLoader(domain.DefaultBank())}
	repo := NewBankRepository(newClient(mr), loader, time.Minute)

	_, _ = repo.GetBank(context.Background(), domain.DefaultBankID)
	mr.FastForward(2 * time.Minute)
	_, _ = repo.GetBank(context.Background(), domain.DefaultBankID)
	if loader.calls != 2 {
		t.Fatalf("expected reload after ttl, loader calls=%d", loader.calls)
	}
}

type countingLoader struct {
	memory.BankLoader
	calls int
}

func (l *countingLoader) LoadBank(ctx context.Context, bankID string) (domain.Bank, error) {
	l.calls++
	return l.BankLoader.LoadBank(ctx, bankID)
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
