package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"clap-quiz/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// BankLoader fetches question banks from a backing store (file, Postgres, ...).
type BankLoader interface {
	LoadBank(ctx context.Context, bankID string) (domain.Bank, error)
}

// BankRepository caches banks in Redis as a JSON blob and falls back to a loader on cache miss.
// Banks are stored as: SET quiz:bank:{bankID} {"id":...,"questions":[...]}
type BankRepository struct {
	client *redis.Client
	loader BankLoader
	ttl    time.Duration
	sf     singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

type bankRecord struct {
	ID        string            `json:"id"`
	Questions []domain.Question `json:"questions"`
}

func NewBankRepository(client *redis.Client, loader BankLoader, ttl time.Duration) *BankRepository {
	return &BankRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *BankRepository) GetBank(ctx context.Context, bankID string) (domain.Bank, error) {
	if bank, err := r.cached(ctx, bankID); err == nil {
		return bank, nil
	}

	result, err, _ := r.sf.Do(bankID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if bank, err := r.cached(ctx, bankID); err == nil {
			return bank, nil
		}

		bank, err := r.loader.LoadBank(ctx, bankID)
		if err != nil {
			return domain.Bank{}, err
		}

		raw, err := json.Marshal(bankRecord{ID: bank.ID(), Questions: bank.Questions()})
		if err != nil {
			return domain.Bank{}, fmt.Errorf("marshal bank: %w", err)
		}
		// best-effort: a failed write only costs a reload next time
		_ = r.client.Set(ctx, r.key(bankID), raw, r.ttlWithJitter()).Err()
		return bank, nil
	})
	if err != nil {
		return domain.Bank{}, err
	}
	return result.(domain.Bank), nil
}

func (r *BankRepository) cached(ctx context.Context, bankID string) (domain.Bank, error) {
	raw, err := r.client.Get(ctx, r.key(bankID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Bank{}, domain.ErrBankNotFound
		}
		return domain.Bank{}, err
	}
	var record bankRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return domain.Bank{}, fmt.Errorf("unmarshal cached bank: %w", err)
	}
	return domain.NewBank(record.ID, record.Questions)
}

func (r *BankRepository) key(bankID string) string {
	return "quiz:bank:" + bankID
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
