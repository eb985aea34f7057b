package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"clap-quiz/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// BankLoader loads question bank JSONB from Postgres.
type BankLoader struct {
	pool *pgxpool.Pool
}

func NewBankLoader(pool *pgxpool.Pool) *BankLoader {
	return &BankLoader{pool: pool}
}

// bankDocument is the JSONB layout of question_banks.data.
type bankDocument struct {
	Questions []domain.Question `json:"questions"`
}

func (l *BankLoader) LoadBank(ctx context.Context, bankID string) (domain.Bank, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM question_banks WHERE id=$1`, bankID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Bank{}, domain.ErrBankNotFound
		}
		return domain.Bank{}, fmt.Errorf("load bank: %w", err)
	}
	return decodeBank(bankID, raw)
}

// SaveBank upserts a bank document.
func (l *BankLoader) SaveBank(ctx context.Context, bank domain.Bank) error {
	raw, err := json.Marshal(bankDocument{Questions: bank.Questions()})
	if err != nil {
		return fmt.Errorf("marshal bank: %w", err)
	}
	_, err = l.pool.Exec(ctx,
		`INSERT INTO question_banks (id, data) VALUES ($1, $2::jsonb)
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`,
		bank.ID(), string(raw))
	if err != nil {
		return fmt.Errorf("save bank: %w", err)
	}
	return nil
}

func decodeBank(bankID string, raw []byte) (domain.Bank, error) {
	var doc bankDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.Bank{}, fmt.Errorf("unmarshal bank: %w", err)
	}
	return domain.NewBank(bankID, doc.Questions)
}
