package file

import (
	"context"
	"fmt"
	"os"

	"clap-quiz/internal/domain"
	"clap-quiz/internal/validation"
	"gopkg.in/yaml.v3"
)

// BankLoader serves question banks parsed from a YAML file:
//
//	banks:
//	  - id: capitals
//	    questions:
//	      - prompt: What is the capital of France?
//	        answer: Paris
type BankLoader struct {
	banks map[string]domain.Bank
}

type bankFile struct {
	Banks []bankEntry `yaml:"banks" validate:"required,min=1,dive"`
}

type bankEntry struct {
	ID        string            `yaml:"id" validate:"required"`
	Questions []domain.Question `yaml:"questions" validate:"required,min=1,dive"`
}

// Load reads and validates the bank file at path.
func Load(path string) (*BankLoader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse builds a loader from YAML bytes.
func Parse(data []byte) (*BankLoader, error) {
	var doc bankFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse bank file: %w", err)
	}
	if err := validation.Struct(doc); err != nil {
		return nil, fmt.Errorf("bank file: %v: %w", err, domain.ErrInvalidConfiguration)
	}

	banks := make(map[string]domain.Bank, len(doc.Banks))
	for _, entry := range doc.Banks {
		if _, dup := banks[entry.ID]; dup {
			return nil, fmt.Errorf("bank file: duplicate bank %q: %w", entry.ID, domain.ErrInvalidConfiguration)
		}
		bank, err := domain.NewBank(entry.ID, entry.Questions)
		if err != nil {
			return nil, err
		}
		banks[entry.ID] = bank
	}
	return &BankLoader{banks: banks}, nil
}

func (l *BankLoader) LoadBank(_ context.Context, bankID string) (domain.Bank, error) {
	if bank, ok := l.banks[bankID]; ok {
		return bank, nil
	}
	return domain.Bank{}, domain.ErrBankNotFound
}

// Banks returns every bank in the file.
func (l *BankLoader) Banks() []domain.Bank {
	out := make([]domain.Bank, 0, len(l.banks))
	for _, b := range l.banks {
		out = append(out, b)
	}
	return out
}
