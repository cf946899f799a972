package category

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/openfma/fma/internal/kv"
	"github.com/openfma/fma/internal/plan"
)

const userCategoriesKey = "user-categories"

var (
	ErrNotFound    = errors.New("category not found")
	ErrEmptyName   = errors.New("category name is required")
	ErrInvalidType = errors.New("category type must be Income or Expense")
)

// Service manages the user-defined categories. System categories are
// immutable built-ins and never pass through here.
type Service struct {
	kv kv.Store
}

func NewService(kv kv.Store) *Service {
	return &Service{kv: kv}
}

func (s *Service) List(ctx context.Context) ([]Definition, error) {
	raw, err := s.kv.Get(ctx, userCategoriesKey)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading user categories: %w", err)
	}

	var cats []Definition
	if err := json.Unmarshal([]byte(raw), &cats); err != nil {
		return nil, fmt.Errorf("decoding user categories: %w", err)
	}

	return cats, nil
}

func (s *Service) Create(ctx context.Context, name string, typ plan.Type) (*Definition, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	if typ != plan.TypeIncome && typ != plan.TypeExpense {
		return nil, ErrInvalidType
	}

	cats, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	def := Definition{
		ID:             "user_" + uuid.NewString(),
		Type:           typ,
		TranslationKey: name,
	}

	if err := s.save(ctx, append(cats, def)); err != nil {
		return nil, err
	}

	return &def, nil
}

// Replace swaps the whole user category set, e.g. after importing a plan
// file that carries its own categories.
func (s *Service) Replace(ctx context.Context, cats []Definition) error {
	return s.save(ctx, cats)
}

func (s *Service) Rename(ctx context.Context, id, name string) error {
	if name == "" {
		return ErrEmptyName
	}

	cats, err := s.List(ctx)
	if err != nil {
		return err
	}

	for i := range cats {
		if cats[i].ID == id {
			cats[i].TranslationKey = name
			return s.save(ctx, cats)
		}
	}

	return ErrNotFound
}

func (s *Service) Delete(ctx context.Context, id string) error {
	cats, err := s.List(ctx)
	if err != nil {
		return err
	}

	for i := range cats {
		if cats[i].ID == id {
			return s.save(ctx, append(cats[:i], cats[i+1:]...))
		}
	}

	return ErrNotFound
}

func (s *Service) save(ctx context.Context, cats []Definition) error {
	raw, err := json.Marshal(cats)
	if err != nil {
		return fmt.Errorf("encoding user categories: %w", err)
	}

	if err := s.kv.Set(ctx, userCategoriesKey, string(raw)); err != nil {
		return fmt.Errorf("writing user categories: %w", err)
	}

	return nil
}
