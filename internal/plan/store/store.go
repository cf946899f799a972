// Package store persists the plan working set through the key-value
// capability, one JSON document for the whole item list.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openfma/fma/internal/kv"
	"github.com/openfma/fma/internal/plan"
)

const itemsKey = "plan-items"

type Store struct {
	kv kv.Store
}

func New(kv kv.Store) *Store {
	return &Store{kv: kv}
}

func (s *Store) List(ctx context.Context) ([]plan.Item, error) {
	raw, err := s.kv.Get(ctx, itemsKey)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading plan items: %w", err)
	}

	var items []plan.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decoding plan items: %w", err)
	}

	return items, nil
}

func (s *Store) ReplaceAll(ctx context.Context, items []plan.Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding plan items: %w", err)
	}

	if err := s.kv.Set(ctx, itemsKey, string(raw)); err != nil {
		return fmt.Errorf("writing plan items: %w", err)
	}

	return nil
}
