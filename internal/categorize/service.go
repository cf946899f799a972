// Package categorize orchestrates AI categorization of plan items: it
// deduplicates item labels, consults a persisted 30-day cache, invokes the
// external categorizer on a miss and validates what comes back. Items are
// never mutated here; Apply merges a mapping onto a list explicitly.
package categorize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"slices"
	"time"

	"github.com/openfma/fma/internal/category"
	"github.com/openfma/fma/internal/kv"
	"github.com/openfma/fma/internal/plan"
)

const (
	cacheKey = "categorization-cache"
	cacheTTL = 30 * 24 * time.Hour
)

// Categorizer is the external AI call.
type Categorizer interface {
	Categorize(ctx context.Context, labels []string, income, expense []category.Definition) (string, error)
}

//go:generate mockgen -source=service.go -destination=categorizer_mock.go -package=categorize

type cacheEntry struct {
	Timestamp int64   `json:"timestamp"`
	Hash      string  `json:"hash"`
	Result    Mapping `json:"result"`
}

type Service struct {
	ai  Categorizer
	kv  kv.Store
	log *slog.Logger
	now func() time.Time
}

func NewService(ai Categorizer, kv kv.Store, log *slog.Logger) *Service {
	return &Service{ai: ai, kv: kv, log: log, now: time.Now}
}

// Labels deduplicates items by (name, description) into the label list sent
// to the categorizer, preserving first-seen order.
func Labels(items []plan.Item) []string {
	seen := make(map[string]bool, len(items))
	labels := make([]string, 0, len(items))

	for _, it := range items {
		key := it.Name + "|" + it.Description
		if seen[key] {
			continue
		}

		seen[key] = true
		labels = append(labels, itemLabel(it))
	}

	return labels
}

func itemLabel(it plan.Item) string {
	if it.Description != "" {
		return it.Name + " (" + it.Description + ")"
	}

	return it.Name
}

// Categorize returns the mapping for the given items, from cache when the
// same items and user categories were mapped within the last 30 days.
// Cache read and write failures are logged and ignored.
func (s *Service) Categorize(ctx context.Context, items []plan.Item, userCategories []category.Definition) (*Mapping, error) {
	if len(items) == 0 {
		return nil, nil
	}

	labels := Labels(items)
	hash := requestHash(labels, userCategories)

	if cached := s.readCache(ctx, hash); cached != nil {
		return cached, nil
	}

	income, expense := category.Catalog(userCategories)

	raw, err := s.ai.Categorize(ctx, labels, income, expense)
	if err != nil {
		return nil, err
	}

	mapping, err := ValidateMapping(raw)
	if err != nil {
		return nil, err
	}

	s.writeCache(ctx, hash, mapping)

	return mapping, nil
}

// ClearCache drops the persisted mapping so the next call hits the
// categorizer again. Called whenever a fresh data set is loaded.
func (s *Service) ClearCache(ctx context.Context) {
	if err := s.kv.Remove(ctx, cacheKey); err != nil {
		s.log.WarnContext(ctx, "failed to clear categorization cache", slog.String("error", err.Error()))
	}
}

// Apply merges a mapping onto the items, touching only items whose mapped
// category set actually differs from the current one. The returned flag
// reports whether anything changed.
func Apply(items []plan.Item, m *Mapping) ([]plan.Item, bool) {
	if m == nil {
		return items, false
	}

	byLabel := make(map[string][]string, len(m.Mapping))
	for _, e := range m.Mapping {
		byLabel[e.Value] = e.Categories
	}

	out := slices.Clone(items)
	changed := false

	for i, it := range out {
		cats, ok := byLabel[itemLabel(it)]
		if !ok || len(cats) == 0 {
			continue
		}

		if sameCategorySet(cats, it.CategoryIDs) {
			continue
		}

		out[i].CategoryIDs = slices.Clone(cats)
		changed = true
	}

	return out, changed
}

func sameCategorySet(mapped, current []string) bool {
	if len(mapped) != len(current) {
		return false
	}

	for _, id := range mapped {
		if !slices.Contains(current, id) {
			return false
		}
	}

	return true
}

func requestHash(labels []string, userCategories []category.Definition) string {
	labelsJSON, _ := json.Marshal(labels)
	categoriesJSON, _ := json.Marshal(userCategories)

	h := fnv.New64a()
	h.Write(labelsJSON)
	h.Write([]byte("|"))
	h.Write(categoriesJSON)

	return fmt.Sprintf("%x", h.Sum64())
}

func (s *Service) readCache(ctx context.Context, hash string) *Mapping {
	raw, err := s.kv.Get(ctx, cacheKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.log.WarnContext(ctx, "failed to read categorization cache", slog.String("error", err.Error()))
		}

		return nil
	}

	var entry cacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		s.log.WarnContext(ctx, "corrupt categorization cache entry", slog.String("error", err.Error()))
		return nil
	}

	if entry.Hash != hash {
		return nil
	}

	if s.now().Sub(time.UnixMilli(entry.Timestamp)) >= cacheTTL {
		return nil
	}

	return &entry.Result
}

func (s *Service) writeCache(ctx context.Context, hash string, mapping *Mapping) {
	raw, err := json.Marshal(cacheEntry{
		Timestamp: s.now().UnixMilli(),
		Hash:      hash,
		Result:    *mapping,
	})
	if err != nil {
		s.log.WarnContext(ctx, "failed to encode categorization cache", slog.String("error", err.Error()))
		return
	}

	if err := s.kv.Set(ctx, cacheKey, string(raw)); err != nil {
		s.log.WarnContext(ctx, "failed to write categorization cache", slog.String("error", err.Error()))
	}
}
