package plan

import (
	"context"
	"errors"
	"fmt"
	"math"
)

var (
	ErrNotFound = errors.New("item not found")

	// ErrInstallmentSeries is returned when a single-occurrence edit or
	// delete targets an installment bundle. Installment amounts are only
	// meaningful as a complete set, so those operations always apply to
	// the whole series.
	ErrInstallmentSeries = errors.New("installment series must be modified as a whole")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=plan
type Repository interface {
	List(ctx context.Context) ([]Item, error)
	ReplaceAll(ctx context.Context, items []Item) error
}

// Service owns the plan working set: item creation through series expansion,
// single vs whole-series edits and deletes, and wholesale replacement on
// import.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Item, error) {
	return s.repo.List(ctx)
}

// Add expands the draft at the anchor and appends the resulting records.
// The draft is rejected as a whole if validation fails; nothing is written.
func (s *Service) Add(ctx context.Context, d Draft, at Anchor) ([]Item, error) {
	created, err := Expand(d, at)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	if err := s.repo.ReplaceAll(ctx, append(items, created...)); err != nil {
		return nil, fmt.Errorf("storing items: %w", err)
	}

	return created, nil
}

// Import replaces the whole working set, e.g. after loading a plan file.
func (s *Service) Import(ctx context.Context, items []Item) error {
	return s.repo.ReplaceAll(ctx, items)
}

// UpdateSingle replaces one record's field values, leaving its siblings
// untouched. The stored record's series membership and recurrence settings
// are authoritative: a payload cannot detach an occurrence from its series.
// Installment bundle members cannot be edited individually.
func (s *Service) UpdateSingle(ctx context.Context, updated Item) error {
	if err := validateEdit(&updated); err != nil {
		return err
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("listing items: %w", err)
	}

	found := false

	for i, it := range items {
		if it.ID != updated.ID {
			continue
		}

		if it.IsInstallmentBundle() {
			return ErrInstallmentSeries
		}

		updated.SeriesID = it.SeriesID
		updated.Recurring = it.Recurring
		updated.RecurringType = it.RecurringType
		updated.RecurringUntilDate = it.RecurringUntilDate
		items[i] = updated
		found = true

		break
	}

	if !found {
		return ErrNotFound
	}

	return s.repo.ReplaceAll(ctx, items)
}

// UpdateSeries propagates the edited fields to every record sharing the
// series ID, preserving each record's own ID, month, year and installment
// index. For installment bundles the edited amount is the bundle total and
// is re-split into floor(total/installments) monthly shares.
func (s *Service) UpdateSeries(ctx context.Context, updated Item) error {
	if updated.SeriesID == "" {
		return ErrNotFound
	}

	if err := validateEdit(&updated); err != nil {
		return err
	}

	if updated.IsInstallmentBundle() {
		updated.Amount = math.Floor(updated.Amount / float64(updated.Installments))
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("listing items: %w", err)
	}

	found := false

	for i, it := range items {
		if it.SeriesID != updated.SeriesID {
			continue
		}

		next := updated
		next.ID = it.ID
		next.MonthIndex = it.MonthIndex
		next.Year = it.Year
		next.InstallmentIndex = it.InstallmentIndex
		items[i] = next
		found = true
	}

	if !found {
		return ErrNotFound
	}

	return s.repo.ReplaceAll(ctx, items)
}

// validateEdit applies the same name and amount rules Expand enforces on
// drafts. For bundles with sub-items the amount is re-derived from them.
func validateEdit(it *Item) error {
	if it.Name == "" {
		return ErrEmptyName
	}

	if it.Structure == StructureBundle && len(it.SubItems) > 0 {
		it.Amount = BundleTotal(it.SubItems)
	}

	if it.Amount <= 0 {
		return ErrInvalidAmount
	}

	return nil
}

// DeleteSingle removes one record. Members of an installment series can only
// be deleted through DeleteSeries.
func (s *Service) DeleteSingle(ctx context.Context, id string) error {
	items, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("listing items: %w", err)
	}

	idx := -1

	for i, it := range items {
		if it.ID == id {
			if it.IsInstallmentBundle() {
				return ErrInstallmentSeries
			}

			idx = i

			break
		}
	}

	if idx < 0 {
		return ErrNotFound
	}

	return s.repo.ReplaceAll(ctx, append(items[:idx], items[idx+1:]...))
}

// DeleteSeries removes every record sharing the series ID.
func (s *Service) DeleteSeries(ctx context.Context, seriesID string) error {
	if seriesID == "" {
		return ErrNotFound
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("listing items: %w", err)
	}

	kept := items[:0]
	found := false

	for _, it := range items {
		if it.SeriesID == seriesID {
			found = true
			continue
		}

		kept = append(kept, it)
	}

	if !found {
		return ErrNotFound
	}

	return s.repo.ReplaceAll(ctx, kept)
}
