package plan

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrEmptyName     = errors.New("item name is required")
	ErrInvalidAmount = errors.New("item amount must be greater than zero")
	ErrInvalidMonth  = errors.New("month index must be between 0 and 11")
)

// Draft is a user-entered item before expansion. For bundles the amount is
// derived from the sub-items and the Amount field is ignored.
type Draft struct {
	Type               Type
	Name               string
	Amount             float64
	Currency           string
	Description        string
	Recurring          bool
	RecurringType      RecurringType
	RecurringUntilDate string
	Structure          Structure
	Status             Status
	SubItems           []SubItem
	RecurringMode      RecurringMode
	Installments       int
}

// Anchor is the month/year cell the draft was entered on.
type Anchor struct {
	Month int
	Year  int
}

// Expand turns a draft into the concrete item records it represents:
//
//   - non-recurring drafts produce exactly one record at the anchor;
//   - recurring drafts produce one record per month through the series end
//     (see seriesEnd);
//   - installment bundles produce exactly Installments consecutive monthly
//     records, each carrying floor(total/installments) and a 1-based
//     installment index.
//
// Every record of a recurring batch shares a freshly generated series ID.
// Validation failures reject the whole draft; no partial batch is returned.
func Expand(d Draft, at Anchor) ([]Item, error) {
	if d.Name == "" {
		return nil, ErrEmptyName
	}

	if at.Month < 0 || at.Month > 11 {
		return nil, ErrInvalidMonth
	}

	amount := d.Amount
	if d.Structure == StructureBundle && len(d.SubItems) > 0 {
		amount = BundleTotal(d.SubItems)
	}

	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	base := Item{
		Type:               d.Type,
		Name:               d.Name,
		Amount:             amount,
		Currency:           d.Currency,
		Description:        d.Description,
		Recurring:          d.Recurring,
		RecurringType:      d.RecurringType,
		RecurringUntilDate: d.RecurringUntilDate,
		Structure:          d.Structure,
		Status:             d.Status,
		SubItems:           d.SubItems,
		RecurringMode:      d.RecurringMode,
		Installments:       d.Installments,
	}

	if !d.Recurring {
		single := base
		single.ID = NewID()
		single.MonthIndex = at.Month
		single.Year = at.Year

		return []Item{single}, nil
	}

	seriesID := NewID()

	if d.Structure == StructureBundle && d.RecurringMode == ModeInstallments && d.Installments > 0 {
		return expandInstallments(base, at, seriesID), nil
	}

	endYear, endMonth, err := seriesEnd(d, at)
	if err != nil {
		return nil, err
	}

	var items []Item

	for y := at.Year; y <= endYear; y++ {
		startM := 0
		if y == at.Year {
			startM = at.Month
		}

		endM := 11
		if y == endYear {
			endM = endMonth
		}

		for m := startM; m <= endM; m++ {
			it := base
			it.ID = NewID()
			it.MonthIndex = m
			it.Year = y
			it.SeriesID = seriesID
			items = append(items, it)
		}
	}

	return items, nil
}

// expandInstallments splits the bundle total into equal monthly shares.
// Integer division truncates; the remainder is not redistributed.
func expandInstallments(base Item, at Anchor, seriesID string) []Item {
	share := math.Floor(base.Amount / float64(base.Installments))
	items := make([]Item, 0, base.Installments)

	for i := 0; i < base.Installments; i++ {
		months := at.Month + i

		it := base
		it.ID = NewID()
		it.Amount = share
		it.MonthIndex = months % 12
		it.Year = at.Year + months/12
		it.SeriesID = seriesID
		it.InstallmentIndex = i + 1
		items = append(items, it)
	}

	return items
}

// seriesEnd returns the last (year, month) a recurring series expands to.
//
// A "forever" series is expanded through December of the anchor year only;
// later years are materialized when the plan is revisited, not up front.
// An "until_date" series runs through the month of its end date, spanning
// years as needed. An end date before the anchor yields an empty range.
func seriesEnd(d Draft, at Anchor) (endYear, endMonth int, err error) {
	if d.RecurringType == RecurringUntilDate && d.RecurringUntilDate != "" {
		until, perr := time.Parse(time.DateOnly, d.RecurringUntilDate)
		if perr != nil {
			return 0, 0, fmt.Errorf("invalid recurring end date %q: %w", d.RecurringUntilDate, perr)
		}

		return until.Year(), int(until.Month()) - 1, nil
	}

	return at.Year, 11, nil
}
