// Package sanitize completes recurring series in externally produced plan
// documents. Generated XML often carries only the first occurrence of a
// series; this fills in the missing months before the data is stored.
package sanitize

import (
	"fmt"
	"slices"
	"time"

	"github.com/openfma/fma/internal/codec"
	"github.com/openfma/fma/internal/plan"
)

type occurrence struct {
	seriesID string
	year     int
	month    int
}

// Content parses a plan XML document, fills in missing series members and
// re-serializes the completed set.
func Content(content string) (string, error) {
	items, cats, err := codec.Decode(content)
	if err != nil {
		return "", fmt.Errorf("parse for sanitize: %w", err)
	}

	filled, err := Items(items)
	if err != nil {
		return "", err
	}

	return codec.Encode(filled, cats), nil
}

// Items appends a clone for every expected series occurrence that is absent
// from the input. Existing records are never touched, so the operation is
// idempotent. Installment bundles are left alone.
func Items(items []plan.Item) ([]plan.Item, error) {
	present := make(map[occurrence]bool, len(items))

	for _, it := range items {
		if it.SeriesID != "" {
			present[occurrence{it.SeriesID, it.Year, it.MonthIndex}] = true
		}
	}

	out := slices.Clone(items)

	for _, it := range items {
		if !it.Recurring || it.SeriesID == "" || it.RecurringMode == plan.ModeInstallments {
			continue
		}

		endYear, endMonth, err := seriesEnd(it)
		if err != nil {
			return nil, err
		}

		for year := it.Year; year <= endYear; year++ {
			from := 0
			if year == it.Year {
				from = it.MonthIndex
			}

			to := 11
			if year == endYear {
				to = endMonth
			}

			for month := from; month <= to; month++ {
				occ := occurrence{it.SeriesID, year, month}
				if present[occ] {
					continue
				}

				present[occ] = true

				clone := it
				clone.ID = plan.NewID()
				clone.MonthIndex = month
				clone.Year = year
				out = append(out, clone)
			}
		}
	}

	return out, nil
}

func seriesEnd(it plan.Item) (year, month int, err error) {
	if it.RecurringType == plan.RecurringUntilDate && it.RecurringUntilDate != "" {
		until, err := time.Parse(time.DateOnly, it.RecurringUntilDate)
		if err != nil {
			return 0, 0, fmt.Errorf("item %s: invalid until date %q", it.ID, it.RecurringUntilDate)
		}

		return until.Year(), int(until.Month()) - 1, nil
	}

	// Forever series run through December of their own year.
	return it.Year, 11, nil
}
