package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfma/fma/internal/plan"
)

func TestExpand_NonRecurring(t *testing.T) {
	items, err := plan.Expand(plan.Draft{
		Type:   plan.TypeExpense,
		Name:   "Rent",
		Amount: 500,
	}, plan.Anchor{Month: 3, Year: 2025})
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.NotEmpty(t, items[0].ID)
	assert.Empty(t, items[0].SeriesID)
	assert.Equal(t, 3, items[0].MonthIndex)
	assert.Equal(t, 2025, items[0].Year)
	assert.Equal(t, 500.0, items[0].Amount)
}

func TestExpand_ForeverStopsAtYearEnd(t *testing.T) {
	items, err := plan.Expand(plan.Draft{
		Type:          plan.TypeIncome,
		Name:          "Salary",
		Amount:        1000,
		Recurring:     true,
		RecurringType: plan.RecurringForever,
	}, plan.Anchor{Month: 9, Year: 2025})
	require.NoError(t, err)
	require.Len(t, items, 3) // Oct, Nov, Dec

	for i, it := range items {
		assert.Equal(t, 9+i, it.MonthIndex)
		assert.Equal(t, 2025, it.Year)
		assert.Equal(t, items[0].SeriesID, it.SeriesID)
	}
}

func TestExpand_UntilDate(t *testing.T) {
	type testCase struct {
		name      string
		anchor    plan.Anchor
		untilDate string
		wantLen   int
	}

	tests := []testCase{
		{
			name:      "SameYear",
			anchor:    plan.Anchor{Month: 6, Year: 2025},
			untilDate: "2025-10-15",
			wantLen:   4, // months 6,7,8,9
		},
		{
			name:      "SpansYears",
			anchor:    plan.Anchor{Month: 10, Year: 2025},
			untilDate: "2026-02-01",
			wantLen:   4, // Nov, Dec, Jan, Feb
		},
		{
			name:      "EndsAtAnchor",
			anchor:    plan.Anchor{Month: 6, Year: 2025},
			untilDate: "2025-07-31",
			wantLen:   1,
		},
		{
			name:      "EndBeforeAnchor",
			anchor:    plan.Anchor{Month: 6, Year: 2025},
			untilDate: "2024-12-31",
			wantLen:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := plan.Expand(plan.Draft{
				Type:               plan.TypeExpense,
				Name:               "Gym",
				Amount:             50,
				Recurring:          true,
				RecurringType:      plan.RecurringUntilDate,
				RecurringUntilDate: tt.untilDate,
			}, tt.anchor)
			require.NoError(t, err)
			assert.Len(t, items, tt.wantLen)

			for _, it := range items {
				assert.Equal(t, items[0].SeriesID, it.SeriesID)
			}
		})
	}
}

func TestExpand_UntilDate_ExactMonths(t *testing.T) {
	items, err := plan.Expand(plan.Draft{
		Type:               plan.TypeExpense,
		Name:               "Tuition",
		Amount:             200,
		Recurring:          true,
		RecurringType:      plan.RecurringUntilDate,
		RecurringUntilDate: "2025-10-01",
	}, plan.Anchor{Month: 6, Year: 2025})
	require.NoError(t, err)
	require.Len(t, items, 4)

	for i, it := range items {
		assert.Equal(t, 6+i, it.MonthIndex)
		assert.Equal(t, 2025, it.Year)
	}
}

func TestExpand_Installments(t *testing.T) {
	subs := []plan.SubItem{
		{ID: "s1", Name: "Sofa", Price: 600000},
		{ID: "s2", Name: "Table", Price: 200000, Quantity: 2},
	}

	items, err := plan.Expand(plan.Draft{
		Type:          plan.TypeExpense,
		Name:          "Furniture",
		Recurring:     true,
		Structure:     plan.StructureBundle,
		RecurringMode: plan.ModeInstallments,
		Installments:  3,
		SubItems:      subs,
	}, plan.Anchor{Month: 0, Year: 2025})
	require.NoError(t, err)
	require.Len(t, items, 3)

	// Bundle total is 1,000,000; each share is the floor of a third.
	for i, it := range items {
		assert.Equal(t, 333333.0, it.Amount)
		assert.Equal(t, i+1, it.InstallmentIndex)
		assert.Equal(t, i, it.MonthIndex)
		assert.Equal(t, items[0].SeriesID, it.SeriesID)
	}
}

func TestExpand_InstallmentsWrapYear(t *testing.T) {
	items, err := plan.Expand(plan.Draft{
		Type:          plan.TypeExpense,
		Name:          "Laptop",
		Recurring:     true,
		Structure:     plan.StructureBundle,
		RecurringMode: plan.ModeInstallments,
		Installments:  4,
		SubItems:      []plan.SubItem{{ID: "s1", Name: "Laptop", Price: 2400}},
	}, plan.Anchor{Month: 10, Year: 2025})
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.Equal(t, 10, items[0].MonthIndex)
	assert.Equal(t, 2025, items[0].Year)
	assert.Equal(t, 11, items[1].MonthIndex)
	assert.Equal(t, 2025, items[1].Year)
	assert.Equal(t, 0, items[2].MonthIndex)
	assert.Equal(t, 2026, items[2].Year)
	assert.Equal(t, 1, items[3].MonthIndex)
	assert.Equal(t, 2026, items[3].Year)
}

func TestExpand_Validation(t *testing.T) {
	type testCase struct {
		name    string
		draft   plan.Draft
		anchor  plan.Anchor
		wantErr error
	}

	tests := []testCase{
		{
			name:    "EmptyName",
			draft:   plan.Draft{Type: plan.TypeExpense, Amount: 10},
			anchor:  plan.Anchor{Month: 0, Year: 2025},
			wantErr: plan.ErrEmptyName,
		},
		{
			name:    "ZeroAmount",
			draft:   plan.Draft{Type: plan.TypeExpense, Name: "Coffee"},
			anchor:  plan.Anchor{Month: 0, Year: 2025},
			wantErr: plan.ErrInvalidAmount,
		},
		{
			name:    "NegativeAmount",
			draft:   plan.Draft{Type: plan.TypeExpense, Name: "Coffee", Amount: -5},
			anchor:  plan.Anchor{Month: 0, Year: 2025},
			wantErr: plan.ErrInvalidAmount,
		},
		{
			name:    "BadMonth",
			draft:   plan.Draft{Type: plan.TypeExpense, Name: "Coffee", Amount: 5},
			anchor:  plan.Anchor{Month: 12, Year: 2025},
			wantErr: plan.ErrInvalidMonth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := plan.Expand(tt.draft, tt.anchor)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, items)
		})
	}
}

func TestExpand_BadUntilDate(t *testing.T) {
	_, err := plan.Expand(plan.Draft{
		Type:               plan.TypeExpense,
		Name:               "Gym",
		Amount:             50,
		Recurring:          true,
		RecurringType:      plan.RecurringUntilDate,
		RecurringUntilDate: "not-a-date",
	}, plan.Anchor{Month: 0, Year: 2025})
	assert.Error(t, err)
}

func TestExpand_BundleAmountFromSubItems(t *testing.T) {
	items, err := plan.Expand(plan.Draft{
		Type:      plan.TypeExpense,
		Name:      "Groceries",
		Structure: plan.StructureBundle,
		SubItems: []plan.SubItem{
			{ID: "a", Name: "Rice", Price: 20, Quantity: 3},
			{ID: "b", Name: "Fish", Price: 15},
		},
	}, plan.Anchor{Month: 1, Year: 2025})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 75.0, items[0].Amount)
}
