package plan_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/openfma/fma/internal/plan"
)

func TestService_Add(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := plan.NewMockRepository(ctrl)
	svc := plan.NewService(repo)

	existing := []plan.Item{{ID: "old1", Type: plan.TypeExpense, Name: "Rent", Amount: 500}}

	repo.EXPECT().List(gomock.Any()).Return(existing, nil)
	repo.EXPECT().
		ReplaceAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, items []plan.Item) error {
			require.Len(t, items, 4) // 1 existing + 3 expanded
			return nil
		})

	created, err := svc.Add(context.Background(), plan.Draft{
		Type:          plan.TypeIncome,
		Name:          "Salary",
		Amount:        1000,
		Recurring:     true,
		RecurringType: plan.RecurringForever,
	}, plan.Anchor{Month: 9, Year: 2025})
	require.NoError(t, err)
	assert.Len(t, created, 3)
}

func TestService_Add_InvalidDraftWritesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := plan.NewMockRepository(ctrl)
	svc := plan.NewService(repo)

	_, err := svc.Add(context.Background(), plan.Draft{Name: ""}, plan.Anchor{Month: 0, Year: 2025})
	assert.ErrorIs(t, err, plan.ErrEmptyName)
}

func TestService_UpdateSingle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := plan.NewMockRepository(ctrl)
	svc := plan.NewService(repo)

	items := []plan.Item{
		{ID: "a", Name: "Salary", Amount: 1000, SeriesID: "s1", MonthIndex: 0, Year: 2025},
		{ID: "b", Name: "Salary", Amount: 1000, SeriesID: "s1", MonthIndex: 1, Year: 2025},
	}

	repo.EXPECT().List(gomock.Any()).Return(items, nil)
	repo.EXPECT().
		ReplaceAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got []plan.Item) error {
			require.Len(t, got, 2)
			assert.Equal(t, 1200.0, got[0].Amount)
			assert.Equal(t, "s1", got[0].SeriesID) // single edit keeps the series ID
			assert.Equal(t, 1000.0, got[1].Amount) // sibling untouched
			return nil
		})

	err := svc.UpdateSingle(context.Background(), plan.Item{
		ID: "a", Name: "Salary", Amount: 1200, SeriesID: "s1", MonthIndex: 0, Year: 2025,
	})
	require.NoError(t, err)
}

func TestService_UpdateSingle_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := plan.NewMockRepository(ctrl)
	svc := plan.NewService(repo)

	repo.EXPECT().List(gomock.Any()).Return(nil, nil)

	err := svc.UpdateSingle(context.Background(), plan.Item{ID: "missing", Name: "Coffee", Amount: 5})
	assert.ErrorIs(t, err, plan.ErrNotFound)
}

func TestService_UpdateSingle_KeepsStoredSeriesFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := plan.NewMockRepository(ctrl)
	svc := plan.NewService(repo)

	items := []plan.Item{
		{
			ID: "a", Name: "Salary", Amount: 1000, SeriesID: "s1",
			Recurring: true, RecurringType: plan.RecurringUntilDate, RecurringUntilDate: "2026-06-01",
			MonthIndex: 0, Year: 2025,
		},
	}

	repo.EXPECT().List(gomock.Any()).Return(items, nil)
	repo.EXPECT().
		ReplaceAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got []plan.Item) error {
			require.Len(t, got, 1)
			assert.Equal(t, 1200.0, got[0].Amount)
			// A payload without series fields cannot detach the record.
			assert.Equal(t, "s1", got[0].SeriesID)
			assert.True(t, got[0].Recurring)
			assert.Equal(t, plan.RecurringUntilDate, got[0].RecurringType)
			assert.Equal(t, "2026-06-01", got[0].RecurringUntilDate)
			return nil
		})

	err := svc.UpdateSingle(context.Background(), plan.Item{
		ID: "a", Name: "Salary", Amount: 1200, MonthIndex: 0, Year: 2025,
	})
	require.NoError(t, err)
}

func TestService_UpdateSingle_Validation(t *testing.T) {
	tests := []struct {
		name string
		item plan.Item
		want error
	}{
		{"empty name", plan.Item{ID: "a", Amount: 100}, plan.ErrEmptyName},
		{"zero amount", plan.Item{ID: "a", Name: "Salary"}, plan.ErrInvalidAmount},
		{"negative amount", plan.Item{ID: "a", Name: "Salary", Amount: -5}, plan.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := plan.NewMockRepository(ctrl)
			svc := plan.NewService(repo)

			err := svc.UpdateSingle(context.Background(), tt.item)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestService_UpdateSingle_BundleAmountFromSubItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := plan.NewMockRepository(ctrl)
	svc := plan.NewService(repo)

	items := []plan.Item{{ID: "a", Name: "Groceries", Amount: 50, Structure: plan.StructureBundle}}

	repo.EXPECT().List(gomock.Any()).Return(items, nil)
	repo.EXPECT().
		ReplaceAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got []plan.Item) error {
			require.Len(t, got, 1)
			assert.Equal(t, 70.0, got[0].Amount)
			return nil
		})

	err := svc.UpdateSingle(context.Background(), plan.Item{
		ID: "a", Name: "Groceries", Structure: plan.StructureBundle,
		SubItems: []plan.SubItem{
			{ID: "s1", Name: "Milk", Price: 10, Quantity: 4},
			{ID: "s2", Name: "Bread", Price: 30},
		},
	})
	require.NoError(t, err)
}

func TestService_UpdateSeries_PropagatesFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := plan.NewMockRepository(ctrl)
	svc := plan.NewService(repo)

	items := []plan.Item{
		{ID: "a", Name: "Salary", Amount: 1000, SeriesID: "s1", MonthIndex: 0, Year: 2025},
		{ID: "b", Name: "Salary", Amount: 1000, SeriesID: "s1", MonthIndex: 1, Year: 2025},
		{ID: "c", Name: "Rent", Amount: 500, MonthIndex: 0, Year: 2025},
	}

	repo.EXPECT().List(gomock.Any()).Return(items, nil)
	repo.EXPECT().
		ReplaceAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got []plan.Item) error {
			require.Len(t, got, 3)

			for _, i := range []int{0, 1} {
				assert.Equal(t, "Base Salary", got[i].Name)
				assert.Equal(t, 1500.0, got[i].Amount)
			}

			// Per-record placement survives the series edit.
			assert.Equal(t, "a", got[0].ID)
			assert.Equal(t, 0, got[0].MonthIndex)
			assert.Equal(t, "b", got[1].ID)
			assert.Equal(t, 1, got[1].MonthIndex)

			// Unrelated item untouched.
			assert.Equal(t, "Rent", got[2].Name)

			return nil
		})

	err := svc.UpdateSeries(context.Background(), plan.Item{
		ID: "a", Name: "Base Salary", Amount: 1500, SeriesID: "s1", MonthIndex: 0, Year: 2025,
	})
	require.NoError(t, err)
}

func TestService_UpdateSeries_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := plan.NewMockRepository(ctrl)
	svc := plan.NewService(repo)

	err := svc.UpdateSeries(context.Background(), plan.Item{ID: "a", SeriesID: "s1", Amount: 100})
	assert.ErrorIs(t, err, plan.ErrEmptyName)

	err = svc.UpdateSeries(context.Background(), plan.Item{ID: "a", SeriesID: "s1", Name: "Salary"})
	assert.ErrorIs(t, err, plan.ErrInvalidAmount)
}

func TestService_UpdateSeries_InstallmentsRefloorAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := plan.NewMockRepository(ctrl)
	svc := plan.NewService(repo)

	items := []plan.Item{
		{ID: "a", SeriesID: "s1", Structure: plan.StructureBundle, RecurringMode: plan.ModeInstallments, Installments: 3, InstallmentIndex: 1, Amount: 100},
		{ID: "b", SeriesID: "s1", Structure: plan.StructureBundle, RecurringMode: plan.ModeInstallments, Installments: 3, InstallmentIndex: 2, Amount: 100},
	}

	repo.EXPECT().List(gomock.Any()).Return(items, nil)
	repo.EXPECT().
		ReplaceAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got []plan.Item) error {
			// The edited amount is the bundle total; each stored record
			// carries floor(1000/3).
			assert.Equal(t, 333.0, got[0].Amount)
			assert.Equal(t, 333.0, got[1].Amount)
			assert.Equal(t, 1, got[0].InstallmentIndex)
			assert.Equal(t, 2, got[1].InstallmentIndex)
			return nil
		})

	err := svc.UpdateSeries(context.Background(), plan.Item{
		ID: "a", Name: "Furniture", Amount: 1000, SeriesID: "s1",
		Structure: plan.StructureBundle, RecurringMode: plan.ModeInstallments, Installments: 3,
	})
	require.NoError(t, err)
}

func TestService_DeleteSingle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := plan.NewMockRepository(ctrl)
	svc := plan.NewService(repo)

	items := []plan.Item{
		{ID: "a", Name: "Coffee"},
		{ID: "b", Name: "Lunch"},
	}

	repo.EXPECT().List(gomock.Any()).Return(items, nil)
	repo.EXPECT().
		ReplaceAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got []plan.Item) error {
			require.Len(t, got, 1)
			assert.Equal(t, "b", got[0].ID)
			return nil
		})

	require.NoError(t, svc.DeleteSingle(context.Background(), "a"))
}

func TestService_DeleteSingle_InstallmentRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := plan.NewMockRepository(ctrl)
	svc := plan.NewService(repo)

	items := []plan.Item{
		{ID: "a", SeriesID: "s1", Structure: plan.StructureBundle, RecurringMode: plan.ModeInstallments, Installments: 3},
	}

	repo.EXPECT().List(gomock.Any()).Return(items, nil)

	err := svc.DeleteSingle(context.Background(), "a")
	assert.ErrorIs(t, err, plan.ErrInstallmentSeries)
}

func TestService_DeleteSeries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := plan.NewMockRepository(ctrl)
	svc := plan.NewService(repo)

	items := []plan.Item{
		{ID: "a", SeriesID: "s1"},
		{ID: "b", SeriesID: "s1"},
		{ID: "c", SeriesID: "s2"},
	}

	repo.EXPECT().List(gomock.Any()).Return(items, nil)
	repo.EXPECT().
		ReplaceAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got []plan.Item) error {
			require.Len(t, got, 1)
			assert.Equal(t, "c", got[0].ID)
			return nil
		})

	require.NoError(t, svc.DeleteSeries(context.Background(), "s1"))
}

func TestService_DeleteSeries_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := plan.NewMockRepository(ctrl)
	svc := plan.NewService(repo)

	repo.EXPECT().List(gomock.Any()).Return([]plan.Item{{ID: "a"}}, nil)

	err := svc.DeleteSeries(context.Background(), "nope")
	assert.ErrorIs(t, err, plan.ErrNotFound)
}

func TestService_RepoErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := plan.NewMockRepository(ctrl)
	svc := plan.NewService(repo)

	repo.EXPECT().List(gomock.Any()).Return(nil, errors.New("kv down"))

	_, err := svc.Add(context.Background(), plan.Draft{
		Type: plan.TypeExpense, Name: "Coffee", Amount: 5,
	}, plan.Anchor{Month: 0, Year: 2025})
	assert.Error(t, err)
}
