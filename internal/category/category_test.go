package category_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfma/fma/internal/category"
	"github.com/openfma/fma/internal/kv"
	"github.com/openfma/fma/internal/plan"
)

func TestBuiltInCatalogs(t *testing.T) {
	assert.Len(t, category.Income, 40)
	assert.Len(t, category.Expense, 40)

	for _, c := range category.Income {
		assert.Equal(t, plan.TypeIncome, c.Type)
		assert.True(t, c.IsSystem())
	}

	for _, c := range category.Expense {
		assert.Equal(t, plan.TypeExpense, c.Type)
	}
}

func TestDefinition_Label(t *testing.T) {
	system := category.Definition{TranslationKey: "category.income.side_hustle"}
	assert.Equal(t, "side_hustle", system.Label())

	user := category.Definition{TranslationKey: "My Custom Cat"}
	assert.Equal(t, "My Custom Cat", user.Label())
}

func TestCatalog_MergesUserCategories(t *testing.T) {
	user := []category.Definition{
		{ID: "user_1", Type: plan.TypeIncome, TranslationKey: "Lemonade Stand"},
		{ID: "user_2", Type: plan.TypeExpense, TranslationKey: "Aquarium"},
	}

	income, expense := category.Catalog(user)
	assert.Len(t, income, 41)
	assert.Len(t, expense, 41)
	assert.Equal(t, "user_1", income[len(income)-1].ID)
	assert.Equal(t, "user_2", expense[len(expense)-1].ID)
}

func TestService_CRUD(t *testing.T) {
	ctx := context.Background()
	svc := category.NewService(kv.NewMemory())

	created, err := svc.Create(ctx, "Aquarium", plan.TypeExpense)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Aquarium", created.TranslationKey)

	cats, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)

	require.NoError(t, svc.Rename(ctx, created.ID, "Fish Tank"))

	cats, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Fish Tank", cats[0].TranslationKey)

	require.NoError(t, svc.Delete(ctx, created.ID))

	cats, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := category.NewService(kv.NewMemory())

	_, err := svc.Create(ctx, "", plan.TypeExpense)
	assert.ErrorIs(t, err, category.ErrEmptyName)

	_, err = svc.Create(ctx, "Stuff", plan.Type("Sideways"))
	assert.ErrorIs(t, err, category.ErrInvalidType)

	assert.ErrorIs(t, svc.Rename(ctx, "missing", "Name"), category.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "missing"), category.ErrNotFound)
}
