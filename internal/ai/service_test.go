package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/openfma/fma/internal/category"
	"github.com/openfma/fma/internal/plan"
)

func serviceWith(client Client) *Service {
	runner := NewRunner(
		[]Credential{{Source: "primary", Key: "k1"}},
		func(Credential) Client { return client },
		discardLogger(),
	)

	return NewService(runner, "gpt-4.1-nano")
}

func TestService_GeneratePlan_StripsFences(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	client := NewMockClient(ctrl)
	client.EXPECT().
		Completion(ctx, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, messages []Message, opts CompletionOptions) (string, error) {
			require.Len(t, messages, 1)
			assert.Equal(t, "system", messages[0].Role)
			assert.Contains(t, messages[0].Content, "2026")
			assert.Contains(t, messages[0].Content, "save for a bike")
			assert.Equal(t, "gpt-4.1-nano", opts.Model)
			return "```xml\n<FinancialManagementApp></FinancialManagementApp>\n```", nil
		})

	out, err := serviceWith(client).GeneratePlan(ctx, "save for a bike", 2026)
	require.NoError(t, err)
	assert.Equal(t, "<FinancialManagementApp></FinancialManagementApp>", out)
}

func TestService_GeneratePlan_EmptyPrompt(t *testing.T) {
	_, err := serviceWith(nil).GeneratePlan(context.Background(), "   ", 2026)
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestService_Categorize_BuildsCatalogPrompt(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	client := NewMockClient(ctrl)
	client.EXPECT().
		Completion(ctx, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, messages []Message, _ CompletionOptions) (string, error) {
			prompt := messages[0].Content
			assert.Contains(t, prompt, "Rent\nGroceries")
			assert.Contains(t, prompt, "cat_salary: salary")
			assert.Contains(t, prompt, "cat_rent: rent")
			return "```json\n{\"mapping\": []}\n```", nil
		})

	income := []category.Definition{{ID: "cat_salary", Type: plan.TypeIncome, TranslationKey: "category.income.salary"}}
	expense := []category.Definition{{ID: "cat_rent", Type: plan.TypeExpense, TranslationKey: "category.expense.rent"}}

	out, err := serviceWith(client).Categorize(ctx, []string{"Rent", "Groceries"}, income, expense)
	require.NoError(t, err)
	assert.Equal(t, `{"mapping": []}`, out)
}
