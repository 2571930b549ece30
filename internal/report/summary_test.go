package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/store/memory"
)

func TestBuild(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	require.NoError(t, st.CreateCompany(ctx, &model.Company{ID: "com_1", Name: "Acme"}))
	require.NoError(t, st.CreateCategory(ctx, &model.Category{ID: "cat_1", CompanyID: "com_1", Name: "Sales", Type: model.CategoryTypeIncome}))
	require.NoError(t, st.CreateCategory(ctx, &model.Category{ID: "cat_2", CompanyID: "com_1", Name: "Meals", Type: model.CategoryTypeExpense}))

	add := func(desc string, kind model.TransactionKind, amount int64, companyID, categoryID string) {
		txn := &model.Transaction{
			Date:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			Description: desc,
			Kind:        kind,
			Amount:      decimal.NewFromInt(amount),
		}
		require.NoError(t, st.CreateTransaction(ctx, txn))
		if companyID != "" {
			require.NoError(t, st.ClassifyTransaction(ctx, txn.ID, companyID, categoryID))
		}
	}

	add("PAYOUT", model.KindIncome, 1000, "com_1", "cat_1")
	add("COFFEE", model.KindExpense, 50, "com_1", "cat_2")
	add("LUNCH", model.KindExpense, 30, "com_1", "cat_2")
	add("MYSTERY", model.KindExpense, 5, "", "")

	summary, err := Build(ctx, st)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Count)
	assert.Equal(t, "1000", summary.Income.String())
	assert.Equal(t, "85", summary.Expense.String())
	assert.Equal(t, "915", summary.Net.String())

	require.Len(t, summary.Companies, 1)
	acme := summary.Companies[0]
	assert.Equal(t, "Acme", acme.CompanyName)
	assert.Equal(t, 3, acme.Count) // the unclassified row belongs to no company
	assert.Equal(t, "1000", acme.Income.String())
	assert.Equal(t, "80", acme.Expense.String())
	assert.Equal(t, "920", acme.Net.String())

	require.Len(t, summary.Categories, 2)
	sales, meals := summary.Categories[0], summary.Categories[1]
	assert.Equal(t, "Sales", sales.CategoryName)
	assert.Equal(t, "1000", sales.Income.String())
	assert.Equal(t, "Meals", meals.CategoryName)
	assert.Equal(t, 2, meals.Count)
	assert.Equal(t, "80", meals.Expense.String())
	assert.Equal(t, "-80", meals.Net.String())
}

func TestBuild_Empty(t *testing.T) {
	summary, err := Build(context.Background(), memory.New())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Count)
	assert.True(t, summary.Income.IsZero())
	assert.True(t, summary.Expense.IsZero())
	assert.Empty(t, summary.Companies)
	assert.Empty(t, summary.Categories)
}
