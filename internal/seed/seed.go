// Package seed creates the default companies, categories, and
// classification keywords for a fresh installation.
package seed

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

// CategorySeed describes one category and its keywords.
type CategorySeed struct {
	ID       string
	Name     string
	Type     model.CategoryType
	Keywords []string
}

// CompanySeed describes one company and its categories.
type CompanySeed struct {
	ID         string
	Name       string
	Categories []CategorySeed
}

// Defaults returns the built-in seed data.
func Defaults() []CompanySeed {
	return []CompanySeed{
		{
			ID:   "com_1",
			Name: "Alpha Commerce",
			Categories: []CategorySeed{
				{ID: "cat_101", Name: "Sales", Type: model.CategoryTypeIncome, Keywords: []string{"STRIPE", "SHOPIFY PAYOUT"}},
				{ID: "cat_102", Name: "Meals", Type: model.CategoryTypeExpense, Keywords: []string{"DOORDASH", "UBER EATS"}},
				{ID: "cat_103", Name: "Office Supplies", Type: model.CategoryTypeExpense, Keywords: []string{"OFFICE DEPOT"}},
			},
		},
		{
			ID:   "com_2",
			Name: "Beta Commerce",
			Categories: []CategorySeed{
				{ID: "cat_201", Name: "Transportation", Type: model.CategoryTypeExpense, Keywords: []string{"UBER TRIP", "TAXI"}},
				{ID: "cat_202", Name: "Telecom", Type: model.CategoryTypeExpense, Keywords: []string{"VERIZON", "T-MOBILE"}},
				{ID: "cat_203", Name: "Bank Fees", Type: model.CategoryTypeExpense, Keywords: []string{"WIRE FEE", "SERVICE CHARGE"}},
				{ID: "cat_204", Name: "Employee Welfare", Type: model.CategoryTypeExpense, Keywords: []string{"STARBUCKS"}},
			},
		},
	}
}

// Apply writes seed data to the store. Existing rows are left alone, so
// re-running seed on a populated store is safe.
func Apply(ctx context.Context, st store.Store, seeds []CompanySeed) error {
	for _, cs := range seeds {
		company := model.Company{ID: cs.ID, Name: cs.Name}
		if err := st.CreateCompany(ctx, &company); err != nil && !isDuplicate(err) {
			return fmt.Errorf("creating company %s: %w", cs.ID, err)
		}
		for _, cat := range cs.Categories {
			category := model.Category{
				ID:        cat.ID,
				CompanyID: cs.ID,
				Name:      cat.Name,
				Type:      cat.Type,
			}
			if err := st.CreateCategory(ctx, &category); err != nil && !isDuplicate(err) {
				return fmt.Errorf("creating category %s: %w", cat.ID, err)
			}
			for _, text := range cat.Keywords {
				keyword := model.Keyword{CategoryID: cat.ID, Text: text}
				if err := st.CreateKeyword(ctx, &keyword); err != nil {
					if errors.Is(err, store.ErrDuplicateKeyword) {
						continue
					}
					return fmt.Errorf("creating keyword %q: %w", text, err)
				}
			}
		}
	}
	return nil
}

func isDuplicate(err error) bool {
	return errors.Is(err, store.ErrDuplicateKeyword) || errors.Is(err, gorm.ErrDuplicatedKey)
}
