// Package report aggregates stored transactions into income/expense
// summaries per company and per category.
package report

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

// Totals holds aggregated income and expense for one grouping.
type Totals struct {
	Count   int             `json:"transaction_count"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// CompanySummary is the aggregate for a single company.
type CompanySummary struct {
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
	Totals
}

// CategorySummary is the aggregate for a single category.
type CategorySummary struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	CompanyID    string `json:"company_id"`
	Totals
}

// Summary is the full aggregation over the stored transaction set.
type Summary struct {
	Totals
	Companies  []CompanySummary  `json:"companies"`
	Categories []CategorySummary `json:"categories"`
}

// Build reads the store and aggregates all transactions. Unclassified
// transactions contribute to the overall totals but to no company or
// category row.
func Build(ctx context.Context, st store.Store) (*Summary, error) {
	txns, err := st.Transactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading transactions: %w", err)
	}
	companies, err := st.Companies(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading companies: %w", err)
	}
	categories, err := st.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading categories: %w", err)
	}

	summary := &Summary{}
	byCompany := make(map[string]*Totals, len(companies))
	byCategory := make(map[string]*Totals, len(categories))

	for _, txn := range txns {
		summary.Totals.add(txn)
		if txn.CompanyID != nil {
			totals, ok := byCompany[*txn.CompanyID]
			if !ok {
				totals = &Totals{}
				byCompany[*txn.CompanyID] = totals
			}
			totals.add(txn)
		}
		if txn.CategoryID != nil {
			totals, ok := byCategory[*txn.CategoryID]
			if !ok {
				totals = &Totals{}
				byCategory[*txn.CategoryID] = totals
			}
			totals.add(txn)
		}
	}

	for _, c := range companies {
		row := CompanySummary{CompanyID: c.ID, CompanyName: c.Name}
		if totals, ok := byCompany[c.ID]; ok {
			row.Totals = *totals
		}
		row.Net = row.Income.Sub(row.Expense)
		summary.Companies = append(summary.Companies, row)
	}
	for _, c := range categories {
		row := CategorySummary{CategoryID: c.ID, CategoryName: c.Name, CompanyID: c.CompanyID}
		if totals, ok := byCategory[c.ID]; ok {
			row.Totals = *totals
		}
		row.Net = row.Income.Sub(row.Expense)
		summary.Categories = append(summary.Categories, row)
	}
	summary.Net = summary.Income.Sub(summary.Expense)

	return summary, nil
}

func (t *Totals) add(txn model.Transaction) {
	t.Count++
	switch txn.Kind {
	case model.KindIncome:
		t.Income = t.Income.Add(txn.Amount)
	case model.KindExpense:
		t.Expense = t.Expense.Add(txn.Amount)
	}
}
