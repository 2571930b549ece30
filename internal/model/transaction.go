package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the derived direction of a transaction.
type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

// Transaction is one imported bank statement row. Rows are created
// unclassified during import and updated in place by the classifier.
// Company and category links survive as NULL when their referent is
// deleted; the rows themselves are only removed by a re-import.
type Transaction struct {
	ID            uint            `gorm:"primaryKey" json:"transaction_id"`
	Date          time.Time       `gorm:"not null;index" json:"transaction_date"`
	Description   string          `gorm:"not null;size:200" json:"description"`
	IncomeAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"income_amount"`
	ExpenseAmount decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"expense_amount"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"balance_after"`
	Branch        string          `gorm:"size:100" json:"branch"`
	CompanyID     *string         `gorm:"size:20;index" json:"company_id"`
	Company       *Company        `gorm:"foreignKey:CompanyID;constraint:OnDelete:SET NULL" json:"company,omitempty"`
	CategoryID    *string         `gorm:"size:20;index" json:"category_id"`
	Category      *Category       `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Kind          TransactionKind `gorm:"not null;size:10" json:"transaction_type"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Classified    bool            `gorm:"not null;default:false;index" json:"is_classified"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
