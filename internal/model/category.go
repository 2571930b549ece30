package model

import "time"

// CategoryType classifies accounting categories.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeNeutral CategoryType = "neutral"
)

// Category is an accounting category owned by exactly one company.
// Deleting a company deletes its categories.
type Category struct {
	ID        string       `gorm:"primaryKey;size:20" json:"category_id"`
	CompanyID string       `gorm:"not null;size:20;index" json:"company_id"`
	Company   *Company     `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Name      string       `gorm:"not null;size:100" json:"category_name"`
	Type      CategoryType `gorm:"not null;size:10;default:expense" json:"category_type"`
	Keywords  []Keyword    `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"keywords,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}
