package model

import "time"

// Keyword maps a literal description substring to a category.
// The same text may appear under different categories, but a single
// category cannot register the same text twice.
type Keyword struct {
	ID         uint      `gorm:"primaryKey" json:"keyword_id"`
	CategoryID string    `gorm:"not null;size:20;uniqueIndex:idx_keywords_text_category" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Text       string    `gorm:"not null;size:100;uniqueIndex:idx_keywords_text_category" json:"keyword"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Keyword) TableName() string {
	return "classification_keywords"
}
