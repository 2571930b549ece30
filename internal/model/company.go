package model

import "time"

// Company is a business entity that transactions are attributed to.
type Company struct {
	ID         string     `gorm:"primaryKey;size:20" json:"company_id"`
	Name       string     `gorm:"not null;size:100" json:"company_name"`
	Categories []Category `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"categories,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (Company) TableName() string {
	return "companies"
}
