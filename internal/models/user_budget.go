package models

import "github.com/shopspring/decimal"

// UserBudget is a user's monthly amount for one category. A user's budgets
// are always replaced as a whole set.
type UserBudget struct {
	Base
	UserID        string          `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID    string          `gorm:"type:uuid;not null" json:"category_id"`
	MonthlyAmount decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"monthly_amount"`
	Percentage    decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"percentage"`

	Category BudgetCategory `gorm:"foreignKey:CategoryID" json:"category"`
}
