package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is one logged purchase. Expenses are never edited, only deleted.
type Expense struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index:idx_expenses_user_date" json:"user_id"`
	CategoryID  string          `gorm:"type:uuid;not null" json:"category_id"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Description string          `gorm:"not null" json:"description"`
	ExpenseDate time.Time       `gorm:"type:date;not null;index:idx_expenses_user_date" json:"expense_date"`

	Category BudgetCategory `gorm:"foreignKey:CategoryID" json:"category"`
}
