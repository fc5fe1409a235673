package models

import "github.com/shopspring/decimal"

// BudgetCategory is a global, seeded spending category. The recommended
// percentages of all categories sum to 100.
type BudgetCategory struct {
	Base
	Name                  string          `gorm:"uniqueIndex;not null" json:"name"`
	Color                 string          `json:"color"`
	Icon                  string          `json:"icon"`
	RecommendedPercentage decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"recommended_percentage"`
	DisplayOrder          int             `gorm:"not null;default:0" json:"display_order"`
}
