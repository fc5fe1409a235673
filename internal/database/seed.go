package database

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wetalkinmedia/PocketWatcha2/internal/models"
)

// DefaultCategories are the global budget categories. Names match the
// allocation engine's categories and the recommended percentages sum to 100.
var DefaultCategories = []models.BudgetCategory{
	{Name: "Housing", Color: "#3B82F6", Icon: "home", RecommendedPercentage: decimal.NewFromInt(30), DisplayOrder: 1},
	{Name: "Food", Color: "#10B981", Icon: "utensils", RecommendedPercentage: decimal.NewFromInt(12), DisplayOrder: 2},
	{Name: "Transportation", Color: "#F59E0B", Icon: "car", RecommendedPercentage: decimal.NewFromInt(10), DisplayOrder: 3},
	{Name: "Healthcare", Color: "#EF4444", Icon: "heart", RecommendedPercentage: decimal.NewFromInt(5), DisplayOrder: 4},
	{Name: "Savings", Color: "#8B5CF6", Icon: "piggy-bank", RecommendedPercentage: decimal.NewFromInt(15), DisplayOrder: 5},
	{Name: "Debt", Color: "#6B7280", Icon: "credit-card", RecommendedPercentage: decimal.NewFromInt(10), DisplayOrder: 6},
	{Name: "Education", Color: "#0EA5E9", Icon: "book", RecommendedPercentage: decimal.NewFromInt(3), DisplayOrder: 7},
	{Name: "Childcare", Color: "#F472B6", Icon: "baby", RecommendedPercentage: decimal.NewFromInt(0), DisplayOrder: 8},
	{Name: "Entertainment", Color: "#EC4899", Icon: "film", RecommendedPercentage: decimal.NewFromInt(10), DisplayOrder: 9},
	{Name: "Other", Color: "#A3A3A3", Icon: "more-horizontal", RecommendedPercentage: decimal.NewFromInt(5), DisplayOrder: 10},
}

// DefaultTips seed the daily tip rotation.
var DefaultTips = []models.FinancialTip{
	{Title: "Pay Yourself First", Content: "Move money into savings as soon as you are paid, before spending on anything else.", Category: "Savings", DisplayOrder: 1},
	{Title: "The 24-Hour Rule", Content: "Wait a day before any unplanned purchase over a set amount. Most impulse urges fade.", Category: "Spending", DisplayOrder: 2},
	{Title: "Build an Emergency Fund", Content: "Aim for three to six months of essential expenses in an easy-to-reach account.", Category: "Savings", DisplayOrder: 3},
	{Title: "Review Subscriptions", Content: "List every recurring charge once a quarter and cancel the ones you no longer use.", Category: "Spending", DisplayOrder: 4},
	{Title: "Tackle High-Interest Debt", Content: "Pay the minimum everywhere, then put every extra dollar on the highest-rate balance.", Category: "Debt", DisplayOrder: 5},
	{Title: "Plan Your Meals", Content: "A weekly meal plan and a shopping list cut food waste and takeout spending.", Category: "Food", DisplayOrder: 6},
	{Title: "Automate Bills", Content: "Automatic payments avoid late fees and protect your credit score.", Category: "Habits", DisplayOrder: 7},
}

// Seed inserts any missing default categories and tips. It is safe to run
// on every start.
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, c := range DefaultCategories {
			c := c
			if err := tx.Where(models.BudgetCategory{Name: c.Name}).FirstOrCreate(&c).Error; err != nil {
				return err
			}
		}
		for _, tip := range DefaultTips {
			tip := tip
			if err := tx.Where(models.FinancialTip{Title: tip.Title}).FirstOrCreate(&tip).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
