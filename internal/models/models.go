// Package models holds the GORM models persisted by the API.
package models

// All lists every model, in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&UserProfile{},
		&BudgetCategory{},
		&UserBudget{},
		&Expense{},
		&FinancialTip{},
		&AuditLog{},
	}
}
