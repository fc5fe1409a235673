package services

import (
	"context"
	"time"

	"github.com/wetalkinmedia/PocketWatcha2/internal/advice"
	"github.com/wetalkinmedia/PocketWatcha2/internal/allocation"
	"github.com/wetalkinmedia/PocketWatcha2/internal/analytics"
	"github.com/wetalkinmedia/PocketWatcha2/internal/career"
	"github.com/wetalkinmedia/PocketWatcha2/internal/demographic"
	"github.com/wetalkinmedia/PocketWatcha2/internal/models"
	"github.com/wetalkinmedia/PocketWatcha2/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID string, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// ProfileInput holds the editable profile fields. Salary is annual.
type ProfileInput struct {
	FirstName          string
	LastName           string
	Age                int
	Salary             float64
	ZipCode            string
	PhoneNumber        string
	RelationshipStatus string
	Occupation         string
	City               string
	Currency           string
	LivingSituation    string
}

// PlannerInput is everything the planner needs about one person.
type PlannerInput struct {
	MonthlyIncome   float64                     `json:"monthly_income"`
	Currency        string                      `json:"currency"`
	AgeGroup        demographic.AgeGroup        `json:"age_group"`
	LivingSituation demographic.LivingSituation `json:"living_situation"`
	City            string                      `json:"city"`
}

// ProfileServicer defines the contract for profile-related business logic.
type ProfileServicer interface {
	GetProfile(userID string) (*models.UserProfile, error)
	UpsertProfile(userID string, in ProfileInput) (*models.UserProfile, error)
	// CalculatorInputs derives planner inputs from a complete profile.
	CalculatorInputs(userID string) (*PlannerInput, error)
	// RequireComplete returns ErrProfileIncomplete unless the profile is complete.
	RequireComplete(userID string) (*models.UserProfile, error)
}

// CategoryServicer defines the contract for category lookups.
type CategoryServicer interface {
	ListCategories() ([]models.BudgetCategory, error)
	GetCategoryByID(categoryID string) (*models.BudgetCategory, error)
}

// BudgetLine is one requested category amount in a budget save.
type BudgetLine struct {
	CategoryID    string
	MonthlyAmount float64
	Percentage    float64
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	GetUserBudgets(userID string) ([]models.UserBudget, error)
	SaveBudgets(userID string, lines []BudgetLine) ([]models.UserBudget, error)
	ApplyAllocation(userID string, budget allocation.Budget) ([]models.UserBudget, error)
	ApplyRecommended(userID string, monthlyIncome float64) ([]models.UserBudget, error)
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	CategoryID *string
	Search     string
}

// ExpenseDay groups the expenses logged on one date.
type ExpenseDay struct {
	Date     string           `json:"date"`
	Total    float64          `json:"total"`
	Expenses []models.Expense `json:"expenses"`
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID, categoryID string, amount float64, description string, date time.Time) (*models.Expense, error)
	GetExpenseByID(userID, expenseID string) (*models.Expense, error)
	ListExpenses(userID string, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	DeleteExpense(userID, expenseID string) error
	ExpensesBetween(ctx context.Context, userID string, from, to time.Time) ([]models.Expense, error)
}

// Plan is the full calculator result.
type Plan struct {
	Input        PlannerInput          `json:"input"`
	Allocation   allocation.Allocation `json:"allocation"`
	Budget       allocation.Budget     `json:"budget"`
	Careers      []career.Suggestion   `json:"careers"`
	CareerAdvice string                `json:"career_advice"`
}

// PlannerServicer runs the allocation engine and career generator.
type PlannerServicer interface {
	Calculate(in PlannerInput) (*Plan, error)
}

// InsightServicer serves memoized analytics views for a user.
type InsightServicer interface {
	Report(ctx context.Context, userID string, today time.Time) (*analytics.Report, error)
	Advice(ctx context.Context, userID string, today time.Time) ([]advice.Advice, error)
	Trend(ctx context.Context, userID string, r analytics.Range, today time.Time) ([]analytics.TrendPoint, error)
	Stats(ctx context.Context, userID string, r analytics.Range, today time.Time) (*analytics.Stats, error)
	Overview(ctx context.Context, userID string, today time.Time) (*analytics.Overview, error)
	Invalidate(ctx context.Context, userID string)
}

// TipServicer defines the contract for the daily tip rotation.
type TipServicer interface {
	ListTips() ([]models.FinancialTip, error)
	DailyTip(date time.Time) (*models.FinancialTip, error)
	CreateTip(title, content, category string, displayOrder int) (*models.FinancialTip, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
