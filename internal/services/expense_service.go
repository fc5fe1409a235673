package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/wetalkinmedia/PocketWatcha2/internal/errors"
	"github.com/wetalkinmedia/PocketWatcha2/internal/models"
	"github.com/wetalkinmedia/PocketWatcha2/internal/pagination"
)

const maxDescriptionLength = 255

// expenseService handles expense-related business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// CreateExpense logs an expense. A zero date means today. Only the
// calendar date is kept.
func (s *expenseService) CreateExpense(userID, categoryID string, amount float64, description string, date time.Time) (*models.Expense, error) {
	if !finite(amount) || amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if len(description) > maxDescriptionLength {
		return nil, apperrors.WithMessagef(apperrors.ErrInvalidInput, "description must be at most %d characters", maxDescriptionLength)
	}
	if date.IsZero() {
		date = time.Now()
	}

	var category models.BudgetCategory
	if err := s.db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	expense := &models.Expense{
		UserID:      userID,
		CategoryID:  categoryID,
		Amount:      decimal.NewFromFloat(amount).Round(2),
		Description: description,
		ExpenseDate: civilDate(date),
	}
	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	expense.Category = category
	return expense, nil
}

// GetExpenseByID retrieves an expense by ID for a specific user
func (s *expenseService) GetExpenseByID(userID, expenseID string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Preload("Category").Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// ListExpenses returns a page of the user's expenses, newest first.
func (s *expenseService) ListExpenses(userID string, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	query := func() *gorm.DB {
		q := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)
		return applyExpenseFilters(q, filter)
	}

	var totalItems int64
	if err := query().Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := query().
		Preload("Category").
		Scopes(pagination.Paginate(page)).
		Order("expense_date DESC, created_at DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyExpenseFilters(q *gorm.DB, f ExpenseFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("expense_date >= ?", civilDate(*f.FromDate))
	}
	if f.ToDate != nil {
		q = q.Where("expense_date < ?", civilDate(*f.ToDate).AddDate(0, 0, 1))
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		like := "%" + term + "%"
		q = q.Where("(LOWER(description) LIKE ? OR category_id IN (SELECT id FROM budget_categories WHERE LOWER(name) LIKE ?))", like, like)
	}
	return q
}

// DeleteExpense removes one of the user's expenses.
func (s *expenseService) DeleteExpense(userID, expenseID string) error {
	res := s.db.Where("id = ? AND user_id = ?", expenseID, userID).Delete(&models.Expense{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}

// ExpensesBetween returns the user's expenses dated within [from, to],
// oldest first.
func (s *expenseService) ExpensesBetween(ctx context.Context, userID string, from, to time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND expense_date >= ? AND expense_date < ?", userID, civilDate(from), civilDate(to).AddDate(0, 0, 1)).
		Order("expense_date ASC, created_at ASC").
		Find(&expenses).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// GroupByDate buckets expenses by calendar date, newest date first, keeping
// the input order within each day.
func GroupByDate(expenses []models.Expense) []ExpenseDay {
	index := make(map[string]int)
	days := []ExpenseDay{}
	var totals []decimal.Decimal
	for _, e := range expenses {
		key := e.ExpenseDate.Format(time.DateOnly)
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, ExpenseDay{Date: key})
			totals = append(totals, decimal.Zero)
		}
		days[i].Expenses = append(days[i].Expenses, e)
		totals[i] = totals[i].Add(e.Amount)
	}
	for i := range days {
		days[i].Total = totals[i].Round(2).InexactFloat64()
	}
	sort.SliceStable(days, func(i, j int) bool { return days[i].Date > days[j].Date })
	return days
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
