package services

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wetalkinmedia/PocketWatcha2/internal/allocation"
	apperrors "github.com/wetalkinmedia/PocketWatcha2/internal/errors"
	"github.com/wetalkinmedia/PocketWatcha2/internal/logger"
	"github.com/wetalkinmedia/PocketWatcha2/internal/models"
)

// PercentageTolerance is how far a saved budget's percentages may drift
// from 100.
const PercentageTolerance = 0.1

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// GetUserBudgets returns the user's budgets in category display order.
func (s *budgetService) GetUserBudgets(userID string) ([]models.UserBudget, error) {
	var budgets []models.UserBudget
	if err := s.db.Preload("Category").Where("user_id = ?", userID).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	sort.SliceStable(budgets, func(i, j int) bool {
		return budgets[i].Category.DisplayOrder < budgets[j].Category.DisplayOrder
	})
	return budgets, nil
}

// SaveBudgets replaces the user's whole budget set. Percentages must total
// 100 within PercentageTolerance. Lines with a zero amount are not stored.
func (s *budgetService) SaveBudgets(userID string, lines []BudgetLine) ([]models.UserBudget, error) {
	if len(lines) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one budget line is required")
	}

	seen := make(map[string]bool, len(lines))
	total := 0.0
	for _, l := range lines {
		if l.CategoryID == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category_id is required")
		}
		if seen[l.CategoryID] {
			return nil, apperrors.WithMessagef(apperrors.ErrInvalidInput, "category %s appears more than once", l.CategoryID)
		}
		seen[l.CategoryID] = true
		if !finite(l.MonthlyAmount) || l.MonthlyAmount < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "monthly amounts must be zero or positive")
		}
		if !finite(l.Percentage) || l.Percentage < 0 || l.Percentage > 100 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "percentages must be between 0 and 100")
		}
		total += l.Percentage
	}
	if math.Abs(total-100) > PercentageTolerance {
		return nil, apperrors.WithMessagef(apperrors.ErrAllocationTotal, "total allocation is %.2f%%, must equal 100%%", total)
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	var found int64
	if err := s.db.Model(&models.BudgetCategory{}).Where("id IN ?", ids).Count(&found).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if int(found) != len(ids) {
		return nil, apperrors.ErrCategoryNotFound
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.UserBudget{}).Error; err != nil {
			return err
		}
		for _, l := range lines {
			if l.MonthlyAmount == 0 {
				continue
			}
			b := &models.UserBudget{
				UserID:        userID,
				CategoryID:    l.CategoryID,
				MonthlyAmount: decimal.NewFromFloat(l.MonthlyAmount).Round(2),
				Percentage:    decimal.NewFromFloat(l.Percentage).Round(2),
			}
			if err := tx.Create(b).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("budgets saved", "user_id", userID, "lines", len(lines))
	return s.GetUserBudgets(userID)
}

// ApplyAllocation saves a resolved allocation against the seeded
// categories, matched by name.
func (s *budgetService) ApplyAllocation(userID string, budget allocation.Budget) ([]models.UserBudget, error) {
	byName, err := s.categoriesByName()
	if err != nil {
		return nil, err
	}

	lines := make([]BudgetLine, 0, len(budget.Lines))
	for _, l := range budget.Lines {
		cat, ok := byName[string(l.Category)]
		if !ok {
			return nil, apperrors.WithMessagef(apperrors.ErrCategoryNotFound, "category %s is not configured", l.Category)
		}
		lines = append(lines, BudgetLine{
			CategoryID:    cat.ID,
			MonthlyAmount: l.Amount.InexactFloat64(),
			Percentage:    l.Percentage.InexactFloat64(),
		})
	}
	return s.SaveBudgets(userID, lines)
}

// ApplyRecommended splits monthlyIncome by each category's recommended
// percentage and saves the result.
func (s *budgetService) ApplyRecommended(userID string, monthlyIncome float64) ([]models.UserBudget, error) {
	byName, err := s.categoriesByName()
	if err != nil {
		return nil, err
	}

	pcts := make(map[allocation.Category]float64, len(byName))
	for name, c := range byName {
		pcts[allocation.Category(name)] = c.RecommendedPercentage.InexactFloat64()
	}
	a, err := allocation.FromPercentages(pcts, PercentageTolerance)
	if err != nil {
		return nil, err
	}
	resolved, err := allocation.Resolve(a, monthlyIncome, allocation.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	return s.ApplyAllocation(userID, resolved)
}

func (s *budgetService) categoriesByName() (map[string]models.BudgetCategory, error) {
	var cats []models.BudgetCategory
	if err := s.db.Find(&cats).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	m := make(map[string]models.BudgetCategory, len(cats))
	for _, c := range cats {
		m[c.Name] = c
	}
	return m, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
