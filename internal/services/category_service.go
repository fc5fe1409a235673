package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/wetalkinmedia/PocketWatcha2/internal/errors"
	"github.com/wetalkinmedia/PocketWatcha2/internal/models"
)

// categoryService serves the global, seeded budget categories.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// ListCategories returns every category in display order.
func (s *categoryService) ListCategories() ([]models.BudgetCategory, error) {
	var cats []models.BudgetCategory
	if err := s.db.Order("display_order ASC, name ASC").Find(&cats).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return cats, nil
}

// GetCategoryByID retrieves one category.
func (s *categoryService) GetCategoryByID(categoryID string) (*models.BudgetCategory, error) {
	var cat models.BudgetCategory
	if err := s.db.Where("id = ?", categoryID).First(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &cat, nil
}
