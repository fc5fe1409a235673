package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/wetalkinmedia/PocketWatcha2/internal/analytics"
	"github.com/wetalkinmedia/PocketWatcha2/internal/cache"
	apperrors "github.com/wetalkinmedia/PocketWatcha2/internal/errors"
	"github.com/wetalkinmedia/PocketWatcha2/internal/logger"
	"github.com/wetalkinmedia/PocketWatcha2/internal/models"
)

const (
	dailyTipPrefix = "tips:daily:"
	dailyTipTTL    = 25 * time.Hour
)

// tipService handles the financial tip rotation. The pick for each date is
// kept in store until the list changes.
type tipService struct {
	db    *gorm.DB
	store cache.Store
}

// NewTipService creates a new TipServicer.
func NewTipService(db *gorm.DB, store cache.Store) TipServicer {
	return &tipService{db: db, store: store}
}

// ListTips returns every tip in display order.
func (s *tipService) ListTips() ([]models.FinancialTip, error) {
	var tips []models.FinancialTip
	if err := s.db.Order("display_order ASC, created_at ASC").Find(&tips).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tips, nil
}

// DailyTip picks the tip for date by cycling through the list on the day
// of the year.
func (s *tipService) DailyTip(date time.Time) (*models.FinancialTip, error) {
	ctx := context.Background()
	key := dailyTipPrefix + date.Format(analytics.DateLayout)

	var cached models.FinancialTip
	hit, err := s.store.Get(ctx, key, &cached)
	if err != nil {
		logger.Get().Warnw("tip cache read failed", "key", key, "error", err)
	}
	if hit {
		return &cached, nil
	}

	tips, err := s.ListTips()
	if err != nil {
		return nil, err
	}
	if len(tips) == 0 {
		return nil, apperrors.ErrNoTips
	}
	tip := tips[date.YearDay()%len(tips)]
	if err := s.store.Set(ctx, key, tip, dailyTipTTL); err != nil {
		logger.Get().Warnw("tip cache write failed", "key", key, "error", err)
	}
	return &tip, nil
}

// CreateTip adds a tip to the rotation.
func (s *tipService) CreateTip(title, content, category string, displayOrder int) (*models.FinancialTip, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title and content are required")
	}

	tip := &models.FinancialTip{
		Title:        title,
		Content:      content,
		Category:     strings.TrimSpace(category),
		DisplayOrder: displayOrder,
	}
	if err := s.db.Create(tip).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.store.DeletePrefix(context.Background(), dailyTipPrefix); err != nil {
		logger.Get().Errorw("failed to reset daily tips", "error", err)
	}
	return tip, nil
}
