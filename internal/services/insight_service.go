package services

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/wetalkinmedia/PocketWatcha2/internal/advice"
	"github.com/wetalkinmedia/PocketWatcha2/internal/analytics"
	"github.com/wetalkinmedia/PocketWatcha2/internal/cache"
	apperrors "github.com/wetalkinmedia/PocketWatcha2/internal/errors"
	"github.com/wetalkinmedia/PocketWatcha2/internal/logger"
	"github.com/wetalkinmedia/PocketWatcha2/internal/models"
)

// Insight views, used in memo keys.
const (
	ViewReport   = "report"
	ViewAdvice   = "advice"
	ViewTrend    = "trend"
	ViewStats    = "stats"
	ViewOverview = "overview"
)

// insightService computes analytics views and memoizes them per user, view
// and period. Any budget or expense write must call Invalidate.
type insightService struct {
	db       *gorm.DB
	expenses ExpenseServicer
	profiles ProfileServicer
	store    cache.Store
	ttl      time.Duration
}

// NewInsightService creates a new InsightServicer.
func NewInsightService(db *gorm.DB, expenses ExpenseServicer, profiles ProfileServicer, store cache.Store, ttl time.Duration) InsightServicer {
	return &insightService{db: db, expenses: expenses, profiles: profiles, store: store, ttl: ttl}
}

// Report returns the month-to-date variance report.
func (s *insightService) Report(ctx context.Context, userID string, today time.Time) (*analytics.Report, error) {
	key := cache.Key(userID, ViewReport, period(today))
	return memo(ctx, s, key, func() (*analytics.Report, error) {
		budgets, expenses, err := s.load(ctx, userID, analytics.StartOfMonth(today), today)
		if err != nil {
			return nil, err
		}
		r := analytics.Analyze(budgets, expenses, today)
		return &r, nil
	})
}

// Advice returns the ordered advice list for the month to date.
func (s *insightService) Advice(ctx context.Context, userID string, today time.Time) ([]advice.Advice, error) {
	key := cache.Key(userID, ViewAdvice, period(today))
	return memo(ctx, s, key, func() ([]advice.Advice, error) {
		budgets, expenses, err := s.load(ctx, userID, analytics.StartOfMonth(today), today)
		if err != nil {
			return nil, err
		}
		return advice.Generate(budgets, expenses, today), nil
	})
}

// Trend returns daily spending points for the range.
func (s *insightService) Trend(ctx context.Context, userID string, r analytics.Range, today time.Time) ([]analytics.TrendPoint, error) {
	key := cache.Key(userID, ViewTrend, string(r)+":"+period(today))
	return memo(ctx, s, key, func() ([]analytics.TrendPoint, error) {
		budgets, expenses, err := s.load(ctx, userID, r.Start(today), today)
		if err != nil {
			return nil, err
		}
		total := 0.0
		for _, b := range budgets {
			total += b.Amount
		}
		return analytics.Trend(expenses, total, r, today), nil
	})
}

// Stats returns the analytics summary for the range.
func (s *insightService) Stats(ctx context.Context, userID string, r analytics.Range, today time.Time) (*analytics.Stats, error) {
	key := cache.Key(userID, ViewStats, string(r)+":"+period(today))
	return memo(ctx, s, key, func() (*analytics.Stats, error) {
		budgets, expenses, err := s.load(ctx, userID, r.Start(today), today)
		if err != nil {
			return nil, err
		}
		st := analytics.Summarize(budgets, expenses, r, today)
		return &st, nil
	})
}

// Overview returns the dashboard summary for today.
func (s *insightService) Overview(ctx context.Context, userID string, today time.Time) (*analytics.Overview, error) {
	key := cache.Key(userID, ViewOverview, period(today))
	return memo(ctx, s, key, func() (*analytics.Overview, error) {
		budgets, expenses, err := s.load(ctx, userID, analytics.StartOfMonth(today), today)
		if err != nil {
			return nil, err
		}
		o := analytics.Summary(budgets, expenses, today)
		return &o, nil
	})
}

// Invalidate drops every memoized view of the user.
func (s *insightService) Invalidate(ctx context.Context, userID string) {
	if err := s.store.DeletePrefix(ctx, cache.UserPrefix(userID)); err != nil {
		logger.Get().Errorw("failed to invalidate insights", "user_id", userID, "error", err)
	}
}

// load checks the profile gate and fetches budgets and expenses in parallel.
func (s *insightService) load(ctx context.Context, userID string, from, to time.Time) ([]analytics.Budget, []analytics.Expense, error) {
	var (
		budgets  []models.UserBudget
		expenses []models.Expense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.profiles.RequireComplete(userID)
		return err
	})
	g.Go(func() error {
		if err := s.db.WithContext(gctx).Preload("Category").Where("user_id = ?", userID).Find(&budgets).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		expenses, err = s.expenses.ExpensesBetween(gctx, userID, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	sort.SliceStable(budgets, func(i, j int) bool {
		return budgets[i].Category.DisplayOrder < budgets[j].Category.DisplayOrder
	})
	return toAnalyticsBudgets(budgets), toAnalyticsExpenses(expenses), nil
}

// memo returns the cached value at key or computes and stores it. Cache
// failures are logged and fall through to computing.
func memo[T any](ctx context.Context, s *insightService, key string, compute func() (T, error)) (T, error) {
	var cached T
	hit, err := s.store.Get(ctx, key, &cached)
	if err != nil {
		logger.Get().Warnw("insight cache read failed", "key", key, "error", err)
	}
	if hit {
		return cached, nil
	}

	v, err := compute()
	if err != nil {
		return v, err
	}
	if err := s.store.Set(ctx, key, v, s.ttl); err != nil {
		logger.Get().Warnw("insight cache write failed", "key", key, "error", err)
	}
	return v, nil
}

func period(today time.Time) string {
	return today.Format(analytics.DateLayout)
}

func toAnalyticsBudgets(in []models.UserBudget) []analytics.Budget {
	out := make([]analytics.Budget, 0, len(in))
	for _, b := range in {
		out = append(out, analytics.Budget{
			CategoryID: b.CategoryID,
			Category:   b.Category.Name,
			Amount:     b.MonthlyAmount.InexactFloat64(),
		})
	}
	return out
}

func toAnalyticsExpenses(in []models.Expense) []analytics.Expense {
	out := make([]analytics.Expense, 0, len(in))
	for _, e := range in {
		out = append(out, analytics.Expense{
			ID:          e.ID,
			CategoryID:  e.CategoryID,
			Amount:      e.Amount.InexactFloat64(),
			Description: e.Description,
			Date:        e.ExpenseDate,
		})
	}
	return out
}
