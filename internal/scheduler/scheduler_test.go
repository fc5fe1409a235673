package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wetalkinmedia/PocketWatcha2/internal/cache"
	"github.com/wetalkinmedia/PocketWatcha2/internal/models"
	"github.com/wetalkinmedia/PocketWatcha2/internal/services"
	"github.com/wetalkinmedia/PocketWatcha2/internal/testutil"
)

func TestAdd(t *testing.T) {
	s := New()
	noop := func(context.Context) error { return nil }

	if err := s.Add("purge", "@every 10m", noop); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add("tips", "5 0 * * *", noop); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add("broken", "every now and then", noop); err == nil {
		t.Error("expected an invalid spec to fail")
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 jobs, got %d", s.Len())
	}
}

func TestStartStop(t *testing.T) {
	s := New()
	ran := make(chan struct{}, 1)
	_ = s.Add("tick", "@every 1s", func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return errors.New("logged, not fatal")
	})
	s.Start()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Error("job did not run")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}

func TestPurgeCache(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	_ = store.Set(ctx, "gone", 1, time.Nanosecond)
	_ = store.Set(ctx, "kept", 1, time.Hour)
	time.Sleep(time.Millisecond)

	if err := PurgeCache(store)(ctx); err != nil {
		t.Fatalf("PurgeCache: %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 entry left, got %d", store.Len())
	}
}

type tipFunc func(time.Time) (*models.FinancialTip, error)

func (f tipFunc) DailyTip(date time.Time) (*models.FinancialTip, error) { return f(date) }

func TestWarmDailyTip(t *testing.T) {
	day := time.Date(2026, time.May, 4, 0, 5, 0, 0, time.UTC)
	clock := func() time.Time { return day }

	t.Run("asks for the current day", func(t *testing.T) {
		var got time.Time
		tips := tipFunc(func(date time.Time) (*models.FinancialTip, error) {
			got = date
			return &models.FinancialTip{Title: "Pay Yourself First"}, nil
		})

		if err := WarmDailyTip(tips, clock)(context.Background()); err != nil {
			t.Fatalf("WarmDailyTip: %v", err)
		}
		if !got.Equal(day) {
			t.Errorf("expected %v, got %v", day, got)
		}
	})

	t.Run("returns lookup errors", func(t *testing.T) {
		tips := tipFunc(func(time.Time) (*models.FinancialTip, error) {
			return nil, errors.New("no tips")
		})

		if err := WarmDailyTip(tips, clock)(context.Background()); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("fills the tip cache", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store := cache.NewMemoryStore()
		svc := services.NewTipService(db, store)

		if err := WarmDailyTip(svc, clock)(context.Background()); err != nil {
			t.Fatalf("WarmDailyTip: %v", err)
		}
		if store.Len() != 1 {
			t.Fatalf("expected the day's tip to be cached, store has %d entries", store.Len())
		}

		db.Unscoped().Where("1 = 1").Delete(&models.FinancialTip{})
		if _, err := svc.DailyTip(day); err != nil {
			t.Errorf("expected the warmed tip to be served from cache: %v", err)
		}
	})
}
