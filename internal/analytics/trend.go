package analytics

import (
	"sort"
	"time"

	apperrors "github.com/wetalkinmedia/PocketWatcha2/internal/errors"
)

// Range is a trend window.
type Range string

const (
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeYear  Range = "year"
)

// ParseRange validates a raw range. Empty means month.
func ParseRange(s string) (Range, error) {
	switch Range(s) {
	case "":
		return RangeMonth, nil
	case RangeWeek, RangeMonth, RangeYear:
		return Range(s), nil
	}
	return "", apperrors.WithMessagef(apperrors.ErrInvalidInput, "invalid range %q", s)
}

// Start is the first day of the window ending on today. A week looks back
// seven days; a month starts on the 1st; a year starts on January 1st.
func (r Range) Start(today time.Time) time.Time {
	today = civil(today)
	switch r {
	case RangeWeek:
		return today.AddDate(0, 0, -7)
	case RangeYear:
		return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return StartOfMonth(today)
	}
}

// TrendPoint is one day of spending against the flat daily budget.
type TrendPoint struct {
	Date   string  `json:"date"`
	Spent  float64 `json:"spent"`
	Budget float64 `json:"budget"`
}

// Trend returns one point per calendar day in [r.Start(today), today].
// Days with no expenses are present with zero spend. The daily budget is
// totalBudget/30 for every point.
func Trend(expenses []Expense, totalBudget float64, r Range, today time.Time) []TrendPoint {
	today = civil(today)
	start := r.Start(today)

	daily := make(map[string]float64)
	for _, e := range Between(expenses, start, today) {
		daily[civil(e.Date).Format(DateLayout)] += e.Amount
	}

	dailyBudget := round2(totalBudget / 30)
	var out []TrendPoint
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format(DateLayout)
		out = append(out, TrendPoint{Date: key, Spent: round2(daily[key]), Budget: dailyBudget})
	}
	return out
}

// CategorySpend is one slice of the spending breakdown.
type CategorySpend struct {
	CategoryID string  `json:"category_id"`
	Category   string  `json:"category"`
	Spent      float64 `json:"spent"`
	Budget     float64 `json:"budget"`
	Percentage float64 `json:"percentage"`
}

// Stats summarizes a trend window.
type Stats struct {
	Range       Range           `json:"range"`
	TotalSpent  float64         `json:"total_spent"`
	TotalBudget float64         `json:"total_budget"`
	AvgDaily    float64         `json:"avg_daily"`
	TopCategory string          `json:"top_category"`
	Breakdown   []CategorySpend `json:"breakdown"`
	Trend       []TrendPoint    `json:"trend"`
}

// NoTopCategory is reported when nothing was spent in the window.
const NoTopCategory = "None"

// Summarize builds the analytics view for a window: the per-category
// breakdown (categories with spend only), the daily trend, the average daily
// spend and the top category. Ties for top category go to the earlier budget.
func Summarize(budgets []Budget, expenses []Expense, r Range, today time.Time) Stats {
	today = civil(today)
	window := Between(expenses, r.Start(today), today)
	spent := SpentByCategory(window)

	s := Stats{Range: r, TopCategory: NoTopCategory, Breakdown: []CategorySpend{}}
	var top float64
	for _, b := range budgets {
		s.TotalBudget += b.Amount
		v := spent[b.CategoryID]
		if v <= 0 {
			continue
		}
		s.Breakdown = append(s.Breakdown, CategorySpend{
			CategoryID: b.CategoryID,
			Category:   b.Category,
			Spent:      round2(v),
			Budget:     b.Amount,
			Percentage: round2(Percent(v, b.Amount)),
		})
		if v > top {
			top = v
			s.TopCategory = b.Category
		}
	}

	s.Trend = Trend(window, s.TotalBudget, r, today)
	total := Sum(window)
	days := len(s.Trend)
	if days < 1 {
		days = 1
	}
	s.AvgDaily = round2(total / float64(days))
	s.TotalSpent = round2(total)
	s.TotalBudget = round2(s.TotalBudget)
	return s
}

// Overview is the dashboard summary for today.
type Overview struct {
	Report
	TodaySpent      float64 `json:"today_spent"`
	TodayRemaining  float64 `json:"today_remaining"`
	WeeklySpending  float64 `json:"weekly_spending"`
	SavingsGoal     float64 `json:"savings_goal"`
	SavingsProgress float64 `json:"savings_progress"`
}

// SavingsCategory is the category name whose budget is a savings goal.
const SavingsCategory = "Savings"

// Summary builds the dashboard overview. Today's remaining allowance is
// the total budget over 30 less today's spend and may be negative. Weekly
// spending starts on Sunday but never before the first of the month.
func Summary(budgets []Budget, expenses []Expense, today time.Time) Overview {
	today = civil(today)
	o := Overview{Report: Analyze(budgets, expenses, today)}
	monthly := Between(expenses, StartOfMonth(today), today)

	o.TodaySpent = round2(Sum(Between(monthly, today, today)))
	o.TodayRemaining = round2(o.Report.TotalBudget/30 - o.TodaySpent)
	o.WeeklySpending = round2(Sum(Between(monthly, StartOfWeek(today), today)))

	for _, c := range o.Report.Categories {
		if c.Category == SavingsCategory {
			o.SavingsGoal = c.Budget
			o.SavingsProgress = c.Percentage
			break
		}
	}
	return o
}

// SortByDate orders expenses oldest first, keeping input order for the
// same day.
func SortByDate(expenses []Expense) []Expense {
	out := make([]Expense, len(expenses))
	copy(out, expenses)
	sort.SliceStable(out, func(i, j int) bool { return civil(out[i].Date).Before(civil(out[j].Date)) })
	return out
}
