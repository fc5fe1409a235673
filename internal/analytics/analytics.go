// Package analytics compares spending against per-category budgets: how
// much of each budget is used, whether spending is keeping pace with the
// month, and daily trends for charts.
//
// Dates are civil dates. Only the year, month and day of a time.Time are
// read; the clock and location are ignored.
package analytics

import (
	"math"
	"time"
)

// Budget is a monthly amount for one category.
type Budget struct {
	CategoryID string
	Category   string
	Amount     float64
}

// Expense is one logged expense.
type Expense struct {
	ID          string
	CategoryID  string
	Amount      float64
	Description string
	Date        time.Time
}

// Status classifies how much of a budget has been used.
type Status string

const (
	StatusOnTrack    Status = "on_track"
	StatusNearLimit  Status = "near_limit"
	StatusOverBudget Status = "over_budget"
)

const (
	nearLimitThreshold  = 80.0
	overBudgetThreshold = 100.0
)

// PacingBand is how many percentage points spend may stray from the
// expected share of the month before it counts as ahead or behind.
const PacingBand = 10.0

// Classify maps a percentage used to a status. Exactly 80 is near-limit and
// exactly 100 is still near-limit.
func Classify(percentage float64) Status {
	switch {
	case percentage > overBudgetThreshold:
		return StatusOverBudget
	case percentage >= nearLimitThreshold:
		return StatusNearLimit
	default:
		return StatusOnTrack
	}
}

// PacingState compares spend against elapsed time in the month.
type PacingState string

const (
	PacingAhead  PacingState = "ahead"
	PacingOnPace PacingState = "on_pace"
	PacingBehind PacingState = "behind"
)

// Pacing is the month-to-date pacing summary.
type Pacing struct {
	DayOfMonth  int         `json:"day_of_month"`
	DaysInMonth int         `json:"days_in_month"`
	Expected    float64     `json:"expected_percentage"`
	Actual      float64     `json:"actual_percentage"`
	State       PacingState `json:"state"`

	deviation float64
}

// Deviation is the unrounded actual minus expected percentage. It is only
// set on values built by PacingFor.
func (p Pacing) Deviation() float64 {
	return p.deviation
}

// CategoryReport is the variance for one budget.
type CategoryReport struct {
	CategoryID string  `json:"category_id"`
	Category   string  `json:"category"`
	Budget     float64 `json:"budget"`
	Spent      float64 `json:"spent"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentage"`
	Status     Status  `json:"status"`
}

// Report is the month-to-date variance across every budget.
type Report struct {
	AsOf           string           `json:"as_of"`
	Categories     []CategoryReport `json:"categories"`
	TotalBudget    float64          `json:"total_budget"`
	TotalSpent     float64          `json:"total_spent"`
	TotalRemaining float64          `json:"total_remaining"`
	Percentage     float64          `json:"percentage"`
	Pacing         Pacing           `json:"pacing"`
}

// Analyze reports spending against budgets for the month containing asOf.
// Only expenses dated from the first of that month through asOf count.
// Categories are reported in the order budgets are given.
func Analyze(budgets []Budget, expenses []Expense, asOf time.Time) Report {
	today := civil(asOf)
	monthly := Between(expenses, StartOfMonth(today), today)
	spent := SpentByCategory(monthly)

	r := Report{AsOf: today.Format(DateLayout), Categories: make([]CategoryReport, 0, len(budgets))}
	for _, b := range budgets {
		s := spent[b.CategoryID]
		pct := Percent(s, b.Amount)
		r.Categories = append(r.Categories, CategoryReport{
			CategoryID: b.CategoryID,
			Category:   b.Category,
			Budget:     b.Amount,
			Spent:      round2(s),
			Remaining:  round2(b.Amount - s),
			Percentage: round2(pct),
			Status:     Classify(pct),
		})
		r.TotalBudget += b.Amount
	}

	r.TotalSpent = Sum(monthly)
	r.TotalRemaining = round2(r.TotalBudget - r.TotalSpent)
	r.Percentage = round2(Percent(r.TotalSpent, r.TotalBudget))
	r.Pacing = PacingFor(today, r.TotalSpent, r.TotalBudget)
	r.TotalBudget = round2(r.TotalBudget)
	r.TotalSpent = round2(r.TotalSpent)
	return r
}

// PacingFor compares the share of the month elapsed on day with the share
// of totalBudget spent. Spending more than 10 points under the expected
// share is ahead, more than 10 over is behind. A month with nothing spent
// after its first day is always ahead.
func PacingFor(day time.Time, totalSpent, totalBudget float64) Pacing {
	day = civil(day)
	dim := DaysInMonth(day)
	p := Pacing{
		DayOfMonth:  day.Day(),
		DaysInMonth: dim,
		Expected:    float64(day.Day()) / float64(dim) * 100,
		Actual:      Percent(totalSpent, totalBudget),
	}

	p.deviation = p.Actual - p.Expected

	switch {
	case totalSpent <= 0 && p.DayOfMonth > 1:
		p.State = PacingAhead
	case p.deviation < -PacingBand:
		p.State = PacingAhead
	case p.deviation > PacingBand:
		p.State = PacingBehind
	default:
		p.State = PacingOnPace
	}
	p.Expected = round2(p.Expected)
	p.Actual = round2(p.Actual)
	return p
}

// Percent is part/whole*100, or 0 when whole is not positive.
func Percent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part * 100 / whole
}

// Sum adds up expense amounts.
func Sum(expenses []Expense) float64 {
	total := 0.0
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// SpentByCategory sums expense amounts per category ID.
func SpentByCategory(expenses []Expense) map[string]float64 {
	m := make(map[string]float64)
	for _, e := range expenses {
		m[e.CategoryID] += e.Amount
	}
	return m
}

// Between keeps the expenses dated within [from, to], inclusive.
func Between(expenses []Expense, from, to time.Time) []Expense {
	from, to = civil(from), civil(to)
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		d := civil(e.Date)
		if d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// DateLayout is the civil date format used in reports.
const DateLayout = "2006-01-02"

// StartOfMonth is the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// StartOfWeek is the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	t = civil(t)
	return t.AddDate(0, 0, -int(t.Weekday()))
}

// DaysInMonth is the number of days in t's month.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// civil drops the clock and location, keeping the calendar date.
func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
