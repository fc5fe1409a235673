// Package advice turns month-to-date spending into a short, ordered list of
// insights. Rules are checked in a fixed order and every rule that matches
// adds its item, so the output order is rule order, not severity.
package advice

import (
	"fmt"
	"math"
	"time"

	"github.com/wetalkinmedia/PocketWatcha2/internal/analytics"
)

// Kind is the tone of an advice item.
type Kind string

const (
	KindSuccess     Kind = "success"
	KindWarning     Kind = "warning"
	KindInfo        Kind = "info"
	KindAchievement Kind = "achievement"
)

// Rule identifies which check produced an item.
type Rule string

const (
	RuleOnboarding  Rule = "onboarding"
	RuleWeeklyUnder Rule = "weekly_underspend"
	RuleOverBudget  Rule = "over_budget"
	RuleNearLimit   Rule = "near_limit"
	RulePacing      Rule = "pacing"
	RuleRecurring   Rule = "recurring"
	RuleSavingsGoal Rule = "savings_goal"
	RuleOnTrack     Rule = "on_track"
)

// Advice is one insight.
type Advice struct {
	Kind    Kind   `json:"kind"`
	Rule    Rule   `json:"rule"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

const (
	weeklyUnderspendRatio = 0.8
	recentWindow          = 10
	recurringMinCount     = 3
)

// Generate checks budgets and the month's expenses as of today. With no
// budgets at all the only item is onboarding advice.
func Generate(budgets []analytics.Budget, expenses []analytics.Expense, today time.Time) []Advice {
	if len(budgets) == 0 {
		return []Advice{{
			Kind:    KindInfo,
			Rule:    RuleOnboarding,
			Title:   "Get Started",
			Message: "Set up your monthly budget to start tracking your financial progress and receive personalized insights.",
			Action:  "Create Budget",
		}}
	}

	report := analytics.Analyze(budgets, expenses, today)
	monthly := analytics.SortByDate(analytics.Between(expenses, analytics.StartOfMonth(today), today))

	var out []Advice
	if a, ok := weeklyUnderspend(report, monthly, today); ok {
		out = append(out, a)
	}
	if a, ok := overBudget(report); ok {
		out = append(out, a)
	}
	if a, ok := nearLimit(report); ok {
		out = append(out, a)
	}
	if a, ok := pacing(report); ok {
		out = append(out, a)
	}
	if a, ok := recurring(monthly); ok {
		out = append(out, a)
	}
	if a, ok := savingsGoal(report); ok {
		out = append(out, a)
	}

	if len(out) == 0 {
		out = append(out, Advice{
			Kind:    KindSuccess,
			Rule:    RuleOnTrack,
			Title:   "On Track",
			Message: "Your spending is well-balanced and within budget. Keep up the good financial habits!",
			Action:  "View Analytics",
		})
	}
	return out
}

// weeklyUnderspend fires when this week's spend is at least 20% under a
// quarter of the monthly budget.
func weeklyUnderspend(r analytics.Report, monthly []analytics.Expense, today time.Time) (Advice, bool) {
	weeklyBudget := r.TotalBudget / 4
	if weeklyBudget <= 0 {
		return Advice{}, false
	}
	weekTotal := analytics.Sum(analytics.Between(monthly, analytics.StartOfWeek(today), today))
	if weekTotal > weeklyBudget*weeklyUnderspendRatio {
		return Advice{}, false
	}
	under := (1 - weekTotal/weeklyBudget) * 100
	return Advice{
		Kind:  KindSuccess,
		Rule:  RuleWeeklyUnder,
		Title: "Great Job!",
		Message: fmt.Sprintf("You're %.0f%% under budget this week! You've saved %s. Consider moving this to your savings.",
			under, money(weeklyBudget-weekTotal)),
		Action: "Add to Savings",
	}, true
}

func overBudget(r analytics.Report) (Advice, bool) {
	for _, c := range r.Categories {
		if c.Status != analytics.StatusOverBudget {
			continue
		}
		return Advice{
			Kind:  KindWarning,
			Rule:  RuleOverBudget,
			Title: "Budget Alert",
			Message: fmt.Sprintf("Your %s spending is %.0f%% of budget (%s over). Consider adjusting your spending in this category.",
				c.Category, c.Percentage, money(c.Spent-c.Budget)),
			Action: "View Details",
		}, true
	}
	return Advice{}, false
}

func nearLimit(r analytics.Report) (Advice, bool) {
	for _, c := range r.Categories {
		if c.Status != analytics.StatusNearLimit {
			continue
		}
		return Advice{
			Kind:  KindWarning,
			Rule:  RuleNearLimit,
			Title: "Approaching Limit",
			Message: fmt.Sprintf("You've used %.0f%% of your %s budget. Only %s remaining.",
				c.Percentage, c.Category, money(c.Remaining)),
			Action: "Track Closely",
		}, true
	}
	return Advice{}, false
}

// pacing fires only when spend is strictly outside the pacing band. The
// check uses the unrounded deviation.
func pacing(r analytics.Report) (Advice, bool) {
	p := r.Pacing
	if r.TotalBudget <= 0 {
		return Advice{}, false
	}
	d := p.Deviation()
	switch {
	case d < -analytics.PacingBand:
		return Advice{
			Kind:  KindAchievement,
			Rule:  RulePacing,
			Title: "Excellent Progress!",
			Message: fmt.Sprintf("You're ahead of your budget timeline! At day %d, you've only spent %.0f%% of your budget (expected %.0f%%).",
				p.DayOfMonth, p.Actual, p.Expected),
			Action: "Keep It Up",
		}, true
	case d > analytics.PacingBand:
		return Advice{
			Kind:  KindWarning,
			Rule:  RulePacing,
			Title: "Spending Above Pace",
			Message: fmt.Sprintf("Your spending is %.0f%% ahead of schedule. Consider reducing discretionary spending for the rest of the month.",
				d),
			Action: "Review Budget",
		}, true
	}
	return Advice{}, false
}

// recurring looks at the ten most recent expenses for a description logged
// at least three times. The first such description, by first appearance in
// that window, wins.
func recurring(sorted []analytics.Expense) (Advice, bool) {
	recent := sorted
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}

	counts := make(map[string]int)
	var order []string
	for _, e := range recent {
		if e.Description == "" {
			continue
		}
		if counts[e.Description] == 0 {
			order = append(order, e.Description)
		}
		counts[e.Description]++
	}

	for _, desc := range order {
		n := counts[desc]
		if n < recurringMinCount {
			continue
		}
		return Advice{
			Kind:  KindInfo,
			Rule:  RuleRecurring,
			Title: "Recurring Pattern Detected",
			Message: fmt.Sprintf("You've logged %q %d times recently. Consider setting this as a recurring expense or subscription to track automatically.",
				desc, n),
			Action: "Learn More",
		}, true
	}
	return Advice{}, false
}

func savingsGoal(r analytics.Report) (Advice, bool) {
	for _, c := range r.Categories {
		if c.Category != analytics.SavingsCategory || c.Budget <= 0 {
			continue
		}
		// Spent is rounded to cents, so this compares money, not a rounded ratio.
		if c.Spent < c.Budget {
			return Advice{}, false
		}
		return Advice{
			Kind:  KindAchievement,
			Rule:  RuleSavingsGoal,
			Title: "Savings Goal Achieved!",
			Message: fmt.Sprintf("Congratulations! You've reached your monthly savings goal of %s. Keep up the great work!",
				money(c.Budget)),
			Action: "Celebrate",
		}, true
	}
	return Advice{}, false
}

// money formats an amount with two decimals and no currency symbol; the
// currency is a display concern of the caller.
func money(v float64) string {
	return fmt.Sprintf("%.2f", math.Abs(v))
}
