package allocation

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "github.com/wetalkinmedia/PocketWatcha2/internal/errors"
)

// DefaultCurrency is used when a caller does not name one.
const DefaultCurrency = "USD"

// Line is one category's slice of a resolved budget.
type Line struct {
	Category   Category        `json:"category"`
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
}

// Budget is an allocation applied to a monthly income. Amounts are rounded
// to cents and sum to exactly the rounded income.
type Budget struct {
	Currency string          `json:"currency"`
	Income   decimal.Decimal `json:"income"`
	Lines    []Line          `json:"lines"`
}

// Amount returns the amount for c, or zero.
func (b Budget) Amount(c Category) decimal.Decimal {
	for _, l := range b.Lines {
		if l.Category == c {
			return l.Amount
		}
	}
	return decimal.Zero
}

// Total is the sum of every line amount.
func (b Budget) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range b.Lines {
		sum = sum.Add(l.Amount)
	}
	return sum
}

// Resolve converts an allocation and a monthly income into currency amounts.
// Each amount is rounded half-up to cents; any residual left by rounding is
// folded into the largest amount so the lines sum to the rounded income.
// The currency code is a label only.
func Resolve(a Allocation, monthlyIncome float64, currency string) (Budget, error) {
	if a.IsZero() {
		return Budget{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "allocation is empty")
	}
	if math.IsNaN(monthlyIncome) || math.IsInf(monthlyIncome, 0) || monthlyIncome <= 0 {
		return Budget{}, apperrors.WithMessage(apperrors.ErrInvalidIncome, "monthly income must be a positive number")
	}

	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	income := decimal.NewFromFloat(monthlyIncome)
	target := income.Round(2)

	lines := make([]Line, len(a.shares))
	sum := decimal.Zero
	for i, s := range a.shares {
		amt := income.Mul(s.Percentage).Div(hundred).Round(2)
		lines[i] = Line{Category: s.Category, Percentage: s.Percentage, Amount: amt}
		sum = sum.Add(amt)
	}

	if residual := target.Sub(sum); !residual.IsZero() {
		best := 0
		for i := 1; i < len(lines); i++ {
			if lines[i].Amount.GreaterThan(lines[best].Amount) {
				best = i
			}
		}
		lines[best].Amount = lines[best].Amount.Add(residual)
	}

	return Budget{Currency: currency, Income: target, Lines: lines}, nil
}
