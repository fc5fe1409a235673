// Package allocation computes the recommended percentage split of monthly
// income across budget categories for an age group, living situation and
// city, and resolves a split into currency amounts.
package allocation

import (
	"bytes"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/wetalkinmedia/PocketWatcha2/internal/demographic"
	apperrors "github.com/wetalkinmedia/PocketWatcha2/internal/errors"
	"github.com/wetalkinmedia/PocketWatcha2/internal/location"
)

// Category is a budget category name.
type Category string

const (
	Housing        Category = "Housing"
	Food           Category = "Food"
	Transportation Category = "Transportation"
	Healthcare     Category = "Healthcare"
	Savings        Category = "Savings"
	Debt           Category = "Debt"
	Education      Category = "Education"
	Childcare      Category = "Childcare"
	Entertainment  Category = "Entertainment"
	Other          Category = "Other"
)

// categories is the canonical order. Ties are always broken by it.
var categories = []Category{
	Housing, Food, Transportation, Healthcare, Savings,
	Debt, Education, Childcare, Entertainment, Other,
}

// Categories returns every category in canonical order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return categoryIndex(c) >= 0
}

func categoryIndex(c Category) int {
	for i, k := range categories {
		if k == c {
			return i
		}
	}
	return -1
}

var hundred = decimal.NewFromInt(100)

// Share is one category's percentage.
type Share struct {
	Category   Category
	Percentage decimal.Decimal
}

// Allocation is an immutable split of income across every category. The
// percentages are non-negative, carry two decimal places and sum to
// exactly 100.
type Allocation struct {
	shares []Share
}

// Shares returns a copy of the shares in canonical order.
func (a Allocation) Shares() []Share {
	out := make([]Share, len(a.shares))
	copy(out, a.shares)
	return out
}

// Percentage returns the share for c, or zero when c is not part of a.
func (a Allocation) Percentage(c Category) decimal.Decimal {
	for _, s := range a.shares {
		if s.Category == c {
			return s.Percentage
		}
	}
	return decimal.Zero
}

// Total is the sum of every share.
func (a Allocation) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, s := range a.shares {
		sum = sum.Add(s.Percentage)
	}
	return sum
}

// IsZero reports whether a is the zero value.
func (a Allocation) IsZero() bool {
	return len(a.shares) == 0
}

// Map returns the percentages as floats keyed by category.
func (a Allocation) Map() map[Category]float64 {
	m := make(map[Category]float64, len(a.shares))
	for _, s := range a.shares {
		m[s.Category] = s.Percentage.InexactFloat64()
	}
	return m
}

// MarshalJSON writes the allocation as an object of category to percentage,
// in canonical order.
func (a Allocation) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range a.shares {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(string(s.Category)))
		buf.WriteByte(':')
		buf.WriteString(s.Percentage.StringFixed(2))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Compute returns the recommended allocation for the given inputs. The
// result is deterministic: identical inputs always give an identical
// allocation.
func Compute(age demographic.AgeGroup, situation demographic.LivingSituation, city string) (Allocation, error) {
	if !age.Valid() {
		return Allocation{}, apperrors.WithMessagef(apperrors.ErrInvalidInput, "invalid age group %q", age)
	}
	if !situation.Valid() {
		return Allocation{}, apperrors.WithMessagef(apperrors.ErrInvalidInput, "invalid living situation %q", situation)
	}
	loc, err := location.Lookup(city)
	if err != nil {
		return Allocation{}, err
	}

	weights := make(map[Category]float64, len(categories))
	for c, v := range baseTables[situation] {
		weights[c] = v
	}
	for c, d := range ageDeltas[age] {
		weights[c] += d
	}
	shiftHousing(weights, loc.Multiplier())

	return normalize(weights), nil
}

// FromPercentages builds an allocation from caller-supplied percentages, as
// used for user overrides. Missing categories count as zero. The input must
// already sum to 100 within tolerance; the result is rounded the same way
// Compute rounds.
func FromPercentages(pcts map[Category]float64, tolerance float64) (Allocation, error) {
	weights := make(map[Category]float64, len(categories))
	total := 0.0
	for c, v := range pcts {
		if !c.Valid() {
			return Allocation{}, apperrors.WithMessagef(apperrors.ErrInvalidInput, "unknown category %q", c)
		}
		if v < 0 || v > 100 {
			return Allocation{}, apperrors.WithMessagef(apperrors.ErrInvalidInput, "percentage for %s must be between 0 and 100", c)
		}
		weights[c] = v
		total += v
	}
	if diff := total - 100; diff > tolerance || diff < -tolerance {
		return Allocation{}, apperrors.WithMessagef(apperrors.ErrAllocationTotal, "percentages total %.2f, expected 100", total)
	}
	return normalize(weights), nil
}

// shiftHousing moves Housing by Housing*(m-1) points, taking the points
// from (or giving them to) Entertainment and Other in proportion to their
// current sizes. The shift never takes more than those two categories hold.
func shiftHousing(w map[Category]float64, multiplier float64) {
	delta := w[Housing] * (multiplier - 1)
	if delta == 0 {
		return
	}

	ent := nonNegative(w[Entertainment])
	oth := nonNegative(w[Other])
	pool := ent + oth

	if delta > 0 {
		if pool <= 0 {
			return
		}
		if delta > pool {
			delta = pool
		}
		w[Entertainment] -= delta * ent / pool
		w[Other] -= delta * oth / pool
		w[Housing] += delta
		return
	}

	freed := -delta
	w[Housing] -= freed
	if pool <= 0 {
		w[Entertainment] += freed / 2
		w[Other] += freed / 2
		return
	}
	w[Entertainment] += freed * ent / pool
	w[Other] += freed * oth / pool
}

// normalize clamps negatives to zero, rescales to 100 and rounds each share
// to two decimals. The rounding remainder goes to the largest share.
func normalize(w map[Category]float64) Allocation {
	total := 0.0
	for _, c := range categories {
		total += nonNegative(w[c])
	}

	shares := make([]Share, len(categories))
	sum := decimal.Zero
	for i, c := range categories {
		p := decimal.Zero
		if total > 0 {
			p = decimal.NewFromFloat(nonNegative(w[c]) * 100 / total).Round(2)
		}
		shares[i] = Share{Category: c, Percentage: p}
		sum = sum.Add(p)
	}

	if total > 0 {
		if rem := hundred.Sub(sum); !rem.IsZero() {
			i := largestShare(shares)
			shares[i].Percentage = shares[i].Percentage.Add(rem)
		}
	}
	return Allocation{shares: shares}
}

func largestShare(shares []Share) int {
	best := 0
	for i := 1; i < len(shares); i++ {
		if shares[i].Percentage.GreaterThan(shares[best].Percentage) {
			best = i
		}
	}
	return best
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
