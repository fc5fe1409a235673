// Package career suggests higher-paying careers from a user's salary, age
// group, living situation and city, and writes a short advice line.
package career

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wetalkinmedia/PocketWatcha2/internal/demographic"
	apperrors "github.com/wetalkinmedia/PocketWatcha2/internal/errors"
	"github.com/wetalkinmedia/PocketWatcha2/internal/location"
)

// Suggestion is one career the user could grow into.
type Suggestion struct {
	CareerID        string          `json:"career_id"`
	Title           string          `json:"title"`
	Field           string          `json:"field"`
	Description     string          `json:"description"`
	Skills          []string        `json:"skills"`
	EstimatedSalary decimal.Decimal `json:"estimated_salary"`
	Uplift          decimal.Decimal `json:"uplift"`
	UpliftPercent   float64         `json:"uplift_percent"`
	Currency        string          `json:"currency"`
}

// Suggest returns the careers whose city-adjusted bracket for the age group
// is above annualSalary, ordered by uplift descending and then by title.
// An empty result is not an error.
func Suggest(annualSalary float64, age demographic.AgeGroup, situation demographic.LivingSituation, city, currency string) ([]Suggestion, error) {
	salary, err := validate(annualSalary, age)
	if err != nil {
		return nil, err
	}
	if !situation.Valid() {
		return nil, apperrors.WithMessagef(apperrors.ErrInvalidInput, "invalid living situation %q", situation)
	}
	loc, err := location.Lookup(city)
	if err != nil {
		return nil, err
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))

	var out []Suggestion
	for _, c := range catalog {
		if !c.fits(situation) {
			continue
		}
		est := adjusted(c.Brackets[age], loc.Multiplier())
		if !est.GreaterThan(salary) {
			continue
		}
		uplift := est.Sub(salary)
		pct := 0.0
		if salary.IsPositive() {
			pct = uplift.Div(salary).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
		}
		out = append(out, Suggestion{
			CareerID:        c.ID,
			Title:           c.Title,
			Field:           c.Field,
			Description:     c.Description,
			Skills:          append([]string(nil), c.Skills...),
			EstimatedSalary: est,
			Uplift:          uplift,
			UpliftPercent:   pct,
			Currency:        currency,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Uplift.Equal(out[j].Uplift) {
			return out[i].Uplift.GreaterThan(out[j].Uplift)
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}

// AdviceText summarizes where annualSalary sits against the typical range
// for the age group in the city.
func AdviceText(annualSalary float64, age demographic.AgeGroup, city string) (string, error) {
	salary, err := validate(annualSalary, age)
	if err != nil {
		return "", err
	}
	loc, err := location.Lookup(city)
	if err != nil {
		return "", err
	}

	values := make([]decimal.Decimal, 0, len(catalog))
	for _, c := range catalog {
		values = append(values, adjusted(c.Brackets[age], loc.Multiplier()))
	}
	sort.Slice(values, func(i, j int) bool { return values[i].LessThan(values[j]) })
	median := values[len(values)/2]
	top := values[len(values)-1]

	switch {
	case !salary.LessThan(top):
		return fmt.Sprintf("You are already in the top salary bracket for %s in %s. Focus on growing savings and investments rather than chasing a raise.",
			age.Label(), loc.Name), nil
	case salary.LessThan(median.Mul(decimal.NewFromFloat(0.75))):
		return fmt.Sprintf("Your salary is well below the typical %s for %s in %s. Upskilling into one of the suggested fields could raise your income significantly.",
			median.StringFixed(0), age.Label(), loc.Name), nil
	case salary.LessThan(median):
		return fmt.Sprintf("Your salary is slightly below the typical %s for %s in %s. A targeted certification or a move into a higher-paying role could close the gap.",
			median.StringFixed(0), age.Label(), loc.Name), nil
	default:
		return fmt.Sprintf("Your salary is above the typical %s for %s in %s. Specialized roles offer further room to grow.",
			median.StringFixed(0), age.Label(), loc.Name), nil
	}
}

func validate(annualSalary float64, age demographic.AgeGroup) (decimal.Decimal, error) {
	if math.IsNaN(annualSalary) || math.IsInf(annualSalary, 0) || annualSalary < 0 {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidIncome, "annual salary must be a non-negative number")
	}
	if !age.Valid() {
		return decimal.Zero, apperrors.WithMessagef(apperrors.ErrInvalidInput, "invalid age group %q", age)
	}
	return decimal.NewFromFloat(annualSalary).Round(2), nil
}

// adjusted scales a standard-city bracket and rounds to whole units.
func adjusted(base int64, multiplier float64) decimal.Decimal {
	return decimal.NewFromInt(base).Mul(decimal.NewFromFloat(multiplier)).Round(0)
}
