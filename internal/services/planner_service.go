package services

import (
	"github.com/shopspring/decimal"

	"github.com/wetalkinmedia/PocketWatcha2/internal/allocation"
	"github.com/wetalkinmedia/PocketWatcha2/internal/career"
	"github.com/wetalkinmedia/PocketWatcha2/internal/logger"
)

var monthsPerYear = decimal.NewFromInt(12)

// plannerService runs the budget calculator. It holds no state.
type plannerService struct{}

// NewPlannerService creates a new PlannerServicer.
func NewPlannerService() PlannerServicer {
	return &plannerService{}
}

// Calculate computes the allocation for the inputs, resolves it against the
// monthly income and attaches career suggestions for the annualized income.
// Nothing is resolved when the allocation fails.
func (s *plannerService) Calculate(in PlannerInput) (*Plan, error) {
	a, err := allocation.Compute(in.AgeGroup, in.LivingSituation, in.City)
	if err != nil {
		return nil, err
	}
	budget, err := allocation.Resolve(a, in.MonthlyIncome, in.Currency)
	if err != nil {
		return nil, err
	}
	in.Currency = budget.Currency

	annual := budget.Income.Mul(monthsPerYear).InexactFloat64()
	careers, err := career.Suggest(annual, in.AgeGroup, in.LivingSituation, in.City, in.Currency)
	if err != nil {
		return nil, err
	}
	if careers == nil {
		careers = []career.Suggestion{}
	}
	text, err := career.AdviceText(annual, in.AgeGroup, in.City)
	if err != nil {
		return nil, err
	}

	logger.Get().Debugw("plan calculated",
		"age_group", in.AgeGroup,
		"living_situation", in.LivingSituation,
		"city", in.City,
		"careers", len(careers),
	)
	return &Plan{
		Input:        in,
		Allocation:   a,
		Budget:       budget,
		Careers:      careers,
		CareerAdvice: text,
	}, nil
}
