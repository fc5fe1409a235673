package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wetalkinmedia/PocketWatcha2/internal/demographic"
	apperrors "github.com/wetalkinmedia/PocketWatcha2/internal/errors"
	"github.com/wetalkinmedia/PocketWatcha2/internal/services"
)

// CalculatorHandler runs the budget calculator without an account.
type CalculatorHandler struct {
	plannerService services.PlannerServicer
}

// NewCalculatorHandler creates a new CalculatorHandler.
func NewCalculatorHandler(plannerService services.PlannerServicer) *CalculatorHandler {
	return &CalculatorHandler{plannerService: plannerService}
}

// CalculateRequest is the anonymous calculator form. Either age_group or
// age is required; age_group wins when both are given.
type CalculateRequest struct {
	MonthlyIncome   float64 `json:"monthly_income" binding:"required,gt=0"`
	Currency        string  `json:"currency" binding:"omitempty,iso4217"`
	AgeGroup        string  `json:"age_group" binding:"omitempty,age_group"`
	Age             int     `json:"age" binding:"omitempty,min=18,max=120"`
	LivingSituation string  `json:"living_situation" binding:"required,living_situation"`
	City            string  `json:"city" binding:"required,city"`
}

// Calculate computes a budget allocation and career suggestions
// @Summary     Budget calculator
// @Description Allocate a monthly income across categories for an age group, living situation and city, with career suggestions
// @Tags        calculator
// @Accept      json
// @Produce     json
// @Param       request body CalculateRequest true "Calculator inputs"
// @Success     200 {object} services.Plan "Plan"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     422 {object} ErrorResponse "Unknown location"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /calculator [post]
func (h *CalculatorHandler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var age demographic.AgeGroup
	var err error
	switch {
	case req.AgeGroup != "":
		age, err = demographic.ParseAgeGroup(req.AgeGroup)
	case req.Age != 0:
		age, err = demographic.AgeGroupForAge(req.Age)
	default:
		err = apperrors.WithMessage(apperrors.ErrInvalidInput, "age_group or age is required")
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	situation, err := demographic.ParseLivingSituation(req.LivingSituation)
	if err != nil {
		respondWithError(c, err)
		return
	}

	plan, err := h.plannerService.Calculate(services.PlannerInput{
		MonthlyIncome:   req.MonthlyIncome,
		Currency:        req.Currency,
		AgeGroup:        age,
		LivingSituation: situation,
		City:            req.City,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}
