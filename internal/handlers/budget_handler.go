package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/wetalkinmedia/PocketWatcha2/internal/errors"
	"github.com/wetalkinmedia/PocketWatcha2/internal/models"
	"github.com/wetalkinmedia/PocketWatcha2/internal/services"
)

// BudgetHandler handles the user's monthly category budgets.
type BudgetHandler struct {
	budgetService  services.BudgetServicer
	profileService services.ProfileServicer
	plannerService services.PlannerServicer
	insightService services.InsightServicer
	auditService   services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(
	budgetService services.BudgetServicer,
	profileService services.ProfileServicer,
	plannerService services.PlannerServicer,
	insightService services.InsightServicer,
	auditService services.AuditServicer,
) *BudgetHandler {
	return &BudgetHandler{
		budgetService:  budgetService,
		profileService: profileService,
		plannerService: plannerService,
		insightService: insightService,
		auditService:   auditService,
	}
}

// BudgetLineRequest is one category in a budget save.
type BudgetLineRequest struct {
	CategoryID    string  `json:"category_id" binding:"required,uuid"`
	MonthlyAmount float64 `json:"monthly_amount" binding:"gte=0"`
	Percentage    float64 `json:"percentage" binding:"gte=0,lte=100"`
}

// SaveBudgetsRequest replaces the whole budget set.
type SaveBudgetsRequest struct {
	Budgets []BudgetLineRequest `json:"budgets" binding:"required,min=1,dive"`
}

// RecommendedRequest optionally overrides the profile's monthly income.
type RecommendedRequest struct {
	MonthlyIncome *float64 `json:"monthly_income" binding:"omitempty,gt=0"`
}

// BudgetsResponse lists budgets with their monthly total.
type BudgetsResponse struct {
	Budgets []models.UserBudget `json:"budgets"`
	Total   decimal.Decimal     `json:"total"`
}

// AllocateResponse is the saved budgets and the plan they came from.
type AllocateResponse struct {
	BudgetsResponse
	Plan *services.Plan `json:"plan"`
}

func newBudgetsResponse(budgets []models.UserBudget) BudgetsResponse {
	if budgets == nil {
		budgets = []models.UserBudget{}
	}
	total := decimal.Zero
	for _, b := range budgets {
		total = total.Add(b.MonthlyAmount)
	}
	return BudgetsResponse{Budgets: budgets, Total: total}
}

// GetBudgets returns the user's budgets
// @Summary     Get budgets
// @Description Get the authenticated user's monthly budget per category, in category display order
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} BudgetsResponse "Budgets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgets, err := h.budgetService.GetUserBudgets(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newBudgetsResponse(budgets))
}

// SaveBudgets replaces the user's budgets
// @Summary     Save budgets
// @Description Replace the user's budgets. Percentages must total 100 within 0.1. Zero amounts are dropped.
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SaveBudgetsRequest true "Budget lines"
// @Success     200 {object} BudgetsResponse "Saved budgets"
// @Failure     400 {object} ErrorResponse "Invalid input or total is not 100%"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [put]
func (h *BudgetHandler) SaveBudgets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SaveBudgetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	lines := make([]services.BudgetLine, len(req.Budgets))
	for i, l := range req.Budgets {
		lines[i] = services.BudgetLine{
			CategoryID:    l.CategoryID,
			MonthlyAmount: l.MonthlyAmount,
			Percentage:    l.Percentage,
		}
	}

	budgets, err := h.budgetService.SaveBudgets(userID, lines)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.afterSave(c, userID, "manual", len(budgets))
	c.JSON(http.StatusOK, newBudgetsResponse(budgets))
}

// Allocate computes a personalized allocation from the profile and saves it
// @Summary     Allocate from profile
// @Description Run the allocation engine on the user's profile (age, living situation, city, salary) and save the result as the budget
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} AllocateResponse "Saved budgets and plan"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Profile incomplete"
// @Failure     422 {object} ErrorResponse "Unknown location"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/allocate [post]
func (h *BudgetHandler) Allocate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	in, err := h.profileService.CalculatorInputs(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	plan, err := h.plannerService.Calculate(*in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgets, err := h.budgetService.ApplyAllocation(userID, plan.Budget)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.afterSave(c, userID, "allocate", len(budgets))
	c.JSON(http.StatusOK, AllocateResponse{BudgetsResponse: newBudgetsResponse(budgets), Plan: plan})
}

// ApplyRecommended saves the categories' recommended split
// @Summary     Apply recommended budget
// @Description Split a monthly income by each category's recommended percentage and save it. Without a body the income comes from the profile salary.
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RecommendedRequest false "Monthly income override"
// @Success     200 {object} BudgetsResponse "Saved budgets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Profile incomplete"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/recommended [post]
func (h *BudgetHandler) ApplyRecommended(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecommendedRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}

	var income float64
	if req.MonthlyIncome != nil {
		income = *req.MonthlyIncome
	} else {
		in, err := h.profileService.CalculatorInputs(userID)
		if err != nil {
			respondWithError(c, err)
			return
		}
		income = in.MonthlyIncome
	}

	budgets, err := h.budgetService.ApplyRecommended(userID, income)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.afterSave(c, userID, "recommended", len(budgets))
	c.JSON(http.StatusOK, newBudgetsResponse(budgets))
}

func (h *BudgetHandler) afterSave(c *gin.Context, userID, source string, lines int) {
	h.insightService.Invalidate(c.Request.Context(), userID)
	h.auditService.Log(userID, services.AuditBudgetsSaved, "budget", "", c.ClientIP(),
		map[string]any{"source": source, "lines": lines})
}
