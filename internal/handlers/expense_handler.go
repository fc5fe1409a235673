package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/wetalkinmedia/PocketWatcha2/internal/errors"
	"github.com/wetalkinmedia/PocketWatcha2/internal/pagination"
	"github.com/wetalkinmedia/PocketWatcha2/internal/services"
	"github.com/wetalkinmedia/PocketWatcha2/internal/uuid"
)

// ExpenseHandler handles expense logging and history.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	insightService services.InsightServicer
	auditService   services.AuditServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer, insightService services.InsightServicer, auditService services.AuditServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, insightService: insightService, auditService: auditService}
}

// CreateExpenseRequest represents the request payload for logging an expense
type CreateExpenseRequest struct {
	CategoryID  string  `json:"category_id" binding:"required,uuid"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"required,max=255"`
	Date        *string `json:"date"`
}

// ExpenseDaysResponse is a page of expenses grouped by date.
type ExpenseDaysResponse struct {
	Days       []services.ExpenseDay `json:"days"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalItems int64                 `json:"total_items"`
	TotalPages int                   `json:"total_pages"`
	HasNext    bool                  `json:"has_next"`
}

// CreateExpense logs a new expense
// @Summary     Log an expense
// @Description Log an expense against a budget category. The date defaults to today.
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} models.Expense "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var date time.Time
	if req.Date != nil && *req.Date != "" {
		parsed, parseErr := parseDate(*req.Date)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date format, use YYYY-MM-DD or RFC3339"))
			return
		}
		date = parsed
	} else {
		date = today()
	}

	expense, err := h.expenseService.CreateExpense(userID, req.CategoryID, req.Amount, req.Description, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.insightService.Invalidate(c.Request.Context(), userID)
	h.auditService.Log(userID, services.AuditExpenseCreated, "expense", expense.ID, c.ClientIP(),
		map[string]any{"amount": req.Amount, "category_id": req.CategoryID})

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// ListExpenses returns the user's expenses, newest first
// @Summary     List expenses
// @Description Get a paginated list of expenses with optional filters. group=date buckets the page by day.
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       page        query int    false "Page number (default 1)"
// @Param       page_size   query int    false "Items per page (default 20, max 100)"
// @Param       from        query string false "Start date (YYYY-MM-DD)"
// @Param       to          query string false "End date, inclusive (YYYY-MM-DD)"
// @Param       category_id query string false "Filter by category ID"
// @Param       search      query string false "Match description or category name"
// @Param       group       query string false "Set to 'date' to group by day"
// @Success     200 {object} pagination.PageResponse[models.Expense] "Paginated expenses"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseExpenseFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	group := c.Query("group")
	if group != "" && group != "date" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "group must be 'date'"))
		return
	}

	result, err := h.expenseService.ListExpenses(userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if group == "date" {
		c.JSON(http.StatusOK, ExpenseDaysResponse{
			Days:       services.GroupByDate(result.Data),
			Page:       result.Page,
			PageSize:   result.PageSize,
			TotalItems: result.TotalItems,
			TotalPages: result.TotalPages,
			HasNext:    result.HasNext,
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseExpenseFilter(c *gin.Context) (services.ExpenseFilter, error) {
	var filter services.ExpenseFilter

	if v := c.Query("from"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid from date, use YYYY-MM-DD")
		}
		filter.FromDate = &t
	}

	if v := c.Query("to"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid to date, use YYYY-MM-DD")
		}
		filter.ToDate = &t
	}

	if filter.FromDate != nil && filter.ToDate != nil && filter.ToDate.Before(*filter.FromDate) {
		return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "to must not be before from")
	}

	if v := c.Query("category_id"); v != "" {
		if !uuid.IsValid(v) {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid category_id")
		}
		filter.CategoryID = &v
	}

	filter.Search = c.Query("search")
	return filter, nil
}

// GetExpenseByID returns one expense
// @Summary     Get expense by ID
// @Description Get a specific expense by ID
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} models.Expense "Expense"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpenseByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpenseByID(userID, expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense removes an expense
// @Summary     Delete expense
// @Description Delete one of the user's expenses
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} map[string]string "Expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	h.insightService.Invalidate(c.Request.Context(), userID)
	h.auditService.Log(userID, services.AuditExpenseDeleted, "expense", expenseID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}
