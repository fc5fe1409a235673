package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wetalkinmedia/PocketWatcha2/internal/analytics"
	apperrors "github.com/wetalkinmedia/PocketWatcha2/internal/errors"
	"github.com/wetalkinmedia/PocketWatcha2/internal/services"
)

// InsightHandler serves spending analytics and advice. Every endpoint
// requires a complete profile.
type InsightHandler struct {
	insightService services.InsightServicer
}

// RangeQuery selects the window for trend and stats.
type RangeQuery struct {
	Range string `form:"range" binding:"omitempty,time_range"`
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(insightService services.InsightServicer) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// Report returns the month-to-date variance report
// @Summary     Budget variance report
// @Description Spending against each budget for the current month, with pacing
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} analytics.Report "Report"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Profile incomplete"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/report [get]
func (h *InsightHandler) Report(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.insightService.Report(c.Request.Context(), userID, today())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Advice returns the ordered advice list
// @Summary     Spending advice
// @Description Rule-based advice for the current month, in rule order
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]advice.Advice "Advice"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Profile incomplete"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/advice [get]
func (h *InsightHandler) Advice(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	items, err := h.insightService.Advice(c.Request.Context(), userID, today())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"advice": items})
}

// Trend returns daily spend for a window
// @Summary     Spending trend
// @Description One point per day in the window with the flat daily budget
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       range query string false "week, month or year (default month)"
// @Success     200 {object} map[string][]analytics.TrendPoint "Trend"
// @Failure     400 {object} ErrorResponse "Invalid range"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Profile incomplete"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/trend [get]
func (h *InsightHandler) Trend(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	r, err := bindRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	points, err := h.insightService.Trend(c.Request.Context(), userID, r, today())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"range": r, "trend": points})
}

// Stats returns the analytics summary for a window
// @Summary     Spending statistics
// @Description Totals, average daily spend, top category and breakdown for the window
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       range query string false "week, month or year (default month)"
// @Success     200 {object} analytics.Stats "Stats"
// @Failure     400 {object} ErrorResponse "Invalid range"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Profile incomplete"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/stats [get]
func (h *InsightHandler) Stats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	r, err := bindRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.insightService.Stats(c.Request.Context(), userID, r, today())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Overview returns the dashboard summary
// @Summary     Dashboard overview
// @Description The variance report plus today's spend, weekly spend and savings progress
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} analytics.Overview "Overview"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Profile incomplete"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/overview [get]
func (h *InsightHandler) Overview(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	overview, err := h.insightService.Overview(c.Request.Context(), userID, today())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

func bindRange(c *gin.Context) (analytics.Range, error) {
	var q RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return analytics.ParseRange(q.Range)
}
