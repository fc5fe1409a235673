package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/wetalkinmedia/PocketWatcha2/internal/errors"
	"github.com/wetalkinmedia/PocketWatcha2/internal/services"
)

// TipHandler serves the daily financial tip.
type TipHandler struct {
	tipService   services.TipServicer
	auditService services.AuditServicer
}

// NewTipHandler creates a new TipHandler.
func NewTipHandler(tipService services.TipServicer, auditService services.AuditServicer) *TipHandler {
	return &TipHandler{tipService: tipService, auditService: auditService}
}

// CreateTipRequest adds a tip to the rotation.
type CreateTipRequest struct {
	Title        string `json:"title" binding:"required,max=200"`
	Content      string `json:"content" binding:"required,max=2000"`
	Category     string `json:"category" binding:"max=50"`
	DisplayOrder int    `json:"display_order" binding:"gte=0"`
}

// DailyTip returns today's tip
// @Summary     Daily tip
// @Description The tip for today, cycling through the rotation by day of year
// @Tags        tips
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.FinancialTip "Tip"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No tips"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tips/daily [get]
func (h *TipHandler) DailyTip(c *gin.Context) {
	tip, err := h.tipService.DailyTip(today())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tip": tip})
}

// ListTips returns the full rotation
// @Summary     List tips
// @Description Every tip in rotation order
// @Tags        admin
// @Produce     json
// @Security    ApiKeyAuth
// @Success     200 {object} map[string][]models.FinancialTip "Tips"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/tips [get]
func (h *TipHandler) ListTips(c *gin.Context) {
	tips, err := h.tipService.ListTips()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tips": tips})
}

// CreateTip adds a tip
// @Summary     Create tip
// @Description Add a tip to the daily rotation
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body CreateTipRequest true "Tip"
// @Success     201 {object} models.FinancialTip "Tip created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/tips [post]
func (h *TipHandler) CreateTip(c *gin.Context) {
	var req CreateTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	tip, err := h.tipService.CreateTip(req.Title, req.Content, req.Category, req.DisplayOrder)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("", services.AuditTipCreated, "tip", tip.ID, c.ClientIP(),
		map[string]any{"title": tip.Title})

	c.JSON(http.StatusCreated, gin.H{"tip": tip})
}
