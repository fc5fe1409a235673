package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/wetalkinmedia/PocketWatcha2/internal/errors"
	"github.com/wetalkinmedia/PocketWatcha2/internal/models"
	"github.com/wetalkinmedia/PocketWatcha2/internal/services"
)

// ProfileHandler handles the user's personal profile.
type ProfileHandler struct {
	profileService services.ProfileServicer
	insightService services.InsightServicer
	auditService   services.AuditServicer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService services.ProfileServicer, insightService services.InsightServicer, auditService services.AuditServicer) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, insightService: insightService, auditService: auditService}
}

// UpdateProfileRequest represents the profile payload. Every field is
// replaced; salary is annual.
type UpdateProfileRequest struct {
	FirstName          string  `json:"first_name" binding:"max=100"`
	LastName           string  `json:"last_name" binding:"max=100"`
	Age                int     `json:"age" binding:"omitempty,min=18,max=120"`
	Salary             float64 `json:"salary" binding:"gte=0"`
	ZipCode            string  `json:"zip_code" binding:"max=20"`
	PhoneNumber        string  `json:"phone_number" binding:"max=32"`
	RelationshipStatus string  `json:"relationship_status" binding:"omitempty,relationship_status"`
	Occupation         string  `json:"occupation" binding:"max=100"`
	City               string  `json:"city" binding:"omitempty,city"`
	Currency           string  `json:"currency" binding:"omitempty,iso4217"`
	LivingSituation    string  `json:"living_situation" binding:"omitempty,living_situation"`
}

// ProfileResponse wraps a profile with its completeness.
type ProfileResponse struct {
	Profile  *models.UserProfile `json:"profile"`
	Complete bool                `json:"complete"`
}

// GetProfile returns the authenticated user's profile
// @Summary     Get profile
// @Description Get the authenticated user's profile and whether it is complete enough for insights
// @Tags        profile
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} ProfileResponse "Profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.profileService.GetProfile(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{Profile: profile, Complete: profile.Complete()})
}

// UpdateProfile creates or replaces the authenticated user's profile
// @Summary     Update profile
// @Description Create or replace the authenticated user's profile. The phone number is reformatted as NNN-NNN-NNNN.
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateProfileRequest true "Profile fields"
// @Success     200 {object} ProfileResponse "Saved profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Unknown location"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.profileService.UpsertProfile(userID, services.ProfileInput{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Age:                req.Age,
		Salary:             req.Salary,
		ZipCode:            req.ZipCode,
		PhoneNumber:        req.PhoneNumber,
		RelationshipStatus: req.RelationshipStatus,
		Occupation:         req.Occupation,
		City:               req.City,
		Currency:           req.Currency,
		LivingSituation:    req.LivingSituation,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.insightService.Invalidate(c.Request.Context(), userID)
	h.auditService.Log(userID, services.AuditProfileUpdated, "profile", profile.ID, c.ClientIP(),
		map[string]any{"city": profile.City, "age": profile.Age})

	c.JSON(http.StatusOK, ProfileResponse{Profile: profile, Complete: profile.Complete()})
}
