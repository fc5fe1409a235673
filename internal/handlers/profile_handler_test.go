package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/wetalkinmedia/PocketWatcha2/internal/errors"
	"github.com/wetalkinmedia/PocketWatcha2/internal/models"
	"github.com/wetalkinmedia/PocketWatcha2/internal/services"
)

func setupProfileRouter(handler *ProfileHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/profile", handler.GetProfile)
	auth.PUT("/profile", handler.UpdateProfile)
	return r
}

func completeProfile() *models.UserProfile {
	return &models.UserProfile{
		UserID:             testUserID,
		FirstName:          "Ada",
		LastName:           "Lovelace",
		Age:                30,
		Salary:             decimal.NewFromInt(72000),
		ZipCode:            "10001",
		PhoneNumber:        "555-123-4567",
		RelationshipStatus: "single",
		Occupation:         "Engineer",
		City:               "new-york",
	}
}

func TestProfileHandler_GetProfile(t *testing.T) {
	t.Run("returns profile with completeness", func(t *testing.T) {
		svc := &mockProfileService{
			getProfileFn: func(string) (*models.UserProfile, error) { return completeProfile(), nil },
		}
		r := setupProfileRouter(NewProfileHandler(svc, &mockInsightService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/profile", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["complete"] != true {
			t.Errorf("expected complete profile, got %v", result["complete"])
		}
		profile := result["profile"].(map[string]interface{})
		if profile["city"] != "new-york" {
			t.Errorf("expected new-york, got %v", profile["city"])
		}
	})

	t.Run("reports an incomplete profile", func(t *testing.T) {
		svc := &mockProfileService{
			getProfileFn: func(string) (*models.UserProfile, error) {
				return &models.UserProfile{UserID: testUserID, FirstName: "Ada"}, nil
			},
		}
		r := setupProfileRouter(NewProfileHandler(svc, &mockInsightService{}, &mockAuditService{}))

		result := parseJSON(t, doRequest(r, "GET", "/profile", ""))
		if result["complete"] != false {
			t.Errorf("expected incomplete profile, got %v", result["complete"])
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockProfileService{
			getProfileFn: func(string) (*models.UserProfile, error) { return nil, apperrors.ErrProfileNotFound },
		}
		r := setupProfileRouter(NewProfileHandler(svc, &mockInsightService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/profile", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PROFILE_NOT_FOUND")
	})
}

func TestProfileHandler_UpdateProfile(t *testing.T) {
	t.Run("saves, invalidates insights and audits", func(t *testing.T) {
		var got services.ProfileInput
		svc := &mockProfileService{
			upsertProfileFn: func(_ string, in services.ProfileInput) (*models.UserProfile, error) {
				got = in
				return completeProfile(), nil
			},
		}
		insights := &mockInsightService{}
		audit := &mockAuditService{}
		r := setupProfileRouter(NewProfileHandler(svc, insights, audit))

		rec := doRequest(r, "PUT", "/profile",
			`{"first_name":"Ada","last_name":"Lovelace","age":30,"salary":72000,"zip_code":"10001",`+
				`"phone_number":"(555) 123 4567","relationship_status":"single","occupation":"Engineer","city":"new-york"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Salary != 72000 || got.City != "new-york" || got.Age != 30 {
			t.Errorf("unexpected input %+v", got)
		}
		if len(insights.invalidated) != 1 || insights.invalidated[0] != testUserID {
			t.Errorf("expected insights invalidated for the user, got %v", insights.invalidated)
		}
		if len(audit.actions) != 1 || audit.actions[0] != services.AuditProfileUpdated {
			t.Errorf("expected profile audit, got %v", audit.actions)
		}
	})

	t.Run("returns 400 on underage", func(t *testing.T) {
		r := setupProfileRouter(NewProfileHandler(&mockProfileService{}, &mockInsightService{}, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/profile", `{"age":12}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on unknown relationship status", func(t *testing.T) {
		r := setupProfileRouter(NewProfileHandler(&mockProfileService{}, &mockInsightService{}, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/profile", `{"relationship_status":"complicated"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 422 on unknown city", func(t *testing.T) {
		svc := &mockProfileService{
			upsertProfileFn: func(string, services.ProfileInput) (*models.UserProfile, error) {
				return nil, apperrors.ErrUnknownLocation
			},
		}
		r := setupProfileRouter(NewProfileHandler(svc, &mockInsightService{}, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/profile", `{"city":"atlantis"}`)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "UNKNOWN_LOCATION")
	})
}
