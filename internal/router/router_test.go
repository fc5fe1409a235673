package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wetalkinmedia/PocketWatcha2/internal/cache"
	"github.com/wetalkinmedia/PocketWatcha2/internal/config"
	"github.com/wetalkinmedia/PocketWatcha2/internal/logger"
	"github.com/wetalkinmedia/PocketWatcha2/internal/testutil"
	"github.com/wetalkinmedia/PocketWatcha2/internal/validator"
)

const adminKey = "router-test-admin-key"

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

func setupApp(t *testing.T) *gin.Engine {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:          "router-test-secret",
		AdminAPIKey:        adminKey,
		CORSAllowedOrigins: []string{"https://app.pocketwatcha.test"},
	}
	config.Set(cfg)

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	store := cache.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	return New(cfg, NewServices(db, store, time.Minute))
}

func request(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", rec.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func register(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	rec := request(r, "POST", "/api/v1/auth/register",
		fmt.Sprintf(`{"email":%q,"password":"password123","first_name":"Ada","last_name":"Lovelace"}`, email), "")
	expectStatus(t, rec, http.StatusCreated)
	return decode(t, rec)["access_token"].(string)
}

const completeProfile = `{
	"first_name":"Ada","last_name":"Lovelace","age":30,"salary":60000,
	"zip_code":"02115","phone_number":"6175551234","relationship_status":"single",
	"occupation":"Engineer","city":"boston","living_situation":"single"
}`

func TestHealth(t *testing.T) {
	r := setupApp(t)

	rec := request(r, "GET", "/api/health", "", "")

	expectStatus(t, rec, http.StatusOK)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestCORS(t *testing.T) {
	r := setupApp(t)

	t.Run("answers preflight for an allowed origin", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/api/v1/calculator", nil)
		req.Header.Set("Origin", "https://app.pocketwatcha.test")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if rec.Header().Get("Access-Control-Allow-Origin") != "https://app.pocketwatcha.test" {
			t.Errorf("unexpected allow origin %q", rec.Header().Get("Access-Control-Allow-Origin"))
		}
	})

	t.Run("rejects other origins", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/health", nil)
		req.Header.Set("Origin", "https://evil.test")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})
}

func TestPublicCalculator(t *testing.T) {
	r := setupApp(t)

	t.Run("computes a plan without an account", func(t *testing.T) {
		rec := request(r, "POST", "/api/v1/calculator",
			`{"monthly_income":5000,"age_group":"26-35","living_situation":"single","city":"boston"}`, "")

		expectStatus(t, rec, http.StatusOK)
		plan := decode(t, rec)
		if plan["budget"] == nil || plan["career_advice"] == "" {
			t.Errorf("expected budget and career advice in plan, got %v", plan)
		}
	})

	t.Run("reports unknown cities", func(t *testing.T) {
		rec := request(r, "POST", "/api/v1/calculator",
			`{"monthly_income":5000,"age_group":"26-35","living_situation":"single","city":"atlantis"}`, "")

		expectStatus(t, rec, http.StatusUnprocessableEntity)
	})

	t.Run("lists locations", func(t *testing.T) {
		rec := request(r, "GET", "/api/v1/locations?search=tor", "", "")

		expectStatus(t, rec, http.StatusOK)
		if len(decode(t, rec)["groups"].([]interface{})) == 0 {
			t.Error("expected at least one group")
		}
	})
}

func TestBudgetFlow(t *testing.T) {
	r := setupApp(t)
	token := register(t, r, "flow@example.com")

	t.Run("requires authentication", func(t *testing.T) {
		rec := request(r, "GET", "/api/v1/budgets", "", "")
		expectStatus(t, rec, http.StatusUnauthorized)
	})

	t.Run("gates insights on the profile", func(t *testing.T) {
		rec := request(r, "GET", "/api/v1/insights/report", "", token)
		expectStatus(t, rec, http.StatusConflict)
	})

	rec := request(r, "PUT", "/api/v1/profile", completeProfile, token)
	expectStatus(t, rec, http.StatusOK)
	if decode(t, rec)["complete"] != true {
		t.Fatal("expected a complete profile")
	}

	rec = request(r, "POST", "/api/v1/budgets/allocate", "", token)
	expectStatus(t, rec, http.StatusOK)
	if len(decode(t, rec)["budgets"].([]interface{})) == 0 {
		t.Fatal("expected budgets to be saved")
	}

	rec = request(r, "GET", "/api/v1/categories", "", token)
	expectStatus(t, rec, http.StatusOK)
	var foodID string
	for _, c := range decode(t, rec)["categories"].([]interface{}) {
		cat := c.(map[string]interface{})
		if cat["name"] == "Food" {
			foodID = cat["id"].(string)
		}
	}
	if foodID == "" {
		t.Fatal("expected a Food category")
	}

	t.Run("report is empty before spending", func(t *testing.T) {
		rec := request(r, "GET", "/api/v1/insights/report", "", token)
		expectStatus(t, rec, http.StatusOK)
		if decode(t, rec)["total_spent"].(float64) != 0 {
			t.Error("expected nothing spent")
		}
	})

	rec = request(r, "POST", "/api/v1/expenses",
		fmt.Sprintf(`{"category_id":%q,"amount":42.5,"description":"Groceries"}`, foodID), token)
	expectStatus(t, rec, http.StatusCreated)
	created, ok := decode(t, rec)["expense"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected the created expense, got %s", rec.Body.String())
	}
	expenseID := created["id"].(string)

	t.Run("logged expense refreshes the report", func(t *testing.T) {
		rec := request(r, "GET", "/api/v1/insights/report", "", token)
		expectStatus(t, rec, http.StatusOK)
		if got := decode(t, rec)["total_spent"].(float64); got != 42.5 {
			t.Errorf("expected 42.5 spent, got %v", got)
		}
	})

	t.Run("groups expenses by date", func(t *testing.T) {
		rec := request(r, "GET", "/api/v1/expenses?group=date&search=groc", "", token)
		expectStatus(t, rec, http.StatusOK)
		if len(decode(t, rec)["days"].([]interface{})) != 1 {
			t.Error("expected one day")
		}
	})

	t.Run("serves the other insight views", func(t *testing.T) {
		for _, path := range []string{
			"/api/v1/insights/advice",
			"/api/v1/insights/trend?range=week",
			"/api/v1/insights/stats?range=month",
			"/api/v1/insights/overview",
			"/api/v1/tips/daily",
		} {
			rec := request(r, "GET", path, "", token)
			if rec.Code != http.StatusOK {
				t.Errorf("%s: expected 200, got %d: %s", path, rec.Code, rec.Body.String())
			}
		}
	})

	t.Run("deleted expense leaves the report", func(t *testing.T) {
		rec := request(r, "DELETE", "/api/v1/expenses/"+expenseID, "", token)
		expectStatus(t, rec, http.StatusOK)

		rec = request(r, "GET", "/api/v1/insights/report", "", token)
		expectStatus(t, rec, http.StatusOK)
		if decode(t, rec)["total_spent"].(float64) != 0 {
			t.Error("expected nothing spent after delete")
		}
	})

	t.Run("other users cannot see the expense", func(t *testing.T) {
		other := register(t, r, "other@example.com")
		rec := request(r, "GET", "/api/v1/expenses/"+expenseID, "", other)
		expectStatus(t, rec, http.StatusNotFound)
	})
}

func TestAdminTips(t *testing.T) {
	r := setupApp(t)

	t.Run("rejects a missing key", func(t *testing.T) {
		rec := request(r, "GET", "/api/v1/admin/tips", "", "")
		expectStatus(t, rec, http.StatusUnauthorized)
	})

	t.Run("creates a tip with the key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/admin/tips",
			strings.NewReader(`{"title":"Round up","content":"Round each purchase up and save the change."}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", adminKey)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		expectStatus(t, rec, http.StatusCreated)
	})
}
