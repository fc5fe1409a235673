package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wetalkinmedia/PocketWatcha2/internal/advice"
	"github.com/wetalkinmedia/PocketWatcha2/internal/allocation"
	"github.com/wetalkinmedia/PocketWatcha2/internal/analytics"
	"github.com/wetalkinmedia/PocketWatcha2/internal/config"
	"github.com/wetalkinmedia/PocketWatcha2/internal/middleware"
	"github.com/wetalkinmedia/PocketWatcha2/internal/models"
	"github.com/wetalkinmedia/PocketWatcha2/internal/pagination"
	"github.com/wetalkinmedia/PocketWatcha2/internal/services"
	"github.com/wetalkinmedia/PocketWatcha2/internal/validator"
)

const (
	testUserID     = "0190a8e4-7a2b-7c3d-8e4f-5a6b7c8d9e0f"
	testCategoryID = "0190a8e4-7a2b-7c3d-8e4f-000000000001"
	testExpenseID  = "0190a8e4-7a2b-7c3d-8e4f-000000000002"
)

// --- mock services ---

type mockUserService struct {
	createUserFn            func(email, password, firstName, lastName string) (*models.User, error)
	getUserByEmailFn        func(email string) (*models.User, error)
	getUserByIDFn           func(id string) (*models.User, error)
	verifyPasswordFn        func(user *models.User, password string) bool
	attemptLoginFn          func(email, password string) (*models.User, error)
	storeRefreshTokenHashFn func(userID string, tokenHash string) error
	getRefreshTokenHashFn   func(userID string) (string, error)
}

func (m *mockUserService) CreateUser(email, password, firstName, lastName string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(email, password, firstName, lastName)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByEmail(email string) (*models.User, error) {
	if m.getUserByEmailFn != nil {
		return m.getUserByEmailFn(email)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{Base: models.Base{ID: id}}, nil
}

func (m *mockUserService) VerifyPassword(user *models.User, password string) bool {
	if m.verifyPasswordFn != nil {
		return m.verifyPasswordFn(user, password)
	}
	return true
}

func (m *mockUserService) AttemptLogin(email, password string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(email, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) StoreRefreshTokenHash(userID string, tokenHash string) error {
	if m.storeRefreshTokenHashFn != nil {
		return m.storeRefreshTokenHashFn(userID, tokenHash)
	}
	return nil
}

func (m *mockUserService) GetRefreshTokenHash(userID string) (string, error) {
	if m.getRefreshTokenHashFn != nil {
		return m.getRefreshTokenHashFn(userID)
	}
	return "", nil
}

type mockProfileService struct {
	getProfileFn       func(userID string) (*models.UserProfile, error)
	upsertProfileFn    func(userID string, in services.ProfileInput) (*models.UserProfile, error)
	calculatorInputsFn func(userID string) (*services.PlannerInput, error)
	requireCompleteFn  func(userID string) (*models.UserProfile, error)
}

func (m *mockProfileService) GetProfile(userID string) (*models.UserProfile, error) {
	if m.getProfileFn != nil {
		return m.getProfileFn(userID)
	}
	return &models.UserProfile{UserID: userID}, nil
}

func (m *mockProfileService) UpsertProfile(userID string, in services.ProfileInput) (*models.UserProfile, error) {
	if m.upsertProfileFn != nil {
		return m.upsertProfileFn(userID, in)
	}
	return &models.UserProfile{UserID: userID}, nil
}

func (m *mockProfileService) CalculatorInputs(userID string) (*services.PlannerInput, error) {
	if m.calculatorInputsFn != nil {
		return m.calculatorInputsFn(userID)
	}
	return &services.PlannerInput{MonthlyIncome: 5000, Currency: "USD", AgeGroup: "26-35", LivingSituation: "single", City: "tier-standard"}, nil
}

func (m *mockProfileService) RequireComplete(userID string) (*models.UserProfile, error) {
	if m.requireCompleteFn != nil {
		return m.requireCompleteFn(userID)
	}
	return &models.UserProfile{UserID: userID}, nil
}

type mockCategoryService struct {
	listCategoriesFn  func() ([]models.BudgetCategory, error)
	getCategoryByIDFn func(categoryID string) (*models.BudgetCategory, error)
}

func (m *mockCategoryService) ListCategories() ([]models.BudgetCategory, error) {
	if m.listCategoriesFn != nil {
		return m.listCategoriesFn()
	}
	return []models.BudgetCategory{}, nil
}

func (m *mockCategoryService) GetCategoryByID(categoryID string) (*models.BudgetCategory, error) {
	if m.getCategoryByIDFn != nil {
		return m.getCategoryByIDFn(categoryID)
	}
	return &models.BudgetCategory{Base: models.Base{ID: categoryID}}, nil
}

type mockBudgetService struct {
	getUserBudgetsFn   func(userID string) ([]models.UserBudget, error)
	saveBudgetsFn      func(userID string, lines []services.BudgetLine) ([]models.UserBudget, error)
	applyAllocationFn  func(userID string, budget allocation.Budget) ([]models.UserBudget, error)
	applyRecommendedFn func(userID string, monthlyIncome float64) ([]models.UserBudget, error)
}

func (m *mockBudgetService) GetUserBudgets(userID string) ([]models.UserBudget, error) {
	if m.getUserBudgetsFn != nil {
		return m.getUserBudgetsFn(userID)
	}
	return []models.UserBudget{}, nil
}

func (m *mockBudgetService) SaveBudgets(userID string, lines []services.BudgetLine) ([]models.UserBudget, error) {
	if m.saveBudgetsFn != nil {
		return m.saveBudgetsFn(userID, lines)
	}
	return []models.UserBudget{}, nil
}

func (m *mockBudgetService) ApplyAllocation(userID string, budget allocation.Budget) ([]models.UserBudget, error) {
	if m.applyAllocationFn != nil {
		return m.applyAllocationFn(userID, budget)
	}
	return []models.UserBudget{}, nil
}

func (m *mockBudgetService) ApplyRecommended(userID string, monthlyIncome float64) ([]models.UserBudget, error) {
	if m.applyRecommendedFn != nil {
		return m.applyRecommendedFn(userID, monthlyIncome)
	}
	return []models.UserBudget{}, nil
}

type mockExpenseService struct {
	createExpenseFn   func(userID, categoryID string, amount float64, description string, date time.Time) (*models.Expense, error)
	getExpenseByIDFn  func(userID, expenseID string) (*models.Expense, error)
	listExpensesFn    func(userID string, page pagination.PageRequest, filter services.ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	deleteExpenseFn   func(userID, expenseID string) error
	expensesBetweenFn func(ctx context.Context, userID string, from, to time.Time) ([]models.Expense, error)
}

func (m *mockExpenseService) CreateExpense(userID, categoryID string, amount float64, description string, date time.Time) (*models.Expense, error) {
	if m.createExpenseFn != nil {
		return m.createExpenseFn(userID, categoryID, amount, description, date)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) GetExpenseByID(userID, expenseID string) (*models.Expense, error) {
	if m.getExpenseByIDFn != nil {
		return m.getExpenseByIDFn(userID, expenseID)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) ListExpenses(userID string, page pagination.PageRequest, filter services.ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	if m.listExpensesFn != nil {
		return m.listExpensesFn(userID, page, filter)
	}
	resp := pagination.NewPageResponse([]models.Expense{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockExpenseService) DeleteExpense(userID, expenseID string) error {
	if m.deleteExpenseFn != nil {
		return m.deleteExpenseFn(userID, expenseID)
	}
	return nil
}

func (m *mockExpenseService) ExpensesBetween(ctx context.Context, userID string, from, to time.Time) ([]models.Expense, error) {
	if m.expensesBetweenFn != nil {
		return m.expensesBetweenFn(ctx, userID, from, to)
	}
	return nil, nil
}

type mockPlannerService struct {
	calculateFn func(in services.PlannerInput) (*services.Plan, error)
}

func (m *mockPlannerService) Calculate(in services.PlannerInput) (*services.Plan, error) {
	if m.calculateFn != nil {
		return m.calculateFn(in)
	}
	return &services.Plan{Input: in}, nil
}

type mockInsightService struct {
	reportFn    func(ctx context.Context, userID string, today time.Time) (*analytics.Report, error)
	adviceFn    func(ctx context.Context, userID string, today time.Time) ([]advice.Advice, error)
	trendFn     func(ctx context.Context, userID string, r analytics.Range, today time.Time) ([]analytics.TrendPoint, error)
	statsFn     func(ctx context.Context, userID string, r analytics.Range, today time.Time) (*analytics.Stats, error)
	overviewFn  func(ctx context.Context, userID string, today time.Time) (*analytics.Overview, error)
	invalidated []string
}

func (m *mockInsightService) Report(ctx context.Context, userID string, today time.Time) (*analytics.Report, error) {
	if m.reportFn != nil {
		return m.reportFn(ctx, userID, today)
	}
	return &analytics.Report{}, nil
}

func (m *mockInsightService) Advice(ctx context.Context, userID string, today time.Time) ([]advice.Advice, error) {
	if m.adviceFn != nil {
		return m.adviceFn(ctx, userID, today)
	}
	return []advice.Advice{}, nil
}

func (m *mockInsightService) Trend(ctx context.Context, userID string, r analytics.Range, today time.Time) ([]analytics.TrendPoint, error) {
	if m.trendFn != nil {
		return m.trendFn(ctx, userID, r, today)
	}
	return []analytics.TrendPoint{}, nil
}

func (m *mockInsightService) Stats(ctx context.Context, userID string, r analytics.Range, today time.Time) (*analytics.Stats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, userID, r, today)
	}
	return &analytics.Stats{Range: r}, nil
}

func (m *mockInsightService) Overview(ctx context.Context, userID string, today time.Time) (*analytics.Overview, error) {
	if m.overviewFn != nil {
		return m.overviewFn(ctx, userID, today)
	}
	return &analytics.Overview{}, nil
}

func (m *mockInsightService) Invalidate(_ context.Context, userID string) {
	m.invalidated = append(m.invalidated, userID)
}

type mockTipService struct {
	listTipsFn  func() ([]models.FinancialTip, error)
	dailyTipFn  func(date time.Time) (*models.FinancialTip, error)
	createTipFn func(title, content, category string, displayOrder int) (*models.FinancialTip, error)
}

func (m *mockTipService) ListTips() ([]models.FinancialTip, error) {
	if m.listTipsFn != nil {
		return m.listTipsFn()
	}
	return []models.FinancialTip{}, nil
}

func (m *mockTipService) DailyTip(date time.Time) (*models.FinancialTip, error) {
	if m.dailyTipFn != nil {
		return m.dailyTipFn(date)
	}
	return &models.FinancialTip{}, nil
}

func (m *mockTipService) CreateTip(title, content, category string, displayOrder int) (*models.FinancialTip, error) {
	if m.createTipFn != nil {
		return m.createTipFn(title, content, category, displayOrder)
	}
	return &models.FinancialTip{Title: title, Content: content}, nil
}

type mockAuditService struct {
	actions []string
}

func (m *mockAuditService) Log(_, action, _, _, _ string, _ map[string]any) {
	m.actions = append(m.actions, action)
}

var (
	_ services.UserServicer     = (*mockUserService)(nil)
	_ services.ProfileServicer  = (*mockProfileService)(nil)
	_ services.CategoryServicer = (*mockCategoryService)(nil)
	_ services.BudgetServicer   = (*mockBudgetService)(nil)
	_ services.ExpenseServicer  = (*mockExpenseService)(nil)
	_ services.PlannerServicer  = (*mockPlannerService)(nil)
	_ services.InsightServicer  = (*mockInsightService)(nil)
	_ services.TipServicer      = (*mockTipService)(nil)
	_ services.AuditServicer    = (*mockAuditService)(nil)
)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
	config.Set(&config.Config{JWTSecret: "handler-test-secret"})
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// pinToday fixes the handlers' clock for the duration of a test.
func pinToday(t *testing.T, day time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return day }
	t.Cleanup(func() { now = prev })
}
