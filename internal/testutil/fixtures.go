package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/wetalkinmedia/PocketWatcha2/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestProfile creates a complete profile: a 30 year old single
// professional in Austin earning 60000 a year.
func CreateTestProfile(t *testing.T, db *gorm.DB, userID string) *models.UserProfile {
	t.Helper()

	p := &models.UserProfile{
		UserID:             userID,
		FirstName:          "Test",
		LastName:           fmt.Sprintf("User%d", nextID()),
		Age:                30,
		Salary:             decimal.NewFromInt(60000),
		ZipCode:            "78701",
		PhoneNumber:        "512-555-0100",
		RelationshipStatus: "single",
		Occupation:         "Engineer",
		City:               "austin",
		Currency:           "USD",
		LivingSituation:    "single",
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return p
}

// Categories returns the seeded categories in display order.
func Categories(t *testing.T, db *gorm.DB) []models.BudgetCategory {
	t.Helper()

	var cats []models.BudgetCategory
	if err := db.Order("display_order").Find(&cats).Error; err != nil {
		t.Fatalf("failed to load categories: %v", err)
	}
	if len(cats) == 0 {
		t.Fatal("no seeded categories")
	}
	return cats
}

// CategoryByName returns the seeded category with the given name.
func CategoryByName(t *testing.T, db *gorm.DB, name string) *models.BudgetCategory {
	t.Helper()

	var cat models.BudgetCategory
	if err := db.Where("name = ?", name).First(&cat).Error; err != nil {
		t.Fatalf("failed to load category %q: %v", name, err)
	}
	return &cat
}

// CreateTestBudget sets a monthly amount for one category.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID, categoryID string, amount float64) *models.UserBudget {
	t.Helper()

	b := &models.UserBudget{
		UserID:        userID,
		CategoryID:    categoryID,
		MonthlyAmount: decimal.NewFromFloat(amount),
		Percentage:    decimal.Zero,
	}
	if err := db.Create(b).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return b
}

// CreateTestExpense logs an expense on the given date.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, categoryID string, amount float64, description string, date time.Time) *models.Expense {
	t.Helper()

	e := &models.Expense{
		UserID:      userID,
		CategoryID:  categoryID,
		Amount:      decimal.NewFromFloat(amount),
		Description: description,
		ExpenseDate: date,
	}
	if err := db.Create(e).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return e
}
