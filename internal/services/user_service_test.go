package services

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/wetalkinmedia/PocketWatcha2/internal/middleware"
	"github.com/wetalkinmedia/PocketWatcha2/internal/models"
	"github.com/wetalkinmedia/PocketWatcha2/internal/testutil"
)

const unknownUserID = "0190a1b2-0000-7000-8000-000000000000"

func reloadUser(t *testing.T, db *gorm.DB, id string) *models.User {
	t.Helper()
	var u models.User
	if err := db.First(&u, "id = ?", id).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	return &u
}

func TestCreateUser(t *testing.T) {
	t.Run("normalizes_email_and_hashes_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("  Ada@Example.COM ", "password123", "Ada", "Lovelace")
		testutil.AssertNoError(t, err)

		if user.ID == "" || !user.IsActive {
			t.Fatalf("expected an active user with an ID, got %+v", user)
		}
		if user.Email != "ada@example.com" {
			t.Errorf("expected normalized email, got %q", user.Email)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")); err != nil {
			t.Error("expected a bcrypt hash of the password")
		}
		if user.RefreshTokenHash != "" {
			t.Error("a new user should have no refresh token")
		}
	})

	t.Run("duplicate_ignores_case", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("dup@example.com", "password123", "", "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("DUP@example.com", "password456", "", "")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("requires_credentials", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		for _, tc := range []struct{ email, password string }{
			{"", "password123"},
			{"x@example.com", ""},
		} {
			_, err := svc.CreateUser(tc.email, tc.password, "", "")
			testutil.AssertAppError(t, err, "INVALID_INPUT")
		}
	})
}

func TestGetUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)
	created := testutil.CreateTestUserWithEmail(t, db, "found@example.com")

	byEmail, err := svc.GetUserByEmail(" FOUND@example.com")
	testutil.AssertNoError(t, err)
	if byEmail.ID != created.ID {
		t.Errorf("expected %s, got %s", created.ID, byEmail.ID)
	}

	_, err = svc.GetUserByID(unknownUserID)
	testutil.AssertAppError(t, err, "USER_NOT_FOUND")

	db.Model(created).Update("is_active", false)
	_, err = svc.GetUserByEmail("found@example.com")
	testutil.AssertAppError(t, err, "USER_NOT_FOUND")
}

func TestAttemptLogin(t *testing.T) {
	t.Run("unknown_and_wrong_password_look_the_same", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		testutil.CreateTestUserWithEmail(t, db, "ada@example.com")

		_, errUnknown := svc.AttemptLogin("nobody@example.com", "password123")
		_, errWrong := svc.AttemptLogin("ada@example.com", "nope")
		testutil.AssertAppError(t, errUnknown, "INVALID_CREDENTIALS")
		testutil.AssertAppError(t, errWrong, "INVALID_CREDENTIALS")
	})

	t.Run("success_clears_failures", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		created := testutil.CreateTestUserWithEmail(t, db, "ada@example.com")

		for i := 0; i < maxFailedLoginAttempts-1; i++ {
			_, err := svc.AttemptLogin("ada@example.com", "nope")
			testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
		}
		if got := reloadUser(t, db, created.ID).FailedLoginAttempts; got != maxFailedLoginAttempts-1 {
			t.Fatalf("expected %d failures recorded, got %d", maxFailedLoginAttempts-1, got)
		}

		user, err := svc.AttemptLogin("ADA@example.com", "password123")
		testutil.AssertNoError(t, err)
		if user.LastLoginAt == nil {
			t.Error("expected LastLoginAt to be set")
		}
		stored := reloadUser(t, db, created.ID)
		if stored.FailedLoginAttempts != 0 || stored.LockedUntil != nil {
			t.Errorf("expected failures cleared, got %d / %v", stored.FailedLoginAttempts, stored.LockedUntil)
		}
	})

	t.Run("locks_after_five_failures", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		created := testutil.CreateTestUserWithEmail(t, db, "ada@example.com")

		start := time.Now()
		for i := 0; i < maxFailedLoginAttempts; i++ {
			_, err := svc.AttemptLogin("ada@example.com", "nope")
			testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
		}

		stored := reloadUser(t, db, created.ID)
		if stored.LockedUntil == nil {
			t.Fatal("expected the account to be locked")
		}
		if until := stored.LockedUntil.Sub(start); until < lockoutDuration-time.Minute || until > lockoutDuration+time.Minute {
			t.Errorf("expected a lock of about %v, got %v", lockoutDuration, until)
		}

		// Even the right password is refused, and the counter stops moving.
		_, err := svc.AttemptLogin("ada@example.com", "password123")
		testutil.AssertAppError(t, err, "ACCOUNT_LOCKED")
		_, err = svc.AttemptLogin("ada@example.com", "nope")
		testutil.AssertAppError(t, err, "ACCOUNT_LOCKED")
		if got := reloadUser(t, db, created.ID).FailedLoginAttempts; got != maxFailedLoginAttempts {
			t.Errorf("expected %d failures while locked, got %d", maxFailedLoginAttempts, got)
		}
	})

	t.Run("expired_lock_allows_login", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		created := testutil.CreateTestUserWithEmail(t, db, "ada@example.com")

		past := time.Now().Add(-time.Minute)
		db.Model(created).Updates(map[string]any{"locked_until": past, "failed_login_attempts": maxFailedLoginAttempts})

		_, err := svc.AttemptLogin("ada@example.com", "password123")
		testutil.AssertNoError(t, err)
		if stored := reloadUser(t, db, created.ID); stored.LockedUntil != nil {
			t.Errorf("expected the stale lock to be cleared, got %v", stored.LockedUntil)
		}
	})
}

func TestRefreshTokenRotation(t *testing.T) {
	t.Run("latest_hash_wins", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		got, err := svc.GetRefreshTokenHash(user.ID)
		testutil.AssertNoError(t, err)
		if got != "" {
			t.Fatalf("expected no hash before the first login, got %q", got)
		}

		first := middleware.HashToken("first-refresh-token")
		second := middleware.HashToken("second-refresh-token")
		testutil.AssertNoError(t, svc.StoreRefreshTokenHash(user.ID, first))
		testutil.AssertNoError(t, svc.StoreRefreshTokenHash(user.ID, second))

		got, err = svc.GetRefreshTokenHash(user.ID)
		testutil.AssertNoError(t, err)
		if got != second {
			t.Errorf("expected the rotated hash, got %q", got)
		}
		if got == first {
			t.Error("the earlier token should be revoked")
		}
	})

	t.Run("unknown_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		err := svc.StoreRefreshTokenHash(unknownUserID, middleware.HashToken("x"))
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
		_, err = svc.GetRefreshTokenHash(unknownUserID)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}
