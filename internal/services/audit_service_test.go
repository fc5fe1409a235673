package services

import (
	"strings"
	"testing"

	"github.com/wetalkinmedia/PocketWatcha2/internal/models"
	"github.com/wetalkinmedia/PocketWatcha2/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)

	user := testutil.CreateTestUser(t, db)
	svc.Log(user.ID, AuditExpenseCreated, "expense", "exp-1", "127.0.0.1", map[string]any{"amount": "12.50"})

	var entries []models.AuditLog
	testutil.AssertNoError(t, db.Where("user_id = ?", user.ID).Find(&entries).Error)
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	if entries[0].Action != AuditExpenseCreated || !strings.Contains(entries[0].Changes, "12.50") {
		t.Errorf("unexpected entry %+v", entries[0])
	}
}

func TestAuditLog_unmarshalable_changes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)

	user := testutil.CreateTestUser(t, db)
	svc.Log(user.ID, AuditBudgetsSaved, "budget", "", "", map[string]any{"bad": make(chan int)})

	var entry models.AuditLog
	testutil.AssertNoError(t, db.Where("user_id = ?", user.ID).First(&entry).Error)
	if entry.Changes != "{}" {
		t.Errorf("expected empty changes, got %q", entry.Changes)
	}
}

func TestAuditLog_admin_action(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)

	svc.Log("", AuditTipCreated, "tip", "tip-1", "10.0.0.1", nil)

	var entry models.AuditLog
	testutil.AssertNoError(t, db.Where("action = ?", AuditTipCreated).First(&entry).Error)
	if entry.UserID != nil {
		t.Errorf("expected no user, got %q", *entry.UserID)
	}
}
