// Package testutil provides test helpers for setting up in-memory databases,
// creating fixtures, and making assertions.
package testutil

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wetalkinmedia/PocketWatcha2/internal/database"
	"github.com/wetalkinmedia/PocketWatcha2/internal/models"
)

// SetupTestDB creates an in-memory SQLite database with all models migrated
// and the default categories and tips seeded.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	if err := database.Seed(db); err != nil {
		t.Fatalf("failed to seed test database: %v", err)
	}

	return db
}

// TeardownTestDB drops every table and closes the connection so the next
// test starts from an empty shared in-memory database.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	all := models.All()
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			t.Errorf("failed to drop table: %v", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}
