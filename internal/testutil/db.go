package testutil

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/morphergyx/inquiry-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB returns a migrated database for one test. It uses a private
// in-memory sqlite database unless TEST_DATABASE_DSN points at PostgreSQL.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}

	if dsn := os.Getenv("TEST_DATABASE_DSN"); dsn != "" {
		db, err := gorm.Open(postgres.Open(dsn), cfg)
		require.NoError(t, err, "Failed to connect to test database. Ensure PostgreSQL is running.")
		require.NoError(t, db.AutoMigrate(&domain.Inquiry{}, &domain.InquiryNote{}))
		t.Cleanup(func() { CleanupTestData(t, db) })
		return db
	}

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps the shared in-memory database alive and serialized
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(&domain.Inquiry{}, &domain.InquiryNote{}))
	return db
}

// CleanupTestData removes all rows, notes first
func CleanupTestData(t *testing.T, db *gorm.DB) {
	for _, table := range []string{"inquiry_notes", "inquiries"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Logf("Warning: failed to clean %s: %v", table, err)
		}
	}
}

// NewInquiry builds a valid, unsaved inquiry
func NewInquiry(company string) *domain.Inquiry {
	return &domain.Inquiry{
		Company:   company,
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Phone:     "+1 555 0100",
		Interest:  domain.InterestReactor,
		IPAddress: "203.0.113.7",
		UserAgent: "test-agent",
	}
}
