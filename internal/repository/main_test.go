package repository

import (
	"fmt"
	"testing"
	"time"

	"chirp/internal/database"
	"chirp/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema. Each test
// gets its own database, so there is no cross-test cleanup.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.AllModels()...))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	ts := time.Now().UnixNano()
	u := &models.User{
		Username: fmt.Sprintf("%s_%d", name, ts),
		FullName: name,
		Email:    fmt.Sprintf("%s_%d@example.com", name, ts),
		Password: "hashed-password",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}
