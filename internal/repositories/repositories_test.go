package repositories

import (
	"path/filepath"
	"testing"

	"healthdash/internal/database"
	. "healthdash/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a throwaway sqlite database with the full schema and no
// cache tier; the cache builder treats nil clients as misses.
func newTestDB(t *testing.T) database.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, gormDB.AutoMigrate(
		&User{},
		&LabResult{},
		&BloodworkMarker{},
		&HealthMetric{},
		&AiInsight{},
		&HealthEvent{},
		&ConnectedService{},
		&Workout{},
		&WorkoutSet{},
		&Session{},
	))

	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return database.DB{SQL: gormDB}
}

func seedUser(t *testing.T, db database.DB, id string) User {
	t.Helper()

	email := id + "@example.com"
	user := User{ID: id, Email: &email}
	require.NoError(t, db.SQL.Create(&user).Error)
	return user
}

func stringPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}
