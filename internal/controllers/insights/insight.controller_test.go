package insightController

import (
	"context"
	"path/filepath"
	"testing"

	"healthdash/config"
	"healthdash/internal/database"
	"healthdash/internal/events"
	. "healthdash/internal/models"
	"healthdash/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestController(t *testing.T) (*InsightController, *events.EventBus, database.DB) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&User{}, &AiInsight{}))

	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	db := database.DB{SQL: gormDB}
	bus := events.New(nil, config.Config{})
	controller := New(
		repositories.NewAiInsight(db),
		repositories.NewUser(db),
		bus,
	)
	return controller, bus, db
}

func seedUser(t *testing.T, db database.DB, id string) User {
	t.Helper()

	email := id + "@example.com"
	user := User{ID: id, Email: &email}
	require.NoError(t, db.SQL.Create(&user).Error)
	return user
}

func TestCreate_DefaultsSeverityAndNotifies(t *testing.T) {
	controller, bus, db := newTestController(t)
	ctx := context.Background()
	user := seedUser(t, db, "user-insight")

	var received []events.Event
	bus.Subscribe("insights", func(e events.Event) {
		received = append(received, e)
	})

	insight, err := controller.Create(ctx, &CreateAiInsightRequest{
		UserID:  user.ID,
		Content: "Average sleep dropped below 6 hours this week",
	})
	require.NoError(t, err)
	assert.Equal(t, InsightSeverityInfo, insight.Severity)
	assert.False(t, insight.IsRead)

	require.Len(t, received, 1)
	assert.Equal(t, "insight.created", received[0].Type)
	assert.Equal(t, user.ID, received[0].UserID)
}

func TestCreate_RejectsUnknownSeverity(t *testing.T) {
	controller, _, db := newTestController(t)
	user := seedUser(t, db, "user-severity")

	_, err := controller.Create(context.Background(), &CreateAiInsightRequest{
		UserID:   user.ID,
		Content:  "Something",
		Severity: "critical",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_RequiresContent(t *testing.T) {
	controller, _, db := newTestController(t)
	user := seedUser(t, db, "user-content")

	_, err := controller.Create(context.Background(), &CreateAiInsightRequest{UserID: user.ID})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMarkRead_OneWay(t *testing.T) {
	controller, _, db := newTestController(t)
	ctx := context.Background()
	user := seedUser(t, db, "user-read")

	insight, err := controller.Create(ctx, &CreateAiInsightRequest{
		UserID:   user.ID,
		Content:  "Protein intake well below target",
		Severity: InsightSeverityWarning,
	})
	require.NoError(t, err)

	require.NoError(t, controller.MarkRead(ctx, insight.ID))

	unread, err := controller.ListUnread(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, unread)

	all, err := controller.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].IsRead)
}
