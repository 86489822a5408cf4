package integrationController

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"healthdash/internal/database"
	. "healthdash/internal/models"
	"healthdash/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestController(t *testing.T) (*IntegrationController, database.DB) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&User{}, &ConnectedService{}))

	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	db := database.DB{SQL: gormDB}
	controller := New(
		repositories.NewConnectedService(db),
		repositories.NewUser(db),
	)
	return controller, db
}

func seedUser(t *testing.T, db database.DB, id string) User {
	t.Helper()

	email := id + "@example.com"
	user := User{ID: id, Email: &email}
	require.NoError(t, db.SQL.Create(&user).Error)
	return user
}

func TestConnect_CreatesThenReconnects(t *testing.T) {
	controller, db := newTestController(t)
	ctx := context.Background()
	user := seedUser(t, db, "user-connect")

	service, err := controller.Connect(ctx, &ConnectServiceRequest{
		UserID:      user.ID,
		ServiceName: ServiceStrava,
		AuthData:    []byte(`{"token":"first"}`),
	})
	require.NoError(t, err)
	assert.True(t, service.IsConnected)

	firstID := service.ID

	// Reconnecting replaces credentials on the same row instead of
	// inserting a second one
	service, err = controller.Connect(ctx, &ConnectServiceRequest{
		UserID:      user.ID,
		ServiceName: ServiceStrava,
		AuthData:    []byte(`{"token":"second"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, firstID, service.ID)
	assert.JSONEq(t, `{"token":"second"}`, string(service.AuthData))

	all, err := controller.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestConnect_RequiresExistingUser(t *testing.T) {
	controller, _ := newTestController(t)

	_, err := controller.Connect(context.Background(), &ConnectServiceRequest{
		UserID:      "ghost",
		ServiceName: ServiceFitbit,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDisconnect_DropsCredentialsKeepsLastSynced(t *testing.T) {
	controller, db := newTestController(t)
	ctx := context.Background()
	user := seedUser(t, db, "user-disconnect")

	_, err := controller.Connect(ctx, &ConnectServiceRequest{
		UserID:      user.ID,
		ServiceName: ServiceFitbit,
		AuthData:    []byte(`{"token":"abc"}`),
	})
	require.NoError(t, err)

	syncedAt := time.Now().Add(-time.Hour)
	_, err = controller.RecordSync(ctx, user.ID, ServiceFitbit, syncedAt)
	require.NoError(t, err)

	service, err := controller.Disconnect(ctx, user.ID, ServiceFitbit)
	require.NoError(t, err)
	assert.False(t, service.IsConnected)
	assert.Empty(t, service.AuthData)
	require.NotNil(t, service.LastSynced)
	assert.True(t, service.LastSynced.Equal(syncedAt))
}

func TestRecordSync_RejectsDisconnected(t *testing.T) {
	controller, db := newTestController(t)
	ctx := context.Background()
	user := seedUser(t, db, "user-sync-off")

	_, err := controller.Connect(ctx, &ConnectServiceRequest{
		UserID:      user.ID,
		ServiceName: ServiceStrava,
	})
	require.NoError(t, err)
	_, err = controller.Disconnect(ctx, user.ID, ServiceStrava)
	require.NoError(t, err)

	_, err = controller.RecordSync(ctx, user.ID, ServiceStrava, time.Now())
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestRecordSync_OnlyMovesForward(t *testing.T) {
	controller, db := newTestController(t)
	ctx := context.Background()
	user := seedUser(t, db, "user-sync-fwd")

	_, err := controller.Connect(ctx, &ConnectServiceRequest{
		UserID:      user.ID,
		ServiceName: ServiceStrava,
	})
	require.NoError(t, err)

	later := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	service, err := controller.RecordSync(ctx, user.ID, ServiceStrava, later)
	require.NoError(t, err)
	require.NotNil(t, service.LastSynced)

	// An older timestamp is ignored, not an error
	service, err = controller.RecordSync(ctx, user.ID, ServiceStrava, later.Add(-time.Hour))
	require.NoError(t, err)
	assert.True(t, service.LastSynced.Equal(later))

	// A newer one advances
	newest := later.Add(time.Hour)
	service, err = controller.RecordSync(ctx, user.ID, ServiceStrava, newest)
	require.NoError(t, err)
	assert.True(t, service.LastSynced.Equal(newest))
}

func TestRecordSync_UnknownService(t *testing.T) {
	controller, db := newTestController(t)
	user := seedUser(t, db, "user-sync-none")

	_, err := controller.RecordSync(context.Background(), user.ID, ServiceGoogleFit, time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}
