package repositories

import (
	"context"
	"testing"
	"time"

	. "healthdash/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectedServiceRepository_GetByUserAndName(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectedService(db)
	ctx := context.Background()

	user := seedUser(t, db, "user-conn")

	_, err := repo.GetByUserAndName(ctx, user.ID, ServiceStrava)
	assert.ErrorIs(t, err, ErrNotFound)

	service := ConnectedService{
		UserID:      user.ID,
		ServiceName: ServiceStrava,
		IsConnected: true,
		AuthData:    []byte(`{"token":"abc"}`),
	}
	require.NoError(t, repo.Create(ctx, &service))

	got, err := repo.GetByUserAndName(ctx, user.ID, ServiceStrava)
	require.NoError(t, err)
	assert.True(t, got.IsConnected)
	assert.JSONEq(t, `{"token":"abc"}`, string(got.AuthData))
}

func TestConnectedServiceRepository_UpdateSyncTimestamp(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectedService(db)
	ctx := context.Background()

	user := seedUser(t, db, "user-sync")

	service := ConnectedService{
		UserID:      user.ID,
		ServiceName: ServiceFitbit,
		IsConnected: true,
	}
	require.NoError(t, repo.Create(ctx, &service))

	syncedAt := time.Date(2026, 8, 31, 6, 0, 0, 0, time.UTC)
	service.LastSynced = &syncedAt
	require.NoError(t, repo.Update(ctx, &service))

	got, err := repo.GetByUserAndName(ctx, user.ID, ServiceFitbit)
	require.NoError(t, err)
	require.NotNil(t, got.LastSynced)
	assert.True(t, got.LastSynced.Equal(syncedAt))
}

func TestConnectedServiceRepository_ListByUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectedService(db)
	ctx := context.Background()

	user := seedUser(t, db, "user-list-conn")
	other := seedUser(t, db, "user-other-conn")

	require.NoError(t, repo.Create(ctx, &ConnectedService{UserID: user.ID, ServiceName: ServiceStrava}))
	require.NoError(t, repo.Create(ctx, &ConnectedService{UserID: user.ID, ServiceName: ServiceFitbit}))
	require.NoError(t, repo.Create(ctx, &ConnectedService{UserID: other.ID, ServiceName: ServiceStrava}))

	services, err := repo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, services, 2)
}
