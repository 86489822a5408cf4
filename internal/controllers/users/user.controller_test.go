package userController

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"healthdash/config"
	"healthdash/internal/database"
	"healthdash/internal/events"
	. "healthdash/internal/models"
	"healthdash/internal/repositories"
	"healthdash/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestController(t *testing.T) (*UserController, repositories.SessionRepository) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&User{}, &Session{}))

	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	db := database.DB{SQL: gormDB}
	sessionRepo := repositories.NewSession(db)
	controller := New(
		repositories.NewUser(db),
		sessionRepo,
		services.NewCacheInvalidationService(db, events.New(nil, config.Config{})),
		config.Config{SessionTTLHours: 1},
	)
	return controller, sessionRepo
}

func stringPtr(s string) *string {
	return &s
}

func TestSessionID_DigestsToken(t *testing.T) {
	first := SessionID("token-a")
	second := SessionID("token-a")
	other := SessionID("token-b")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.NotContains(t, first, "token-a")
	assert.Len(t, first, 64)
}

func TestLogin_OpensSessionWithDigestedID(t *testing.T) {
	controller, sessionRepo := newTestController(t)
	ctx := context.Background()

	user, token, err := controller.Login(ctx, &UpsertUserRequest{
		ID:    "user-login",
		Email: stringPtr("login@example.com"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "user-login", user.ID)

	// The session is stored under the digest, not the raw token
	_, err = sessionRepo.Get(ctx, token)
	assert.ErrorIs(t, err, ErrNotFound)

	session, err := sessionRepo.Get(ctx, SessionID(token))
	require.NoError(t, err)

	var payload SessionPayload
	require.NoError(t, json.Unmarshal(session.Payload, &payload))
	assert.Equal(t, "user-login", payload.UserID)
}

func TestLogin_RepeatRefreshesIdentity(t *testing.T) {
	controller, _ := newTestController(t)
	ctx := context.Background()

	_, _, err := controller.Login(ctx, &UpsertUserRequest{
		ID:    "user-repeat",
		Email: stringPtr("old@example.com"),
	})
	require.NoError(t, err)

	user, _, err := controller.Login(ctx, &UpsertUserRequest{
		ID:    "user-repeat",
		Email: stringPtr("new@example.com"),
	})
	require.NoError(t, err)
	require.NotNil(t, user.Email)
	assert.Equal(t, "new@example.com", *user.Email)
}

func TestLogout_RemovesSession(t *testing.T) {
	controller, sessionRepo := newTestController(t)
	ctx := context.Background()

	_, token, err := controller.Login(ctx, &UpsertUserRequest{ID: "user-logout"})
	require.NoError(t, err)

	require.NoError(t, controller.Logout(ctx, token))

	_, err = sessionRepo.Get(ctx, SessionID(token))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateSubscription_ValidatesEnums(t *testing.T) {
	controller, _ := newTestController(t)
	ctx := context.Background()

	_, _, err := controller.Login(ctx, &UpsertUserRequest{ID: "user-sub"})
	require.NoError(t, err)

	_, err = controller.UpdateSubscription(ctx, "user-sub", &UpdateSubscriptionRequest{
		Status: "trialing",
		Tier:   SubscriptionTierPro,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = controller.UpdateSubscription(ctx, "user-sub", &UpdateSubscriptionRequest{
		Status: SubscriptionStatusActive,
		Tier:   "platinum",
	})
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := controller.UpdateSubscription(ctx, "user-sub", &UpdateSubscriptionRequest{
		Status: SubscriptionStatusActive,
		Tier:   SubscriptionTierPro,
	})
	require.NoError(t, err)
	assert.Equal(t, SubscriptionStatusActive, updated.SubscriptionStatus)
	assert.Equal(t, SubscriptionTierPro, updated.SubscriptionTier)
}
