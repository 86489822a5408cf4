package handlers

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"healthdash/config"
	"healthdash/internal/app"
	insightController "healthdash/internal/controllers/insights"
	integrationController "healthdash/internal/controllers/integrations"
	userController "healthdash/internal/controllers/users"
	"healthdash/internal/database"
	"healthdash/internal/events"
	"healthdash/internal/handlers/middleware"
	. "healthdash/internal/models"
	"healthdash/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testServer struct {
	app *fiber.App
	db  database.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, gormDB.AutoMigrate(
		&User{},
		&AiInsight{},
		&ConnectedService{},
		&Session{},
	))

	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	db := database.DB{SQL: gormDB}
	userRepo := repositories.NewUser(db)
	sessionRepo := repositories.NewSession(db)
	insightRepo := repositories.NewAiInsight(db)
	serviceRepo := repositories.NewConnectedService(db)
	eventBus := events.New(nil, config.Config{})

	application := app.App{
		Database:              db,
		Middleware:            middleware.New(db, config.Config{}, sessionRepo, userRepo),
		InsightController:     insightController.New(insightRepo, userRepo, eventBus),
		IntegrationController: integrationController.New(serviceRepo, userRepo),
	}

	fiberApp := fiber.New()
	api := fiberApp.Group("/api")
	NewInsightHandler(application, api).Register()
	NewIntegrationHandler(application, api).Register()

	return &testServer{app: fiberApp, db: db}
}

// seedSessionUser creates a user with a live session whose token is the
// user id plus "-token".
func (ts *testServer) seedSessionUser(t *testing.T, id string) User {
	t.Helper()

	email := id + "@example.com"
	user := User{ID: id, Email: &email}
	require.NoError(t, ts.db.SQL.Create(&user).Error)

	session := Session{
		SID:       userController.SessionID(id + "-token"),
		Payload:   datatypes.JSON([]byte(`{"userId":"` + id + `"}`)),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, ts.db.SQL.Create(&session).Error)

	return user
}

func (ts *testServer) request(t *testing.T, method, path, userID, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: userID + "-token"})

	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	return resp
}

func (ts *testServer) seedInsight(t *testing.T, userID, content string) AiInsight {
	t.Helper()

	insight := AiInsight{UserID: userID, Content: content, Severity: InsightSeverityInfo}
	require.NoError(t, ts.db.SQL.Create(&insight).Error)
	return insight
}

func TestInsightRoutes_MarkRead_OwnerOnly(t *testing.T) {
	ts := newTestServer(t)
	ts.seedSessionUser(t, "alice")
	ts.seedSessionUser(t, "bob")
	insight := ts.seedInsight(t, "alice", "cholesterol trending down")

	resp := ts.request(t, "PUT", "/api/insights/"+insight.ID+"/read", "bob", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var reloaded AiInsight
	require.NoError(t, ts.db.SQL.First(&reloaded, "id = ?", insight.ID).Error)
	assert.False(t, reloaded.IsRead)

	resp = ts.request(t, "PUT", "/api/insights/"+insight.ID+"/read", "alice", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, ts.db.SQL.First(&reloaded, "id = ?", insight.ID).Error)
	assert.True(t, reloaded.IsRead)
}

func TestInsightRoutes_Delete_OwnerOnly(t *testing.T) {
	ts := newTestServer(t)
	ts.seedSessionUser(t, "alice")
	ts.seedSessionUser(t, "bob")
	insight := ts.seedInsight(t, "alice", "sleep debt accumulating")

	resp := ts.request(t, "DELETE", "/api/insights/"+insight.ID, "bob", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var count int64
	require.NoError(t, ts.db.SQL.Model(&AiInsight{}).Where("id = ?", insight.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	resp = ts.request(t, "DELETE", "/api/insights/"+insight.ID, "alice", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, ts.db.SQL.Model(&AiInsight{}).Where("id = ?", insight.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestInsightRoutes_RequireAuth(t *testing.T) {
	ts := newTestServer(t)
	ts.seedSessionUser(t, "alice")
	insight := ts.seedInsight(t, "alice", "resting heart rate stable")

	req := httptest.NewRequest("PUT", "/api/insights/"+insight.ID+"/read", nil)
	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestIntegrationRoutes_ConnectService(t *testing.T) {
	ts := newTestServer(t)
	ts.seedSessionUser(t, "alice")

	body := `{"serviceName":"strava","authData":{"token":"abc"}}`
	resp := ts.request(t, "POST", "/api/services/connect", "alice", body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var service ConnectedService
	require.NoError(t, ts.db.SQL.
		First(&service, "user_id = ? AND service_name = ?", "alice", ServiceStrava).Error)
	assert.True(t, service.IsConnected)
}
