package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"shield/config"
	httpmiddleware "shield/internal/delivery/http/middleware"
	"shield/internal/infra/auth"
	"shield/internal/infra/persistence/model"
	sqliterepo "shield/internal/infra/persistence/sqlite"
	"shield/internal/mocks"
	"shield/internal/usecase/impl"
)

// newIntegrationServer wires the real auth services, repositories over an
// in-memory database, usecases, and handlers behind the same middleware
// chain the router registers.
func newIntegrationServer(t *testing.T) *echo.Echo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.UserModel{},
		&model.LocationModel{},
		&model.EmergencyModel{},
	))

	cfg := &config.Config{}
	cfg.SecretKey.Access = "integration-secret"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	hasher := auth.NewBcryptHasher(cfg)

	userRepo := sqliterepo.NewUserRepository(db)
	locationRepo := sqliterepo.NewLocationRepository(db)
	emergencyRepo := sqliterepo.NewEmergencyRepository(db)

	authUC := impl.NewAuthService(impl.AuthServiceParams{
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenSvc,
		Logger:       logger,
	})
	emergencyUC := impl.NewEmergencyService(impl.EmergencyServiceParams{
		LocationRepo:  locationRepo,
		EmergencyRepo: emergencyRepo,
		UserRepo:      userRepo,
		PushSender:    new(mocks.PushSender),
		Logger:        logger,
	})

	authHandler := NewAuthHandler(authUC, logger)
	emergencyHandler := NewEmergencyHandler(emergencyUC, logger)
	authMiddleware := httpmiddleware.NewAuthMiddleware(tokenSvc)

	e := newTestEcho()
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/emergency/notify_nearby", emergencyHandler.NotifyNearby, authMiddleware.Authenticate)
	e.GET("/emergency/recent", emergencyHandler.Recent, authMiddleware.OptionalAuthenticate)

	return e
}

func performJSONBearer(e *echo.Echo, method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestEmergencyFlow_RegisterLoginNotifyPoll(t *testing.T) {
	e := newIntegrationServer(t)

	rec := performJSONBearer(e, http.MethodPost, "/auth/register",
		`{"email":"a@x.com","password":"secret1","name":"Alice"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = performJSONBearer(e, http.MethodPost, "/auth/login",
		`{"email":"a@x.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	token, _ := login["token"].(string)
	require.NotEmpty(t, token)

	// No other users are registered, so the event is recorded but nobody is
	// notified.
	rec = performJSONBearer(e, http.MethodPost, "/emergency/notify_nearby",
		`{"lat":40.7,"lon":-74.0}`, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var notify map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notify))
	assert.Equal(t, "sent", notify["status"])
	assert.EqualValues(t, 0, notify["recipients"])
	emergencyID, ok := notify["emergency_id"].(float64)
	require.True(t, ok)
	assert.Greater(t, emergencyID, float64(0))

	// The event is visible to unauthenticated pollers.
	rec = performJSONBearer(e, http.MethodGet, "/emergency/recent", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var events []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.EqualValues(t, emergencyID, events[0]["id"])
	assert.EqualValues(t, 40.7, events[0]["lat"])

	// A cursor on the event's own timestamp excludes it (strict comparison).
	createdAt, _ := events[0]["created_at"].(string)
	require.NotEmpty(t, createdAt)
	rec = performJSONBearer(e, http.MethodGet, "/emergency/recent?since="+createdAt, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestEmergencyFlow_NotifyRejectsBadToken(t *testing.T) {
	e := newIntegrationServer(t)

	rec := performJSONBearer(e, http.MethodPost, "/emergency/notify_nearby",
		`{"lat":40.7,"lon":-74.0}`, "not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
