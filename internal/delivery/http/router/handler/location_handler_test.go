package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	deliverycontext "shield/internal/delivery/context"
	"shield/internal/domain/entity"
	"shield/internal/usecase"
)

type locationUsecaseMock struct {
	mock.Mock
}

func (m *locationUsecaseMock) Update(ctx context.Context, userID int64, lat, lon float64) error {
	args := m.Called(ctx, userID, lat, lon)

	return args.Error(0)
}

func (m *locationUsecaseMock) ListAll(ctx context.Context) ([]*entity.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Location), args.Error(1)
}

func (m *locationUsecaseMock) RegisterToken(ctx context.Context, input usecase.RegisterTokenInput) error {
	args := m.Called(ctx, input)

	return args.Error(0)
}

func withUserID(userID int64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			deliverycontext.SetUserID(c, userID)

			return next(c)
		}
	}
}

func TestLocationHandler_Update(t *testing.T) {
	uc := new(locationUsecaseMock)
	e := newTestEcho()
	h := NewLocationHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.POST("/location/update", h.Update, withUserID(7))

	uc.On("Update", mock.Anything, int64(7), 25.03, 121.56).Return(nil)

	rec := performJSON(e, http.MethodPost, "/location/update", `{"lat":25.03,"lon":121.56}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Location updated successfully", body["message"])
}

func TestLocationHandler_Update_ZeroCoordinatesAreValid(t *testing.T) {
	uc := new(locationUsecaseMock)
	e := newTestEcho()
	h := NewLocationHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.POST("/location/update", h.Update, withUserID(7))

	uc.On("Update", mock.Anything, int64(7), 0.0, 0.0).Return(nil)

	rec := performJSON(e, http.MethodPost, "/location/update", `{"lat":0,"lon":0}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestLocationHandler_Update_MissingCoordinate(t *testing.T) {
	uc := new(locationUsecaseMock)
	e := newTestEcho()
	h := NewLocationHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.POST("/location/update", h.Update, withUserID(7))

	rec := performJSON(e, http.MethodPost, "/location/update", `{"lat":25.03}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLocationHandler_Update_RequiresAuth(t *testing.T) {
	uc := new(locationUsecaseMock)
	e := newTestEcho()
	h := NewLocationHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.POST("/location/update", h.Update)

	rec := performJSON(e, http.MethodPost, "/location/update", `{"lat":25.03,"lon":121.56}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLocationHandler_All(t *testing.T) {
	uc := new(locationUsecaseMock)
	e := newTestEcho()
	h := NewLocationHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.GET("/location/all", h.All)

	uc.On("ListAll", mock.Anything).Return([]*entity.Location{
		{UserID: 1, Latitude: 25.03, Longitude: 121.56},
		{UserID: 2, Latitude: 24.15, Longitude: 120.67},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/location/all", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.EqualValues(t, 1, body[0]["user_id"])
}

func TestLocationHandler_RegisterToken(t *testing.T) {
	uc := new(locationUsecaseMock)
	e := newTestEcho()
	h := NewLocationHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.POST("/location/register_token", h.RegisterToken, withUserID(7))

	uc.On("RegisterToken", mock.Anything, usecase.RegisterTokenInput{
		UserID: 7,
		Token:  "ExponentPushToken[abc]",
		Name:   "Alice",
	}).Return(nil)

	rec := performJSON(e, http.MethodPost, "/location/register_token",
		`{"expo_push_token":"ExponentPushToken[abc]","name":"Alice"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Push token registered successfully", body["message"])
}

func TestLocationHandler_RegisterToken_MissingToken(t *testing.T) {
	uc := new(locationUsecaseMock)
	e := newTestEcho()
	h := NewLocationHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.POST("/location/register_token", h.RegisterToken, withUserID(7))

	rec := performJSON(e, http.MethodPost, "/location/register_token", `{"name":"Alice"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "RegisterToken", mock.Anything, mock.Anything)
}
