package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	deliverycontext "shield/internal/delivery/context"
	"shield/internal/domain/entity"
	"shield/internal/usecase"
)

type emergencyUsecaseMock struct {
	mock.Mock
}

func (m *emergencyUsecaseMock) NotifyNearby(ctx context.Context, userID int64, lat, lon float64) (*usecase.NotifyOutput, error) {
	args := m.Called(ctx, userID, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.NotifyOutput), args.Error(1)
}

func (m *emergencyUsecaseMock) Recent(ctx context.Context, since string, excludeUser int64) []*entity.Emergency {
	args := m.Called(ctx, since, excludeUser)

	return args.Get(0).([]*entity.Emergency)
}

func TestEmergencyHandler_NotifyNearby(t *testing.T) {
	uc := new(emergencyUsecaseMock)
	e := newTestEcho()
	h := NewEmergencyHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.POST("/emergency/notify_nearby", h.NotifyNearby, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			deliverycontext.SetUserID(c, 1)

			return next(c)
		}
	})

	uc.On("NotifyNearby", mock.Anything, int64(1), 40.7, -74.0).Return(&usecase.NotifyOutput{
		Status:      "sent",
		Recipients:  0,
		EmergencyID: 42,
	}, nil)

	rec := performJSON(e, http.MethodPost, "/emergency/notify_nearby", `{"lat":40.7,"lon":-74.0}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "sent", body["status"])
	assert.EqualValues(t, 0, body["recipients"])
	assert.EqualValues(t, 42, body["emergency_id"])
}

func TestEmergencyHandler_NotifyNearby_RequiresAuth(t *testing.T) {
	uc := new(emergencyUsecaseMock)
	e := newTestEcho()
	h := NewEmergencyHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.POST("/emergency/notify_nearby", h.NotifyNearby)

	rec := performJSON(e, http.MethodPost, "/emergency/notify_nearby", `{"lat":40.7,"lon":-74.0}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	uc.AssertNotCalled(t, "NotifyNearby", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEmergencyHandler_Recent_AlwaysAnArray(t *testing.T) {
	uc := new(emergencyUsecaseMock)
	e := newTestEcho()
	h := NewEmergencyHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.GET("/emergency/recent", h.Recent)

	uc.On("Recent", mock.Anything, "", int64(0)).Return([]*entity.Emergency{})

	req := httptest.NewRequest(http.MethodGet, "/emergency/recent", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestEmergencyHandler_Recent_PassesCursor(t *testing.T) {
	uc := new(emergencyUsecaseMock)
	e := newTestEcho()
	h := NewEmergencyHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.GET("/emergency/recent", h.Recent)

	events := []*entity.Emergency{{ID: 3, UserID: 2}}
	uc.On("Recent", mock.Anything, "2026-08-25T10:00:00Z", int64(0)).Return(events)

	req := httptest.NewRequest(http.MethodGet, "/emergency/recent?since=2026-08-25T10%3A00%3A00Z", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.EqualValues(t, 3, body[0]["id"])
}
