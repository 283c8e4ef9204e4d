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

	httpmiddleware "shield/internal/delivery/http/middleware"
	"shield/internal/delivery/http/validator"
	domainerrors "shield/internal/domain/errors"
	"shield/internal/usecase"
)

type alertUsecaseMock struct {
	mock.Mock
}

func (m *alertUsecaseMock) Transcribe(ctx context.Context, input usecase.TranscribeInput) (*usecase.TranscribeOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.TranscribeOutput), args.Error(1)
}

func (m *alertUsecaseMock) GenerateAlert(ctx context.Context, input usecase.GenerateAlertInput) (*usecase.AlertOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.AlertOutput), args.Error(1)
}

func (m *alertUsecaseMock) TranscribeAndAlert(ctx context.Context, audio usecase.TranscribeInput, location string) (*usecase.PipelineOutput, error) {
	args := m.Called(ctx, audio, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.PipelineOutput), args.Error(1)
}

func (m *alertUsecaseMock) ReloadModel(size string) error {
	args := m.Called(size)

	return args.Error(0)
}

func (m *alertUsecaseMock) ModelSize() string {
	args := m.Called()

	return args.String(0)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = httpmiddleware.NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))).HandleHTTPError

	return e
}

func performJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestAlertHandler_Transcribe(t *testing.T) {
	uc := new(alertUsecaseMock)
	e := newTestEcho()
	h := NewAlertHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.POST("/transcribe", h.Transcribe)

	uc.On("Transcribe", mock.Anything, usecase.TranscribeInput{
		Audio:  "ZmFrZS1hdWRpbw==",
		Format: "webm",
	}).Return(&usecase.TranscribeOutput{Text: "help me", Language: "en"}, nil)

	rec := performJSON(e, http.MethodPost, "/transcribe", `{"audio":"ZmFrZS1hdWRpbw==","format":"webm"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "help me", body["text"])
	assert.Equal(t, "en", body["language"])
}

func TestAlertHandler_Transcribe_MissingAudio(t *testing.T) {
	uc := new(alertUsecaseMock)
	e := newTestEcho()
	h := NewAlertHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.POST("/transcribe", h.Transcribe)

	rec := performJSON(e, http.MethodPost, "/transcribe", `{"format":"webm"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Transcribe", mock.Anything, mock.Anything)
}

func TestAlertHandler_Transcribe_DecodeFailure(t *testing.T) {
	uc := new(alertUsecaseMock)
	e := newTestEcho()
	h := NewAlertHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.POST("/transcribe", h.Transcribe)

	uc.On("Transcribe", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrAudioDecodeFailed)

	rec := performJSON(e, http.MethodPost, "/transcribe", `{"audio":"!!!not-base64!!!"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAlertHandler_GenerateAlert(t *testing.T) {
	uc := new(alertUsecaseMock)
	e := newTestEcho()
	h := NewAlertHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.POST("/generate-alert", h.GenerateAlert)

	uc.On("GenerateAlert", mock.Anything, usecase.GenerateAlertInput{
		Transcription: "there is a fire",
		Location:      "25.03, 121.56",
	}).Return(&usecase.AlertOutput{
		Message:   "🚨 Fire reported nearby.\n\n⏰ Time sent: 2026-08-25 10:00:00 AM",
		Timestamp: "2026-08-25 10:00:00 AM",
	}, nil)

	rec := performJSON(e, http.MethodPost, "/generate-alert",
		`{"transcription":"there is a fire","location":"25.03, 121.56"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "there is a fire", body["original_transcription"])
	assert.Equal(t, "2026-08-25 10:00:00 AM", body["timestamp"])
	assert.Contains(t, body["alert_message"], "⏰ Time sent:")
}

func TestAlertHandler_GenerateAlert_MissingTranscription(t *testing.T) {
	uc := new(alertUsecaseMock)
	e := newTestEcho()
	h := NewAlertHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.POST("/generate-alert", h.GenerateAlert)

	rec := performJSON(e, http.MethodPost, "/generate-alert", `{"location":"25.03, 121.56"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "GenerateAlert", mock.Anything, mock.Anything)
}

func TestAlertHandler_TranscribeAndAlert(t *testing.T) {
	uc := new(alertUsecaseMock)
	e := newTestEcho()
	h := NewAlertHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.POST("/transcribe-and-alert", h.TranscribeAndAlert)

	uc.On("TranscribeAndAlert", mock.Anything, usecase.TranscribeInput{
		Audio:  "ZmFrZS1hdWRpbw==",
		Format: "wav",
	}, "25.03, 121.56").Return(&usecase.PipelineOutput{
		Transcription: "help me",
		Language:      "en",
		AlertMessage:  "🚨 Someone nearby needs help.",
		Timestamp:     "2026-08-25 10:00:00 AM",
	}, nil)

	rec := performJSON(e, http.MethodPost, "/transcribe-and-alert",
		`{"audio":"ZmFrZS1hdWRpbw==","format":"wav","location":"25.03, 121.56"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "help me", body["transcription"])
	assert.Equal(t, "en", body["language"])
	assert.Equal(t, "🚨 Someone nearby needs help.", body["alert_message"])
}

func TestAlertHandler_Health(t *testing.T) {
	uc := new(alertUsecaseMock)
	e := newTestEcho()
	h := NewAlertHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.GET("/health", h.Health)

	uc.On("ModelSize").Return("base")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "base", body["whisper_model"])
}

func TestAlertHandler_ReloadModel(t *testing.T) {
	uc := new(alertUsecaseMock)
	e := newTestEcho()
	h := NewAlertHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.POST("/model/reload", h.ReloadModel)

	uc.On("ReloadModel", "small").Return(nil)

	rec := performJSON(e, http.MethodPost, "/model/reload", `{"model_size":"small"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "reloaded", body["status"])
	assert.Equal(t, "small", body["whisper_model"])
}

func TestAlertHandler_ReloadModel_InvalidSize(t *testing.T) {
	uc := new(alertUsecaseMock)
	e := newTestEcho()
	h := NewAlertHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.POST("/model/reload", h.ReloadModel)

	uc.On("ReloadModel", "gigantic").Return(assertableError("unsupported model size: gigantic"))

	rec := performJSON(e, http.MethodPost, "/model/reload", `{"model_size":"gigantic"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type assertableError string

func (e assertableError) Error() string { return string(e) }
