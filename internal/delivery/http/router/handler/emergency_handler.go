package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "shield/internal/delivery/context"
	domainerrors "shield/internal/domain/errors"
	"shield/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// EmergencyHandler holds dependencies for emergency handlers.
type EmergencyHandler struct {
	uc     usecase.EmergencyUsecase
	logger *slog.Logger
}

// NewEmergencyHandler is the constructor for EmergencyHandler, injected by Fx.
func NewEmergencyHandler(uc usecase.EmergencyUsecase, logger *slog.Logger) *EmergencyHandler {
	return &EmergencyHandler{uc: uc, logger: logger}
}

type notifyNearbyRequest struct {
	Lat *float64 `json:"lat" validate:"required"`
	Lon *float64 `json:"lon" validate:"required"`
}

type notifyNearbyResponse struct {
	Status      string `json:"status"`
	Recipients  int    `json:"recipients"`
	EmergencyID int64  `json:"emergency_id"`
}

// NotifyNearby records the caller's emergency and fans out push
// notifications.
func (h *EmergencyHandler) NotifyNearby(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return domainerrors.ErrInvalidToken
	}

	var req notifyNearbyRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid emergency input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.NotifyNearby(c.Request().Context(), userID, *req.Lat, *req.Lon)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, notifyNearbyResponse{
		Status:      output.Status,
		Recipients:  output.Recipients,
		EmergencyID: output.EmergencyID,
	})
}

// Recent returns emergencies newer than the since cursor as a bare array.
// The endpoint is public; a valid bearer token only adds caller exclusion.
// It always answers 200 with an array, even on internal faults.
func (h *EmergencyHandler) Recent(c echo.Context) error {
	excludeUser, _ := deliverycontext.GetUserID(c)
	since := c.QueryParam("since")

	events := h.uc.Recent(c.Request().Context(), since, excludeUser)

	return c.JSON(http.StatusOK, events)
}
