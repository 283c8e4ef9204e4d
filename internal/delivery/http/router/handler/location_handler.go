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

// LocationHandler holds dependencies for location handlers.
type LocationHandler struct {
	uc     usecase.LocationUsecase
	logger *slog.Logger
}

// NewLocationHandler is the constructor for LocationHandler, injected by Fx.
func NewLocationHandler(uc usecase.LocationUsecase, logger *slog.Logger) *LocationHandler {
	return &LocationHandler{uc: uc, logger: logger}
}

type updateLocationRequest struct {
	Lat *float64 `json:"lat" validate:"required"`
	Lon *float64 `json:"lon" validate:"required"`
}

type registerTokenRequest struct {
	ExpoPushToken string `json:"expo_push_token" validate:"required"`
	Name          string `json:"name"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Update overwrites the caller's last-known position.
func (h *LocationHandler) Update(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return domainerrors.ErrInvalidToken
	}

	var req updateLocationRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid location input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Update(c.Request().Context(), userID, *req.Lat, *req.Lon); err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, statusResponse{
		Status:  "success",
		Message: "Location updated successfully",
	})
}

// All returns every user's last-known position as a bare array.
func (h *LocationHandler) All(c echo.Context) error {
	locations, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, locations)
}

// RegisterToken stores the caller's push-delivery token.
func (h *LocationHandler) RegisterToken(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return domainerrors.ErrInvalidToken
	}

	var req registerTokenRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid token input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	err := h.uc.RegisterToken(c.Request().Context(), usecase.RegisterTokenInput{
		UserID: userID,
		Token:  req.ExpoPushToken,
		Name:   req.Name,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, statusResponse{
		Status:  "success",
		Message: "Push token registered successfully",
	})
}
