package handler

import (
	"net/http"

	"shield/config"
	"shield/internal/usecase"

	"github.com/labstack/echo/v4"
)

const serviceVersion = "1.0.0"

// MetaHandler serves the service-info, health, and test endpoints.
type MetaHandler struct {
	emergencyUC usecase.EmergencyUsecase
	serviceName string
}

// NewMetaHandler creates a new MetaHandler instance.
func NewMetaHandler(emergencyUC usecase.EmergencyUsecase, cfg *config.Config) *MetaHandler {
	name := cfg.Env.ServiceName
	if name == "" {
		name = "shield"
	}

	return &MetaHandler{
		emergencyUC: emergencyUC,
		serviceName: name,
	}
}

// Root reports the service name and version.
func (h *MetaHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"name":    h.serviceName,
		"version": serviceVersion,
	})
}

// Health is a simple liveness probe.
func (h *MetaHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// TestEmergencies dumps the bounded recent-emergency window without any
// caller exclusion. Only routed when test routes are enabled in config.
func (h *MetaHandler) TestEmergencies(c echo.Context) error {
	events := h.emergencyUC.Recent(c.Request().Context(), "", 0)

	return c.JSON(http.StatusOK, map[string]any{
		"count":       len(events),
		"emergencies": events,
	})
}
