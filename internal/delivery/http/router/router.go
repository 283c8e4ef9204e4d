// Package router contains routing setup for the REST surface.
package router

import (
	"shield/config"
	"shield/internal/delivery/http/middleware"
	"shield/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds everything the router needs, injected by Fx.
type RouterParams struct {
	fx.In

	Config           *config.Config
	AuthHandler      *handler.AuthHandler
	LocationHandler  *handler.LocationHandler
	EmergencyHandler *handler.EmergencyHandler
	MetaHandler      *handler.MetaHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg              *config.Config
	authHandler      *handler.AuthHandler
	locationHandler  *handler.LocationHandler
	emergencyHandler *handler.EmergencyHandler
	metaHandler      *handler.MetaHandler
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:              params.Config,
		authHandler:      params.AuthHandler,
		locationHandler:  params.LocationHandler,
		emergencyHandler: params.EmergencyHandler,
		metaHandler:      params.MetaHandler,
		authMiddleware:   params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/", r.metaHandler.Root)
	e.GET("/health", r.metaHandler.Health)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
	}

	locationGroup := e.Group("/location")
	{
		locationGroup.POST("/update", r.locationHandler.Update, r.authMiddleware.Authenticate)
		locationGroup.GET("/all", r.locationHandler.All)
		locationGroup.POST("/register_token", r.locationHandler.RegisterToken, r.authMiddleware.Authenticate)
	}

	emergencyGroup := e.Group("/emergency")
	{
		emergencyGroup.POST("/notify_nearby", r.emergencyHandler.NotifyNearby, r.authMiddleware.Authenticate)
		// Public, but a valid token narrows the feed to other users' events.
		emergencyGroup.GET("/recent", r.emergencyHandler.Recent, r.authMiddleware.OptionalAuthenticate)
	}

	if r.cfg.TestRoutes != nil && r.cfg.TestRoutes.Enabled {
		e.GET("/test/emergencies", r.metaHandler.TestEmergencies)
	}
}
