// Package middleware contains the Echo middleware of the REST surface.
package middleware

import (
	"strings"

	deliverycontext "shield/internal/delivery/context"
	domainerrors "shield/internal/domain/errors"
	"shield/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware provides middleware for bearer-token authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer token and stores the subject id on the
// context. Missing, malformed, and expired tokens all render as 401.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := m.subjectFromRequest(c)
		if !ok {
			return domainerrors.ErrInvalidToken
		}

		deliverycontext.SetUserID(c, userID)

		return next(c)
	}
}

// OptionalAuthenticate resolves the subject when a valid bearer token is
// present but lets the request through either way. Used by public endpoints
// that exclude the caller's own rows when identity is known.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if userID, ok := m.subjectFromRequest(c); ok {
			deliverycontext.SetUserID(c, userID)
		}

		return next(c)
	}
}

func (m *AuthMiddleware) subjectFromRequest(c echo.Context) (int64, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return 0, false
	}

	return m.tokenSvc.Verify(tokenString)
}
