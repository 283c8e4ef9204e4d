package usecase

import (
	"context"

	"shield/internal/domain/entity"
)

// RegisterTokenInput defines the data required to register a push token.
type RegisterTokenInput struct {
	UserID int64
	Token  string
	Name   string
}

// LocationUsecase defines the interface for location business operations.
type LocationUsecase interface {
	// Update overwrites the caller's last-known position.
	Update(ctx context.Context, userID int64, lat, lon float64) error

	// ListAll returns every user's last-known position.
	ListAll(ctx context.Context) ([]*entity.Location, error)

	// RegisterToken stores the caller's push-delivery token.
	RegisterToken(ctx context.Context, input RegisterTokenInput) error
}
