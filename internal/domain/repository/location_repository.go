package repository

import (
	"context"

	"shield/internal/domain/entity"
)

// LocationRepository is the persistence contract for last-known positions.
type LocationRepository interface {
	// Upsert inserts or overwrites the single location row for a user,
	// stamping it with the current time.
	Upsert(ctx context.Context, userID int64, lat, lon float64) error

	// ListAll returns the last-known position of every user.
	ListAll(ctx context.Context) ([]*entity.Location, error)
}
