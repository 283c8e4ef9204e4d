package repository

import (
	"context"
	"time"

	"shield/internal/domain/entity"
)

// EmergencyRepository is the persistence contract for the append-only
// emergency event log.
type EmergencyRepository interface {
	// Create appends an emergency event and fills in the generated id and
	// creation timestamp.
	Create(ctx context.Context, emergency *entity.Emergency) error

	// ListRecent returns events newest-first. When since is non-nil only
	// events strictly newer than it are returned; excludeUser > 0 filters
	// out that user's own events; limit caps the result size.
	ListRecent(ctx context.Context, since *time.Time, excludeUser int64, limit int) ([]*entity.Emergency, error)
}
