package usecase

import (
	"context"

	"shield/internal/domain/entity"
)

// NotifyOutput summarizes a fan-out run. Recipients is an aggregate success
// count; per-recipient outcomes are not reported.
type NotifyOutput struct {
	Status      string
	Recipients  int
	EmergencyID int64
}

// EmergencyUsecase defines the interface for emergency business operations.
type EmergencyUsecase interface {
	// NotifyNearby records the caller's emergency and broadcasts a push
	// notification to every other registered device.
	NotifyNearby(ctx context.Context, userID int64, lat, lon float64) (*NotifyOutput, error)

	// Recent returns events strictly newer than the since cursor, newest
	// first, excluding the caller's own. It never fails: malformed cursors
	// fall back to a bounded window and internal faults degrade to an empty
	// list.
	Recent(ctx context.Context, since string, excludeUser int64) []*entity.Emergency
}
