package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "shield/internal/delivery/context"
	"shield/internal/domain/entity"
	"shield/internal/domain/repository"
	"shield/internal/domain/service"
	"shield/internal/usecase"

	"go.uber.org/fx"
)

const (
	// recentWindowLimit bounds the polling result when no cursor is given.
	recentWindowLimit = 50

	notifyTitle = "Emergency Alert"
)

// emergencyService implements the EmergencyUsecase interface.
type emergencyService struct {
	locationRepo  repository.LocationRepository
	emergencyRepo repository.EmergencyRepository
	userRepo      repository.UserRepository
	pushSender    service.PushSender
	logger        *slog.Logger
}

// EmergencyServiceParams holds dependencies for emergencyService, injected by Fx.
type EmergencyServiceParams struct {
	fx.In

	LocationRepo  repository.LocationRepository
	EmergencyRepo repository.EmergencyRepository
	UserRepo      repository.UserRepository
	PushSender    service.PushSender
	Logger        *slog.Logger
}

// NewEmergencyService is the constructor for emergencyService.
func NewEmergencyService(params EmergencyServiceParams) usecase.EmergencyUsecase {
	return &emergencyService{
		locationRepo:  params.LocationRepo,
		emergencyRepo: params.EmergencyRepo,
		userRepo:      params.UserRepo,
		pushSender:    params.PushSender,
		logger:        params.Logger,
	}
}

func (srv *emergencyService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// NotifyNearby records the caller's emergency and broadcasts to every other
// registered device. Persistence failures before the event row exists abort
// the whole flow; dispatch failures are per-recipient and non-fatal.
func (srv *emergencyService) NotifyNearby(ctx context.Context, userID int64, lat, lon float64) (*usecase.NotifyOutput, error) {
	if err := srv.locationRepo.Upsert(ctx, userID, lat, lon); err != nil {
		return nil, err
	}

	emergency := &entity.Emergency{UserID: userID, Latitude: lat, Longitude: lon}
	if err := srv.emergencyRepo.Create(ctx, emergency); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Emergency recorded",
		slog.Int64("userID", userID),
		slog.Int64("emergencyID", emergency.ID),
	)

	// The event is already durable; a token lookup fault only shrinks the
	// audience to zero.
	tokens, err := srv.userRepo.ListPushTokensExcept(ctx, userID)
	if err != nil {
		srv.log(ctx).Warn("Push token lookup failed", slog.Any("error", err))
		tokens = nil
	}

	body := fmt.Sprintf("A nearby user is in an emergency. Location: %g, %g", lat, lon)

	sent := 0
	for _, token := range tokens {
		if srv.pushSender.Send(ctx, token, notifyTitle, body) {
			sent++
		}
	}

	srv.log(ctx).Info("Emergency fan-out finished",
		slog.Int64("emergencyID", emergency.ID),
		slog.Int("recipients", sent),
		slog.Int("candidates", len(tokens)),
	)

	return &usecase.NotifyOutput{
		Status:      "sent",
		Recipients:  sent,
		EmergencyID: emergency.ID,
	}, nil
}

// Recent returns events strictly newer than the since cursor, newest first.
// It never fails: malformed cursors fall back to a bounded window and
// repository faults degrade to an empty list.
func (srv *emergencyService) Recent(ctx context.Context, since string, excludeUser int64) []*entity.Emergency {
	cursor := parseCursor(since)

	limit := 0
	if cursor == nil {
		limit = recentWindowLimit
	}

	events, err := srv.emergencyRepo.ListRecent(ctx, cursor, excludeUser, limit)
	if err != nil {
		srv.log(ctx).Error("Recent emergencies query failed", slog.Any("error", err))

		return []*entity.Emergency{}
	}
	if events == nil {
		events = []*entity.Emergency{}
	}

	return events
}

// parseCursor interprets the since parameter tolerantly. Anything that does
// not parse reads as "no cursor".
func parseCursor(since string) *time.Time {
	if since == "" {
		return nil
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if ts, err := time.Parse(layout, since); err == nil {
			return &ts
		}
	}

	return nil
}
