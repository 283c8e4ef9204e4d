package impl

import (
	"context"
	"log/slog"

	deliverycontext "shield/internal/delivery/context"
	"shield/internal/domain/entity"
	domainerrors "shield/internal/domain/errors"
	"shield/internal/domain/repository"
	"shield/internal/usecase"

	"go.uber.org/fx"
)

// locationService implements the LocationUsecase interface.
type locationService struct {
	locationRepo repository.LocationRepository
	userRepo     repository.UserRepository
	logger       *slog.Logger
}

// LocationServiceParams holds dependencies for locationService, injected by Fx.
type LocationServiceParams struct {
	fx.In

	LocationRepo repository.LocationRepository
	UserRepo     repository.UserRepository
	Logger       *slog.Logger
}

// NewLocationService is the constructor for locationService.
func NewLocationService(params LocationServiceParams) usecase.LocationUsecase {
	return &locationService{
		locationRepo: params.LocationRepo,
		userRepo:     params.UserRepo,
		logger:       params.Logger,
	}
}

func (srv *locationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Update overwrites the caller's last-known position.
func (srv *locationService) Update(ctx context.Context, userID int64, lat, lon float64) error {
	if err := srv.locationRepo.Upsert(ctx, userID, lat, lon); err != nil {
		srv.log(ctx).Error("Location upsert failed",
			slog.Int64("userID", userID),
			slog.Any("error", err),
		)

		return domainerrors.ErrLocationUpdateFailed
	}

	return nil
}

// ListAll returns every user's last-known position.
func (srv *locationService) ListAll(ctx context.Context) ([]*entity.Location, error) {
	return srv.locationRepo.ListAll(ctx)
}

// RegisterToken stores the caller's push-delivery token.
func (srv *locationService) RegisterToken(ctx context.Context, input usecase.RegisterTokenInput) error {
	if err := srv.userRepo.RegisterPushToken(ctx, input.UserID, input.Token, input.Name); err != nil {
		srv.log(ctx).Error("Push token registration failed",
			slog.Int64("userID", input.UserID),
			slog.Any("error", err),
		)

		return domainerrors.ErrPushTokenRegistrationFailed
	}

	return nil
}
