package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"shield/config"
	"shield/internal/delivery"
	"shield/internal/delivery/http"
	httpmiddleware "shield/internal/delivery/http/middleware"
	"shield/internal/delivery/http/router/handler"
	sharedmiddleware "shield/internal/delivery/middleware"
	"shield/internal/domain/service"
	"shield/internal/infra/auth"
	logs "shield/internal/infra/log"
	"shield/internal/infra/notification"
	"shield/internal/infra/persistence/sqlite"
	"shield/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		sqlite.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			sqlite.NewUserRepository,
			sqlite.NewLocationRepository,
			sqlite.NewEmergencyRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			newPushSender,
		),
	)
}

// newPushSender selects the push-delivery backend. Firebase wins when
// credentials are configured; the Expo gateway is the default.
func newPushSender(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.PushSender, error) {
	if cfg.Firebase != nil && cfg.Firebase.CredentialsPath != "" {
		svc, err := notification.NewFirebaseService(ctx, cfg.Firebase.CredentialsPath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create Firebase service: %w", err)
		}

		return svc, nil
	}

	return notification.NewExpoService(cfg, logger), nil
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewLocationService,
			impl.NewEmergencyService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			httpmiddleware.NewAuthMiddleware,
			httpmiddleware.NewErrorMiddleware,
			sharedmiddleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewLocationHandler,
			handler.NewEmergencyHandler,
			handler.NewMetaHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
