package notification

import (
	"context"
	"log/slog"

	"shield/internal/domain/service"
	"shield/internal/errors"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type firebaseService struct {
	client *messaging.Client
	logger *slog.Logger
}

// NewFirebaseService creates a push sender backed by Firebase Cloud
// Messaging. It is used instead of the Expo gateway when Firebase
// credentials are configured.
func NewFirebaseService(ctx context.Context, credentialsPath string, logger *slog.Logger) (service.PushSender, error) {
	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messaging client")
	}

	return &firebaseService{
		client: client,
		logger: logger,
	}, nil
}

// Send delivers one notification to one device token through FCM.
func (s *firebaseService) Send(ctx context.Context, token, title, body string) bool {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}

	if _, err := s.client.Send(ctx, message); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "fcm push failed",
			slog.String("error", err.Error()),
		)

		return false
	}

	return true
}
