package initializers

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"github.com/ChurchSite/services"
	"github.com/ChurchSite/store"
	"github.com/rs/zerolog/log"
)

// NewUploadService uses the Firebase bucket when one is configured.
func NewUploadService(ctx context.Context, cfg Config, app *firebase.App) *services.UploadService {
	if app == nil || cfg.FirebaseStorageBucket == "" {
		return services.NewUploadService(nil, cfg.UploadsDir)
	}

	blob, err := services.NewFirebaseBlobStore(ctx, app, cfg.FirebaseStorageBucket)
	if err != nil {
		log.Error().Err(err).Msg("cloud storage unavailable, falling back to local uploads")
		return services.NewUploadService(nil, cfg.UploadsDir)
	}

	log.Info().Str("bucket", cfg.FirebaseStorageBucket).Msg("uploads stored in Cloud Storage")
	return services.NewUploadService(blob, cfg.UploadsDir)
}

// NewNotifier wires whichever notification channels are configured.
func NewNotifier(ctx context.Context, cfg Config, app *firebase.App, repos *store.Repositories) *services.NotificationService {
	notifier := &services.NotificationService{
		Email: services.NewEmailService(cfg.ResendAPIKey, cfg.EmailFrom, cfg.NotifyEmail),
	}

	if app != nil && cfg.FirebasePushEnabled {
		push, err := services.NewPushNotificationService(ctx, app, repos.PushTokens)
		if err != nil {
			log.Error().Err(err).Msg("push notifications disabled")
		} else {
			notifier.Push = push
			log.Info().Msg("push notification service initialized with FCM")
		}
	}

	return notifier
}
