package initializers

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// NewFirebaseApp returns nil when neither cloud storage nor push
// notifications are configured. Uploads then stay on local disk.
func NewFirebaseApp(ctx context.Context, cfg Config) *firebase.App {
	if cfg.FirebaseStorageBucket == "" && !cfg.FirebasePushEnabled {
		log.Info().Msg("Firebase not configured, using local uploads and no push notifications")
		return nil
	}

	fbConfig := &firebase.Config{StorageBucket: cfg.FirebaseStorageBucket}

	var opts []option.ClientOption
	if cfg.FirebaseCredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsPath))
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize Firebase app")
		return nil
	}

	if cfg.FirebaseCredentialsPath != "" {
		log.Info().Msg("Firebase initialized with service account file")
	} else {
		log.Info().Msg("Firebase initialized with Application Default Credentials")
	}
	return app
}
