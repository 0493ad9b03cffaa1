package initializers

import (
	"context"
	"fmt"
	"time"

	"github.com/ChurchSite/models"
	"github.com/ChurchSite/services"
	"github.com/ChurchSite/store"
	"github.com/rs/zerolog/log"
)

// OpenStore picks the document backend and binds every repository to it.
func OpenStore(ctx context.Context, cfg Config) *store.Repositories {
	seed, err := AdminSeed(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid ADMIN_PASSWORD")
	}

	var backend store.Backend

	switch cfg.DataBackend {
	case "postgres":
		pg := store.NewPostgresBackend(ConnectDB(cfg.DatabaseURL))
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("create documents table")
		}
		backend = pg
		log.Info().Msg("storing documents in Postgres")
	default:
		files, err := store.NewFileBackend(cfg.DataDir)
		if err != nil {
			log.Fatal().Err(err).Msg("prepare data directory")
		}
		backend = files
		log.Info().Str("dir", cfg.DataDir).Msg("storing documents as JSON files")
	}

	return store.NewRepositories(backend, seed)
}

// AdminSeed hashes the ADMIN_* password up front and returns the seed for
// the users document: exactly one administrator.
func AdminSeed(cfg Config) (func() []models.User, error) {
	hash, err := services.HashPassword(cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return func() []models.User {
		now := time.Now().UTC()
		log.Info().Str("username", cfg.AdminUsername).Msg("seeding administrator account")
		return []models.User{{
			Name:      cfg.AdminName,
			Username:  cfg.AdminUsername,
			Email:     cfg.AdminEmail,
			Password:  hash,
			CreatedAt: now,
			UpdatedAt: now,
		}}
	}, nil
}
