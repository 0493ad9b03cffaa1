package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ChurchSite/controllers"
	"github.com/ChurchSite/initializers"
	"github.com/ChurchSite/routes"
	"github.com/ChurchSite/services"
	"github.com/rs/zerolog/log"
)

func main() {
	initializers.LoadEnv()
	cfg := initializers.LoadConfig()
	initializers.InitLogger(cfg)

	ctx := context.Background()
	repos := initializers.OpenStore(ctx, cfg)
	app := initializers.NewFirebaseApp(ctx, cfg)

	handler := controllers.NewHandler(
		repos,
		services.NewTokenService(cfg.JWTSecret),
		initializers.NewUploadService(ctx, cfg, app),
		initializers.NewNotifier(ctx, cfg, app, repos),
	)

	opts := routes.DefaultOptions()
	opts.CORSOrigins = cfg.CorsOrigins
	router := routes.SetupRouter(handler, opts)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", httpServer.Addr).Str("env", cfg.AppEnv).Msg("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop

	log.Info().Msg("shutting down")
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(ctxShutdown); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
