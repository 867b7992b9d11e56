package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"photosuite/internal/http/handlers"
	httpapi "photosuite/internal/http/httpapi"
	"photosuite/internal/imagegen"
	"photosuite/internal/infra"
	"photosuite/internal/infra/geoip"
	"photosuite/internal/middleware"
	"photosuite/internal/providers/genai"
	"photosuite/internal/providers/prompt"
	"photosuite/internal/session"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	bootLogger := infra.NewLogger(os.Getenv("APP_ENV"))
	cfg, err := infra.LoadConfig()
	if err != nil {
		bootLogger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	gemini, err := genai.NewClient(ctx, genai.Options{
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
		Timeout: cfg.GeminiTimeout,
		Logger:  &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create gemini client")
	}

	var lookup middleware.CountryLookup
	resolver, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	} else if resolver != nil {
		lookup = resolver.CountryCode
		defer resolver.Close()
	}

	store := session.NewStore(session.Deps{
		Transformer: imagegen.NewService(gemini, &logger),
		Inspirer:    prompt.NewStaticInspirer(nil),
		Logger:      &logger,
	})

	sweepCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()
	go store.RunSweeper(sweepCtx, sweepInterval(cfg.SessionIdleTimeout), cfg.SessionIdleTimeout)

	app := handlers.NewApp(store, &logger, cfg.MaxUploadBytes)
	app.SecureCookies = cfg.AppEnv == "production"

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          logger,
		DefaultLocale:   cfg.DefaultLocale,
		CountryLookup:   lookup,
		RateLimitPerMin: cfg.RateLimitPerMin,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("model", gemini.Model()).Msgf("listening on :%s", cfg.Port)
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Int("sessions", store.Len()).Msg("server stopped")
}

func sweepInterval(idle time.Duration) time.Duration {
	if every := idle / 4; every < time.Minute {
		return every
	}
	return time.Minute
}
