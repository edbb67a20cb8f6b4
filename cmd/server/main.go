package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ardelio/heart-risk-api/internal/ai"
	"github.com/ardelio/heart-risk-api/internal/ai/gemini"
	"github.com/ardelio/heart-risk-api/internal/ai/ollama"
	"github.com/ardelio/heart-risk-api/internal/api"
	"github.com/ardelio/heart-risk-api/internal/api/handler"
	"github.com/ardelio/heart-risk-api/internal/config"
	"github.com/ardelio/heart-risk-api/internal/domain"
	"github.com/ardelio/heart-risk-api/internal/repository/mongo"
	"github.com/ardelio/heart-risk-api/internal/repository/postgres"
	"github.com/ardelio/heart-risk-api/internal/repository/redis"
	"github.com/ardelio/heart-risk-api/internal/repository/sqldb"
	"github.com/ardelio/heart-risk-api/internal/security"
	"github.com/ardelio/heart-risk-api/internal/service"
	"github.com/joho/godotenv"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogging(cfg.Logging)

	if cfg.Auth.UsingDefaultSecret() {
		log.Warn().Msg("JWT_SECRET not set, using insecure development default")
	}

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("storage", cfg.Storage.Driver).
		Msg("Starting heart-risk API server")

	// Initialize assessment store
	ctx := context.Background()
	repo, store, closeStore, err := newAssessmentStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("Failed to initialize assessment store")
	}
	defer closeStore()

	// Initialize optional Redis cache
	var cache service.ResultCache
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
		cache = redis.NewResultCache(redisClient)
	}

	// Initialize security components
	tokens := security.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize AI generator router
	generators := ai.NewRouter(cfg.AI.DefaultProvider)
	if cfg.AI.Gemini.APIKey != "" {
		generators.RegisterProvider(gemini.NewGenerator(cfg.AI.Gemini))
	} else {
		log.Warn().Msg("Gemini API key is empty, skipping registration")
	}
	if cfg.AI.Ollama.Host != "" {
		log.Info().Str("host", cfg.AI.Ollama.Host).Msg("Registering Ollama generator")
		generators.RegisterProvider(ollama.NewGenerator(cfg.AI.Ollama.Host, cfg.AI.Ollama.DefaultModel))
	}

	// Initialize service and router
	assessments := service.NewAssessmentService(generators, repo, cache)
	router := api.NewRouter(cfg, tokens, assessments, store)

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// setupLogging applies the configured level and optional rotating file output
func setupLogging(cfg config.LoggingConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.File == "" {
		return
	}

	fileWriter, err := rotatelogs.New(
		cfg.File+".%Y%m%d",
		rotatelogs.WithLinkName(cfg.File),
		rotatelogs.WithRotationCount(7),
	)
	if err != nil {
		log.Error().Err(err).Str("file", cfg.File).Msg("Failed to open rotating log file")
		return
	}

	var console io.Writer = os.Stderr
	if os.Getenv("ENV") != "production" {
		console = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	log.Logger = log.Output(zerolog.MultiLevelWriter(console, fileWriter))
}

// newAssessmentStore builds the repository for the configured storage
// driver, mirroring the store-per-driver layout under internal/repository
func newAssessmentStore(ctx context.Context, cfg *config.Config) (domain.AssessmentRepository, handler.Pinger, func(), error) {
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := postgres.NewDB(ctx, cfg.Database)
		if err != nil {
			return nil, nil, nil, err
		}
		return postgres.NewAssessmentRepository(db), db, db.Close, nil

	case "mongodb":
		store, err := mongo.NewStore(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			if err := store.Close(context.Background()); err != nil {
				log.Error().Err(err).Msg("Failed to close mongo store")
			}
		}
		return mongo.NewAssessmentRepository(store), store, closeFn, nil

	case "sqlite", "mysql":
		store, err := sqldb.Open(ctx, cfg.Storage.Driver, cfg.SQL.DSN)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			if err := store.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close sql store")
			}
		}
		return sqldb.NewAssessmentRepository(store), store, closeFn, nil

	default:
		return nil, nil, nil, fmt.Errorf("unsupported storage driver: %s", cfg.Storage.Driver)
	}
}
