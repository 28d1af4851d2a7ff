package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/items-api/internal/auth"
	"github.com/yukikurage/items-api/internal/config"
	"github.com/yukikurage/items-api/internal/constants"
	"github.com/yukikurage/items-api/internal/database"
	"github.com/yukikurage/items-api/internal/logging"
	"github.com/yukikurage/items-api/internal/ratelimit"
	"github.com/yukikurage/items-api/internal/repository"
	"github.com/yukikurage/items-api/internal/server"
	"github.com/yukikurage/items-api/internal/services"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()
	log := logging.New(cfg.Env, os.Stdout)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode())

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.Connect(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error("failed to close database pool", "error", err)
		}
	}()

	// Run migrations
	if err := database.Migrate(ctx, db, cfg.DBDriver, log); err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer redisClient.Close()
	}

	transport, err := newTransport(cfg)
	if err != nil {
		return err
	}

	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret), constants.TokenValidity)
	hasher := auth.NewPasswordHasher(0)

	deps := server.Deps{
		DB:             db,
		Logger:         log,
		Version:        cfg.Version,
		Tokens:         tokens,
		Transport:      transport,
		AuthService:    services.NewAuthService(repository.NewUserRepository(db), hasher, tokens),
		ItemService:    services.NewItemService(repository.NewItemRepository(db)),
		TrustedProxies: cfg.TrustedProxies,
	}
	if redisClient != nil {
		deps.Limiter = ratelimit.NewRedisLimiter(redisClient, cfg.RateLimitMax, cfg.RateLimitWindow)
	}

	srv := server.NewHTTPServer(cfg, server.NewRouter(deps))

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", srv.Addr, "env", cfg.Env, "transport", cfg.AuthTransport, "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down gracefully")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	return nil
}

// newTransport builds the single credential transport shared by the router and handlers.
func newTransport(cfg *config.Config) (auth.Transport, error) {
	if cfg.AuthTransport == config.TransportBearer {
		return auth.NewBearerTransport(), nil
	}

	secret := []byte(cfg.SessionSecret)
	if cfg.RedisAddr != "" {
		store, err := auth.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, secret, constants.TokenValidity, cfg.IsProduction())
		if err != nil {
			return nil, err
		}
		return auth.NewCookieTransport(store, cfg.IsProduction()), nil
	}
	return auth.NewCookieTransport(auth.NewCookieStore(secret, constants.TokenValidity, cfg.IsProduction()), cfg.IsProduction()), nil
}
