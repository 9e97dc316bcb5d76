package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-saturation/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-saturation/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-saturation/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-saturation/internal/config"
	"github.com/comitanigiacomo/kanso-saturation/internal/core/domain"
	"github.com/comitanigiacomo/kanso-saturation/internal/core/services"
	"github.com/comitanigiacomo/kanso-saturation/internal/core/workers"
)

func main() {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Critical: invalid configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var (
		sessionRepo domain.SessionRepository
		db          *sqlx.DB
		rdb         *redis.Client
	)

	switch cfg.Storage {
	case config.StoragePostgres:
		log.Println("Connecting to database...")

		db, err = sqlx.Connect("pgx", cfg.Database.DSN())
		if err != nil {
			log.Fatalf("Critical: Failed to connect to database: %v", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		pgRepo := repository.NewPostgresSessionRepository(db)
		if err := pgRepo.EnsureSchema(ctx); err != nil {
			log.Fatalf("Critical: Failed to prepare schema: %v", err)
		}
		sessionRepo = pgRepo

		log.Println("Database connected successfully.")
	default:
		sessionRepo = repository.NewInMemorySessionRepository()
		log.Println("Using in-memory session storage.")
	}

	if cfg.Redis.Enabled() {
		rdb, err = cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Fatalf("Critical: Failed to connect to redis: %v", err)
		}
		defer rdb.Close()

		if cfg.Storage == config.StoragePostgres {
			sessionRepo = repository.NewCachedSessionRepository(sessionRepo, rdb)
		}
		log.Println("Redis connected successfully.")
	}

	sessionService := services.NewSessionService(sessionRepo,
		services.WithLocation(cfg.Location),
		services.WithDefaultWeeks(cfg.Weeks),
	)
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.SessionTTL, sessionRepo)

	reaper := workers.NewSessionReaper(sessionRepo, cfg.SessionTTL, cfg.ReapEvery)
	reaper.Start(ctx)
	// Postgres may hold sessions left idle while the server was down.
	reaper.Trigger()

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		SessionHandler: adapterHTTP.NewSessionHandler(sessionService, tokenService),
		TokenService:   tokenService,
		DB:             db,
		Redis:          rdb,
		RateLimit:      cfg.RateLimit,
		StartTime:      startTime,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Kanso saturation log running on http://localhost:%s (storage=%s)", cfg.Port, cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
