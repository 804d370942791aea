package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"moviebase/internal/app"
	"moviebase/internal/config"
	"moviebase/internal/server"
	"moviebase/internal/tmdb"
	"moviebase/internal/util"
	"moviebase/pkg/cache"
	"moviebase/pkg/queue"
	"moviebase/pkg/store"
	"moviebase/pkg/token"
)

func main() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := util.InitLogger(cfg.LogLevel)

	st, err := store.NewGormStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})
	defer redisClient.Close()

	enrichQueue, err := queue.NewEnrichQueue(redisClient, queue.Config{
		Stream: cfg.Queue.Stream,
		Group:  cfg.Queue.Group,
	})
	if err != nil {
		log.Fatalf("build queue: %v", err)
	}

	application, err := app.New(app.Config{
		Store:     st,
		Cache:     cache.New(redisClient),
		Tokens:    token.NewIssuer(cfg.JWTSecret),
		TMDB:      tmdb.NewClient(cfg.TMDB.APIURL, cfg.TMDB.APIToken),
		Scheduler: enrichQueue,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("build app: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	enrichQueue.Start(ctx, cfg.Queue.Concurrency, func(ctx context.Context, job queue.JobStatus) error {
		return application.EnrichMovie(ctx, job.MovieID)
	})

	if cfg.SeedAdmin.Email != "" && cfg.SeedAdmin.Password != "" {
		created, err := application.EnsureAdmin(ctx, cfg.SeedAdmin.Name, cfg.SeedAdmin.Email, cfg.SeedAdmin.Password)
		if err != nil {
			log.Fatalf("seed admin: %v", err)
		}
		if created {
			logger.Info("seeded admin account", "email", cfg.SeedAdmin.Email)
		}
	}

	srv := server.New(server.Config{App: application, Env: cfg.Env})
	httpSrv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "addr", httpSrv.Addr, "env", cfg.Env)
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("serve: %v", err)
	}
}
