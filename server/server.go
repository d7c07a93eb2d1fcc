package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"musicalchairs/cache"
	"musicalchairs/config"
	"musicalchairs/db"
	"musicalchairs/logger"
	"musicalchairs/repository"
	"musicalchairs/storage"
)

// listCacheTTL bounds how stale a cached listing page can get.
const listCacheTTL = 30 * time.Second

// Start initializes dependencies and runs the HTTP server until SIGINT or
// SIGTERM.
func Start() {
	cfg := config.Load()

	logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputPath: cfg.LogOutputPath,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})

	ctx := context.Background()

	database, err := db.ConnectMongo(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", logger.ErrorField(err))
	}
	defer db.CloseMongo(ctx, database)
	logger.Info("connected to MongoDB", logger.String("database", cfg.MongoDB))

	if err := db.EnsureIndexes(ctx, database); err != nil {
		logger.Fatal("failed to ensure indexes", logger.ErrorField(err))
	}

	// The list cache is best-effort: a dead Redis only costs speed.
	var listCache *cache.ListCache
	if redisClient, err := db.ConnectRedis(cfg); err != nil {
		logger.Warn("Redis unavailable, list caching disabled", logger.ErrorField(err))
	} else {
		defer redisClient.Close()
		listCache = cache.NewListCache(redisClient, listCacheTTL)
		logger.Info("connected to Redis")
	}

	blobStore, err := storage.NewBlobStore(cfg)
	if err != nil {
		logger.Fatal("failed to initialize blob store", logger.ErrorField(err))
	}
	logger.Info("blob store ready", logger.String("bucket", cfg.MinioBucket))

	audioRepo := repository.NewMongoAudioRepository(database)
	userRepo := repository.NewMongoUserRepository(database)
	apiHandler := NewAPIHandler(audioRepo, userRepo, blobStore, listCache, cfg)

	router := apiHandler.Router()

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("server stopped")
}

// corsMiddleware mirrors the permissive CORS setup the Streamlit front
// ends rely on.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
