package main

import (
	"context"
	"log"
	"time"

	"chat-history/config"
	"chat-history/internal/handler"
	"chat-history/internal/redis"
	"chat-history/internal/repository"
	"chat-history/internal/server"
	"chat-history/internal/services"
	"chat-history/internal/storage"
	"chat-history/pkg/database"
	"chat-history/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	l := logger.New(cfg.LogMode)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := database.Open(ctx, cfg)
	if err != nil {
		l.Logger.Fatal("Failed to connect to database: " + err.Error())
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := store.Close(closeCtx); err != nil {
			l.Errorf("Failed to close database: %v", err)
		}
	}()

	if err := store.Migrate(ctx); err != nil {
		l.Logger.Fatal("Failed to apply migrations: " + err.Error())
	}

	repos, err := database.NewRepositories(store, repository.StoreOptions{
		Timeout: cfg.StoreTimeout,
		Retries: cfg.StoreRetries,
	})
	if err != nil {
		l.Logger.Fatal("Failed to build repositories: " + err.Error())
	}

	var limiter *redis.RateLimiter
	if cfg.RedisEnabled() {
		client, err := redis.NewClient(ctx, redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			l.Logger.Fatal("Failed to connect to redis: " + err.Error())
		}
		defer client.Close()

		limits := redis.DefaultRateLimitConfig()
		limits.ChatWriteLimit = cfg.ChatWriteLimit
		limits.ChatWriteWindow = cfg.ChatWriteWindow
		limiter = redis.NewRateLimiter(client, limits)
	} else {
		l.Warnf("REDIS_ADDR not set, rate limiting disabled")
	}

	// A nil *S3Client must not reach the service as a non-nil interface.
	var presigner services.Presigner
	if cfg.S3Enabled() {
		s3Client, err := storage.NewS3Client(ctx, storage.S3Config{
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Endpoint:   cfg.S3Endpoint,
			PublicBase: cfg.S3PublicBase,
			PresignTTL: cfg.S3PresignTTL,
		})
		if err != nil {
			l.Logger.Fatal("Failed to configure S3: " + err.Error())
		}
		presigner = s3Client
	}

	signer := storage.NewImageKitSigner(storage.ImageKitConfig{
		URLEndpoint: cfg.ImageKitEndpoint,
		PublicKey:   cfg.ImageKitPublicKey,
		PrivateKey:  cfg.ImageKitPrivateKey,
		TokenTTL:    cfg.ImageKitTokenTTL,
	})
	if !signer.Configured() {
		l.Warnf("IMAGE_KIT_PRIVATE_KEY not set, GET /api/upload will answer 503")
	} else {
		l.Infof("ImageKit uploads signed for %s (public key %s)", signer.URLEndpoint(), signer.PublicKey())
	}

	chatService := services.NewChatService(repos.Chats, repos.UserChats, l)
	uploadService := services.NewUploadService(signer, presigner)
	authService := services.NewAuthService(cfg)

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Chat:   handler.NewChatHandler(chatService),
		Upload: handler.NewUploadHandler(uploadService),
	}, server.Dependencies{
		Auth:    authService,
		Limiter: limiter,
		Health:  store,
	})

	if err := srv.Start(); err != nil {
		l.Errorf("Server stopped with error: %v", err)
	}
}
