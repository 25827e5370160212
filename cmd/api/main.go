package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	_ "github.com/unimate-app/unimate-api/api/swagger"
	"github.com/unimate-app/unimate-api/internal/chat"
	"github.com/unimate-app/unimate-api/internal/gateway"
	"github.com/unimate-app/unimate-api/internal/handler"
	"github.com/unimate-app/unimate-api/internal/repository"
	"github.com/unimate-app/unimate-api/internal/router"
	"github.com/unimate-app/unimate-api/internal/service"
	"github.com/unimate-app/unimate-api/pkg/cache"
	"github.com/unimate-app/unimate-api/pkg/config"
	"github.com/unimate-app/unimate-api/pkg/database"
	"github.com/unimate-app/unimate-api/pkg/logger"
	"github.com/unimate-app/unimate-api/pkg/storage"
)

// @title Unimate API
// @version 1.0.0
// @description Campus social backend: accounts, announcements, chat access and payments
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(migrateCtx, db); err != nil {
		cancelMigrate()
		logr.Sugar().Fatalw("failed to apply migrations", "error", err)
	}
	cancelMigrate()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, feed cache disabled", "error", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close() //nolint:errcheck
	}

	images, err := storage.NewImageStore(cfg.Uploads.BaseDir, cfg.Uploads.MaxFileSizeBytes)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare uploads directory", "error", err)
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	postRepo := repository.NewPostRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	feedCache := repository.NewFeedCache(redisClient, logr)

	tokens := service.NewTokenService(service.TokenConfig{
		Secret:      cfg.JWT.Secret,
		UserExpiry:  cfg.JWT.UserExpiry,
		AdminExpiry: cfg.JWT.AdminExpiry,
		Issuer:      cfg.JWT.Issuer,
	})

	metrics := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, tokens, validate, logr)
	adminSvc := service.NewAdminService(adminRepo, tokens, validate, logr)
	userSvc := service.NewUserService(userRepo, logr, cfg.Presence.StalenessThreshold)
	chatSvc := service.NewChatService(userRepo, chat.NewTokenProvider(cfg.Chat), logr, cfg.Presence.StalenessThreshold)
	postSvc := service.NewPostService(postRepo, feedCache, validate, logr, cfg.Feed.CacheTTL)
	emailSvc := service.NewEmailService(cfg.Email, validate, logr)

	verifier := gateway.NewClient(cfg.Payment, logr)
	paymentSvc := service.NewPaymentService(paymentRepo, userRepo, verifier, validate, logr, service.PaymentFlowConfig{
		Amount:          cfg.Payment.Amount,
		PollInterval:    cfg.Payment.PollInterval,
		MaxPollAttempts: cfg.Payment.MaxPollAttempts,
	})
	defer paymentSvc.Close()

	emailSvc.Start(context.Background())
	defer emailSvc.Stop()

	engine := router.New(cfg, logr, router.Deps{
		Auth:     handler.NewAuthHandler(authSvc, images),
		User:     handler.NewUserHandler(userSvc),
		Chat:     handler.NewChatHandler(chatSvc),
		Admin:    handler.NewAdminHandler(adminSvc),
		Post:     handler.NewPostHandler(postSvc, images, logr),
		Payment:  handler.NewPaymentHandler(paymentSvc),
		Contact:  handler.NewContactHandler(emailSvc),
		Metrics:  handler.NewMetricsHandler(metrics),
		Tokens:   tokens,
		Payments: paymentSvc,
		Images:   images,
		Observer: metrics,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
