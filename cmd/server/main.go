package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/coursehub-backend/internal/config"
	"github.com/stemsi/coursehub-backend/internal/database"
	"github.com/stemsi/coursehub-backend/internal/handler"
	"github.com/stemsi/coursehub-backend/internal/logger"
	"github.com/stemsi/coursehub-backend/internal/middleware"
	"github.com/stemsi/coursehub-backend/internal/payment"
	"github.com/stemsi/coursehub-backend/internal/repository"
	"github.com/stemsi/coursehub-backend/internal/router"
	"github.com/stemsi/coursehub-backend/internal/service"
	"github.com/stemsi/coursehub-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("payment_provider", cfg.PaymentProvider).
		Msg("Starting Course Enrollment Backend")

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis (optional) ───────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	var limiter middleware.Limiter
	if rdb != nil {
		defer rdb.Close()
		limiter = middleware.NewRedisLimiter(rdb, cfg.RateLimitPerMinute, time.Minute)
	} else {
		memLimiter := middleware.NewMemoryLimiter(cfg.RateLimitPerMinute, time.Minute)
		go memLimiter.RunCleanup(ctx)
		limiter = memLimiter
	}

	// ─── Payment Gateway ───────────────────────────────────────────────
	gateway, err := payment.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure payment gateway")
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	cartRepo := repository.NewCartRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	feedbackRepo := repository.NewFeedbackRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg)
	userService := service.NewUserService(userRepo)
	classService := service.NewClassService(classRepo)
	cartService := service.NewCartService(cartRepo)
	paymentService := service.NewPaymentService(paymentRepo, gateway, cfg.PaymentCurrency, log)
	feedbackService := service.NewFeedbackService(feedbackRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authService, log),
		User:     handler.NewUserHandler(userService, log),
		Class:    handler.NewClassHandler(classService, log),
		Cart:     handler.NewCartHandler(cartService, log),
		Payment:  handler.NewPaymentHandler(paymentService, log),
		Feedback: handler.NewFeedbackHandler(feedbackService, log),
		System:   handler.NewSystemHandler(pool, rdb, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(router.Guards{
		Auth:    authService,
		Roles:   userService,
		Limiter: limiter,
	}, handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
