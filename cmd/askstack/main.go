package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/askstack/askstack/internal/app"
	"github.com/askstack/askstack/internal/iam"
	"github.com/askstack/askstack/internal/observability"
	"github.com/askstack/askstack/internal/platform/cache"
	"github.com/askstack/askstack/internal/platform/db"
	"github.com/askstack/askstack/internal/questions"
	"github.com/askstack/askstack/internal/rbac"
	"github.com/askstack/askstack/internal/users"
	"github.com/askstack/askstack/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("create job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	signer, err := iam.NewTokenSigner(iam.SignerConfig{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		Leeway:   cfg.VerifyLeeway,
	})
	if err != nil {
		logger.Error("create token signer", slog.Any("error", err))
		os.Exit(1)
	}

	hasher := iam.NewHasher(cfg.BcryptCost)
	sessions := iam.NewSessionStore(redisClient, cfg.RefreshTokenTTL)

	iamRepo := iam.NewRepository(dbpool)
	rbacService := rbac.NewService(dbpool)

	iamService := iam.NewService(
		logger,
		iamRepo,
		rbacService,
		hasher,
		signer,
		sessions,
		jobClient,
		iam.TokenTTLs{
			Access:  cfg.AccessTokenTTL,
			Refresh: cfg.RefreshTokenTTL,
			Reset:   cfg.ResetTokenTTL,
		},
		cfg.ClientURL,
	)
	iamHandler := iam.NewHandler(logger, iamService, cfg.IsProduction())

	authenticator := iam.NewAuthenticator(logger, signer, sessions, iamRepo, rbacService)

	usersRepo := users.NewRepository(dbpool)
	usersService := users.NewService(usersRepo, rbacService)
	usersHandler := users.NewHandler(logger, usersService)

	questionsRepo := questions.NewRepository(dbpool)
	questionsService := questions.NewService(logger, questionsRepo, usersService)
	questionsHandler := questions.NewHandler(logger, questionsService)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Authenticator:    authenticator,
		IAMHandler:       iamHandler,
		UsersHandler:     usersHandler,
		QuestionsHandler: questionsHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
