package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fintrack/finance-api/internal/api"
	"github.com/fintrack/finance-api/internal/core/service"
	"github.com/fintrack/finance-api/internal/infrastructure/config"
	"github.com/fintrack/finance-api/internal/infrastructure/db/mongo"
	"github.com/fintrack/finance-api/internal/infrastructure/db/redis"
	"github.com/fintrack/finance-api/internal/infrastructure/queue"
	"github.com/fintrack/finance-api/pkg/logger"

	_ "github.com/fintrack/finance-api/docs"
)

// @title        Finance Tracker API
// @version      1.0
// @description  Personal finance tracker: transactions, budgets, goals and a dashboard.
// @BasePath     /api
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("configuration failed")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})

	// --- MongoDB ---
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	// --- Redis ---
	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	userRepo := mongo.NewUserRepository(db)
	transactionRepo := mongo.NewTransactionRepository(db)
	budgetRepo := mongo.NewBudgetRepository(db)
	goalRepo := mongo.NewGoalRepository(db)

	for _, ensure := range []func(context.Context) error{
		userRepo.EnsureIndexes,
		transactionRepo.EnsureIndexes,
		budgetRepo.EnsureIndexes,
		goalRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	// --- Budget alert pipeline ---
	dedup := redis.NewAlertDedup(rdb)
	alertService := service.NewAlertService(budgetRepo, transactionRepo, dedup, log)
	dispatcher := queue.NewDispatcher(0, alertService, log)
	dispatcher.Start(ctx)

	// --- Services ---
	tokenService := service.NewTokenService(cfg.JWTSecret, 0)
	svc := api.Services{
		Auth:        service.NewAuthService(userRepo, tokenService),
		Token:       tokenService,
		User:        service.NewUserService(userRepo, transactionRepo, budgetRepo, goalRepo, log),
		Transaction: service.NewTransactionService(transactionRepo, dispatcher, log),
		Budget:      service.NewBudgetService(budgetRepo, transactionRepo),
		Goal:        service.NewGoalService(goalRepo),
		Dashboard:   service.NewDashboardService(transactionRepo),
	}

	e := api.NewRouter(svc, db, rdb, log, cfg.Production())

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
