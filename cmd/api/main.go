package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/splitledger/internal/cache"
	"github.com/josh-kwaku/splitledger/internal/config"
	"github.com/josh-kwaku/splitledger/internal/handler"
	"github.com/josh-kwaku/splitledger/internal/logging"
	"github.com/josh-kwaku/splitledger/internal/repository"
	"github.com/josh-kwaku/splitledger/internal/service"
	"github.com/josh-kwaku/splitledger/internal/split"
)

//go:embed openapi.yaml
var openapiSpec []byte

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("splitledger-api", cfg.LogLevel, cfg.AppEnv)

	if err := repository.Migrate(cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := repository.NewPostgresDB(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	checks := map[string]handler.Pinger{"database": db.PingContext}

	var reportCache cache.ReportCache = cache.Noop{}
	if cfg.RedisURL != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		reportCache = cache.NewRedis(rdb, cfg.ReportCacheTTL)
		checks["redis"] = redisPinger(rdb)
		slog.Info("report cache enabled", "ttl", cfg.ReportCacheTTL)
	}

	users := repository.NewUserRepository(db)
	groups := repository.NewGroupRepository(db)
	expenses := repository.NewExpenseRepository(db)
	reports := repository.NewReportRepository(db)
	idempotency := repository.NewIdempotencyRepository(db)

	calc := split.NewCalculator(decimal.NewFromFloat(cfg.SplitTolerance))

	accountSvc := service.NewAccountService(users, cfg.JWTSecret, cfg.JWTExpiry)
	groupSvc := service.NewGroupService(db, groups, users)
	expenseSvc := service.NewExpenseService(db, expenses, groups, calc, reportCache, cfg.FoldExpenseBalances)
	settlementSvc := service.NewSettlementService(db, groups)
	reportSvc := service.NewReportService(reports, reportCache)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "splitledger"),
	)

	router := newRouter(routerDeps{
		jwtSecret:   cfg.JWTSecret,
		registry:    reg,
		idempotency: idempotency,
		auth:        handler.NewAuthHandler(accountSvc),
		groups:      handler.NewGroupHandler(groupSvc),
		expenses:    handler.NewExpenseHandler(expenseSvc),
		settlements: handler.NewSettlementHandler(settlementSvc),
		reports:     handler.NewReportHandler(reportSvc),
		health:      handler.NewHealthHandler(checks),
		spec:        openapiSpec,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr, "fold_expense_balances", cfg.FoldExpenseBalances)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func redisPinger(rdb *redis.Client) handler.Pinger {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}
