// @title                       Invoice Dashboard API
// @version                     1.0
// @description                 Invoices, customers, revenue and account administration.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

//go:generate swag init -g cmd/server/main.go -d ../.. -o ../../docs --parseInternal

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/99minutos/invoice-dashboard/internal/api"
	"github.com/99minutos/invoice-dashboard/internal/api/handler"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
	"github.com/99minutos/invoice-dashboard/internal/core/service"
	"github.com/99minutos/invoice-dashboard/internal/infrastructure/db/mongo"
	"github.com/99minutos/invoice-dashboard/internal/infrastructure/db/postgres"
	"github.com/99minutos/invoice-dashboard/internal/infrastructure/db/redis"
	"github.com/99minutos/invoice-dashboard/internal/infrastructure/queue"
	"github.com/99minutos/invoice-dashboard/internal/pkg/config"
	"github.com/99minutos/invoice-dashboard/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "invoice-dashboard",
	})

	// --- Storage ---
	db, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL, MaxOpenConns: cfg.Postgres.MaxOpenConns})
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate postgres")
	}

	mongoClient, mongoDB, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "invoice-dashboard",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongo")
	}
	if err := mongo.EnsureIndexes(ctx, mongoDB); err != nil {
		log.Warn().Err(err).Msg("ensure audit indexes")
	}

	redisClient, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}

	accountRepo := postgres.NewAccountRepository(db)
	invoiceRepo := postgres.NewInvoiceRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	revenueRepo := postgres.NewRevenueRepository(db)
	auditRepo := mongo.NewAuditRepository(mongoDB)
	idempotency := redis.NewIdempotencyStore(redisClient)

	// --- Audit dispatcher ---
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditRepo, log)
	dispatcher.Start(ctx)

	// --- Services ---
	accountService := service.NewAccountService(accountRepo, dispatcher, log)
	authService := service.NewAuthService(accountRepo, dispatcher, log, cfg.JWTSecret, cfg.TokenTTL)
	invoiceService := service.NewInvoiceService(invoiceRepo, customerRepo, idempotency, dispatcher, log)
	customerService := service.NewCustomerService(customerRepo)
	dashboardService := service.NewDashboardService(revenueRepo, invoiceRepo, customerRepo)

	if cfg.Bootstrap.Email != "" {
		created, err := accountService.Bootstrap(ctx, ports.CreateAccountInput{
			Name:     cfg.Bootstrap.Name,
			Email:    cfg.Bootstrap.Email,
			Password: cfg.Bootstrap.Password,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("bootstrap admin")
		}
		if created {
			log.Info().Str("email", cfg.Bootstrap.Email).Msg("bootstrap admin created")
		}
	}

	router := api.NewRouter(api.Dependencies{
		Accounts:  accountService,
		Auth:      authService,
		Invoices:  invoiceService,
		Customers: customerService,
		Dashboard: dashboardService,
		Audit:     auditRepo,
		Probes: map[string]handler.Probe{
			"postgres": db.PingContext,
			"mongo": func(ctx context.Context) error {
				return mongoClient.Ping(ctx, nil)
			},
			"redis": func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		},
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}
	dispatcher.Stop()

	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("mongo disconnect")
	}
	if err := redisClient.Close(); err != nil {
		log.Warn().Err(err).Msg("redis close")
	}

	log.Info().Msg("bye")
}
