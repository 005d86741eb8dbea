// Package cmd wires configuration, persistence, gateways, services and the
// HTTP server into a runnable application.
package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vladyslavplus/KosherClouds-sub000/api"
	"github.com/vladyslavplus/KosherClouds-sub000/api/health"
	apiorder "github.com/vladyslavplus/KosherClouds-sub000/api/order"
	orderapp "github.com/vladyslavplus/KosherClouds-sub000/application/order"
	"github.com/vladyslavplus/KosherClouds-sub000/config"
	orderdomain "github.com/vladyslavplus/KosherClouds-sub000/domain/order"
	"github.com/vladyslavplus/KosherClouds-sub000/domain/shared"
	"github.com/vladyslavplus/KosherClouds-sub000/infrastructure/gateway"
	"github.com/vladyslavplus/KosherClouds-sub000/infrastructure/persistence/memory"
	"github.com/vladyslavplus/KosherClouds-sub000/infrastructure/persistence/mysql"
	"github.com/vladyslavplus/KosherClouds-sub000/infrastructure/persistence/retry"
	"github.com/vladyslavplus/KosherClouds-sub000/pkg/logger"
)

// App is the assembled application.
type App struct {
	config       *config.Config
	router       *api.Router
	server       *http.Server
	db           *gorm.DB
	outboxWorker *mysql.OutboxWorker
}

// NewApp builds the application from configuration. Fatal on any wiring
// failure; there is no degraded mode.
func NewApp(cfg *config.Config) *App {
	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting application",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env))

	var (
		db           *gorm.DB
		orderRepo    orderdomain.Repository
		uow          shared.UnitOfWork
		outboxWorker *mysql.OutboxWorker
	)

	switch cfg.Database.Type {
	case "mysql":
		db = connectMySQL(cfg)
		orderRepo = mysql.NewOrderRepository(db)

		mysqlUow := mysql.NewUnitOfWork(db)
		mysqlUow.SetRetryConfig(retry.FromAppConfig(cfg))
		uow = mysqlUow

		worker, err := mysql.NewOutboxWorker(
			mysql.NewOutboxRepository(db),
			&mysql.LoggingOutboxPublisher{},
			cfg.Outbox.PollInterval,
			cfg.Outbox.BatchSize,
			cfg.Outbox.MaxRetries,
		)
		if err != nil {
			logger.Fatal("failed to create outbox worker", zap.Error(err))
		}
		outboxWorker = worker
	default:
		logger.Info("using in-memory persistence layer")
		orderRepo = memory.NewOrderRepository()
		uow = memory.NewUnitOfWork()
	}

	carts, catalog, profiles := buildGateways(cfg)

	orderService := orderapp.NewApplicationService(orderRepo, carts, catalog, profiles, uow)

	healthController := health.NewController(cfg, sqlDB(db))
	orderController := apiorder.NewController(orderService)

	router := api.NewRouter(cfg, healthController, orderController)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &App{
		config:       cfg,
		router:       router,
		server:       server,
		db:           db,
		outboxWorker: outboxWorker,
	}
}

// sqlDB unwraps the raw connection for the health controller; nil in memory
// mode.
func sqlDB(db *gorm.DB) *sql.DB {
	if db == nil {
		return nil
	}
	raw, err := db.DB()
	if err != nil {
		return nil
	}
	return raw
}

func connectMySQL(cfg *config.Config) *gorm.DB {
	logger.Info("using MySQL/GORM persistence layer")

	mysqlConfig := &mysql.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	db, err := mysqlConfig.Connect()
	if err != nil {
		logger.Fatal("failed to connect to MySQL", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("failed to get underlying sql.DB", zap.Error(err))
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("failed to ping MySQL", zap.Error(err))
	}

	if cfg.IsDevelopment() {
		if err := mysql.Migrate(db); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	return db
}

func buildGateways(cfg *config.Config) (orderdomain.CartGateway, orderdomain.CatalogGateway, orderdomain.ProfileGateway) {
	if cfg.Gateways.Type == "http" {
		logger.Info("using HTTP gateways",
			zap.String("cart_url", cfg.Gateways.CartURL),
			zap.String("catalog_url", cfg.Gateways.CatalogURL),
			zap.String("profile_url", cfg.Gateways.ProfileURL))
		return gateway.NewCartHTTPGateway(cfg.Gateways.CartURL, cfg.Gateways.Timeout),
			gateway.NewCatalogHTTPGateway(cfg.Gateways.CatalogURL, cfg.Gateways.Timeout),
			gateway.NewProfileHTTPGateway(cfg.Gateways.ProfileURL, cfg.Gateways.Timeout)
	}

	logger.Info("using in-memory gateways")
	return memory.NewCartGateway(), memory.NewCatalogGateway(), memory.NewProfileGateway()
}

// Run starts the HTTP server and the outbox worker and blocks until SIGINT
// or SIGTERM, then shuts down within the configured timeout.
func (a *App) Run() {
	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	if a.outboxWorker != nil {
		go func() {
			if err := a.outboxWorker.Run(workerCtx); err != nil && err != context.Canceled {
				logger.Error("outbox worker stopped", zap.Error(err))
			}
		}()
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
	cancelWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	_ = logger.Sync()
	logger.Info("server stopped")
}
