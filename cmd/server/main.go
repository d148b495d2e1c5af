package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/retaildist/backend/internal/application/catalog"
	financeapp "github.com/retaildist/backend/internal/application/finance"
	inventoryapp "github.com/retaildist/backend/internal/application/inventory"
	tradeapp "github.com/retaildist/backend/internal/application/trade"
	"github.com/retaildist/backend/internal/infrastructure/config"
	"github.com/retaildist/backend/internal/infrastructure/logger"
	"github.com/retaildist/backend/internal/infrastructure/persistence"
	"github.com/retaildist/backend/internal/interfaces/http/handler"
	"github.com/retaildist/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting distribution backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	stockTxRepo := persistence.NewGormStockTransactionRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	returnRepo := persistence.NewGormReturnRequestRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	supplierInvoiceRepo := persistence.NewGormSupplierInvoiceRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	productService := catalogapp.NewProductService(productRepo, txScope)
	stockService := inventoryapp.NewStockService(productRepo, stockTxRepo, txScope)
	orderService := tradeapp.NewOrderServiceWithRate(orderRepo, txScope, cfg.Trade.CommissionRate)
	returnService := tradeapp.NewReturnService(returnRepo, txScope)
	invoiceService := financeapp.NewInvoiceService(invoiceRepo, supplierInvoiceRepo, txScope)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(logger.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewProductHandler(productService))
	r.Register(handler.NewInventoryHandler(stockService))
	r.Register(handler.NewOrderHandler(orderService))
	r.Register(handler.NewReturnHandler(returnService))
	r.Register(handler.NewInvoiceHandler(invoiceService))
	r.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
