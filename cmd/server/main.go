package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jakubrevaj/Matratex/internal/config"
	"github.com/jakubrevaj/Matratex/internal/entity"
	"github.com/jakubrevaj/Matratex/internal/handler"
	"github.com/jakubrevaj/Matratex/internal/middleware"
	"github.com/jakubrevaj/Matratex/internal/repository"
	"github.com/jakubrevaj/Matratex/internal/scheduler"
	"github.com/jakubrevaj/Matratex/internal/service"
	"github.com/jakubrevaj/Matratex/internal/storage"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting matratex service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	store, err := storage.New(cfg.MinIO)
	if err != nil {
		zapLogger.Fatal("Failed to init document storage", zap.Error(err))
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(db, repos, store, cfg, zapLogger)
	handlers := handler.NewHandlers(services)

	sched := scheduler.New(services.Archive, zapLogger)
	if err := sched.Start(cfg.Archive); err != nil {
		zapLogger.Fatal("Failed to start scheduler", zap.Error(err))
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())

	registerRoutes(router, handlers)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")
	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	err = db.AutoMigrate(
		&entity.Customer{},
		&entity.Mattress{},
		&entity.Material{},
		&entity.Order{},
		&entity.OrderItem{},
		&entity.Invoice{},
		&entity.HistoricalOrder{},
		&entity.HistoricalOrderItem{},
		&entity.ArchivedItem{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}

func registerRoutes(r *gin.Engine, h *handler.Handlers) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	v1 := r.Group("/api/v1")
	{
		customers := v1.Group("/customers")
		{
			customers.GET("", h.Customer.List)
			customers.POST("", h.Customer.Create)
			customers.GET("/:id", h.Customer.Get)
			customers.GET("/:id/orders", h.Customer.GetOrders)
			customers.PUT("/:id", h.Customer.Update)
			customers.DELETE("/:id", h.Customer.Delete)
		}

		mattresses := v1.Group("/mattresses")
		{
			mattresses.GET("", h.Catalog.ListMattresses)
			mattresses.POST("", h.Catalog.CreateMattress)
			mattresses.GET("/:id", h.Catalog.GetMattress)
			mattresses.GET("/:id/price", h.Catalog.Price)
			mattresses.PUT("/:id", h.Catalog.UpdateMattress)
			mattresses.DELETE("/:id", h.Catalog.DeleteMattress)
		}

		materials := v1.Group("/materials")
		{
			materials.GET("", h.Catalog.ListMaterials)
			materials.POST("", h.Catalog.CreateMaterial)
			materials.DELETE("/:id", h.Catalog.DeleteMaterial)
		}

		orders := v1.Group("/orders")
		{
			orders.GET("", h.Order.List)
			orders.POST("", h.Order.Create)
			orders.GET("/number/:number", h.Order.GetByNumber)
			orders.GET("/:id", h.Order.Get)
			orders.PATCH("/:id", h.Order.Update)
			orders.DELETE("/:id", h.Order.Delete)
			orders.POST("/:id/invoice", h.Order.Invoice)
			orders.POST("/:id/archive", h.Order.ArchiveNow)
			orders.GET("/:id/items", h.OrderItem.ListByOrder)
			orders.POST("/:id/items", h.OrderItem.Create)
		}

		items := v1.Group("/order-items")
		{
			items.GET("/:id", h.OrderItem.Get)
			items.PUT("/:id", h.OrderItem.Update)
			items.PATCH("/:id/status", h.OrderItem.UpdateStatus)
			items.DELETE("/:id", h.OrderItem.Delete)
			items.POST("/:id/split", h.OrderItem.Split)
			items.POST("/:id/split-invoice", h.OrderItem.SplitAndInvoice)
		}

		invoices := v1.Group("/invoices")
		{
			invoices.GET("", h.Invoice.List)
			invoices.POST("", h.Invoice.CreateManual)
			invoices.GET("/:id", h.Invoice.Get)
			invoices.PATCH("/:id", h.Invoice.Patch)
			invoices.GET("/:id/pdf", h.Invoice.PDF)
		}

		production := v1.Group("/production")
		{
			production.GET("/queue", h.Production.Queue)
			production.POST("/move-all", h.Production.MoveAll)
			production.POST("/scan", h.Production.Scan)
		}

		archive := v1.Group("/archive")
		{
			archive.GET("/orders", h.Archive.ListOrders)
			archive.GET("/orders/:id", h.Archive.GetOrder)
			archive.GET("/items", h.Archive.ListItems)
			archive.GET("/items/:id", h.Archive.GetItem)
			archive.POST("/sweep", h.Archive.Sweep)
		}
	}
}
