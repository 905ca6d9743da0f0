package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/shoestore/backend/internal/application/catalog"
	identityapp "github.com/shoestore/backend/internal/application/identity"
	partnerapp "github.com/shoestore/backend/internal/application/partner"
	reportapp "github.com/shoestore/backend/internal/application/report"
	tradeapp "github.com/shoestore/backend/internal/application/trade"
	"github.com/shoestore/backend/internal/infrastructure/auth"
	"github.com/shoestore/backend/internal/infrastructure/config"
	"github.com/shoestore/backend/internal/infrastructure/logger"
	"github.com/shoestore/backend/internal/infrastructure/persistence"
	"github.com/shoestore/backend/internal/interfaces/http/handler"
	"github.com/shoestore/backend/internal/interfaces/http/middleware"
	"github.com/shoestore/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting shoe store backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database with zap-backed GORM logging
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
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseInvoiceRepository(db.DB)
	salesRepo := persistence.NewGormSalesInvoiceRepository(db.DB)
	returnRepo := persistence.NewGormReturnExchangeRepository(db.DB)
	sizeIndex := persistence.NewGormSizeIndex(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Token revocation store: redis normally, in-memory when redis is
	// not reachable (single-instance deployments)
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("Error closing redis connection", zap.Error(err))
			}
		}()
	}

	// Application services
	productService := catalogapp.NewProductService(productRepo, categoryRepo, sizeIndex, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo, log)
	supplierService := partnerapp.NewSupplierService(supplierRepo, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	purchaseService := tradeapp.NewPurchaseInvoiceService(txScope, purchaseRepo, log)
	salesService := tradeapp.NewSalesInvoiceService(txScope, salesRepo, log)
	returnService := tradeapp.NewReturnExchangeService(txScope, returnRepo, log)
	reportService := reportapp.NewReportService(reportRepo)

	// HTTP handlers
	systemHandler := handler.NewSystemHandler(db, cfg.App.Name)
	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	purchaseHandler := handler.NewPurchaseInvoiceHandler(purchaseService)
	salesHandler := handler.NewSalesInvoiceHandler(salesService)
	returnHandler := handler.NewReturnExchangeHandler(returnService)
	reportHandler := handler.NewReportHandler(reportService)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// liveness endpoint outside the API prefix for load balancers
	engine.GET("/health", systemHandler.Health)

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))
	r.Register(systemHandler).
		Register(authHandler).
		Register(productHandler).
		Register(categoryHandler).
		Register(supplierHandler).
		Register(purchaseHandler).
		Register(salesHandler).
		Register(returnHandler).
		Register(reportHandler)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
