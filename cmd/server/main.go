package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace-service/internal/handler"
	mid "marketplace-service/internal/middleware"
	"marketplace-service/internal/model"
	"marketplace-service/internal/repository"
	"marketplace-service/internal/service"
	"marketplace-service/pkg/config"
	"marketplace-service/pkg/database"
	"marketplace-service/pkg/jwtutil"
	"marketplace-service/pkg/logger"
	"marketplace-service/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const serviceName = "marketplace-service"

func main() {
	appConfig, err := config.Load(serviceName)
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Server.Env,
		ServiceName: serviceName,
		FilePath:    appConfig.Log.FilePath,
		MaxSizeMB:   appConfig.Log.MaxSizeMB,
		MaxBackups:  appConfig.Log.MaxBackups,
		MaxAgeDays:  appConfig.Log.MaxAgeDays,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting "+serviceName, appConfig.LogFields()...)

	db, err := database.InitDB(&appConfig.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer database.Close()

	err = database.MigrateModels(
		&model.Province{},
		&model.Store{},
		&model.Product{},
		&model.ActivationCode{},
		&model.AdminConfig{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	log.Info("Database migrations completed")

	stores := repository.NewStoreRepository(db)
	products := repository.NewProductRepository(db)
	catalog := repository.NewCatalogRepository(db)
	licenses := repository.NewLicenseRepository(db)
	settings := repository.NewSettingsRepository(db)
	registrar := repository.NewRegistrationRepository(db)

	jwtUtil := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: appConfig.JWT.SigningKey})

	authService := service.NewAuthService(stores, products, settings, registrar, jwtUtil, service.AuthConfig{
		VendorTTL: appConfig.JWT.VendorTTL,
		AdminTTL:  appConfig.JWT.AdminTTL,
	})
	productService := service.NewProductService(products)
	storefrontService := service.NewStorefrontService(stores, products)
	catalogService := service.NewCatalogService(catalog, settings, appConfig.Platform.DefaultSupportPhone)
	adminService := service.NewAdminService(stores, products, licenses, settings, catalog)

	bootCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = adminService.Bootstrap(bootCtx, service.BootstrapConfig{
		AdminPassword: appConfig.Platform.DefaultAdminPassword,
		SupportPhone:  appConfig.Platform.DefaultSupportPhone,
		Provinces:     model.DefaultProvinces,
	})
	cancel()
	if err != nil {
		log.Fatal("Failed to seed platform defaults", zap.Error(err))
	}

	httpMetrics := metrics.NewHTTPMetrics(appConfig.Metrics.Prefix)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: appConfig.CORS.AllowOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.BodyLimit(appConfig.Server.BodyLimit))
	e.Use(mid.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(httpMetrics.Middleware())

	handler.RegisterRoutes(e, handler.Handlers{
		Health: handler.NewHealthHandler(func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
		Auth:    handler.NewAuthHandler(authService),
		Public:  handler.NewPublicHandler(catalogService, storefrontService),
		Vendor:  handler.NewVendorHandler(productService, storefrontService),
		Admin:   handler.NewAdminHandler(adminService),
		Metrics: metrics.GetPrometheusHandler(),
	}, jwtUtil)

	go func() {
		port := appConfig.Server.Port
		log.Info("Starting server", zap.String("port", port))
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
}
