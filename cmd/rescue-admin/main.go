// Command rescue-admin resets the superadmin password directly in the database, for when
// the operator is locked out of the dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"marketplace-service/internal/apperror"
	"marketplace-service/internal/model"
	"marketplace-service/internal/repository"
	"marketplace-service/internal/service"
	"marketplace-service/pkg/config"
	"marketplace-service/pkg/database"
	"marketplace-service/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	password := flag.String("password", "", "new superadmin password (at least 6 characters)")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "usage: rescue-admin -password <new password>")
		os.Exit(2)
	}

	appConfig, err := config.Load("marketplace-service")
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Server.Env,
		ServiceName: "rescue-admin",
		FilePath:    appConfig.Log.FilePath,
		MaxSizeMB:   appConfig.Log.MaxSizeMB,
		MaxBackups:  appConfig.Log.MaxBackups,
		MaxAgeDays:  appConfig.Log.MaxAgeDays,
	}); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	log := logger.GetLogger()
	defer log.Sync()

	db, err := database.InitDB(&appConfig.DB)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.MigrateModels(&model.AdminConfig{}); err != nil {
		log.Fatal("Failed to ensure admin_config table", zap.Error(err))
	}

	admin := service.NewAdminService(
		repository.NewStoreRepository(db),
		repository.NewProductRepository(db),
		repository.NewLicenseRepository(db),
		repository.NewSettingsRepository(db),
		repository.NewCatalogRepository(db),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := admin.ChangePassword(ctx, *password); err != nil {
		if apperror.KindOf(err) == apperror.KindValidation {
			fmt.Fprintln(os.Stderr, apperror.Message(err))
			os.Exit(2)
		}
		log.Fatal("Failed to reset superadmin password", zap.Error(err))
	}

	log.Info("Superadmin password reset")
}
