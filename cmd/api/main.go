package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"

	"github.com/gasops/cylinder-backend/api/routes"
	"github.com/gasops/cylinder-backend/internal/config"
	"github.com/gasops/cylinder-backend/internal/handlers"
	"github.com/gasops/cylinder-backend/internal/services"

	mongorepo "github.com/gasops/cylinder-backend/internal/repositories/mongodb"
	"github.com/gasops/cylinder-backend/pkg/mongodb"
)

func main() {
	// A missing .env is fine; config falls back to defaults
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	settingRepo := mongorepo.NewSettingRepository(db)
	categoryRepo := mongorepo.NewSettingCategoryRepository(db)
	outletRepo := mongorepo.NewOutletRepository(db)
	cylinderRepo := mongorepo.NewCylinderRepository(db)
	customerRepo := mongorepo.NewCustomerRepository(db)
	leaseRepo := mongorepo.NewLeaseRepository(db)
	operationRepo := mongorepo.NewOperationRepository(db)
	adminUserRepo := mongorepo.NewAdminUserRepository(db)

	// Services
	settingsService := services.NewSettingsService(settingRepo, categoryRepo)
	pricingService := services.NewPricingService(settingsService)
	outletService := services.NewOutletService(outletRepo)
	cylinderService := services.NewCylinderService(cylinderRepo, outletRepo, operationRepo, pricingService)
	customerService := services.NewCustomerService(customerRepo)
	leaseService := services.NewLeaseService(leaseRepo, cylinderRepo, customerRepo, pricingService)
	authService := services.NewAuthService(adminUserRepo, cfg)
	statsService := services.NewStatsService(settingRepo, outletRepo, cylinderRepo, customerRepo, leaseRepo, operationRepo)

	// Handlers
	handlerDeps := routes.HandlerDependencies{
		AuthHandler:     handlers.NewAuthHandler(authService),
		SettingsHandler: handlers.NewSettingsHandler(settingsService),
		PricingHandler:  handlers.NewPricingHandler(pricingService),
		OutletHandler:   handlers.NewOutletHandler(outletService),
		CylinderHandler: handlers.NewCylinderHandler(cylinderService),
		CustomerHandler: handlers.NewCustomerHandler(customerService),
		LeaseHandler:    handlers.NewLeaseHandler(leaseService),
		StatsHandler:    handlers.NewStatsHandler(statsService),
	}

	router := routes.SetupRouter(cfg, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited")
}
