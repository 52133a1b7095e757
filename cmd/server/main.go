package main

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/YashMagare365/mess-management-backend/internal/config"
	"github.com/YashMagare365/mess-management-backend/internal/database"
	"github.com/YashMagare365/mess-management-backend/internal/handler"
	"github.com/YashMagare365/mess-management-backend/internal/infrastructure/identity"
	"github.com/YashMagare365/mess-management-backend/internal/infrastructure/payment"
	"github.com/YashMagare365/mess-management-backend/internal/infrastructure/recordstore"
	"github.com/YashMagare365/mess-management-backend/internal/logger"
	"github.com/YashMagare365/mess-management-backend/internal/repo"
	"github.com/YashMagare365/mess-management-backend/internal/service"
	"github.com/YashMagare365/mess-management-backend/internal/worker"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	log := logger.New()
	defer log.Sync()

	db, err := database.NewPostgres(cfg.DB)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	attemptRepo := repo.NewAttemptRepo(db)

	gateway := payment.NewRazorpayGateway(cfg.GatewayKeyID, cfg.GatewayKeySecret)
	provider := identity.NewHTTPProvider(cfg.IdentityBaseURL, cfg.IdentityCredential, http.DefaultClient)
	store := recordstore.NewHTTPStore(cfg.RecordStoreURL, cfg.RecordStoreSecret, http.DefaultClient)

	orderService := service.NewOrderService(gateway, log)
	provisioningService := service.NewProvisioningService(provider, store, attemptRepo, log)

	reconciler := worker.NewReconciliationWorker(
		attemptRepo, provider, store,
		cfg.ReconcileInterval, cfg.ReconcileOlderThan, log,
	)
	go reconciler.Run(ctx)

	r := gin.Default()
	r.Use(cors.Default())

	h := handler.New(orderService, provisioningService, database.New(db), log)
	h.RegisterRoutes(r)

	log.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
