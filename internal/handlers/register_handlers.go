package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gemura/gemura-backend/internal/core/ports/repositories"
	"github.com/gemura/gemura-backend/internal/core/services"
	"github.com/gemura/gemura-backend/internal/middleware"
	"github.com/gemura/gemura-backend/internal/platform/cache"
	"github.com/gemura/gemura-backend/internal/platform/config"
)

// RegisterRoutes wires every route onto the engine: the public auth and
// operational endpoints, then the authenticated /api/v1 surface.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	repos *repositories.RepositoryProvider,
	cacheClient *cache.Cache,
	dbPool *pgxpool.Pool,
) {
	authService := services.NewAuthService(repos.UserRepo, repos.AccountRepo, cfg)
	userService := services.NewUserService(repos.UserRepo)
	accountService := services.NewAccountService(repos.UserRepo, repos.AccountRepo)
	supplierService := services.NewSupplierService(repos.UserRepo, repos.AccountRepo, repos.RelationshipRepo, repos.OnboardingRepo)
	saleService := services.NewSaleService(repos.AccountRepo, repos.SaleRepo, supplierService)
	walletService := services.NewWalletService(repos.WalletRepo)
	ledgerService := services.NewLedgerService(repos.LedgerRepo)
	invoiceService := services.NewInvoiceService(repos.AccountRepo, repos.InvoiceRepo)
	feeService := services.NewFeeService(repos.AccountRepo, repos.FeeRepo, repos.SaleRepo)
	payrollService := services.NewPayrollService(repos.AccountRepo, repos.SaleRepo, repos.FeeRepo, repos.PayrollRepo)
	notificationService := services.NewNotificationService(repos.NotificationRepo, cacheClient)

	r.GET("/healthz", healthzHandler(dbPool, cacheClient))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := r.Group("")
	registerAuthRoutes(public, authService)

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, userService)
	registerAccountRoutes(v1, accountService)
	registerSupplierRoutes(v1, accountService, supplierService)
	registerSaleRoutes(v1, accountService, saleService)
	registerWalletRoutes(v1, accountService, walletService)
	registerLedgerRoutes(v1, accountService, ledgerService)
	registerInvoiceRoutes(v1, accountService, invoiceService)
	registerFeeRoutes(v1, accountService, feeService)
	registerPayrollRoutes(v1, accountService, payrollService)
	registerNotificationRoutes(v1, notificationService)
}
