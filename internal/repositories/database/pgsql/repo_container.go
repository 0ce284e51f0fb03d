package pgsql

import (
	portsrepo "github.com/gemura/gemura-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx repository over one shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	relationshipRepo := newPgxRelationshipRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(dbPool),
		AccountRepo:      newPgxAccountRepository(dbPool),
		RelationshipRepo: relationshipRepo,
		OnboardingRepo:   relationshipRepo,
		SaleRepo:         newPgxSaleRepository(dbPool),
		WalletRepo:       newPgxWalletRepository(dbPool),
		LedgerRepo:       newPgxLedgerRepository(dbPool),
		InvoiceRepo:      newPgxInvoiceRepository(dbPool),
		FeeRepo:          newPgxFeeRepository(dbPool),
		PayrollRepo:      newPgxPayrollRepository(dbPool),
		NotificationRepo: newPgxNotificationRepository(dbPool),
	}
}
