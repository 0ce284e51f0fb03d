package repositories

import (
	"context"

	"github.com/gemura/gemura-backend/internal/core/domain"
)

// LedgerRepositoryFacade defines persistence for the chart of accounts and
// journal entries.
type LedgerRepositoryFacade interface {
	SaveChartAccount(ctx context.Context, acc domain.ChartOfAccount) error
	FindChartAccountByID(ctx context.Context, chartAccountID string) (*domain.ChartOfAccount, error)
	FindChartAccountByCode(ctx context.Context, code string) (*domain.ChartOfAccount, error)
	FindChartAccountsByIDs(ctx context.Context, ids []string) (map[string]domain.ChartOfAccount, error)
	ListChartAccounts(ctx context.Context, includeInactive bool) ([]domain.ChartOfAccount, error)
	UpdateChartAccount(ctx context.Context, acc domain.ChartOfAccount) error
	CountActiveChildren(ctx context.Context, chartAccountID string) (int, error)

	// SaveTransaction persists the header and all entries in one database
	// transaction; nothing is written on failure.
	SaveTransaction(ctx context.Context, txn domain.AccountingTransaction) error
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.AccountingTransaction, error)
	ListTransactions(ctx context.Context, limit, offset int) ([]domain.AccountingTransaction, error)
	UpdateTransactionHeader(ctx context.Context, txn domain.AccountingTransaction) error
}
