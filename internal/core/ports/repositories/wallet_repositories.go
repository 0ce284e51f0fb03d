package repositories

import (
	"context"
	"time"

	"github.com/gemura/gemura-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletRepositoryFacade defines persistence for wallets.
type WalletRepositoryFacade interface {
	SaveWallet(ctx context.Context, wallet domain.Wallet) error
	FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)
	ListWalletsByAccount(ctx context.Context, accountID string) ([]domain.Wallet, error)
	CountWalletsByAccount(ctx context.Context, accountID string) (int, error)
	WalletCodeExists(ctx context.Context, code string) (bool, error)
	// ClearDefaultWallet unsets is_default on every wallet of the account.
	ClearDefaultWallet(ctx context.Context, accountID string, updatedBy string, now time.Time) error
	SetDefaultWallet(ctx context.Context, walletID string, updatedBy string, now time.Time) error
	// AdjustBalance applies a signed delta to the wallet balance atomically,
	// failing with apperrors.ErrValidation when the result would be negative.
	AdjustBalance(ctx context.Context, walletID string, delta decimal.Decimal, updatedBy string, now time.Time) (*domain.Wallet, error)
}
