package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gemura/gemura-backend/internal/apperrors"
	"github.com/gemura/gemura-backend/internal/core/domain"
	portsrepo "github.com/gemura/gemura-backend/internal/core/ports/repositories"
	"github.com/gemura/gemura-backend/internal/dto"
	"github.com/gemura/gemura-backend/internal/middleware"
)

// walletCodeAttempts bounds how many times wallet creation retries a
// colliding code before giving up.
const walletCodeAttempts = 5

// WalletService manages per-account wallets. Wallets are passive: nothing in
// the sales or payroll paths moves money through them automatically.
type WalletService struct {
	walletRepo portsrepo.WalletRepositoryFacade
}

// NewWalletService creates a new WalletService.
func NewWalletService(walletRepo portsrepo.WalletRepositoryFacade) *WalletService {
	return &WalletService{walletRepo: walletRepo}
}

// ListWallets returns the account's wallets; an account without wallets gets
// an empty list, not an error.
func (s *WalletService) ListWallets(ctx context.Context, accountID string) ([]domain.Wallet, error) {
	wallets, err := s.walletRepo.ListWalletsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	if wallets == nil {
		wallets = []domain.Wallet{}
	}
	return wallets, nil
}

// CreateWallet opens a wallet for the account, enforcing the per-account cap
// and the single-default invariant. Codes are regenerated on collision up to
// walletCodeAttempts times.
func (s *WalletService) CreateWallet(ctx context.Context, accountID string, req dto.CreateWalletRequest, actorUserID string) (*domain.Wallet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	count, err := s.walletRepo.CountWalletsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to count wallets: %w", err)
	}
	if count >= domain.MaxWalletsPerAccount {
		return nil, apperrors.NewValidation(fmt.Sprintf("Account already has the maximum of %d wallets", domain.MaxWalletsPerAccount))
	}

	code, err := s.uniqueWalletCode(ctx)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	now := time.Now().UTC()
	wallet := domain.Wallet{
		WalletID:  uuid.NewString(),
		AccountID: accountID,
		Code:      code,
		Type:      req.Type,
		IsJoint:   req.IsJoint,
		IsDefault: req.IsDefault || count == 0,
		Balance:   decimal.Zero,
		Currency:  currency,
		Status:    domain.WalletActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	if wallet.IsDefault && count > 0 {
		if err := s.walletRepo.ClearDefaultWallet(ctx, accountID, actorUserID, now); err != nil {
			return nil, fmt.Errorf("failed to clear default wallet: %w", err)
		}
	}
	if err := s.walletRepo.SaveWallet(ctx, wallet); err != nil {
		logger.Error("Failed to save wallet", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save wallet: %w", err)
	}

	logger.Info("Wallet created", slog.String("wallet_id", wallet.WalletID), slog.String("code", wallet.Code))
	return &wallet, nil
}

// uniqueWalletCode generates a wallet code, retrying on collision.
func (s *WalletService) uniqueWalletCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < walletCodeAttempts; attempt++ {
		code, err := generateWalletCode()
		if err != nil {
			return "", fmt.Errorf("failed to generate wallet code: %w", err)
		}
		exists, err := s.walletRepo.WalletCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check wallet code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", apperrors.NewInternal("Could not allocate a unique wallet code", nil)
}

// GetWallet loads one wallet, enforcing account ownership.
func (s *WalletService) GetWallet(ctx context.Context, accountID, walletID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFound("Wallet not found")
		}
		return nil, fmt.Errorf("failed to find wallet: %w", err)
	}
	if wallet.AccountID != accountID {
		return nil, apperrors.NewNotFound("Wallet not found")
	}
	return wallet, nil
}

// Deposit credits the wallet by a positive amount.
func (s *WalletService) Deposit(ctx context.Context, accountID, walletID string, amount decimal.Decimal, actorUserID string) (*domain.Wallet, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidation("Amount must be positive")
	}
	if _, err := s.GetWallet(ctx, accountID, walletID); err != nil {
		return nil, err
	}

	wallet, err := s.walletRepo.AdjustBalance(ctx, walletID, amount, actorUserID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to deposit: %w", err)
	}
	return wallet, nil
}

// Withdraw debits the wallet by a positive amount; the balance can never go
// negative.
func (s *WalletService) Withdraw(ctx context.Context, accountID, walletID string, amount decimal.Decimal, actorUserID string) (*domain.Wallet, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidation("Amount must be positive")
	}
	if _, err := s.GetWallet(ctx, accountID, walletID); err != nil {
		return nil, err
	}

	wallet, err := s.walletRepo.AdjustBalance(ctx, walletID, amount.Neg(), actorUserID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, apperrors.NewValidation("Insufficient balance")
		}
		return nil, fmt.Errorf("failed to withdraw: %w", err)
	}
	return wallet, nil
}

// SetDefault marks the wallet as the account default, unsetting any prior
// default first.
func (s *WalletService) SetDefault(ctx context.Context, accountID, walletID string, actorUserID string) (*domain.Wallet, error) {
	wallet, err := s.GetWallet(ctx, accountID, walletID)
	if err != nil {
		return nil, err
	}
	if wallet.IsDefault {
		return wallet, nil
	}

	now := time.Now().UTC()
	if err := s.walletRepo.ClearDefaultWallet(ctx, accountID, actorUserID, now); err != nil {
		return nil, fmt.Errorf("failed to clear default wallet: %w", err)
	}
	if err := s.walletRepo.SetDefaultWallet(ctx, walletID, actorUserID, now); err != nil {
		return nil, fmt.Errorf("failed to set default wallet: %w", err)
	}

	wallet.IsDefault = true
	wallet.LastUpdatedAt = now
	wallet.LastUpdatedBy = actorUserID
	return wallet, nil
}
