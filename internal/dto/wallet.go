package dto

import (
	"time"

	"github.com/gemura/gemura-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWalletRequest opens a new wallet for the caller's default account.
type CreateWalletRequest struct {
	Type     domain.WalletType `json:"type" binding:"required,oneof=CURRENT SAVINGS"`
	IsJoint  bool              `json:"is_joint"`
	Currency string            `json:"currency"`
	// IsDefault makes the new wallet the account default, unsetting any prior
	// default.
	IsDefault bool `json:"is_default"`
}

// WalletAmountRequest carries the amount for deposit/withdraw operations.
type WalletAmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// WalletResponse mirrors domain.Wallet.
type WalletResponse struct {
	WalletID  string              `json:"walletID"`
	AccountID string              `json:"accountID"`
	Code      string              `json:"code"`
	Type      domain.WalletType   `json:"type"`
	IsJoint   bool                `json:"isJoint"`
	IsDefault bool                `json:"isDefault"`
	Balance   decimal.Decimal     `json:"balance"`
	Currency  string              `json:"currency"`
	Status    domain.WalletStatus `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
}

// ToWalletResponse converts a domain.Wallet to its DTO.
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		WalletID:  w.WalletID,
		AccountID: w.AccountID,
		Code:      w.Code,
		Type:      w.Type,
		IsJoint:   w.IsJoint,
		IsDefault: w.IsDefault,
		Balance:   w.Balance,
		Currency:  w.Currency,
		Status:    w.Status,
		CreatedAt: w.CreatedAt,
	}
}

// ToWalletResponses converts a slice of wallets.
func ToWalletResponses(wallets []domain.Wallet) []WalletResponse {
	res := make([]WalletResponse, len(wallets))
	for i := range wallets {
		res[i] = ToWalletResponse(&wallets[i])
	}
	return res
}
