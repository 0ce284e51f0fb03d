package domain

import "github.com/shopspring/decimal"

// WalletType classifies a wallet's purpose.
type WalletType string

const (
	WalletTypeCurrent WalletType = "CURRENT"
	WalletTypeSavings WalletType = "SAVINGS"
)

// WalletStatus is the lifecycle state of a wallet.
type WalletStatus string

const (
	WalletActive   WalletStatus = "ACTIVE"
	WalletInactive WalletStatus = "INACTIVE"
)

// MaxWalletsPerAccount caps how many wallets a single account may hold.
const MaxWalletsPerAccount = 10

// Wallet is a per-account monetary container. At most one wallet per account
// has IsDefault set. Balances are mutated only by explicit wallet operations;
// sales and collections never credit or debit a wallet automatically.
type Wallet struct {
	WalletID  string          `json:"walletID"`
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"` // Unique across all wallets
	Type      WalletType      `json:"type"`
	IsJoint   bool            `json:"isJoint"`
	IsDefault bool            `json:"isDefault"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	Status    WalletStatus    `json:"status"`
	AuditFields
}
