package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerAccountType is the fundamental accounting type of a chart account.
type LedgerAccountType string

const (
	LedgerAsset     LedgerAccountType = "ASSET"
	LedgerLiability LedgerAccountType = "LIABILITY"
	LedgerEquity    LedgerAccountType = "EQUITY"
	LedgerRevenue   LedgerAccountType = "REVENUE"
	LedgerExpense   LedgerAccountType = "EXPENSE"
)

// ChartOfAccount is a hierarchical ledger account. The tree is formed via
// ParentID self-reference; soft delete is IsActive=false.
type ChartOfAccount struct {
	ChartAccountID string            `json:"chartAccountID"`
	Code           string            `json:"code"`
	Name           string            `json:"name"`
	AccountType    LedgerAccountType `json:"accountType"`
	ParentID       *string           `json:"parentID,omitempty"`
	IsActive       bool              `json:"isActive"`
	AuditFields
}

// EntrySide indicates whether a journal entry line debits or credits its
// chart account.
type EntrySide string

const (
	EntryDebit  EntrySide = "DEBIT"
	EntryCredit EntrySide = "CREDIT"
)

// BalanceTolerance is the maximum allowed difference between the debit and
// credit sums of a journal entry.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// AccountingTransaction is a journal entry header with N entry lines.
// Invariant: sum(debits) == sum(credits) within BalanceTolerance, enforced at
// creation time only.
type AccountingTransaction struct {
	TransactionID   string                       `json:"transactionID"`
	TransactionDate time.Time                    `json:"transactionDate"`
	ReferenceNumber string                       `json:"referenceNumber"`
	Description     string                       `json:"description"`
	TotalAmount     decimal.Decimal              `json:"totalAmount"`
	Entries         []AccountingTransactionEntry `json:"entries,omitempty"`
	AuditFields
}

// AccountingTransactionEntry is one line of a journal entry, carrying either
// a debit or a credit amount against one chart account.
type AccountingTransactionEntry struct {
	EntryID        string          `json:"entryID"`
	TransactionID  string          `json:"transactionID"`
	ChartAccountID string          `json:"chartAccountID"`
	Side           EntrySide       `json:"side"`
	Amount         decimal.Decimal `json:"amount"` // Positive
	Memo           string          `json:"memo,omitempty"`
}

// ValidateEntriesBalance checks the double-entry invariant over a set of
// entry lines.
func ValidateEntriesBalance(entries []AccountingTransactionEntry) (debits, credits decimal.Decimal, ok bool) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, e := range entries {
		if e.Side == EntryDebit {
			debits = debits.Add(e.Amount)
		} else {
			credits = credits.Add(e.Amount)
		}
	}
	return debits, credits, debits.Sub(credits).Abs().LessThanOrEqual(BalanceTolerance)
}
