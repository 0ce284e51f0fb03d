package dto

import (
	"time"

	"github.com/gemura/gemura-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateChartAccountRequest adds one account to the chart of accounts.
type CreateChartAccountRequest struct {
	Code        string                   `json:"code" binding:"required"`
	Name        string                   `json:"name" binding:"required"`
	AccountType domain.LedgerAccountType `json:"account_type" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentID    *string                  `json:"parent_id"`
}

// UpdateChartAccountRequest mutates a chart account.
type UpdateChartAccountRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

// ChartAccountResponse mirrors domain.ChartOfAccount.
type ChartAccountResponse struct {
	ChartAccountID string                   `json:"chartAccountID"`
	Code           string                   `json:"code"`
	Name           string                   `json:"name"`
	AccountType    domain.LedgerAccountType `json:"accountType"`
	ParentID       *string                  `json:"parentID,omitempty"`
	IsActive       bool                     `json:"isActive"`
}

// ToChartAccountResponse converts a domain.ChartOfAccount to its DTO.
func ToChartAccountResponse(a *domain.ChartOfAccount) ChartAccountResponse {
	return ChartAccountResponse{
		ChartAccountID: a.ChartAccountID,
		Code:           a.Code,
		Name:           a.Name,
		AccountType:    a.AccountType,
		ParentID:       a.ParentID,
		IsActive:       a.IsActive,
	}
}

// CreateJournalEntryRequest creates a balanced journal entry. Each line
// carries either debit_amount or credit_amount, never both.
type CreateJournalEntryRequest struct {
	TransactionDate time.Time                  `json:"transaction_date" binding:"required"`
	ReferenceNumber string                     `json:"reference_number"`
	Description     string                     `json:"description" binding:"required"`
	Entries         []CreateJournalEntryLine   `json:"entries" binding:"required,min=2,dive"`
}

// CreateJournalEntryLine is one line of a journal entry request.
type CreateJournalEntryLine struct {
	ChartAccountID string           `json:"chart_account_id" binding:"required"`
	DebitAmount    *decimal.Decimal `json:"debit_amount"`
	CreditAmount   *decimal.Decimal `json:"credit_amount"`
	Memo           string           `json:"memo"`
}

// JournalEntryResponse mirrors domain.AccountingTransaction.
type JournalEntryResponse struct {
	TransactionID   string                 `json:"transactionID"`
	TransactionDate time.Time              `json:"transactionDate"`
	ReferenceNumber string                 `json:"referenceNumber"`
	Description     string                 `json:"description"`
	TotalAmount     decimal.Decimal        `json:"totalAmount"`
	Entries         []JournalEntryLineItem `json:"entries,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
}

// JournalEntryLineItem mirrors domain.AccountingTransactionEntry.
type JournalEntryLineItem struct {
	EntryID        string           `json:"entryID"`
	ChartAccountID string           `json:"chartAccountID"`
	DebitAmount    *decimal.Decimal `json:"debitAmount,omitempty"`
	CreditAmount   *decimal.Decimal `json:"creditAmount,omitempty"`
	Memo           string           `json:"memo,omitempty"`
}

// ToJournalEntryResponse converts a domain.AccountingTransaction to its DTO.
func ToJournalEntryResponse(t *domain.AccountingTransaction) JournalEntryResponse {
	resp := JournalEntryResponse{
		TransactionID:   t.TransactionID,
		TransactionDate: t.TransactionDate,
		ReferenceNumber: t.ReferenceNumber,
		Description:     t.Description,
		TotalAmount:     t.TotalAmount,
		CreatedAt:       t.CreatedAt,
	}
	for _, e := range t.Entries {
		item := JournalEntryLineItem{
			EntryID:        e.EntryID,
			ChartAccountID: e.ChartAccountID,
			Memo:           e.Memo,
		}
		amount := e.Amount
		if e.Side == domain.EntryDebit {
			item.DebitAmount = &amount
		} else {
			item.CreditAmount = &amount
		}
		resp.Entries = append(resp.Entries, item)
	}
	return resp
}
