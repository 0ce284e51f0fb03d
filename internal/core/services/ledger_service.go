package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gemura/gemura-backend/internal/apperrors"
	"github.com/gemura/gemura-backend/internal/core/domain"
	portsrepo "github.com/gemura/gemura-backend/internal/core/ports/repositories"
	"github.com/gemura/gemura-backend/internal/dto"
	"github.com/gemura/gemura-backend/internal/middleware"
)

// LedgerService owns the chart of accounts and double-entry journal
// recording.
type LedgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade) *LedgerService {
	return &LedgerService{ledgerRepo: ledgerRepo}
}

// CreateChartAccount adds one account to the chart. Codes are unique; a
// parent, when given, must exist and be active.
func (s *LedgerService) CreateChartAccount(ctx context.Context, req dto.CreateChartAccountRequest, actorUserID string) (*domain.ChartOfAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.ledgerRepo.FindChartAccountByCode(ctx, req.Code); err == nil {
		return nil, apperrors.NewConflict("Chart account code already exists")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check chart account code: %w", err)
	}

	if req.ParentID != nil {
		parent, err := s.ledgerRepo.FindChartAccountByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidation("Parent chart account not found")
			}
			return nil, fmt.Errorf("failed to find parent chart account: %w", err)
		}
		if !parent.IsActive {
			return nil, apperrors.NewValidation("Parent chart account is inactive")
		}
	}

	now := time.Now().UTC()
	acc := domain.ChartOfAccount{
		ChartAccountID: uuid.NewString(),
		Code:           req.Code,
		Name:           req.Name,
		AccountType:    req.AccountType,
		ParentID:       req.ParentID,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	if err := s.ledgerRepo.SaveChartAccount(ctx, acc); err != nil {
		logger.Error("Failed to save chart account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save chart account: %w", err)
	}
	return &acc, nil
}

// ListChartAccounts returns the chart, optionally including deactivated
// accounts.
func (s *LedgerService) ListChartAccounts(ctx context.Context, includeInactive bool) ([]domain.ChartOfAccount, error) {
	accounts, err := s.ledgerRepo.ListChartAccounts(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list chart accounts: %w", err)
	}
	return accounts, nil
}

// UpdateChartAccount renames or (de)activates an account. Deactivation is
// refused while the account has active children.
func (s *LedgerService) UpdateChartAccount(ctx context.Context, chartAccountID string, req dto.UpdateChartAccountRequest, actorUserID string) (*domain.ChartOfAccount, error) {
	acc, err := s.ledgerRepo.FindChartAccountByID(ctx, chartAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFound("Chart account not found")
		}
		return nil, fmt.Errorf("failed to find chart account: %w", err)
	}

	updated := false
	if req.Name != nil {
		acc.Name = *req.Name
		updated = true
	}
	if req.IsActive != nil {
		if acc.IsActive && !*req.IsActive {
			children, err := s.ledgerRepo.CountActiveChildren(ctx, chartAccountID)
			if err != nil {
				return nil, fmt.Errorf("failed to count children: %w", err)
			}
			if children > 0 {
				return nil, apperrors.NewConflict("Cannot deactivate a chart account with active children")
			}
		}
		acc.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		return nil, apperrors.NewValidation("No fields provided for update")
	}

	acc.LastUpdatedAt = time.Now().UTC()
	acc.LastUpdatedBy = actorUserID
	if err := s.ledgerRepo.UpdateChartAccount(ctx, *acc); err != nil {
		return nil, fmt.Errorf("failed to update chart account: %w", err)
	}
	return acc, nil
}

// CreateJournalEntry records a balanced journal entry. Every line must name
// an active chart account and carry exactly one of debit or credit; the
// debit and credit sums must agree within domain.BalanceTolerance. Header
// and lines persist atomically.
func (s *LedgerService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, actorUserID string) (*domain.AccountingTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txnID := uuid.NewString()
	entries := make([]domain.AccountingTransactionEntry, 0, len(req.Entries))
	ids := make([]string, 0, len(req.Entries))
	for i, line := range req.Entries {
		hasDebit := line.DebitAmount != nil && !line.DebitAmount.IsZero()
		hasCredit := line.CreditAmount != nil && !line.CreditAmount.IsZero()
		if hasDebit == hasCredit {
			return nil, apperrors.NewValidation(fmt.Sprintf("Entry %d must carry exactly one of debit_amount or credit_amount", i+1))
		}

		entry := domain.AccountingTransactionEntry{
			EntryID:        uuid.NewString(),
			TransactionID:  txnID,
			ChartAccountID: line.ChartAccountID,
			Memo:           line.Memo,
		}
		if hasDebit {
			if line.DebitAmount.IsNegative() {
				return nil, apperrors.NewValidation(fmt.Sprintf("Entry %d debit_amount cannot be negative", i+1))
			}
			entry.Side = domain.EntryDebit
			entry.Amount = *line.DebitAmount
		} else {
			if line.CreditAmount.IsNegative() {
				return nil, apperrors.NewValidation(fmt.Sprintf("Entry %d credit_amount cannot be negative", i+1))
			}
			entry.Side = domain.EntryCredit
			entry.Amount = *line.CreditAmount
		}
		entries = append(entries, entry)
		ids = append(ids, line.ChartAccountID)
	}

	accounts, err := s.ledgerRepo.FindChartAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve chart accounts: %w", err)
	}
	for _, id := range ids {
		acc, ok := accounts[id]
		if !ok {
			return nil, apperrors.NewValidation("Unknown chart account: " + id)
		}
		if !acc.IsActive {
			return nil, apperrors.NewValidation("Inactive chart account: " + acc.Code)
		}
	}

	debits, credits, balanced := domain.ValidateEntriesBalance(entries)
	if !balanced {
		return nil, apperrors.NewValidation(fmt.Sprintf("Journal entry is not balanced: debits %s, credits %s", debits, credits))
	}

	now := time.Now().UTC()
	txn := domain.AccountingTransaction{
		TransactionID:   txnID,
		TransactionDate: req.TransactionDate,
		ReferenceNumber: req.ReferenceNumber,
		Description:     req.Description,
		TotalAmount:     debits,
		Entries:         entries,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	if err := s.ledgerRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry recorded",
		slog.String("transaction_id", txnID),
		slog.String("total", debits.String()),
		slog.Int("entries", len(entries)))
	return &txn, nil
}

// GetJournalEntry loads a journal entry with its lines.
func (s *LedgerService) GetJournalEntry(ctx context.Context, transactionID string) (*domain.AccountingTransaction, error) {
	txn, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFound("Journal entry not found")
		}
		return nil, fmt.Errorf("failed to find journal entry: %w", err)
	}
	return txn, nil
}

// ListJournalEntries pages through journal headers, newest first.
func (s *LedgerService) ListJournalEntries(ctx context.Context, limit, offset int) ([]domain.AccountingTransaction, error) {
	if limit <= 0 {
		limit = 20
	}
	txns, err := s.ledgerRepo.ListTransactions(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return txns, nil
}

// UpdateJournalEntryHeader amends descriptive header fields only; lines and
// amounts are immutable once recorded.
func (s *LedgerService) UpdateJournalEntryHeader(ctx context.Context, transactionID string, description, referenceNumber *string, actorUserID string) (*domain.AccountingTransaction, error) {
	txn, err := s.GetJournalEntry(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	updated := false
	if description != nil {
		txn.Description = *description
		updated = true
	}
	if referenceNumber != nil {
		txn.ReferenceNumber = *referenceNumber
		updated = true
	}
	if !updated {
		return nil, apperrors.NewValidation("No fields provided for update")
	}

	txn.LastUpdatedAt = time.Now().UTC()
	txn.LastUpdatedBy = actorUserID
	if err := s.ledgerRepo.UpdateTransactionHeader(ctx, *txn); err != nil {
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}
	return txn, nil
}
