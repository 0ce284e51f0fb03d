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

// InvoiceService creates and tracks supplier invoices. Line items and the
// header total are fixed at creation; only the billing status moves
// afterwards.
type InvoiceService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	invoiceRepo portsrepo.InvoiceRepositoryFacade
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(accountRepo portsrepo.AccountRepositoryFacade, invoiceRepo portsrepo.InvoiceRepositoryFacade) *InvoiceService {
	return &InvoiceService{accountRepo: accountRepo, invoiceRepo: invoiceRepo}
}

// CreateInvoice records an invoice with its items. The invoice number must
// be unique; the header total is the sum of item totals plus tax.
func (s *InvoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, actorUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.invoiceRepo.FindInvoiceByNumber(ctx, req.InvoiceNumber); err == nil {
		return nil, apperrors.NewConflict("Invoice number already exists")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check invoice number: %w", err)
	}

	supplier, err := s.accountRepo.FindAccountByCode(ctx, req.SupplierAccountCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFound("Supplier account not found")
		}
		return nil, fmt.Errorf("failed to resolve supplier account: %w", err)
	}
	if !supplier.IsActive() {
		return nil, apperrors.NewNotFound("Supplier account not found")
	}

	invoiceID := uuid.NewString()
	total := decimal.Zero
	items := make([]domain.InvoiceItem, 0, len(req.Items))
	for i, line := range req.Items {
		if line.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.NewValidation(fmt.Sprintf("Item %d quantity must be positive", i+1))
		}
		if line.UnitPrice.IsNegative() {
			return nil, apperrors.NewValidation(fmt.Sprintf("Item %d unit price cannot be negative", i+1))
		}
		lineTotal := line.Quantity.Mul(line.UnitPrice)
		items = append(items, domain.InvoiceItem{
			ItemID:      uuid.NewString(),
			InvoiceID:   invoiceID,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Total:       lineTotal,
		})
		total = total.Add(lineTotal)
	}

	tax := decimal.Zero
	if req.TaxAmount != nil {
		if req.TaxAmount.IsNegative() {
			return nil, apperrors.NewValidation("Tax amount cannot be negative")
		}
		tax = *req.TaxAmount
	}

	now := time.Now().UTC()
	inv := domain.Invoice{
		InvoiceID:         invoiceID,
		InvoiceNumber:     req.InvoiceNumber,
		SupplierAccountID: supplier.AccountID,
		IssueDate:         req.IssueDate,
		DueDate:           req.DueDate,
		TotalAmount:       total.Add(tax),
		TaxAmount:         tax,
		Status:            domain.InvoiceDraft,
		Items:             items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	if err := s.invoiceRepo.SaveInvoice(ctx, inv); err != nil {
		logger.Error("Failed to save invoice", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	logger.Info("Invoice created", slog.String("invoice_id", invoiceID), slog.String("number", inv.InvoiceNumber))
	return &inv, nil
}

// GetInvoice loads one invoice with its items.
func (s *InvoiceService) GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFound("Invoice not found")
		}
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}
	return inv, nil
}

// ListInvoices pages through a supplier's invoices, newest first.
func (s *InvoiceService) ListInvoices(ctx context.Context, supplierAccountID string, limit, offset int) ([]domain.Invoice, error) {
	if limit <= 0 {
		limit = 20
	}
	invoices, err := s.invoiceRepo.ListInvoicesBySupplier(ctx, supplierAccountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

// ChangeStatus moves the invoice to a new billing status. Paid and cancelled
// invoices are terminal.
func (s *InvoiceService) ChangeStatus(ctx context.Context, invoiceID string, target domain.InvoiceStatus, actorUserID string) (*domain.Invoice, error) {
	inv, err := s.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status == target {
		return inv, nil
	}
	if inv.Status == domain.InvoicePaid || inv.Status == domain.InvoiceCancelled {
		return nil, apperrors.NewConflict(fmt.Sprintf("Cannot move invoice from %s to %s", inv.Status, target))
	}

	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, invoiceID, target, actorUserID); err != nil {
		return nil, fmt.Errorf("failed to update invoice status: %w", err)
	}
	inv.Status = target
	inv.LastUpdatedAt = time.Now().UTC()
	inv.LastUpdatedBy = actorUserID
	return inv, nil
}
