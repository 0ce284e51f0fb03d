package repositories

import (
	"context"

	"github.com/gemura/gemura-backend/internal/core/domain"
)

// InvoiceRepositoryFacade defines persistence for invoices and their items.
type InvoiceRepositoryFacade interface {
	// SaveInvoice persists the header and items atomically.
	SaveInvoice(ctx context.Context, inv domain.Invoice) error
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	FindInvoiceByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error)
	ListInvoicesBySupplier(ctx context.Context, supplierAccountID string, limit, offset int) ([]domain.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, updatedBy string) error
}
