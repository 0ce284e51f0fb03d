package repositories

import (
	"context"
	"time"

	"github.com/gemura/gemura-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaleRepositoryFacade defines persistence for milk sale/collection records.
// Soft-deleted records (status DELETED) are excluded from every list and
// aggregate query.
type SaleRepositoryFacade interface {
	SaveSale(ctx context.Context, sale domain.MilkSale) error
	FindSaleByID(ctx context.Context, saleID string) (*domain.MilkSale, error)
	UpdateSale(ctx context.Context, sale domain.MilkSale) error
	// ListSales applies the optional AND-combined filters for one side of the
	// trade. accountID is matched against either supplier or customer
	// depending on asSupplier.
	ListSales(ctx context.Context, accountID string, asSupplier bool, filter domain.SaleFilter) ([]domain.MilkSale, error)
	// SumAcceptedSales aggregates accepted sales between the pair over the
	// period, returning the gross amount and the record count.
	SumAcceptedSales(ctx context.Context, supplierAccountID, customerAccountID string, from, to time.Time) (decimal.Decimal, int, error)
}
