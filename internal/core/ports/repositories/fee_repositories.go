package repositories

import (
	"context"
	"time"

	"github.com/gemura/gemura-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FeeRepositoryFacade defines persistence for fee types, supplier fee rules
// and realized deductions.
type FeeRepositoryFacade interface {
	SaveFeeType(ctx context.Context, ft domain.FeeType) error
	FindFeeTypeByID(ctx context.Context, feeTypeID string) (*domain.FeeType, error)
	FindFeeTypeByCode(ctx context.Context, code string) (*domain.FeeType, error)
	ListFeeTypes(ctx context.Context) ([]domain.FeeType, error)

	SaveFeeRule(ctx context.Context, rule domain.SupplierFeeRule) error
	// ListActiveFeeRules returns the supplier's rules whose effective range
	// overlaps the given instant.
	ListActiveFeeRules(ctx context.Context, supplierAccountID string, at time.Time) ([]domain.SupplierFeeRule, error)
	ListFeeRulesBySupplier(ctx context.Context, supplierAccountID string) ([]domain.SupplierFeeRule, error)

	SaveDeduction(ctx context.Context, d domain.SupplierDeduction) error
	ListDeductionsBySupplier(ctx context.Context, supplierAccountID string, limit, offset int) ([]domain.SupplierDeduction, error)
	// SumDeductions totals the supplier's deductions applied within the period.
	SumDeductions(ctx context.Context, supplierAccountID string, from, to time.Time) (decimal.Decimal, error)
}
