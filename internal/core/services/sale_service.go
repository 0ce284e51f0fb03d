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

// SaleService records milk movements between supplier and customer accounts.
// The same records serve both the "collection" view (customer side) and the
// "sale" view (supplier side).
type SaleService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	saleRepo    portsrepo.SaleRepositoryFacade
	supplierSvc *SupplierService
}

// NewSaleService creates a new SaleService.
func NewSaleService(accountRepo portsrepo.AccountRepositoryFacade, saleRepo portsrepo.SaleRepositoryFacade, supplierSvc *SupplierService) *SaleService {
	return &SaleService{accountRepo: accountRepo, saleRepo: saleRepo, supplierSvc: supplierSvc}
}

// CreateSale records one movement. actAsSupplier selects which side of the
// trade the caller's default account takes; the counterpart is resolved by
// its public code and must be active. The unit price defaults to the
// relationship price when not supplied; the total is fixed at write time.
func (s *SaleService) CreateSale(ctx context.Context, callerAccount *domain.Account, actAsSupplier bool, req dto.CreateSaleRequest, recorderUserID string) (*domain.MilkSale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidation("Quantity must be positive")
	}

	counterpart, err := s.accountRepo.FindAccountByCode(ctx, req.CounterpartAccountCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFound("Account not found")
		}
		return nil, fmt.Errorf("failed to resolve counterpart account: %w", err)
	}
	if !counterpart.IsActive() {
		return nil, apperrors.NewNotFound("Account not found")
	}

	supplierID, customerID := counterpart.AccountID, callerAccount.AccountID
	if actAsSupplier {
		supplierID, customerID = callerAccount.AccountID, counterpart.AccountID
	}

	unitPrice := decimal.Zero
	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			return nil, apperrors.NewValidation("Unit price cannot be negative")
		}
		unitPrice = *req.UnitPrice
	} else {
		unitPrice, err = s.supplierSvc.ResolveUnitPrice(ctx, supplierID, customerID)
		if err != nil {
			return nil, err
		}
	}

	status := domain.SalePending
	if req.Status != nil {
		status = *req.Status
	}

	now := time.Now().UTC()
	saleAt := now
	if req.SaleAt != nil {
		saleAt = req.SaleAt.UTC()
	}

	sale := domain.MilkSale{
		SaleID:            uuid.NewString(),
		SupplierAccountID: supplierID,
		CustomerAccountID: customerID,
		Quantity:          req.Quantity,
		UnitPrice:         unitPrice,
		TotalAmount:       req.Quantity.Mul(unitPrice),
		Status:            status,
		SaleAt:            saleAt,
		Notes:             req.Notes,
		RecordedBy:        recorderUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     recorderUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: recorderUserID,
		},
	}

	if err := s.saleRepo.SaveSale(ctx, sale); err != nil {
		logger.Error("Failed to save sale", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save sale: %w", err)
	}

	logger.Info("Sale recorded", slog.String("sale_id", sale.SaleID), slog.String("total", sale.TotalAmount.String()))
	return &sale, nil
}

// ListSales applies the optional AND-combined filters for the caller's side
// of the trade. date_to is pushed to the end of its day so the range covers
// the whole day.
func (s *SaleService) ListSales(ctx context.Context, callerAccount *domain.Account, asSupplier bool, params dto.ListSalesParams) ([]domain.MilkSale, error) {
	filter, err := buildSaleFilter(params)
	if err != nil {
		return nil, err
	}

	sales, err := s.saleRepo.ListSales(ctx, callerAccount.AccountID, asSupplier, *filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}

// buildSaleFilter parses and normalizes list parameters.
func buildSaleFilter(params dto.ListSalesParams) (*domain.SaleFilter, error) {
	filter := &domain.SaleFilter{
		CounterpartCode: params.CounterpartCode,
		Limit:           params.Limit,
		Offset:          params.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	if params.Status != "" {
		status := domain.SaleStatus(params.Status)
		switch status {
		case domain.SalePending, domain.SaleAccepted, domain.SaleRejected, domain.SaleCancelled:
			filter.Status = &status
		default:
			return nil, apperrors.NewValidation("Unknown status filter")
		}
	}

	if params.DateFrom != "" {
		from, err := time.Parse("2006-01-02", params.DateFrom)
		if err != nil {
			return nil, apperrors.NewValidation("date_from must be YYYY-MM-DD")
		}
		filter.DateFrom = &from
	}
	if params.DateTo != "" {
		to, err := time.Parse("2006-01-02", params.DateTo)
		if err != nil {
			return nil, apperrors.NewValidation("date_to must be YYYY-MM-DD")
		}
		to = EndOfDay(to)
		filter.DateTo = &to
	}

	var parseErr error
	parseDec := func(raw *string, name string) *decimal.Decimal {
		if raw == nil || *raw == "" || parseErr != nil {
			return nil
		}
		d, err := decimal.NewFromString(*raw)
		if err != nil {
			parseErr = apperrors.NewValidation(name + " must be numeric")
			return nil
		}
		return &d
	}
	filter.QuantityMin = parseDec(params.QuantityMin, "quantity_min")
	filter.QuantityMax = parseDec(params.QuantityMax, "quantity_max")
	filter.PriceMin = parseDec(params.PriceMin, "price_min")
	filter.PriceMax = parseDec(params.PriceMax, "price_max")
	if parseErr != nil {
		return nil, parseErr
	}
	return filter, nil
}

// EndOfDay normalizes a date to 23:59:59.999 so range filters include the
// whole day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
}

// UpdateSale mutates a sale the caller's account owns a side of. The
// counterpart is re-resolved when a new code is supplied; updates touching
// zero fields are rejected. TotalAmount is recomputed only when quantity or
// price changes through this operation, never by unrelated updates.
func (s *SaleService) UpdateSale(ctx context.Context, callerAccount *domain.Account, saleID string, req dto.UpdateSaleRequest, actorUserID string) (*domain.MilkSale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sale, err := s.getOwnedSale(ctx, callerAccount, saleID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.CounterpartAccountCode != nil {
		counterpart, err := s.accountRepo.FindAccountByCode(ctx, *req.CounterpartAccountCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewNotFound("Account not found")
			}
			return nil, fmt.Errorf("failed to resolve counterpart account: %w", err)
		}
		if !counterpart.IsActive() {
			return nil, apperrors.NewNotFound("Account not found")
		}
		if sale.SupplierAccountID == callerAccount.AccountID {
			sale.CustomerAccountID = counterpart.AccountID
		} else {
			sale.SupplierAccountID = counterpart.AccountID
		}
		updated = true
	}
	priceChanged := false
	if req.Quantity != nil {
		if req.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.NewValidation("Quantity must be positive")
		}
		sale.Quantity = *req.Quantity
		updated, priceChanged = true, true
	}
	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			return nil, apperrors.NewValidation("Unit price cannot be negative")
		}
		sale.UnitPrice = *req.UnitPrice
		updated, priceChanged = true, true
	}
	if req.SaleAt != nil {
		sale.SaleAt = req.SaleAt.UTC()
		updated = true
	}
	if req.Notes != nil {
		sale.Notes = *req.Notes
		updated = true
	}

	if !updated {
		return nil, apperrors.NewValidation("No fields provided for update")
	}
	if priceChanged {
		sale.TotalAmount = sale.Quantity.Mul(sale.UnitPrice)
	}

	sale.LastUpdatedAt = time.Now().UTC()
	sale.LastUpdatedBy = actorUserID
	if err := s.saleRepo.UpdateSale(ctx, *sale); err != nil {
		logger.Error("Failed to update sale", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update sale: %w", err)
	}
	return sale, nil
}

// ChangeSaleStatus moves a sale to ACCEPTED or REJECTED; only valid from
// PENDING.
func (s *SaleService) ChangeSaleStatus(ctx context.Context, callerAccount *domain.Account, saleID string, target domain.SaleStatus, actorUserID string) (*domain.MilkSale, error) {
	if target != domain.SaleAccepted && target != domain.SaleRejected {
		return nil, apperrors.NewValidation("Unsupported status transition")
	}

	sale, err := s.getOwnedSale(ctx, callerAccount, saleID)
	if err != nil {
		return nil, err
	}
	if !sale.CanTransitionTo(target) {
		return nil, apperrors.NewConflict(fmt.Sprintf("Cannot move sale from %s to %s", sale.Status, target))
	}

	sale.Status = target
	sale.LastUpdatedAt = time.Now().UTC()
	sale.LastUpdatedBy = actorUserID
	if err := s.saleRepo.UpdateSale(ctx, *sale); err != nil {
		return nil, fmt.Errorf("failed to update sale status: %w", err)
	}
	return sale, nil
}

// CancelSale hard-sets status CANCELLED. Cancelling an already-cancelled sale
// is an idempotent success and returns the record unchanged.
func (s *SaleService) CancelSale(ctx context.Context, callerAccount *domain.Account, saleID string, actorUserID string) (*domain.MilkSale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sale, err := s.getOwnedSale(ctx, callerAccount, saleID)
	if err != nil {
		return nil, err
	}
	if sale.Status == domain.SaleCancelled {
		logger.Info("Sale already cancelled", slog.String("sale_id", saleID))
		return sale, nil
	}

	sale.Status = domain.SaleCancelled
	sale.LastUpdatedAt = time.Now().UTC()
	sale.LastUpdatedBy = actorUserID
	if err := s.saleRepo.UpdateSale(ctx, *sale); err != nil {
		return nil, fmt.Errorf("failed to cancel sale: %w", err)
	}

	logger.Info("Sale cancelled", slog.String("sale_id", saleID))
	return sale, nil
}

// DeleteSale soft-deletes the record; it disappears from all lists and
// aggregates.
func (s *SaleService) DeleteSale(ctx context.Context, callerAccount *domain.Account, saleID string, actorUserID string) error {
	sale, err := s.getOwnedSale(ctx, callerAccount, saleID)
	if err != nil {
		return err
	}

	sale.Status = domain.SaleDeleted
	sale.LastUpdatedAt = time.Now().UTC()
	sale.LastUpdatedBy = actorUserID
	if err := s.saleRepo.UpdateSale(ctx, *sale); err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}
	return nil
}

// getOwnedSale loads a sale and enforces ownership: the caller's default
// account must be one side of the trade. Soft-deleted records read as
// not found.
func (s *SaleService) getOwnedSale(ctx context.Context, callerAccount *domain.Account, saleID string) (*domain.MilkSale, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFound("Sale not found")
		}
		return nil, fmt.Errorf("failed to find sale: %w", err)
	}
	if sale.Status == domain.SaleDeleted {
		return nil, apperrors.NewNotFound("Sale not found")
	}
	if sale.SupplierAccountID != callerAccount.AccountID && sale.CustomerAccountID != callerAccount.AccountID {
		return nil, apperrors.NewForbidden("Access denied")
	}
	return sale, nil
}
