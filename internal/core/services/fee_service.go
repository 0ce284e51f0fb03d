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

var percentCeiling = decimal.NewFromInt(100)

// FeeService manages the fee catalog, per-supplier fee rules, and explicit
// deductions.
type FeeService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	feeRepo     portsrepo.FeeRepositoryFacade
	saleRepo    portsrepo.SaleRepositoryFacade
}

// NewFeeService creates a new FeeService.
func NewFeeService(accountRepo portsrepo.AccountRepositoryFacade, feeRepo portsrepo.FeeRepositoryFacade, saleRepo portsrepo.SaleRepositoryFacade) *FeeService {
	return &FeeService{accountRepo: accountRepo, feeRepo: feeRepo, saleRepo: saleRepo}
}

// CreateFeeType adds a catalog entry. Codes are unique.
func (s *FeeService) CreateFeeType(ctx context.Context, req dto.CreateFeeTypeRequest, actorUserID string) (*domain.FeeType, error) {
	if _, err := s.feeRepo.FindFeeTypeByCode(ctx, req.Code); err == nil {
		return nil, apperrors.NewConflict("Fee type code already exists")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check fee type code: %w", err)
	}

	now := time.Now().UTC()
	ft := domain.FeeType{
		FeeTypeID:       uuid.NewString(),
		Code:            req.Code,
		Name:            req.Name,
		Category:        req.Category,
		CalculationType: req.CalculationType,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	if err := s.feeRepo.SaveFeeType(ctx, ft); err != nil {
		return nil, fmt.Errorf("failed to save fee type: %w", err)
	}
	return &ft, nil
}

// ListFeeTypes returns the fee catalog.
func (s *FeeService) ListFeeTypes(ctx context.Context) ([]domain.FeeType, error) {
	types, err := s.feeRepo.ListFeeTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fee types: %w", err)
	}
	return types, nil
}

// CreateFeeRule binds a fee type to a supplier. Percentage amounts must fall
// within 0-100; the effective range must be well ordered.
func (s *FeeService) CreateFeeRule(ctx context.Context, req dto.CreateFeeRuleRequest, actorUserID string) (*domain.SupplierFeeRule, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.IsNegative() {
		return nil, apperrors.NewValidation("Amount cannot be negative")
	}
	if req.CalculationType == domain.FeePercentage && req.Amount.GreaterThan(percentCeiling) {
		return nil, apperrors.NewValidation("Percentage amount must be between 0 and 100")
	}
	if req.EffectiveTo != nil && req.EffectiveTo.Before(req.EffectiveFrom) {
		return nil, apperrors.NewValidation("effective_to cannot precede effective_from")
	}
	if req.MinAmount != nil && req.MaxAmount != nil && req.MaxAmount.LessThan(*req.MinAmount) {
		return nil, apperrors.NewValidation("max_amount cannot be less than min_amount")
	}

	ft, err := s.feeRepo.FindFeeTypeByCode(ctx, req.FeeTypeCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFound("Fee type not found")
		}
		return nil, fmt.Errorf("failed to resolve fee type: %w", err)
	}

	supplier, err := s.resolveActiveAccount(ctx, req.SupplierAccountCode)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rule := domain.SupplierFeeRule{
		RuleID:            uuid.NewString(),
		FeeTypeID:         ft.FeeTypeID,
		SupplierAccountID: supplier.AccountID,
		CalculationType:   req.CalculationType,
		Amount:            req.Amount,
		MinAmount:         req.MinAmount,
		MaxAmount:         req.MaxAmount,
		EffectiveFrom:     req.EffectiveFrom,
		EffectiveTo:       req.EffectiveTo,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	if err := s.feeRepo.SaveFeeRule(ctx, rule); err != nil {
		logger.Error("Failed to save fee rule", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save fee rule: %w", err)
	}
	return &rule, nil
}

// ListFeeRules returns all rules bound to a supplier, active or not.
func (s *FeeService) ListFeeRules(ctx context.Context, supplierAccountCode string) ([]domain.SupplierFeeRule, error) {
	supplier, err := s.resolveActiveAccount(ctx, supplierAccountCode)
	if err != nil {
		return nil, err
	}
	rules, err := s.feeRepo.ListFeeRulesBySupplier(ctx, supplier.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fee rules: %w", err)
	}
	return rules, nil
}

// CreateDeduction records an explicit charge against a supplier. When tied
// to a milk sale, the sale must exist and belong to the supplier.
func (s *FeeService) CreateDeduction(ctx context.Context, req dto.CreateDeductionRequest, actorUserID string) (*domain.SupplierDeduction, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidation("Amount must be positive")
	}

	supplier, err := s.resolveActiveAccount(ctx, req.SupplierAccountCode)
	if err != nil {
		return nil, err
	}

	var feeTypeID *string
	if req.FeeTypeCode != nil {
		ft, err := s.feeRepo.FindFeeTypeByCode(ctx, *req.FeeTypeCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewNotFound("Fee type not found")
			}
			return nil, fmt.Errorf("failed to resolve fee type: %w", err)
		}
		feeTypeID = &ft.FeeTypeID
	}

	if req.MilkSaleID != nil {
		sale, err := s.saleRepo.FindSaleByID(ctx, *req.MilkSaleID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewNotFound("Milk sale not found")
			}
			return nil, fmt.Errorf("failed to resolve milk sale: %w", err)
		}
		if sale.Status == domain.SaleDeleted || sale.SupplierAccountID != supplier.AccountID {
			return nil, apperrors.NewNotFound("Milk sale not found")
		}
	}

	now := time.Now().UTC()
	appliedAt := now
	if req.AppliedAt != nil {
		appliedAt = req.AppliedAt.UTC()
	}
	d := domain.SupplierDeduction{
		DeductionID:       uuid.NewString(),
		SupplierAccountID: supplier.AccountID,
		FeeTypeID:         feeTypeID,
		MilkSaleID:        req.MilkSaleID,
		Amount:            req.Amount,
		Reason:            req.Reason,
		AppliedAt:         appliedAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	if err := s.feeRepo.SaveDeduction(ctx, d); err != nil {
		return nil, fmt.Errorf("failed to save deduction: %w", err)
	}
	return &d, nil
}

// ListDeductions pages through a supplier's deductions, newest first.
func (s *FeeService) ListDeductions(ctx context.Context, supplierAccountCode string, limit, offset int) ([]domain.SupplierDeduction, error) {
	supplier, err := s.resolveActiveAccount(ctx, supplierAccountCode)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	deductions, err := s.feeRepo.ListDeductionsBySupplier(ctx, supplier.AccountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list deductions: %w", err)
	}
	return deductions, nil
}

// resolveActiveAccount looks an account up by public code and requires it to
// be active.
func (s *FeeService) resolveActiveAccount(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFound("Account not found")
		}
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}
	if !account.IsActive() {
		return nil, apperrors.NewNotFound("Account not found")
	}
	return account, nil
}
