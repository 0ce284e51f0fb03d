package dto

import (
	"time"

	"github.com/gemura/gemura-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateFeeTypeRequest adds a fee catalog entry.
type CreateFeeTypeRequest struct {
	Code            string                    `json:"code" binding:"required"`
	Name            string                    `json:"name" binding:"required"`
	Category        string                    `json:"category"`
	CalculationType domain.FeeCalculationType `json:"calculation_type" binding:"required,oneof=FIXED PERCENTAGE"`
}

// CreateFeeRuleRequest binds a fee type to a supplier with an amount and an
// effective range. Percentage amounts must fall within 0-100.
type CreateFeeRuleRequest struct {
	FeeTypeCode         string                    `json:"fee_type_code" binding:"required"`
	SupplierAccountCode string                    `json:"supplier_account_code" binding:"required"`
	CalculationType     domain.FeeCalculationType `json:"calculation_type" binding:"required,oneof=FIXED PERCENTAGE"`
	Amount              decimal.Decimal           `json:"amount" binding:"required"`
	MinAmount           *decimal.Decimal          `json:"min_amount"`
	MaxAmount           *decimal.Decimal          `json:"max_amount"`
	EffectiveFrom       time.Time                 `json:"effective_from" binding:"required"`
	EffectiveTo         *time.Time                `json:"effective_to"`
}

// CreateDeductionRequest records an explicit charge against a supplier,
// optionally tied to one milk sale.
type CreateDeductionRequest struct {
	SupplierAccountCode string          `json:"supplier_account_code" binding:"required"`
	FeeTypeCode         *string         `json:"fee_type_code"`
	MilkSaleID          *string         `json:"milk_sale_id"`
	Amount              decimal.Decimal `json:"amount" binding:"required"`
	Reason              string          `json:"reason"`
	AppliedAt           *time.Time      `json:"applied_at"`
}

// FeeTypeResponse mirrors domain.FeeType.
type FeeTypeResponse struct {
	FeeTypeID       string                    `json:"feeTypeID"`
	Code            string                    `json:"code"`
	Name            string                    `json:"name"`
	Category        string                    `json:"category"`
	CalculationType domain.FeeCalculationType `json:"calculationType"`
}

// ToFeeTypeResponse converts a domain.FeeType to its DTO.
func ToFeeTypeResponse(ft *domain.FeeType) FeeTypeResponse {
	return FeeTypeResponse{
		FeeTypeID:       ft.FeeTypeID,
		Code:            ft.Code,
		Name:            ft.Name,
		Category:        ft.Category,
		CalculationType: ft.CalculationType,
	}
}

// FeeRuleResponse mirrors domain.SupplierFeeRule.
type FeeRuleResponse struct {
	RuleID            string                    `json:"ruleID"`
	FeeTypeID         string                    `json:"feeTypeID"`
	SupplierAccountID string                    `json:"supplierAccountID"`
	CalculationType   domain.FeeCalculationType `json:"calculationType"`
	Amount            decimal.Decimal           `json:"amount"`
	MinAmount         *decimal.Decimal          `json:"minAmount,omitempty"`
	MaxAmount         *decimal.Decimal          `json:"maxAmount,omitempty"`
	EffectiveFrom     time.Time                 `json:"effectiveFrom"`
	EffectiveTo       *time.Time                `json:"effectiveTo,omitempty"`
}

// ToFeeRuleResponse converts a domain.SupplierFeeRule to its DTO.
func ToFeeRuleResponse(r *domain.SupplierFeeRule) FeeRuleResponse {
	return FeeRuleResponse{
		RuleID:            r.RuleID,
		FeeTypeID:         r.FeeTypeID,
		SupplierAccountID: r.SupplierAccountID,
		CalculationType:   r.CalculationType,
		Amount:            r.Amount,
		MinAmount:         r.MinAmount,
		MaxAmount:         r.MaxAmount,
		EffectiveFrom:     r.EffectiveFrom,
		EffectiveTo:       r.EffectiveTo,
	}
}

// DeductionResponse mirrors domain.SupplierDeduction.
type DeductionResponse struct {
	DeductionID       string          `json:"deductionID"`
	SupplierAccountID string          `json:"supplierAccountID"`
	FeeTypeID         *string         `json:"feeTypeID,omitempty"`
	MilkSaleID        *string         `json:"milkSaleID,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Reason            string          `json:"reason,omitempty"`
	AppliedAt         time.Time       `json:"appliedAt"`
}

// ToDeductionResponse converts a domain.SupplierDeduction to its DTO.
func ToDeductionResponse(d *domain.SupplierDeduction) DeductionResponse {
	return DeductionResponse{
		DeductionID:       d.DeductionID,
		SupplierAccountID: d.SupplierAccountID,
		FeeTypeID:         d.FeeTypeID,
		MilkSaleID:        d.MilkSaleID,
		Amount:            d.Amount,
		Reason:            d.Reason,
		AppliedAt:         d.AppliedAt,
	}
}
