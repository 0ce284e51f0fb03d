package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeCalculationType determines how a fee rule computes its charge.
type FeeCalculationType string

const (
	FeeFixed      FeeCalculationType = "FIXED"
	FeePercentage FeeCalculationType = "PERCENTAGE"
)

// FeeType is a catalog entry describing a category of fee.
type FeeType struct {
	FeeTypeID       string             `json:"feeTypeID"`
	Code            string             `json:"code"` // Unique
	Name            string             `json:"name"`
	Category        string             `json:"category"`
	CalculationType FeeCalculationType `json:"calculationType"`
	AuditFields
}

// SupplierFeeRule binds a FeeType to a supplier account with a fixed or
// percentage amount, optional min/max bounds, and an effective date range.
type SupplierFeeRule struct {
	RuleID            string             `json:"ruleID"`
	FeeTypeID         string             `json:"feeTypeID"`
	SupplierAccountID string             `json:"supplierAccountID"`
	CalculationType   FeeCalculationType `json:"calculationType"`
	Amount            decimal.Decimal    `json:"amount"` // Fixed amount or percentage 0-100
	MinAmount         *decimal.Decimal   `json:"minAmount,omitempty"`
	MaxAmount         *decimal.Decimal   `json:"maxAmount,omitempty"`
	EffectiveFrom     time.Time          `json:"effectiveFrom"`
	EffectiveTo       *time.Time         `json:"effectiveTo,omitempty"` // Nil means open-ended
	AuditFields
}

// ActiveAt reports whether the rule's effective range covers the given time.
func (r SupplierFeeRule) ActiveAt(t time.Time) bool {
	if t.Before(r.EffectiveFrom) {
		return false
	}
	if r.EffectiveTo != nil && t.After(*r.EffectiveTo) {
		return false
	}
	return true
}

// Evaluate computes the charge the rule yields against a gross amount.
// Fixed rules return the configured amount; percentage rules return
// gross*amount/100 clamped to the min/max bounds when present.
func (r SupplierFeeRule) Evaluate(gross decimal.Decimal) decimal.Decimal {
	var charge decimal.Decimal
	switch r.CalculationType {
	case FeePercentage:
		charge = gross.Mul(r.Amount).Div(decimal.NewFromInt(100))
	default:
		charge = r.Amount
	}
	if r.MinAmount != nil && charge.LessThan(*r.MinAmount) {
		charge = *r.MinAmount
	}
	if r.MaxAmount != nil && charge.GreaterThan(*r.MaxAmount) {
		charge = *r.MaxAmount
	}
	return charge
}

// SupplierDeduction is a realized charge against a supplier, optionally tied
// to one milk sale.
type SupplierDeduction struct {
	DeductionID       string          `json:"deductionID"`
	SupplierAccountID string          `json:"supplierAccountID"`
	FeeTypeID         *string         `json:"feeTypeID,omitempty"`
	MilkSaleID        *string         `json:"milkSaleID,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Reason            string          `json:"reason,omitempty"`
	AppliedAt         time.Time       `json:"appliedAt"`
	AuditFields
}
