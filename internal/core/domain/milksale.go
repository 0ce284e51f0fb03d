package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus is the state of a milk movement record.
// Transitions: PENDING -> ACCEPTED/REJECTED; PENDING/ACCEPTED/REJECTED ->
// CANCELLED. DELETED is a soft-delete state excluded from all lists and
// aggregates.
type SaleStatus string

const (
	SalePending   SaleStatus = "PENDING"
	SaleAccepted  SaleStatus = "ACCEPTED"
	SaleRejected  SaleStatus = "REJECTED"
	SaleCancelled SaleStatus = "CANCELLED"
	SaleDeleted   SaleStatus = "DELETED"
)

// MilkSale records one milk movement between a supplier and a customer
// account. TotalAmount is derived as quantity * unit price at creation time
// and never recomputed afterwards.
type MilkSale struct {
	SaleID            string          `json:"saleID"`
	SupplierAccountID string          `json:"supplierAccountID"`
	CustomerAccountID string          `json:"customerAccountID"`
	Quantity          decimal.Decimal `json:"quantity"` // Liters
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	Status            SaleStatus      `json:"status"`
	SaleAt            time.Time       `json:"saleAt"` // Business timestamp, distinct from CreatedAt
	Notes             string          `json:"notes,omitempty"`
	RecordedBy        string          `json:"recordedBy"`
	AuditFields
}

// CanTransitionTo reports whether the sale may move to the target status.
func (s MilkSale) CanTransitionTo(target SaleStatus) bool {
	switch target {
	case SaleAccepted, SaleRejected:
		return s.Status == SalePending
	case SaleCancelled:
		return s.Status == SalePending || s.Status == SaleAccepted || s.Status == SaleRejected
	case SaleDeleted:
		return s.Status != SaleDeleted
	default:
		return false
	}
}

// SaleFilter holds the optional, AND-combined list filters.
type SaleFilter struct {
	CounterpartCode string
	Status          *SaleStatus
	DateFrom        *time.Time
	DateTo          *time.Time // Normalized by the service to end of day
	QuantityMin     *decimal.Decimal
	QuantityMax     *decimal.Decimal
	PriceMin        *decimal.Decimal
	PriceMax        *decimal.Decimal
	Limit           int
	Offset          int
}
