package dto

import (
	"time"

	"github.com/gemura/gemura-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest records one milk movement. The counterpart is addressed
// by its public account code. UnitPrice is optional; when absent the
// relationship's price_per_liter applies (zero when no relationship exists).
type CreateSaleRequest struct {
	CounterpartAccountCode string           `json:"counterpart_account_code" binding:"required"`
	Quantity               decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice              *decimal.Decimal `json:"unit_price"`
	Status                 *domain.SaleStatus `json:"status" binding:"omitempty,oneof=PENDING ACCEPTED"`
	SaleAt                 *time.Time       `json:"sale_at"`
	Notes                  string           `json:"notes"`
}

// UpdateSaleRequest mutates a sale; at least one field must be provided.
type UpdateSaleRequest struct {
	CounterpartAccountCode *string          `json:"counterpart_account_code"`
	Quantity               *decimal.Decimal `json:"quantity"`
	UnitPrice              *decimal.Decimal `json:"unit_price"`
	SaleAt                 *time.Time       `json:"sale_at"`
	Notes                  *string          `json:"notes"`
}

// ListSalesParams are the optional, AND-combined list filters.
type ListSalesParams struct {
	CounterpartCode string  `form:"counterpart_code"`
	Status          string  `form:"status"`
	DateFrom        string  `form:"date_from"` // YYYY-MM-DD
	DateTo          string  `form:"date_to"`   // YYYY-MM-DD, inclusive of the whole day
	QuantityMin     *string `form:"quantity_min"`
	QuantityMax     *string `form:"quantity_max"`
	PriceMin        *string `form:"price_min"`
	PriceMax        *string `form:"price_max"`
	Limit           int     `form:"limit,default=20"`
	Offset          int     `form:"offset,default=0"`
}

// SaleResponse mirrors domain.MilkSale.
type SaleResponse struct {
	SaleID            string            `json:"saleID"`
	SupplierAccountID string            `json:"supplierAccountID"`
	CustomerAccountID string            `json:"customerAccountID"`
	Quantity          decimal.Decimal   `json:"quantity"`
	UnitPrice         decimal.Decimal   `json:"unitPrice"`
	TotalAmount       decimal.Decimal   `json:"totalAmount"`
	Status            domain.SaleStatus `json:"status"`
	SaleAt            time.Time         `json:"saleAt"`
	Notes             string            `json:"notes,omitempty"`
	RecordedBy        string            `json:"recordedBy"`
	CreatedAt         time.Time         `json:"createdAt"`
}

// ToSaleResponse converts a domain.MilkSale to its DTO.
func ToSaleResponse(s *domain.MilkSale) SaleResponse {
	return SaleResponse{
		SaleID:            s.SaleID,
		SupplierAccountID: s.SupplierAccountID,
		CustomerAccountID: s.CustomerAccountID,
		Quantity:          s.Quantity,
		UnitPrice:         s.UnitPrice,
		TotalAmount:       s.TotalAmount,
		Status:            s.Status,
		SaleAt:            s.SaleAt,
		Notes:             s.Notes,
		RecordedBy:        s.RecordedBy,
		CreatedAt:         s.CreatedAt,
	}
}

// ToSaleResponses converts a slice of sales.
func ToSaleResponses(sales []domain.MilkSale) []SaleResponse {
	res := make([]SaleResponse, len(sales))
	for i := range sales {
		res[i] = ToSaleResponse(&sales[i])
	}
	return res
}
