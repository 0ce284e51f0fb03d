package dto

import (
	"github.com/gemura/gemura-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSupplierRequest onboards (or relinks) a supplier for the calling
// customer account.
type CreateSupplierRequest struct {
	Name          string          `json:"name" binding:"required"`
	Phone         string          `json:"phone" binding:"required"`
	PricePerLiter decimal.Decimal `json:"price_per_liter" binding:"required"`
	Email         string          `json:"email" binding:"omitempty,email"`
	NationalID    string          `json:"nid"`
	Address       string          `json:"address"`
}

// UpdateRelationshipRequest mutates the price or status of an existing
// supplier-customer relationship.
type UpdateRelationshipRequest struct {
	PricePerLiter *decimal.Decimal           `json:"price_per_liter"`
	Status        *domain.RelationshipStatus `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

// SupplierResponse pairs the supplier account with the relationship row.
type SupplierResponse struct {
	Supplier     AccountResponse      `json:"supplier"`
	Relationship RelationshipResponse `json:"relationship"`
	Created      bool                 `json:"created"` // True when a new supplier was provisioned
}

// RelationshipResponse mirrors domain.SupplierCustomer.
type RelationshipResponse struct {
	RelationshipID    string                    `json:"relationshipID"`
	SupplierAccountID string                    `json:"supplierAccountID"`
	CustomerAccountID string                    `json:"customerAccountID"`
	PricePerLiter     decimal.Decimal           `json:"pricePerLiter"`
	Status            domain.RelationshipStatus `json:"status"`
}

// ToRelationshipResponse converts a domain.SupplierCustomer to its DTO.
func ToRelationshipResponse(rel *domain.SupplierCustomer) RelationshipResponse {
	return RelationshipResponse{
		RelationshipID:    rel.RelationshipID,
		SupplierAccountID: rel.SupplierAccountID,
		CustomerAccountID: rel.CustomerAccountID,
		PricePerLiter:     rel.PricePerLiter,
		Status:            rel.Status,
	}
}
