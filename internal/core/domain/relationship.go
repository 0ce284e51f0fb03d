package domain

import "github.com/shopspring/decimal"

// RelationshipStatus is the state of a supplier-customer relationship.
type RelationshipStatus string

const (
	RelationshipActive   RelationshipStatus = "ACTIVE"
	RelationshipInactive RelationshipStatus = "INACTIVE"
)

// SupplierCustomer links a supplier account to a customer account with the
// agreed milk price. At most one row exists per (supplier, customer) pair;
// PricePerLiter is mutable and used as the default unit price for new
// collections and sales between the pair.
type SupplierCustomer struct {
	RelationshipID    string             `json:"relationshipID"`
	SupplierAccountID string             `json:"supplierAccountID"`
	CustomerAccountID string             `json:"customerAccountID"`
	PricePerLiter     decimal.Decimal    `json:"pricePerLiter"`
	Status            RelationshipStatus `json:"status"`
	AuditFields
}
