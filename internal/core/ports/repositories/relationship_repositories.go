package repositories

import (
	"context"

	"github.com/gemura/gemura-backend/internal/core/domain"
)

// RelationshipRepositoryFacade defines persistence for supplier-customer
// relationships.
type RelationshipRepositoryFacade interface {
	SaveRelationship(ctx context.Context, rel domain.SupplierCustomer) error
	// FindRelationship looks up the single row for the (supplier, customer)
	// pair regardless of status.
	FindRelationship(ctx context.Context, supplierAccountID, customerAccountID string) (*domain.SupplierCustomer, error)
	FindRelationshipByID(ctx context.Context, relationshipID string) (*domain.SupplierCustomer, error)
	UpdateRelationship(ctx context.Context, rel domain.SupplierCustomer) error
	ListSuppliersForCustomer(ctx context.Context, customerAccountID string) ([]domain.SupplierCustomer, error)
	ListCustomersForSupplier(ctx context.Context, supplierAccountID string) ([]domain.SupplierCustomer, error)
}

// SupplierOnboardingRepository provisions a new supplier person atomically:
// User + Account + UserAccount(role=supplier) + default Wallet, all within a
// single database transaction. Any failure rolls the whole unit back.
type SupplierOnboardingRepository interface {
	OnboardSupplier(ctx context.Context, user domain.User, account domain.Account, link domain.UserAccount, wallet domain.Wallet) error
}
