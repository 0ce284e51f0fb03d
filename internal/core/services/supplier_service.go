package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gemura/gemura-backend/internal/apperrors"
	"github.com/gemura/gemura-backend/internal/core/domain"
	portsrepo "github.com/gemura/gemura-backend/internal/core/ports/repositories"
	"github.com/gemura/gemura-backend/internal/dto"
	"github.com/gemura/gemura-backend/internal/middleware"
	"github.com/gemura/gemura-backend/internal/utils"
)

// SupplierService maintains priced supplier-customer relationships, including
// the find-or-create onboarding of new supplier persons.
type SupplierService struct {
	userRepo    portsrepo.UserRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	relRepo     portsrepo.RelationshipRepositoryFacade
	onboarding  portsrepo.SupplierOnboardingRepository
}

// NewSupplierService creates a new SupplierService.
func NewSupplierService(
	userRepo portsrepo.UserRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	relRepo portsrepo.RelationshipRepositoryFacade,
	onboarding portsrepo.SupplierOnboardingRepository,
) *SupplierService {
	return &SupplierService{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		relRepo:     relRepo,
		onboarding:  onboarding,
	}
}

// CreateOrUpdateSupplier links a supplier to the customer account. The person
// is matched by phone, email or national ID; when found with an active
// account that account is reused, otherwise a new User + Account +
// UserAccount(role=supplier) + default Wallet is provisioned as one atomic
// unit. Finally the SupplierCustomer relationship is upserted.
func (s *SupplierService) CreateOrUpdateSupplier(ctx context.Context, customerAccount *domain.Account, req dto.CreateSupplierRequest, creatorUserID string) (*dto.SupplierResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	phone := utils.NormalizePhone(req.Phone)
	if phone == "" {
		return nil, apperrors.NewValidation("Phone number is required")
	}
	if req.PricePerLiter.IsNegative() {
		return nil, apperrors.NewValidation("Price per liter cannot be negative")
	}

	supplierAccount, created, err := s.resolveSupplierAccount(ctx, req, phone, creatorUserID)
	if err != nil {
		return nil, err
	}

	rel, err := s.upsertRelationship(ctx, supplierAccount.AccountID, customerAccount.AccountID, req.PricePerLiter, creatorUserID)
	if err != nil {
		return nil, err
	}

	logger.Info("Supplier linked to customer",
		slog.String("supplier_account_id", supplierAccount.AccountID),
		slog.String("customer_account_id", customerAccount.AccountID),
		slog.Bool("provisioned", created),
	)
	return &dto.SupplierResponse{
		Supplier:     dto.ToAccountResponse(supplierAccount),
		Relationship: dto.ToRelationshipResponse(rel),
		Created:      created,
	}, nil
}

// resolveSupplierAccount finds an existing supplier account for the person or
// provisions a new one atomically.
func (s *SupplierService) resolveSupplierAccount(ctx context.Context, req dto.CreateSupplierRequest, phone string, creatorUserID string) (*domain.Account, bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	person, err := s.userRepo.FindUserByContact(ctx, phone, req.Email, req.NationalID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up person: %w", err)
	}

	if person != nil {
		// Reuse the person's existing active supplier account when one exists.
		memberships, err := s.accountRepo.ListUserAccounts(ctx, person.UserID)
		if err != nil {
			return nil, false, fmt.Errorf("failed to list person accounts: %w", err)
		}
		for i := range memberships {
			if memberships[i].Account.IsActive() {
				return &memberships[i].Account, false, nil
			}
		}
		// Known person without a usable account falls through to provisioning
		// a fresh one below.
		logger.Info("Known person without active account, provisioning new supplier account", slog.String("person_id", person.UserID))
	}

	now := time.Now().UTC()
	userID := uuid.NewString()
	if person != nil {
		userID = person.UserID
	}
	accountID := uuid.NewString()

	accountCode, err := generateAccountCode()
	if err != nil {
		return nil, false, apperrors.NewInternal("failed to generate account code", err)
	}
	walletCode, err := generateWalletCode()
	if err != nil {
		return nil, false, apperrors.NewInternal("failed to generate wallet code", err)
	}

	user := domain.User{
		UserID:           userID,
		Name:             req.Name,
		Phone:            phone,
		Email:            req.Email,
		NationalID:       req.NationalID,
		DefaultAccountID: &accountID,
		KYCStatus:        domain.KYCPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	account := domain.Account{
		AccountID: accountID,
		Code:      accountCode,
		Name:      req.Name,
		Type:      domain.AccountTypeTenant,
		Status:    domain.AccountActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	link := domain.UserAccount{
		UserAccountID: uuid.NewString(),
		UserID:        userID,
		AccountID:     accountID,
		Role:          domain.RoleSupplier,
		Status:        domain.UserAccountActive,
		CreatedAt:     now,
	}
	wallet := domain.Wallet{
		WalletID:  uuid.NewString(),
		AccountID: accountID,
		Code:      walletCode,
		Type:      domain.WalletTypeCurrent,
		IsDefault: true,
		Balance:   decimal.Zero,
		Currency:  defaultCurrency,
		Status:    domain.WalletActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// One transaction: no partial supplier survives a failure.
	if err := s.onboarding.OnboardSupplier(ctx, user, account, link, wallet); err != nil {
		logger.Error("Supplier onboarding failed", slog.String("error", err.Error()))
		return nil, false, fmt.Errorf("failed to onboard supplier: %w", err)
	}
	return &account, true, nil
}

// upsertRelationship updates the (supplier, customer) relationship row when
// one exists, else creates it.
func (s *SupplierService) upsertRelationship(ctx context.Context, supplierAccountID, customerAccountID string, price decimal.Decimal, actorUserID string) (*domain.SupplierCustomer, error) {
	now := time.Now().UTC()

	existing, err := s.relRepo.FindRelationship(ctx, supplierAccountID, customerAccountID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up relationship: %w", err)
	}

	if existing != nil {
		existing.PricePerLiter = price
		existing.Status = domain.RelationshipActive
		existing.LastUpdatedAt = now
		existing.LastUpdatedBy = actorUserID
		if err := s.relRepo.UpdateRelationship(ctx, *existing); err != nil {
			return nil, fmt.Errorf("failed to update relationship: %w", err)
		}
		return existing, nil
	}

	rel := domain.SupplierCustomer{
		RelationshipID:    uuid.NewString(),
		SupplierAccountID: supplierAccountID,
		CustomerAccountID: customerAccountID,
		PricePerLiter:     price,
		Status:            domain.RelationshipActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	if err := s.relRepo.SaveRelationship(ctx, rel); err != nil {
		return nil, fmt.Errorf("failed to save relationship: %w", err)
	}
	return &rel, nil
}

// ListSuppliers returns the customer's supplier relationships.
func (s *SupplierService) ListSuppliers(ctx context.Context, customerAccountID string) ([]domain.SupplierCustomer, error) {
	rels, err := s.relRepo.ListSuppliersForCustomer(ctx, customerAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	return rels, nil
}

// ListCustomers returns the supplier's customer relationships.
func (s *SupplierService) ListCustomers(ctx context.Context, supplierAccountID string) ([]domain.SupplierCustomer, error) {
	rels, err := s.relRepo.ListCustomersForSupplier(ctx, supplierAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return rels, nil
}

// UpdateRelationship mutates price or status of a relationship the caller
// owns one side of.
func (s *SupplierService) UpdateRelationship(ctx context.Context, callerAccountID, relationshipID string, req dto.UpdateRelationshipRequest, actorUserID string) (*domain.SupplierCustomer, error) {
	rel, err := s.relRepo.FindRelationshipByID(ctx, relationshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to find relationship: %w", err)
	}
	if rel.CustomerAccountID != callerAccountID && rel.SupplierAccountID != callerAccountID {
		return nil, apperrors.NewForbidden("Access denied")
	}

	updated := false
	if req.PricePerLiter != nil {
		if req.PricePerLiter.IsNegative() {
			return nil, apperrors.NewValidation("Price per liter cannot be negative")
		}
		rel.PricePerLiter = *req.PricePerLiter
		updated = true
	}
	if req.Status != nil {
		rel.Status = *req.Status
		updated = true
	}
	if !updated {
		return nil, apperrors.NewValidation("No fields provided for update")
	}

	rel.LastUpdatedAt = time.Now().UTC()
	rel.LastUpdatedBy = actorUserID
	if err := s.relRepo.UpdateRelationship(ctx, *rel); err != nil {
		return nil, fmt.Errorf("failed to update relationship: %w", err)
	}
	return rel, nil
}

// ResolveUnitPrice returns the relationship's current price for the pair, or
// zero when no active relationship exists. Zero-priced recording is allowed;
// callers decide whether that is acceptable.
func (s *SupplierService) ResolveUnitPrice(ctx context.Context, supplierAccountID, customerAccountID string) (decimal.Decimal, error) {
	rel, err := s.relRepo.FindRelationship(ctx, supplierAccountID, customerAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to look up relationship: %w", err)
	}
	if rel.Status != domain.RelationshipActive {
		return decimal.Zero, nil
	}
	return rel.PricePerLiter, nil
}

const defaultCurrency = "RWF"

// generateAccountCode produces a short public account code.
func generateAccountCode() (string, error) {
	suffix, err := utils.GenerateSecureRandomString(4)
	if err != nil {
		return "", err
	}
	return "GA-" + strings.ToUpper(suffix), nil
}

// generateWalletCode produces a candidate wallet code; uniqueness is checked
// by the caller against existing codes.
func generateWalletCode() (string, error) {
	suffix, err := utils.GenerateSecureRandomString(4)
	if err != nil {
		return "", err
	}
	return "GW-" + strings.ToUpper(suffix), nil
}
