package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gemura/gemura-backend/internal/apperrors"
	"github.com/gemura/gemura-backend/internal/core/domain"
	portsrepo "github.com/gemura/gemura-backend/internal/core/ports/repositories"
	"github.com/gemura/gemura-backend/internal/dto"
	"github.com/gemura/gemura-backend/internal/middleware"
)

// ErrNoDefaultAccount is returned by the account-resolution guard when the
// user has no default account set.
var ErrNoDefaultAccount = apperrors.NewValidation("No default account set")

// AccountService resolves a user's account context: listing memberships,
// switching the default account, and the resolve-or-fail guard every other
// service goes through.
type AccountService struct {
	userRepo    portsrepo.UserRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(userRepo portsrepo.UserRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) *AccountService {
	return &AccountService{userRepo: userRepo, accountRepo: accountRepo}
}

// GetUserAccounts returns the user's active memberships on active accounts,
// most recently granted first, each annotated with is_default.
func (s *AccountService) GetUserAccounts(ctx context.Context, userID string) ([]domain.UserAccountWithAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	memberships, err := s.accountRepo.ListUserAccounts(ctx, userID)
	if err != nil {
		logger.Error("Failed to list user accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list user accounts: %w", err)
	}

	for i := range memberships {
		memberships[i].IsDefault = user.DefaultAccountID != nil && memberships[i].AccountID == *user.DefaultAccountID
	}
	return memberships, nil
}

// SwitchAccount validates that the user holds an active membership on an
// active account, then writes the new default. A missing membership is an
// authorization error, not a not-found, so the caller learns nothing about
// accounts they cannot access.
func (s *AccountService) SwitchAccount(ctx context.Context, userID string, accountID string) (*dto.SwitchAccountResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	link, err := s.accountRepo.FindUserAccount(ctx, userID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Switch account denied: no membership", slog.String("account_id", accountID))
			return nil, apperrors.NewForbidden("Access denied")
		}
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if link.Status != domain.UserAccountActive {
		logger.Warn("Switch account denied: membership inactive", slog.String("account_id", accountID))
		return nil, apperrors.NewForbidden("Access denied")
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewForbidden("Access denied")
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if !account.IsActive() {
		return nil, apperrors.NewForbidden("Access denied")
	}

	if err := s.userRepo.UpdateDefaultAccount(ctx, userID, accountID, userID); err != nil {
		logger.Error("Failed to update default account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update default account: %w", err)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}

	logger.Info("Default account switched", slog.String("account_id", accountID))
	return &dto.SwitchAccountResponse{
		User:    dto.ToUserResponse(user),
		Account: dto.ToAccountResponse(account),
	}, nil
}

// ResolveDefaultAccount is the shared guard: it loads the user's default
// account or fails with the uniform "no default account" error. The account
// context is threaded explicitly through calls, never held as ambient state.
func (s *AccountService) ResolveDefaultAccount(ctx context.Context, userID string) (*domain.Account, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	if user.DefaultAccountID == nil || *user.DefaultAccountID == "" {
		return nil, ErrNoDefaultAccount
	}
	account, err := s.accountRepo.FindAccountByID(ctx, *user.DefaultAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find default account: %w", err)
	}
	if !account.IsActive() {
		return nil, ErrNoDefaultAccount
	}
	return account, nil
}

// Authorize checks that the user's role on the account grants the given
// permission code, failing closed.
func (s *AccountService) Authorize(ctx context.Context, userID, accountID, permission string) error {
	link, err := s.accountRepo.FindUserAccount(ctx, userID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewForbidden("Access denied")
		}
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if link.Status != domain.UserAccountActive {
		return apperrors.NewForbidden("Access denied")
	}
	var override domain.PermissionSet
	if link.Permissions != nil {
		override = *link.Permissions
	}
	if !domain.HasPermission(link.Role, override, permission) {
		return apperrors.NewForbidden("Access denied")
	}
	return nil
}
