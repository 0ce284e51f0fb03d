package repositories

import (
	"context"

	"github.com/gemura/gemura-backend/internal/core/domain"
)

// AccountRepositoryFacade defines persistence operations for business
// accounts and user-account memberships.
type AccountRepositoryFacade interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) error

	SaveUserAccount(ctx context.Context, link domain.UserAccount) error
	// FindUserAccount returns the active membership for the (user, account)
	// pair, or apperrors.ErrNotFound.
	FindUserAccount(ctx context.Context, userID, accountID string) (*domain.UserAccount, error)
	// ListUserAccounts returns the user's active memberships joined with
	// their active accounts, most recently granted first.
	ListUserAccounts(ctx context.Context, userID string) ([]domain.UserAccountWithAccount, error)
}
