package repositories

import (
	"context"

	"github.com/gemura/gemura-backend/internal/core/domain"
)

// UserRepositoryFacade defines persistence operations for users.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	// FindUserByIdentifier matches on phone or email.
	FindUserByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	// FindUserByContact matches on phone, email or national ID; any blank
	// argument is skipped. Used by supplier onboarding.
	FindUserByContact(ctx context.Context, phone, email, nationalID string) (*domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
	UpdateDefaultAccount(ctx context.Context, userID string, accountID string, updatedBy string) error
}
