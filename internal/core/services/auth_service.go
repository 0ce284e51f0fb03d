package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gemura/gemura-backend/internal/apperrors"
	"github.com/gemura/gemura-backend/internal/core/domain"
	portsrepo "github.com/gemura/gemura-backend/internal/core/ports/repositories"
	"github.com/gemura/gemura-backend/internal/dto"
	"github.com/gemura/gemura-backend/internal/middleware"
	"github.com/gemura/gemura-backend/internal/platform/config"
	"github.com/gemura/gemura-backend/internal/utils"
)

// invalidCredentialsMsg is identical for unknown identifiers and wrong
// passwords so login never signals whether an account exists.
const invalidCredentialsMsg = "Invalid credentials"

// AuthService handles registration and credential login.
type AuthService struct {
	userRepo    portsrepo.UserRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	cfg         *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, accountRepo: accountRepo, cfg: cfg}
}

// Register creates a new user with a hashed password. Phone numbers are
// normalized before storage.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	phone := utils.NormalizePhone(req.Phone)
	identifier := phone
	if identifier == "" {
		identifier = req.Email
	}
	existing, err := s.userRepo.FindUserByIdentifier(ctx, identifier)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewValidation("A user with this phone or email already exists")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewInternal("failed to hash password", err)
	}

	now := time.Now().UTC()
	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Name:         req.Name,
		Phone:        phone,
		Email:        req.Email,
		PasswordHash: hash,
		KYCStatus:    domain.KYCPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// Login verifies credentials and assembles the login payload: token, user,
// default account, account list and profile completion.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	identifier := req.Identifier
	if normalized := utils.NormalizePhone(identifier); len(normalized) >= 9 {
		identifier = normalized
	}

	user, err := s.userRepo.FindUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorized(invalidCredentialsMsg)
		}
		logger.Error("Failed to look up user for login", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorized(invalidCredentialsMsg)
	}

	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, apperrors.NewInternal("failed to issue token", err)
	}

	memberships, err := s.accountRepo.ListUserAccounts(ctx, user.UserID)
	if err != nil {
		logger.Error("Failed to list accounts for login", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list user accounts: %w", err)
	}
	for i := range memberships {
		memberships[i].IsDefault = user.DefaultAccountID != nil && memberships[i].AccountID == *user.DefaultAccountID
	}

	resp := &dto.LoginResponse{
		Token:             token,
		User:              dto.ToUserResponse(user),
		Accounts:          dto.ToUserAccountResponses(memberships),
		TotalAccounts:     len(memberships),
		ProfileCompletion: user.ProfileCompletion(),
	}
	if user.DefaultAccountID != nil {
		for i := range memberships {
			if memberships[i].AccountID == *user.DefaultAccountID {
				acc := dto.ToAccountResponse(&memberships[i].Account)
				resp.Account = &acc
				break
			}
		}
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	return resp, nil
}
