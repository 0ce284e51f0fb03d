package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gemura/gemura-backend/internal/apperrors"
	"github.com/gemura/gemura-backend/internal/core/domain"
	portsrepo "github.com/gemura/gemura-backend/internal/core/ports/repositories"
	"github.com/gemura/gemura-backend/internal/dto"
	"github.com/gemura/gemura-backend/internal/middleware"
)

// UserService handles profile reads/updates and KYC document uploads.
type UserService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetProfile returns the user's profile.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	return user, nil
}

// UpdateProfile applies the provided fields; rejects requests that touch
// nothing.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	updated := false
	if req.Name != nil {
		user.Name = *req.Name
		updated = true
	}
	if req.Email != nil {
		user.Email = *req.Email
		updated = true
	}
	if req.NationalID != nil {
		user.NationalID = *req.NationalID
		updated = true
	}
	if req.Province != nil {
		user.KYC.Province = *req.Province
		updated = true
	}
	if req.District != nil {
		user.KYC.District = *req.District
		updated = true
	}
	if req.Sector != nil {
		user.KYC.Sector = *req.Sector
		updated = true
	}
	if req.Cell != nil {
		user.KYC.Cell = *req.Cell
		updated = true
	}
	if req.Village != nil {
		user.KYC.Village = *req.Village
		updated = true
	}

	if !updated {
		return nil, apperrors.NewValidation("No fields provided for update")
	}

	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = userID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to update profile", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// UploadKYCPhoto attaches one document photo; once all three photos are
// present the KYC status moves from PENDING to SUBMITTED. Verified or
// rejected statuses are left for the review flow and never regress here.
func (s *UserService) UploadKYCPhoto(ctx context.Context, userID string, req dto.UploadKYCPhotoRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	switch req.PhotoType {
	case domain.KYCPhotoIDFront:
		user.KYC.IDFrontPhoto = req.PhotoURL
	case domain.KYCPhotoIDBack:
		user.KYC.IDBackPhoto = req.PhotoURL
	case domain.KYCPhotoSelfie:
		user.KYC.SelfiePhoto = req.PhotoURL
	default:
		return nil, apperrors.NewValidation("Unknown photo type")
	}

	if user.KYCStatus == domain.KYCPending &&
		user.KYC.IDFrontPhoto != "" && user.KYC.IDBackPhoto != "" && user.KYC.SelfiePhoto != "" {
		user.KYCStatus = domain.KYCSubmitted
	}

	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = userID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to save KYC photo", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save KYC photo: %w", err)
	}

	logger.Info("KYC photo uploaded", slog.String("photo_type", string(req.PhotoType)))
	return user, nil
}
