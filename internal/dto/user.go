package dto

import (
	"time"

	"github.com/gemura/gemura-backend/internal/core/domain"
)

// UserResponse mirrors domain.User for API output. The password hash never
// leaves the service layer.
type UserResponse struct {
	UserID           string           `json:"userID"`
	Name             string           `json:"name"`
	Phone            string           `json:"phone,omitempty"`
	Email            string           `json:"email,omitempty"`
	NationalID       string           `json:"nationalID,omitempty"`
	DefaultAccountID *string          `json:"defaultAccountID,omitempty"`
	KYC              domain.KYCFields `json:"kyc"`
	KYCStatus        domain.KYCStatus `json:"kycStatus"`
	CreatedAt        time.Time        `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:           u.UserID,
		Name:             u.Name,
		Phone:            u.Phone,
		Email:            u.Email,
		NationalID:       u.NationalID,
		DefaultAccountID: u.DefaultAccountID,
		KYC:              u.KYC,
		KYCStatus:        u.KYCStatus,
		CreatedAt:        u.CreatedAt,
	}
}

// UpdateProfileRequest carries optional profile fields; pointers distinguish
// "not provided" from zero values.
type UpdateProfileRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email" binding:"omitempty,email"`
	NationalID *string `json:"nationalID"`
	Province   *string `json:"province"`
	District   *string `json:"district"`
	Sector     *string `json:"sector"`
	Cell       *string `json:"cell"`
	Village    *string `json:"village"`
}

// UploadKYCPhotoRequest attaches one document photo URL to the user's KYC
// record.
type UploadKYCPhotoRequest struct {
	PhotoType domain.KYCPhotoType `json:"photo_type" binding:"required,oneof=ID_FRONT ID_BACK SELFIE"`
	PhotoURL  string              `json:"photo_url" binding:"required,url"`
}
