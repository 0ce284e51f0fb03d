package dto

import (
	"time"

	"github.com/gemura/gemura-backend/internal/core/domain"
)

// AccountResponse mirrors domain.Account for API output.
type AccountResponse struct {
	AccountID string               `json:"accountID"`
	Code      string               `json:"code"`
	Name      string               `json:"name"`
	Type      domain.AccountType   `json:"type"`
	Status    domain.AccountStatus `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to its DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: acc.AccountID,
		Code:      acc.Code,
		Name:      acc.Name,
		Type:      acc.Type,
		Status:    acc.Status,
		CreatedAt: acc.CreatedAt,
	}
}

// UserAccountResponse is one entry of the user's account list, annotated with
// role, effective permissions and whether it is the default.
type UserAccountResponse struct {
	Account     AccountResponse    `json:"account"`
	Role        domain.AccountRole `json:"role"`
	Permissions []string           `json:"permissions"`
	IsDefault   bool               `json:"isDefault"`
	GrantedAt   time.Time          `json:"grantedAt"`
}

// ToUserAccountResponse converts a joined membership row to its DTO.
func ToUserAccountResponse(ua domain.UserAccountWithAccount) UserAccountResponse {
	return UserAccountResponse{
		Account:     ToAccountResponse(&ua.Account),
		Role:        ua.Role,
		Permissions: domain.PermissionsForRole(ua.Role, derefPermissions(ua.Permissions)),
		IsDefault:   ua.IsDefault,
		GrantedAt:   ua.CreatedAt,
	}
}

func derefPermissions(p *domain.PermissionSet) domain.PermissionSet {
	if p == nil {
		return nil
	}
	return *p
}

// ToUserAccountResponses converts a slice of joined membership rows.
func ToUserAccountResponses(uas []domain.UserAccountWithAccount) []UserAccountResponse {
	res := make([]UserAccountResponse, len(uas))
	for i, ua := range uas {
		res[i] = ToUserAccountResponse(ua)
	}
	return res
}

// SwitchAccountRequest selects the user's new default account.
type SwitchAccountRequest struct {
	AccountID string `json:"account_id" binding:"required"`
}

// SwitchAccountResponse returns the updated user plus the target account
// summary.
type SwitchAccountResponse struct {
	User    UserResponse    `json:"user"`
	Account AccountResponse `json:"account"`
}
