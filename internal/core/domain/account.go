package domain

import "time"

// AccountType classifies a business account in the platform.
type AccountType string

const (
	AccountTypeTenant AccountType = "TENANT"
	AccountTypeBranch AccountType = "BRANCH"
	AccountTypeAdmin  AccountType = "ADMIN"
)

// AccountStatus is the lifecycle state of an account. Accounts are never
// hard-deleted, only deactivated.
type AccountStatus string

const (
	AccountActive   AccountStatus = "ACTIVE"
	AccountInactive AccountStatus = "INACTIVE"
)

// Account is a tenant-scoped business entity. Suppliers and customers are
// both accounts; the public Code is how counterparts reference each other.
type Account struct {
	AccountID string        `json:"accountID"` // Primary key (UUID)
	Code      string        `json:"code"`      // Unique public code
	Name      string        `json:"name"`
	Type      AccountType   `json:"type"`
	Status    AccountStatus `json:"status"`
	AuditFields
}

// IsActive reports whether the account is usable for new operations.
func (a Account) IsActive() bool {
	return a.Status == AccountActive
}

// AccountRole is the role a user holds on a specific account.
type AccountRole string

const (
	RoleOwner     AccountRole = "OWNER"
	RoleAdmin     AccountRole = "ADMIN"
	RoleManager   AccountRole = "MANAGER"
	RoleCollector AccountRole = "COLLECTOR"
	RoleViewer    AccountRole = "VIEWER"
	RoleAgent     AccountRole = "AGENT"
	RoleSupplier  AccountRole = "SUPPLIER"
	RoleCustomer  AccountRole = "CUSTOMER"
)

// UserAccountStatus is the state of a user's membership on an account.
type UserAccountStatus string

const (
	UserAccountActive   UserAccountStatus = "ACTIVE"
	UserAccountInactive UserAccountStatus = "INACTIVE"
)

// UserAccount links a User to an Account with a role and an optional
// per-assignment permission override. At most one active row exists per
// (user, account) pair.
type UserAccount struct {
	UserAccountID string            `json:"userAccountID"`
	UserID        string            `json:"userID"`
	AccountID     string            `json:"accountID"`
	Role          AccountRole       `json:"role"`
	Permissions   *PermissionSet    `json:"permissions,omitempty"` // Nil means no override
	Status        UserAccountStatus `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// UserAccountWithAccount is a UserAccount joined with its Account, annotated
// with whether it is the user's current default.
type UserAccountWithAccount struct {
	UserAccount
	Account   Account `json:"account"`
	IsDefault bool    `json:"isDefault"`
}
