package dto

// LoginRequest carries the login identifier (phone or email) and password.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// RegisterRequest creates a new user with either phone or email as the login
// identifier.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required_without=Email"`
	Email    string `json:"email" binding:"required_without=Phone,omitempty,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginResponse is the payload returned after a successful login.
type LoginResponse struct {
	Token             string                `json:"token"`
	User              UserResponse          `json:"user"`
	Account           *AccountResponse      `json:"account,omitempty"` // Default account, when set
	Accounts          []UserAccountResponse `json:"accounts"`
	TotalAccounts     int                   `json:"total_accounts"`
	ProfileCompletion int                   `json:"profile_completion"`
}
