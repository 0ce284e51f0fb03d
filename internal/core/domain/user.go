package domain

// KYCStatus tracks the verification state of a user's identity documents.
type KYCStatus string

const (
	KYCPending   KYCStatus = "PENDING"
	KYCSubmitted KYCStatus = "SUBMITTED"
	KYCVerified  KYCStatus = "VERIFIED"
	KYCRejected  KYCStatus = "REJECTED"
)

// User is a person record. Phone or email (at least one) is the login
// identifier. DefaultAccountID is the account currently active for the user.
type User struct {
	UserID           string    `json:"userID"` // Primary key (UUID)
	Name             string    `json:"name"`
	Phone            string    `json:"phone,omitempty"`
	Email            string    `json:"email,omitempty"`
	PasswordHash     string    `json:"-"`
	NationalID       string    `json:"nationalID,omitempty"`
	DefaultAccountID *string   `json:"defaultAccountID,omitempty"`
	KYC              KYCFields `json:"kyc"`
	KYCStatus        KYCStatus `json:"kycStatus"`
	AuditFields
}

// KYCFields holds the identity details collected during verification.
type KYCFields struct {
	Province      string `json:"province,omitempty"`
	District      string `json:"district,omitempty"`
	Sector        string `json:"sector,omitempty"`
	Cell          string `json:"cell,omitempty"`
	Village       string `json:"village,omitempty"`
	IDFrontPhoto  string `json:"idFrontPhoto,omitempty"`
	IDBackPhoto   string `json:"idBackPhoto,omitempty"`
	SelfiePhoto   string `json:"selfiePhoto,omitempty"`
}

// KYCPhotoType identifies which document photo is being uploaded.
type KYCPhotoType string

const (
	KYCPhotoIDFront KYCPhotoType = "ID_FRONT"
	KYCPhotoIDBack  KYCPhotoType = "ID_BACK"
	KYCPhotoSelfie  KYCPhotoType = "SELFIE"
)

// ProfileCompletion returns the percentage of profile and KYC fields the user
// has filled in, used by the login response.
func (u User) ProfileCompletion() int {
	fields := []string{
		u.Name, u.Phone, u.Email, u.NationalID,
		u.KYC.Province, u.KYC.District, u.KYC.Sector,
		u.KYC.IDFrontPhoto, u.KYC.IDBackPhoto, u.KYC.SelfiePhoto,
	}
	filled := 0
	for _, f := range fields {
		if f != "" {
			filled++
		}
	}
	return filled * 100 / len(fields)
}
