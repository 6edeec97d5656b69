package models

// Registration is an agent/supplier signup pending email verification
// and admin activation.
type Registration struct {
	ID            int64  `json:"id"`
	Role          string `json:"role"`
	CompanyName   string `json:"company_name"`
	ContactName   string `json:"contact_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	City          string `json:"city"`
	Country       string `json:"country"`
	LicenceFile   string `json:"licence_file,omitempty"`
	EmailVerified bool   `json:"email_verified"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

// OTPRecord is a one-time passcode issued for an email address.
// Only the bcrypt hash of the code is stored.
type OTPRecord struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	CodeHash  string `json:"-"`
	ExpiresAt string `json:"expires_at"`
	Used      bool   `json:"used"`
	Attempts  int    `json:"attempts"`
	CreatedAt string `json:"created_at"`
}
