package domain

import "time"

// AdminSignupRequest is the caller-supplied body for admin provisioning.
// Address is optional.
type AdminSignupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	Address     string `json:"address"`
}

func (r AdminSignupRequest) Validate() error {
	if r.Email == "" || r.Password == "" || r.DisplayName == "" {
		return &ValidationError{Message: "Email, password and display name are required"}
	}
	return nil
}

// IdentityAccount is the identity-provider-assigned account. The admin custom
// claim is attached as a separate mutation after creation.
type IdentityAccount struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// AdminProfileRecord is the denormalized profile written to the record store
// at admins/{uid}.
type AdminProfileRecord struct {
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Address     string    `json:"address,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
