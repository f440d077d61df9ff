package models

// Role ids as defined by the users service.
const (
	RoleGuest = 1
	RoleAdmin = 2
)

// User is the profile returned by the users service on login.
type User struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Role         int    `json:"role"`
	DocumentType string `json:"document_type"`
	Document     string `json:"document"`
	BirthDate    string `json:"birth_date,omitempty"`
}

// LoginInput carries the credentials forwarded to the users service.
type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterInput is forwarded to the users service; validation is the
// remote's responsibility, the BFF only maps its failure codes to messages.
type RegisterInput struct {
	Email        string `json:"email" binding:"required"`
	Password     string `json:"password" binding:"required"`
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	DocumentType string `json:"document_type"`
	Document     string `json:"document"`
	BirthDate    string `json:"birth_date,omitempty"`
}

// LoginResult is the session material handed back after a successful login.
type LoginResult struct {
	User         User   `json:"user"`
	SessionToken string `json:"session_token"`
}
