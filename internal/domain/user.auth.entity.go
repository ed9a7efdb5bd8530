package domain

// UserAuth is a back-office staff account as needed for authentication.
type UserAuth struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
	Status       string
}
