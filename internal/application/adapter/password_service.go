package adapter

// PasswordService hashes and verifies admin passwords.
type PasswordService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hashedPassword, password string) error
	// ValidatePasswordStrength is enforced when an admin account is provisioned.
	ValidatePasswordStrength(password string) error
}
