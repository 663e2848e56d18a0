package adapters

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/technest/admin-dashboard/internal/application/adapter"
)

const (
	// minAdminPasswordLength is the minimum length of an admin password.
	minAdminPasswordLength = 10
)

var (
	errPasswordTooShort = errors.New("password must be at least 10 characters long")
	errPasswordTooWeak  = errors.New("password must contain a letter and a digit")
)

// bcryptPasswordService implements adapter.PasswordService with bcrypt.
type bcryptPasswordService struct {
	cost int
}

// NewPasswordService creates a bcrypt password service. A cost outside the
// range bcrypt accepts falls back to bcrypt.DefaultCost.
func NewPasswordService(cost int) adapter.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptPasswordService{cost: cost}
}

// HashPassword hashes an admin password.
func (s *bcryptPasswordService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword compares a password with its stored hash.
func (s *bcryptPasswordService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePasswordStrength rejects passwords too weak for an admin account.
func (s *bcryptPasswordService) ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < minAdminPasswordLength {
		return errPasswordTooShort
	}
	var letter, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !letter || !digit {
		return errPasswordTooWeak
	}
	return nil
}
