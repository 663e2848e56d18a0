package adapters

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordService_HashAndVerify(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	hash, err := svc.HashPassword("Sup3rSecret!")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "Sup3rSecret!" {
		t.Fatal("expected the password to be hashed")
	}
	if err := svc.VerifyPassword(hash, "Sup3rSecret!"); err != nil {
		t.Errorf("expected the password to verify, got %v", err)
	}
	if err := svc.VerifyPassword(hash, "sup3rsecret!"); err == nil {
		t.Error("expected a different password to be rejected")
	}
}

func TestPasswordService_InvalidCostFallsBack(t *testing.T) {
	svc := NewPasswordService(99).(*bcryptPasswordService)
	if svc.cost != bcrypt.DefaultCost {
		t.Errorf("expected cost %d, got %d", bcrypt.DefaultCost, svc.cost)
	}
}

func TestPasswordService_ValidatePasswordStrength(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "strong", password: "Sup3rSecret!", wantErr: nil},
		{name: "too short", password: "abc123", wantErr: errPasswordTooShort},
		{name: "letters only", password: "onlylettershere", wantErr: errPasswordTooWeak},
		{name: "digits only", password: "12345678901", wantErr: errPasswordTooWeak},
		{name: "counts runes not bytes", password: "ñandú12345", wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.ValidatePasswordStrength(tt.password); err != tt.wantErr {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
