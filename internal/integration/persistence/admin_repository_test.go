package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/technest/admin-dashboard/internal/domain/entity"
	domainerror "github.com/technest/admin-dashboard/internal/domain/error"
	"github.com/technest/admin-dashboard/internal/testsupport/mock"
)

func TestAdminRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAdminRepository(NewDocumentRepository(mock.NewDb(t)))

	admin := &entity.Admin{
		ID:            "a1",
		Email:         "  Ops@Example.com ",
		Name:          "Operations",
		PasswordHash:  "$2a$04$hash",
		EmailVerified: true,
	}
	if err := repo.Save(ctx, admin); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	t.Run("find by email ignores case", func(t *testing.T) {
		got, err := repo.FindByEmail(ctx, "OPS@example.COM")
		if err != nil {
			t.Fatalf("FindByEmail returned error: %v", err)
		}
		if got.ID != "a1" || got.Email != "ops@example.com" || !got.EmailVerified || got.PasswordHash != admin.PasswordHash {
			t.Errorf("unexpected admin: %+v", got)
		}
	})

	t.Run("find by id", func(t *testing.T) {
		got, err := repo.FindByID(ctx, "a1")
		if err != nil {
			t.Fatalf("FindByID returned error: %v", err)
		}
		if got.Name != "Operations" {
			t.Errorf("expected name Operations, got %q", got.Name)
		}
	})

	t.Run("unknown admin", func(t *testing.T) {
		if _, err := repo.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, domainerror.ErrAdminNotFound) {
			t.Errorf("expected ErrAdminNotFound by email, got %v", err)
		}
		if _, err := repo.FindByEmail(ctx, "  "); !errors.Is(err, domainerror.ErrAdminNotFound) {
			t.Errorf("expected ErrAdminNotFound for a blank email, got %v", err)
		}
		if _, err := repo.FindByID(ctx, "a2"); !errors.Is(err, domainerror.ErrAdminNotFound) {
			t.Errorf("expected ErrAdminNotFound by id, got %v", err)
		}
	})
}
