package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/technest/admin-dashboard/internal/application/adapter"
	"github.com/technest/admin-dashboard/internal/domain/entity"
	domainerror "github.com/technest/admin-dashboard/internal/domain/error"
)

// CreateAdminInput represents the input for provisioning an administrator.
type CreateAdminInput struct {
	Email         string
	Name          string
	Password      string
	EmailVerified bool
}

// CreateAdminUseCase provisions or replaces an administrator account.
type CreateAdminUseCase struct {
	adminRepo       adapter.AdminRepository
	passwordService adapter.PasswordService
}

// NewCreateAdminUseCase creates a new CreateAdminUseCase instance.
func NewCreateAdminUseCase(adminRepo adapter.AdminRepository, passwordService adapter.PasswordService) *CreateAdminUseCase {
	return &CreateAdminUseCase{
		adminRepo:       adminRepo,
		passwordService: passwordService,
	}
}

// Execute stores the administrator. An existing account with the same email
// keeps its id and has its password and verification replaced.
func (uc *CreateAdminUseCase) Execute(ctx context.Context, input CreateAdminInput) (*entity.Admin, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingFields,
			"email is required",
			domainerror.ErrInvalidCredentials,
		)
	}
	if err := uc.passwordService.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			err.Error(),
			domainerror.ErrWeakPassword,
		)
	}

	id := uuid.NewString()
	existing, err := uc.adminRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		id = existing.ID
	case !errors.Is(err, domainerror.ErrAdminNotFound):
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	hash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &entity.Admin{
		ID:            id,
		Email:         email,
		Name:          strings.TrimSpace(input.Name),
		PasswordHash:  hash,
		EmailVerified: input.EmailVerified,
	}
	if err := uc.adminRepo.Save(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to save admin: %w", err)
	}
	return admin, nil
}
