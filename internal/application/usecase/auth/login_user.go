// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/technest/admin-dashboard/internal/application/adapter"
	"github.com/technest/admin-dashboard/internal/domain/entity"
	domainerror "github.com/technest/admin-dashboard/internal/domain/error"
)

// LoginAdminInput represents the input for admin login.
type LoginAdminInput struct {
	Email    string
	Password string
}

// LoginAdminOutput represents the output of admin login.
type LoginAdminOutput struct {
	AccessToken string
	ExpiresAt   time.Time
	Identity    entity.Identity
}

// LoginAdminUseCase signs an administrator in to the dashboard session.
type LoginAdminUseCase struct {
	adminRepo       adapter.AdminRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
	session         adapter.Session
}

// NewLoginAdminUseCase creates a new LoginAdminUseCase instance.
func NewLoginAdminUseCase(
	adminRepo adapter.AdminRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
	session adapter.Session,
) *LoginAdminUseCase {
	return &LoginAdminUseCase{
		adminRepo:       adminRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		session:         session,
	}
}

// Execute performs the admin login. An administrator whose email is not
// verified may sign in but is not granted the admin-only summaries.
func (uc *LoginAdminUseCase) Execute(ctx context.Context, input LoginAdminInput) (*LoginAdminOutput, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingFields,
			"email and password are required",
			domainerror.ErrInvalidCredentials,
		)
	}

	admin, err := uc.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domainerror.ErrAdminNotFound) {
			return nil, fmt.Errorf("failed to find admin: %w", err)
		}
		// Same error as a wrong password to prevent email enumeration
		return nil, invalidCredentials()
	}

	if err := uc.passwordService.VerifyPassword(admin.PasswordHash, input.Password); err != nil {
		return nil, invalidCredentials()
	}

	identity := entity.Identity{
		UserID:   admin.ID,
		Email:    admin.Email,
		Name:     admin.Name,
		Verified: admin.EmailVerified,
		Admin:    true,
	}

	token, err := uc.tokenService.GenerateAccessToken(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	identity.ExpiresAt = token.ExpiresAt

	uc.session.SignIn(identity)

	return &LoginAdminOutput{
		AccessToken: token.Token,
		ExpiresAt:   token.ExpiresAt,
		Identity:    identity,
	}, nil
}

func invalidCredentials() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidCredentials,
		"invalid email or password",
		domainerror.ErrInvalidCredentials,
	)
}
