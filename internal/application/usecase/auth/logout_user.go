package auth

import (
	"context"
	"log/slog"

	"github.com/technest/admin-dashboard/internal/application/adapter"
)

// LogoutAdminInput represents the input for admin logout.
type LogoutAdminInput struct {
	UserID string
}

// LogoutAdminUseCase ends the dashboard session.
type LogoutAdminUseCase struct {
	session adapter.Session
}

// NewLogoutAdminUseCase creates a new LogoutAdminUseCase instance.
func NewLogoutAdminUseCase(session adapter.Session) *LogoutAdminUseCase {
	return &LogoutAdminUseCase{session: session}
}

// Execute signs the caller out. Logging out a session that belongs to
// somebody else is a no-op.
func (uc *LogoutAdminUseCase) Execute(ctx context.Context, input LogoutAdminInput) {
	if uc.session.Current().UserID != input.UserID {
		slog.InfoContext(ctx, "Ignoring logout of inactive session", "user_id", input.UserID)
		return
	}
	uc.session.SignOut()
}
