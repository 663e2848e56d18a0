package persistence

import (
	"context"

	"github.com/technest/admin-dashboard/internal/application/adapter"
	"github.com/technest/admin-dashboard/internal/application/usecase/dashboard"
	"github.com/technest/admin-dashboard/internal/domain/entity"
)

// userDirectory implements adapter.UserDirectory over the users collection.
type userDirectory struct {
	documents adapter.DocumentRepository
}

// NewUserDirectory creates a new user directory instance.
func NewUserDirectory(documents adapter.DocumentRepository) adapter.UserDirectory {
	return &userDirectory{documents: documents}
}

// FindUser retrieves a user by id. It returns nil when the user does not exist.
func (d *userDirectory) FindUser(ctx context.Context, id string) (*entity.User, error) {
	doc, err := d.documents.Get(ctx, entity.CollectionUsers, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	user := dashboard.DecodeUser(*doc)
	return &user, nil
}
