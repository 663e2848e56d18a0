package persistence

import (
	"context"
	"strings"

	"github.com/technest/admin-dashboard/internal/application/adapter"
	"github.com/technest/admin-dashboard/internal/domain/entity"
	domainerror "github.com/technest/admin-dashboard/internal/domain/error"
	"github.com/technest/admin-dashboard/internal/domain/valueobject"
)

const (
	adminFieldEmail         = "email"
	adminFieldName          = "name"
	adminFieldPasswordHash  = "passwordHash"
	adminFieldEmailVerified = "emailVerified"
)

// adminRepository implements adapter.AdminRepository over the admins collection.
type adminRepository struct {
	documents adapter.DocumentRepository
}

// NewAdminRepository creates a new admin repository instance.
func NewAdminRepository(documents adapter.DocumentRepository) adapter.AdminRepository {
	return &adminRepository{documents: documents}
}

// FindByEmail retrieves an administrator by email address, ignoring case.
func (r *adminRepository) FindByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domainerror.ErrAdminNotFound
	}

	docs, err := r.documents.LoadCollection(ctx, entity.CollectionAdmins)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		admin := toAdmin(doc)
		if strings.EqualFold(strings.TrimSpace(admin.Email), email) {
			return admin, nil
		}
	}
	return nil, domainerror.ErrAdminNotFound
}

// FindByID retrieves an administrator by id.
func (r *adminRepository) FindByID(ctx context.Context, id string) (*entity.Admin, error) {
	doc, err := r.documents.Get(ctx, entity.CollectionAdmins, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domainerror.ErrAdminNotFound
	}
	return toAdmin(*doc), nil
}

// Save creates or replaces an administrator.
func (r *adminRepository) Save(ctx context.Context, admin *entity.Admin) error {
	return r.documents.Upsert(ctx, adapter.Document{
		Collection: entity.CollectionAdmins,
		ID:         admin.ID,
		Data: map[string]any{
			adminFieldEmail:         strings.ToLower(strings.TrimSpace(admin.Email)),
			adminFieldName:          admin.Name,
			adminFieldPasswordHash:  admin.PasswordHash,
			adminFieldEmailVerified: admin.EmailVerified,
		},
	})
}

func toAdmin(doc adapter.Document) *entity.Admin {
	fields := valueobject.Fields(doc.Data)
	return &entity.Admin{
		ID:            doc.ID,
		Email:         fields.String(adminFieldEmail),
		Name:          fields.String(adminFieldName),
		PasswordHash:  fields.String(adminFieldPasswordHash),
		EmailVerified: fields.Bool(adminFieldEmailVerified),
	}
}
