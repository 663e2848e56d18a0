// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/technest/admin-dashboard/internal/domain/entity"
)

// DocumentRepository defines persistence operations on schemaless documents.
type DocumentRepository interface {
	// LoadCollection returns every document of a collection ordered by id.
	LoadCollection(ctx context.Context, collection string) ([]Document, error)

	// Get retrieves a single document. It returns nil when the document does not exist.
	Get(ctx context.Context, collection, id string) (*Document, error)

	// Upsert creates or replaces a document.
	Upsert(ctx context.Context, doc Document) error

	// Delete removes a document.
	Delete(ctx context.Context, collection, id string) error
}

// UserDirectory resolves customer records referenced by other documents.
type UserDirectory interface {
	// FindUser retrieves a user by id.
	FindUser(ctx context.Context, id string) (*entity.User, error)
}

// AdminRepository defines lookups of administrator accounts.
type AdminRepository interface {
	// FindByEmail retrieves an administrator by email address.
	FindByEmail(ctx context.Context, email string) (*entity.Admin, error)

	// FindByID retrieves an administrator by id.
	FindByID(ctx context.Context, id string) (*entity.Admin, error)

	// Save creates or replaces an administrator.
	Save(ctx context.Context, admin *entity.Admin) error
}
