// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/technest/admin-dashboard/internal/application/adapter"
	"github.com/technest/admin-dashboard/internal/integration/persistence/model"
)

// ChangePublisher announces that a collection changed. It is used when the
// database does not notify listeners on its own.
type ChangePublisher interface {
	Publish(ctx context.Context, collection string) error
}

// RepositoryOption customizes the document repository.
type RepositoryOption func(*documentRepository)

// WithChangePublisher announces every write through publisher.
func WithChangePublisher(publisher ChangePublisher) RepositoryOption {
	return func(r *documentRepository) {
		r.publisher = publisher
	}
}

// documentRepository implements the adapter.DocumentRepository interface.
type documentRepository struct {
	db        *gorm.DB
	publisher ChangePublisher
	now       func() time.Time
}

// NewDocumentRepository creates a new document repository instance.
func NewDocumentRepository(db *gorm.DB, opts ...RepositoryOption) adapter.DocumentRepository {
	r := &documentRepository{
		db:  db,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LoadCollection returns every document of a collection ordered by id.
func (r *documentRepository) LoadCollection(ctx context.Context, collection string) ([]adapter.Document, error) {
	var models []model.DocumentModel
	result := r.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("id ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	docs := make([]adapter.Document, 0, len(models))
	for i := range models {
		doc, err := models[i].ToDocument()
		if err != nil {
			// A corrupt body must not hide the rest of the collection.
			slog.Warn("Skipping unreadable document",
				"collection", collection,
				"id", models[i].ID,
				"error", err,
			)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Get retrieves a single document. It returns nil when the document does not exist.
func (r *documentRepository) Get(ctx context.Context, collection, id string) (*adapter.Document, error) {
	var m model.DocumentModel
	result := r.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	doc, err := m.ToDocument()
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Upsert creates or replaces a document.
func (r *documentRepository) Upsert(ctx context.Context, doc adapter.Document) error {
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = r.now().UTC()
	}
	m, err := model.FromDocument(doc)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(m)
	if result.Error != nil {
		return result.Error
	}

	r.publish(ctx, doc.Collection)
	return nil
}

// Delete removes a document.
func (r *documentRepository) Delete(ctx context.Context, collection, id string) error {
	result := r.db.WithContext(ctx).
		Delete(&model.DocumentModel{}, "collection = ? AND id = ?", collection, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		r.publish(ctx, collection)
	}
	return nil
}

func (r *documentRepository) publish(ctx context.Context, collection string) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.Publish(ctx, collection); err != nil {
		// Subscribers still catch up on the next poll.
		slog.Warn("Failed to announce document change", "collection", collection, "error", err)
	}
}
