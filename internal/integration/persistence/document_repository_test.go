package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/technest/admin-dashboard/internal/application/adapter"
	"github.com/technest/admin-dashboard/internal/integration/persistence/model"
	"github.com/technest/admin-dashboard/internal/testsupport/mock"
)

type recordingPublisher struct {
	mu          sync.Mutex
	collections []string
	err         error
}

func (p *recordingPublisher) Publish(_ context.Context, collection string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.collections = append(p.collections, collection)
	return p.err
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.collections...)
}

func TestDocumentRepository_UpsertAndLoad(t *testing.T) {
	ctx := context.Background()
	clock := mock.NewClock(time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC))
	repo := NewDocumentRepository(mock.NewDb(t)).(*documentRepository)
	repo.now = clock.Now

	for _, id := range []string{"o2", "o1"} {
		err := repo.Upsert(ctx, adapter.Document{
			Collection: "orders",
			ID:         id,
			Data:       map[string]any{"status": "pending", "grandTotal": 19.99},
		})
		if err != nil {
			t.Fatalf("Upsert returned error: %v", err)
		}
	}
	if err := repo.Upsert(ctx, adapter.Document{Collection: "users", ID: "u1"}); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	docs, err := repo.LoadCollection(ctx, "orders")
	if err != nil {
		t.Fatalf("LoadCollection returned error: %v", err)
	}
	if len(docs) != 2 || docs[0].ID != "o1" || docs[1].ID != "o2" {
		t.Fatalf("expected o1 and o2 ordered by id, got %+v", docs)
	}
	if got, ok := docs[0].Data["grandTotal"].(json.Number); !ok || got.String() != "19.99" {
		t.Errorf("expected grandTotal as json.Number 19.99, got %#v", docs[0].Data["grandTotal"])
	}
	if !docs[0].UpdatedAt.Equal(clock.Now()) {
		t.Errorf("expected UpdatedAt %v, got %v", clock.Now(), docs[0].UpdatedAt)
	}

	clock.Advance(time.Hour)
	err = repo.Upsert(ctx, adapter.Document{
		Collection: "orders",
		ID:         "o1",
		Data:       map[string]any{"status": "delivered"},
	})
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	doc, err := repo.Get(ctx, "orders", "o1")
	if err != nil || doc == nil {
		t.Fatalf("Get returned %v, %v", doc, err)
	}
	if doc.Data["status"] != "delivered" {
		t.Errorf("expected the document to be replaced, got %+v", doc.Data)
	}
	if _, ok := doc.Data["grandTotal"]; ok {
		t.Error("expected the replaced body to drop old fields")
	}
	if !doc.UpdatedAt.Equal(clock.Now()) {
		t.Errorf("expected UpdatedAt to move to %v, got %v", clock.Now(), doc.UpdatedAt)
	}
}

func TestDocumentRepository_GetMissing(t *testing.T) {
	repo := NewDocumentRepository(mock.NewDb(t))

	doc, err := repo.Get(context.Background(), "users", "nobody")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if doc != nil {
		t.Errorf("expected nil, got %+v", doc)
	}
}

func TestDocumentRepository_SkipsUnreadableDocuments(t *testing.T) {
	db := mock.NewDb(t)
	repo := NewDocumentRepository(db)
	ctx := context.Background()

	if err := repo.Upsert(ctx, adapter.Document{Collection: "chats", ID: "c1", Data: map[string]any{"userId": "u1"}}); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	corrupt := &model.DocumentModel{Collection: "chats", ID: "c2", Data: "{not json", UpdatedAt: time.Now()}
	if err := db.Create(corrupt).Error; err != nil {
		t.Fatalf("failed to insert corrupt document: %v", err)
	}

	docs, err := repo.LoadCollection(ctx, "chats")
	if err != nil {
		t.Fatalf("LoadCollection returned error: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "c1" {
		t.Errorf("expected only c1, got %+v", docs)
	}

	if _, err := repo.Get(ctx, "chats", "c2"); err == nil {
		t.Error("expected Get of a corrupt document to fail")
	}
}

func TestDocumentRepository_PublishesChanges(t *testing.T) {
	publisher := &recordingPublisher{}
	repo := NewDocumentRepository(mock.NewDb(t), WithChangePublisher(publisher))
	ctx := context.Background()

	if err := repo.Upsert(ctx, adapter.Document{Collection: "users", ID: "u1"}); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	if err := repo.Delete(ctx, "users", "missing"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := repo.Delete(ctx, "users", "u1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	got := publisher.published()
	if len(got) != 2 || got[0] != "users" || got[1] != "users" {
		t.Errorf("expected two users announcements, got %v", got)
	}
}

func TestDocumentRepository_PublishFailureDoesNotFailWrite(t *testing.T) {
	publisher := &recordingPublisher{err: errors.New("redis down")}
	repo := NewDocumentRepository(mock.NewDb(t), WithChangePublisher(publisher))

	if err := repo.Upsert(context.Background(), adapter.Document{Collection: "users", ID: "u1"}); err != nil {
		t.Fatalf("expected the write to succeed, got %v", err)
	}
	if doc, _ := repo.Get(context.Background(), "users", "u1"); doc == nil {
		t.Error("expected the document to be stored")
	}
}
