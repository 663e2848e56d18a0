package persistence

import (
	"context"
	"testing"

	"github.com/technest/admin-dashboard/internal/application/adapter"
	"github.com/technest/admin-dashboard/internal/domain/entity"
	"github.com/technest/admin-dashboard/internal/testsupport/mock"
)

func TestUserDirectory_FindUser(t *testing.T) {
	ctx := context.Background()
	docs := NewDocumentRepository(mock.NewDb(t))
	err := docs.Upsert(ctx, adapter.Document{
		Collection: entity.CollectionUsers,
		ID:         "u1",
		Data:       map[string]any{"name": "Ada Lovelace", "email": "ada@example.com", "verificationStatus": "verified"},
	})
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	directory := NewUserDirectory(docs)

	user, err := directory.FindUser(ctx, "u1")
	if err != nil {
		t.Fatalf("FindUser returned error: %v", err)
	}
	if user == nil || user.DisplayName() != "Ada Lovelace" || !user.IsVerified() {
		t.Errorf("unexpected user: %+v", user)
	}

	missing, err := directory.FindUser(ctx, "u2")
	if err != nil {
		t.Fatalf("FindUser returned error: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for an unknown user, got %+v", missing)
	}
}
