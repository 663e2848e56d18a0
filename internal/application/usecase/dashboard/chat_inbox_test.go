package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/technest/admin-dashboard/internal/domain/entity"
	"github.com/technest/admin-dashboard/internal/testsupport/mock"
)

func chatAt(id, userID string, at *time.Time, unread int) entity.Chat {
	return entity.Chat{ID: id, UserID: userID, LastMessage: "hi " + id, LastMessageAt: at, UnreadByAdmin: unread}
}

func TestReduceChatInbox(t *testing.T) {
	t1 := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	chats := []entity.Chat{
		chatAt("c3", "u3", nil, 0),
		chatAt("c1", "u1", &t1, 2),
		chatAt("c2", "u2", &t2, 0),
		chatAt("c0", "u1", &t1, 1),
	}
	names := map[string]string{"u1": "Ada", "u2": "Grace"}

	got := ReduceChatInbox(chats, names)

	if got.TotalChats != 4 || got.UnreadChats != 2 || got.UnreadMessages != 3 {
		t.Errorf("unexpected counts %+v", got)
	}

	wantOrder := []string{"c2", "c0", "c1", "c3"}
	for i, e := range got.Entries {
		if e.ChatID != wantOrder[i] {
			t.Errorf("entry %d: expected %s, got %s", i, wantOrder[i], e.ChatID)
		}
	}
	if got.Entries[3].CounterpartName != UnknownCounterpartName {
		t.Errorf("expected unresolved counterpart to be %q, got %q", UnknownCounterpartName, got.Entries[3].CounterpartName)
	}
	if got.Entries[0].CounterpartName != "Grace" {
		t.Errorf("expected Grace, got %q", got.Entries[0].CounterpartName)
	}
}

func TestEmptyChatInbox(t *testing.T) {
	got := EmptyChatInbox()
	if got.Entries == nil || len(got.Entries) != 0 || got.TotalChats != 0 {
		t.Errorf("expected an empty non-nil inbox, got %+v", got)
	}
}

func TestChatInboxResolver_Resolve(t *testing.T) {
	t.Run("degrades failed lookups", func(t *testing.T) {
		users := mock.NewUserDirectory(map[string]string{"u1": "Ada"})
		users.Fail("u2", errors.New("boom"))
		resolver := NewChatInboxResolver(users, 2)

		got, err := resolver.Resolve(context.Background(), []entity.Chat{
			chatAt("c1", "u1", nil, 0),
			chatAt("c2", "u2", nil, 0),
			chatAt("c3", "u1", nil, 0),
			chatAt("c4", "", nil, 0),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		names := map[string]string{}
		for _, e := range got.Entries {
			names[e.ChatID] = e.CounterpartName
		}
		want := map[string]string{"c1": "Ada", "c2": UnknownCounterpartName, "c3": "Ada", "c4": UnknownCounterpartName}
		for id, name := range want {
			if names[id] != name {
				t.Errorf("%s: expected %q, got %q", id, name, names[id])
			}
		}
		if users.Lookups() != 2 {
			t.Errorf("expected one lookup per distinct user, got %d", users.Lookups())
		}
	})

	t.Run("returns the context error when cancelled", func(t *testing.T) {
		users := mock.NewUserDirectory(map[string]string{"u1": "Ada"})
		users.Hold()
		defer users.Release()
		resolver := NewChatInboxResolver(users, 0)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			_, err := resolver.Resolve(ctx, []entity.Chat{chatAt("c1", "u1", nil, 0)})
			done <- err
		}()
		cancel()

		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("resolve did not return after cancellation")
		}
	})
}
