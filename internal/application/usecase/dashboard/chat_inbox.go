// Package dashboard contains the real-time aggregation view-model behind the admin dashboard.
package dashboard

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/technest/admin-dashboard/internal/application/adapter"
	"github.com/technest/admin-dashboard/internal/domain/entity"
)

const (
	// UnknownCounterpartName is shown when a chat's customer cannot be resolved.
	UnknownCounterpartName = "Unknown user"

	defaultLookupConcurrency = 8
)

// ChatInboxResolver builds the admin chat inbox, resolving every chat's
// counterpart through the user directory.
type ChatInboxResolver struct {
	users       adapter.UserDirectory
	concurrency int
}

// NewChatInboxResolver creates a new ChatInboxResolver instance.
func NewChatInboxResolver(users adapter.UserDirectory, concurrency int) *ChatInboxResolver {
	if concurrency <= 0 {
		concurrency = defaultLookupConcurrency
	}
	return &ChatInboxResolver{
		users:       users,
		concurrency: concurrency,
	}
}

// Resolve looks up every distinct counterpart concurrently and returns the
// combined summary once all lookups finished. Failed lookups degrade to
// UnknownCounterpartName; the only error returned is ctx's.
func (r *ChatInboxResolver) Resolve(ctx context.Context, chats []entity.Chat) (entity.ChatInboxSummary, error) {
	ids := make(map[string]struct{})
	for _, c := range chats {
		if id := strings.TrimSpace(c.UserID); id != "" {
			ids[id] = struct{}{}
		}
	}

	var (
		mu    sync.Mutex
		names = make(map[string]string, len(ids))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for id := range ids {
		id := id
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			user, err := r.users.FindUser(gctx, id)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				slog.Warn("Failed to resolve chat counterpart", "user_id", id, "error", err)
				return nil
			}
			if user == nil {
				return nil
			}
			if name := user.DisplayName(); name != "" {
				mu.Lock()
				names[id] = name
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return entity.ChatInboxSummary{}, err
	}

	return ReduceChatInbox(chats, names), nil
}

// ReduceChatInbox folds chats and already-resolved counterpart names into a
// summary. Entries are ordered by most recent message first; chats without a
// message instant go last, ties are broken by chat id.
func ReduceChatInbox(chats []entity.Chat, names map[string]string) entity.ChatInboxSummary {
	summary := EmptyChatInbox()
	summary.TotalChats = len(chats)

	for _, c := range chats {
		if c.UnreadByAdmin > 0 {
			summary.UnreadChats++
			summary.UnreadMessages += c.UnreadByAdmin
		}

		name, ok := names[strings.TrimSpace(c.UserID)]
		if !ok {
			name = UnknownCounterpartName
		}
		summary.Entries = append(summary.Entries, entity.ChatInboxEntry{
			ChatID:          c.ID,
			CounterpartID:   c.UserID,
			CounterpartName: name,
			LastMessage:     c.LastMessage,
			LastMessageAt:   c.LastMessageAt,
			UnreadCount:     c.UnreadByAdmin,
		})
	}

	sort.SliceStable(summary.Entries, func(i, j int) bool {
		a, b := summary.Entries[i], summary.Entries[j]
		switch {
		case a.LastMessageAt == nil && b.LastMessageAt == nil:
			return a.ChatID < b.ChatID
		case a.LastMessageAt == nil:
			return false
		case b.LastMessageAt == nil:
			return true
		case !a.LastMessageAt.Equal(*b.LastMessageAt):
			return a.LastMessageAt.After(*b.LastMessageAt)
		default:
			return a.ChatID < b.ChatID
		}
	})

	return summary
}

// EmptyChatInbox returns the summary shown when there is nothing to show.
func EmptyChatInbox() entity.ChatInboxSummary {
	return entity.ChatInboxSummary{Entries: []entity.ChatInboxEntry{}}
}
