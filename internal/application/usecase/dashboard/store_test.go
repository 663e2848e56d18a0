package dashboard

import (
	"errors"
	"testing"
	"time"

	"github.com/technest/admin-dashboard/internal/domain/entity"
)

func fixedNow() time.Time {
	return time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)
}

func TestSlot_Lifecycle(t *testing.T) {
	store := NewStore(fixedNow)
	slot := store.Users

	if got := slot.State(); got.Status != StatusLoading {
		t.Fatalf("expected a new slot to be loading, got %s", got.Status)
	}

	epoch := slot.Open(nil)
	ticket, ok := slot.Next(epoch)
	if !ok {
		t.Fatal("expected a ticket for the open epoch")
	}

	value := entity.UserVerificationSummary{TotalUsers: 3, VerifiedCount: 1, UnverifiedCount: 2}
	if !slot.Publish(ticket, value) {
		t.Fatal("expected publish with the current ticket to succeed")
	}
	got := slot.State()
	if got.Status != StatusReady || got.Value != value || got.Sequence != ticket.seq {
		t.Errorf("unexpected state after publish: %+v", got)
	}

	failTicket, _ := slot.Next(epoch)
	if !slot.Fail(failTicket, errors.New("offline")) {
		t.Fatal("expected fail with the current ticket to succeed")
	}
	got = slot.State()
	if got.Status != StatusFailed || got.Err == nil {
		t.Errorf("expected failed state, got %+v", got)
	}
	if got.Value != value {
		t.Errorf("expected the failed state to keep the last value, got %+v", got.Value)
	}

	recover, _ := slot.Next(epoch)
	slot.Publish(recover, entity.UserVerificationSummary{TotalUsers: 4, UnverifiedCount: 4})
	if got := slot.State(); got.Status != StatusReady || got.Err != nil {
		t.Errorf("expected the slot to recover, got %+v", got)
	}
}

func TestSlot_OnlyLatestTicketPublishes(t *testing.T) {
	slot := NewStore(fixedNow).Orders
	epoch := slot.Open(nil)

	older, _ := slot.Next(epoch)
	newer, _ := slot.Next(epoch)

	if slot.Publish(older, entity.OrderStatusSummary{Total: 1}) {
		t.Error("expected a superseded ticket to be rejected")
	}
	if !slot.Publish(newer, entity.OrderStatusSummary{Total: 2}) {
		t.Error("expected the latest ticket to publish")
	}
	if got := slot.State().Value.Total; got != 2 {
		t.Errorf("expected total 2, got %d", got)
	}
}

func TestSlot_DiscardInvalidatesTickets(t *testing.T) {
	slot := NewStore(fixedNow).Orders
	epoch := slot.Open(nil)
	ticket, _ := slot.Next(epoch)

	slot.Discard()
	slot.Discard()

	if slot.Publish(ticket, entity.OrderStatusSummary{Total: 9}) {
		t.Error("expected publish after discard to be rejected")
	}
	if _, ok := slot.Next(epoch); ok {
		t.Error("expected no ticket for a closed epoch")
	}
	if got := slot.State(); got.Status != StatusLoading || slot.IsOpen() {
		t.Errorf("expected a closed loading slot, got %+v", got)
	}

	reopened := slot.Open(nil)
	if reopened == epoch {
		t.Error("expected a new epoch after reopening")
	}
	if _, ok := slot.Next(epoch); ok {
		t.Error("expected the old epoch to stay invalid after reopening")
	}
}

func TestSlot_OpenWithCachedValue(t *testing.T) {
	slot := NewStore(fixedNow).Users
	cached := entity.UserVerificationSummary{TotalUsers: 7, VerifiedCount: 7}

	epoch := slot.Open(&cached)

	got := slot.State()
	if got.Status != StatusLoading || !got.Cached || got.Value != cached {
		t.Errorf("expected loading with cached value, got %+v", got)
	}

	ticket, _ := slot.Next(epoch)
	slot.Fail(ticket, errors.New("denied"))
	if got := slot.State(); got.Value != (entity.UserVerificationSummary{}) || got.Cached {
		t.Errorf("expected the cached value to be dropped on failure, got %+v", got)
	}
}

func TestSlot_SettleClosesEpoch(t *testing.T) {
	slot := NewStore(fixedNow).Chats
	epoch := slot.Open(nil)
	ticket, _ := slot.Next(epoch)

	slot.Settle(EmptyChatInbox())

	got := slot.State()
	if got.Status != StatusReady || got.Value.TotalChats != 0 {
		t.Errorf("expected ready empty inbox, got %+v", got)
	}
	if slot.Publish(ticket, entity.ChatInboxSummary{TotalChats: 5}) {
		t.Error("expected a ticket from before settle to be rejected")
	}
}

func TestStore_Watch(t *testing.T) {
	store := NewStore(fixedNow)
	changes, stop := store.Watch()

	epoch := store.Orders.Open(nil)
	ticket, _ := store.Orders.Next(epoch)
	store.Orders.Publish(ticket, entity.OrderStatusSummary{Total: 1})

	select {
	case <-changes:
	case <-time.After(time.Second):
		t.Fatal("expected a change signal")
	}

	stop()
	stop()
	if _, ok := <-changes; ok {
		// A buffered signal may still be pending; the channel must close after it.
		if _, ok := <-changes; ok {
			t.Error("expected the channel to be closed after stop")
		}
	}
}
